package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	schemaFiles := []string{
		"job_record.schema.json",
	}

	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)

			_, err = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
			assert.NoError(t, err, "schema file should compile: %s", schemaFile)
		})
	}
}

func TestEmbeddedSchema_MatchesFile(t *testing.T) {
	data, err := os.ReadFile("job_record.schema.json")
	require.NoError(t, err)
	assert.Equal(t, data, JobRecord)
}

func TestJobRecordSchema_RequiredFields(t *testing.T) {
	var schema struct {
		Required []string `json:"required"`
	}
	require.NoError(t, json.Unmarshal(JobRecord, &schema))
	assert.Contains(t, schema.Required, "job_title")
	assert.Contains(t, schema.Required, "salary")
	assert.Contains(t, schema.Required, "job_uuid")
	assert.NotContains(t, schema.Required, "_id")
}
