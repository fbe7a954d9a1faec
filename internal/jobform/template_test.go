package jobform

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobboard/internal/formstore"
)

func TestDefaultTemplate(t *testing.T) {
	form := New(DefaultTemplate(fixedNow))

	assert.Equal(t, "Senior Frontend Developer", form.Text(JobTitle))
	assert.Equal(t, "full-time", form.Text(JobType))
	assert.Equal(t, "3", form.Number(Experience))
	assert.Equal(t, []string{"React", "JavaScript", "TypeScript", "HTML/CSS", "Git"}, form.Items(Skills))
	assert.Equal(t, "80000", form.Number(SalaryMin))
	assert.Equal(t, "annual", form.Text(SalaryPeriod))
	assert.Equal(t, "draft", form.Text(JobStatus))
	assert.Equal(t, "", form.Text(JobUUID))
	assert.Equal(t, "2026-11-16T09:30", form.Text(ApplicationDeadline))
}

func TestDefaultTemplate_DeadlineInUTC(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	now := time.Date(2026, 10, 17, 3, 0, 0, 0, tokyo)

	form := New(DefaultTemplate(now))
	assert.Equal(t, "2026-11-15T18:00", form.Text(ApplicationDeadline))
}

func TestDefaultTemplate_FreshDocuments(t *testing.T) {
	a := DefaultTemplate(fixedNow)
	b := DefaultTemplate(fixedNow)
	assert.NotSame(t, a, b)
	assert.True(t, formstore.Equal(a, b))
}

func TestParseTemplate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, doc *formstore.Document)
		wantErr bool
	}{
		{
			name: "yaml keeps field order",
			content: `
job_title: Backend Engineer
company: Initech
salary:
  min: "90000"
  max: 130000
job_description:
  requirements:
    experience: 4
    skills: [Go, SQL]
    certifications: []
`,
			check: func(t *testing.T, doc *formstore.Document) {
				assert.Equal(t, []string{"job_title", "company", "salary", "job_description"}, doc.Keys())
				form := New(doc)
				assert.Equal(t, "Backend Engineer", form.Text(JobTitle))
				assert.Equal(t, "90000", form.Number(SalaryMin))
				assert.Equal(t, "130000", form.Number(SalaryMax))
				assert.Equal(t, "4", form.Number(Experience))
				assert.Equal(t, []string{"Go", "SQL"}, form.Items(Skills))
				assert.Equal(t, []string{""}, form.Items(Certifications))
			},
		},
		{
			name:    "json",
			content: `{"company": "Globex", "job_description": {"requirements": {"skills": ["Rust"]}}}`,
			check: func(t *testing.T, doc *formstore.Document) {
				form := New(doc)
				assert.Equal(t, "Globex", form.Text(Company))
				assert.Equal(t, []string{"Rust"}, form.Items(Skills))
			},
		},
		{
			name:    "extra fields kept",
			content: "company: Globex\nbenefits:\n  remote_budget: 500\n",
			check: func(t *testing.T, doc *formstore.Document) {
				s, ok := formstore.GetString(doc, formstore.MustParsePath("benefits.remote_budget"))
				require.True(t, ok)
				assert.Equal(t, "500", s)
			},
		},
		{name: "top-level list", content: "- a\n- b\n", wantErr: true},
		{name: "boolean value", content: "remote: true\n", wantErr: true},
		{name: "null value", content: "company: null\n", wantErr: true},
		{name: "nested list", content: "skills: [[a]]\n", wantErr: true},
		{name: "mixed list", content: "skills: [a, 1]\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseTemplate([]byte(tt.content))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, doc)
		})
	}
}

func TestLoadTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "posting.yaml")
	require.NoError(t, os.WriteFile(path, []byte("job_title: Data Engineer\n"), 0o600))

	doc, err := LoadTemplate(path)
	require.NoError(t, err)
	assert.Equal(t, "Data Engineer", New(doc).Text(JobTitle))

	_, err = LoadTemplate(filepath.Join(dir, "missing.yaml"))
	var te *TemplateError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, err.Error(), "failed to read file")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadTemplate("")
	assert.ErrorContains(t, err, "template path is empty")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("remote: yes\nflag: true\n"), 0o600))
	_, err = LoadTemplate(bad)
	assert.ErrorContains(t, err, "failed to parse")
}
