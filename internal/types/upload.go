//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// UploadExtensions are the document types the upload form offers.
var UploadExtensions = []string{".pdf", ".doc", ".docx"}

// CheckUploadName rejects file names without an accepted document extension.
func CheckUploadName(name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range UploadExtensions {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("unsupported document type %q: expected one of %s", filepath.Base(name), strings.Join(UploadExtensions, ", "))
}

// UploadDescriptor describes a stored document as reported by the upload service.
type UploadDescriptor struct {
	Message    string `json:"message"`
	Filename   string `json:"filename"`
	StorageKey string `json:"s3_key"`
	FileSize   int64  `json:"file_size"`
	URL        string `json:"s3_url,omitempty"`
	Content    string `json:"file_content,omitempty"`
}

// CreatedJob is the job service's answer to a successful POST.
// The service returns {"id": ...}; some deployments echo the stored record.
type CreatedJob struct {
	ID   string `json:"id"`
	Body string `json:"-"`
}

// ParseCreatedJob reads the id from a creation response. Bodies that are not
// JSON objects are kept verbatim in Body with an empty ID.
func ParseCreatedJob(body []byte) CreatedJob {
	created := CreatedJob{Body: string(body)}
	var fields struct {
		ID    string `json:"id"`
		Mongo string `json:"_id"`
	}
	if err := json.Unmarshal(body, &fields); err != nil {
		return created
	}
	created.ID = fields.ID
	if created.ID == "" {
		created.ID = fields.Mongo
	}
	return created
}
