// Package schemas embeds the JSON Schemas of the payloads exchanged with the
// job service.
package schemas

import _ "embed"

// JobRecord is the schema of a job posting submitted to POST /jobs.
//
//go:embed job_record.schema.json
var JobRecord []byte
