package jobform

import (
	"github.com/jonathan/jobboard/internal/formstore"
	"github.com/jonathan/jobboard/internal/schemas"
	"github.com/jonathan/jobboard/internal/types"
)

// Submission projects doc and checks the record before it is sent: struct
// validation first, then the job record JSON schema. A blank job_uuid is
// stamped on the returned record; doc keeps its own value.
func (p Projector) Submission(doc *formstore.Document) (types.JobRecord, error) {
	rec, err := p.Project(doc)
	if err != nil {
		return types.JobRecord{}, err
	}
	rec.AssignUUID()

	if err := rec.Validate(); err != nil {
		return rec, err
	}

	validator, err := schemas.JobRecordValidator()
	if err != nil {
		return rec, err
	}
	if err := validator.ValidateValue(rec); err != nil {
		return rec, err
	}
	return rec, nil
}
