//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() JobRecord {
	return JobRecord{
		JobTitle:        "Senior Frontend Developer",
		JobType:         JobTypeFullTime,
		Company:         "TechCorp Inc.",
		WorkArrangement: WorkRemote,
		JobLocation:     "San Francisco, CA",
		JobDescription: JobDescription{
			RoleSummary:       "Build user-facing features.",
			KeyResponsibility: "Develop reusable components.",
			Requirements: Requirements{
				Experience:     3,
				Skills:         []string{"React", "Go"},
				Education:      "BSc",
				Certifications: []string{},
			},
		},
		Salary: Salary{
			Min:      80000,
			Max:      120000,
			Currency: "USD",
			Period:   PeriodAnnual,
		},
		ApplicationDeadline: NewInstant(time.Date(2026, 11, 16, 9, 30, 0, 0, time.UTC)),
		PostedDate:          NewInstant(time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)),
		JobStatus:           StatusDraft,
	}
}

func TestJobRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *JobRecord)
		wantErr bool
		errMsg  string
	}{
		{name: "valid record", mutate: func(r *JobRecord) {}},
		{name: "min equals max", mutate: func(r *JobRecord) { r.Salary.Max = r.Salary.Min }},
		{name: "missing title", mutate: func(r *JobRecord) { r.JobTitle = "" }, wantErr: true, errMsg: "JobTitle"},
		{name: "missing company", mutate: func(r *JobRecord) { r.Company = "" }, wantErr: true, errMsg: "Company"},
		{name: "unknown job type", mutate: func(r *JobRecord) { r.JobType = "freelance" }, wantErr: true, errMsg: "oneof"},
		{name: "unknown arrangement", mutate: func(r *JobRecord) { r.WorkArrangement = "office" }, wantErr: true, errMsg: "oneof"},
		{name: "short summary", mutate: func(r *JobRecord) { r.JobDescription.RoleSummary = "Build" }, wantErr: true, errMsg: "RoleSummary"},
		{name: "no skills", mutate: func(r *JobRecord) { r.JobDescription.Requirements.Skills = nil }, wantErr: true, errMsg: "Skills"},
		{name: "blank skill", mutate: func(r *JobRecord) { r.JobDescription.Requirements.Skills = []string{""} }, wantErr: true, errMsg: "Skills[0]"},
		{name: "negative experience", mutate: func(r *JobRecord) { r.JobDescription.Requirements.Experience = -1 }, wantErr: true, errMsg: "Experience"},
		{name: "zero salary", mutate: func(r *JobRecord) { r.Salary.Min = 0 }, wantErr: true, errMsg: "Min"},
		{name: "min above max", mutate: func(r *JobRecord) { r.Salary.Min = 130000 }, wantErr: true, errMsg: "gtefield"},
		{name: "long currency", mutate: func(r *JobRecord) { r.Salary.Currency = "USDX" }, wantErr: true, errMsg: "Currency"},
		{name: "unknown period", mutate: func(r *JobRecord) { r.Salary.Period = "weekly" }, wantErr: true, errMsg: "Period"},
		{name: "unknown status", mutate: func(r *JobRecord) { r.JobStatus = "open" }, wantErr: true, errMsg: "JobStatus"},
		{name: "missing deadline", mutate: func(r *JobRecord) { r.ApplicationDeadline = Instant{} }, wantErr: true, errMsg: "application_deadline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecord()
			tt.mutate(&r)
			err := r.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestJobRecord_ValidateReturnsValidationErrors(t *testing.T) {
	r := validRecord()
	r.Company = ""

	err := r.Validate()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "Company", verrs[0].Field())
}

func TestJobRecord_AssignUUID(t *testing.T) {
	r := validRecord()
	id := r.AssignUUID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, r.JobUUID)

	assert.Equal(t, id, r.AssignUUID(), "an existing uuid is kept")
}

func TestJobRecord_JSON(t *testing.T) {
	r := validRecord()
	r.JobUUID = "abc"

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.NotContains(t, raw, "_id", "id is assigned by the service")
	assert.Equal(t, "2026-11-16T09:30:00Z", raw["application_deadline"])
	assert.Equal(t, "full-time", raw["job_type"])
	assert.Equal(t, []any{}, raw["job_description"].(map[string]any)["requirements"].(map[string]any)["certifications"])
}

func TestJobRecord_DecodeServiceResponse(t *testing.T) {
	body := `[{
		"_id": "665f1c2e9b1e8a0012345678",
		"job_title": "Backend Engineer",
		"job_type": "contract",
		"company": "Initech",
		"work_arrangement": "hybrid",
		"job_location": "Austin, TX",
		"job_description": {
			"role_summary": "Own the billing services.",
			"key_responsibility": "Design and operate APIs.",
			"requirements": {"experience": 5, "skills": ["Go"], "education": "", "certifications": []}
		},
		"salary": {"min": 100000.0, "max": 150000.0, "currency": "USD", "period": "annual"},
		"application_deadline": "2026-11-16T09:30:00",
		"posted_date": "2026-10-17T08:00:00.123456",
		"job_status": "active",
		"job_uuid": "b7f2"
	}]`

	var jobs []JobRecord
	require.NoError(t, json.Unmarshal([]byte(body), &jobs))
	require.Len(t, jobs, 1)

	job := jobs[0]
	assert.Equal(t, "665f1c2e9b1e8a0012345678", job.ID)
	assert.Equal(t, WorkHybrid, job.WorkArrangement)
	assert.True(t, time.Date(2026, 11, 16, 9, 30, 0, 0, time.UTC).Equal(job.ApplicationDeadline.Time))
	assert.Equal(t, 123456000, job.PostedDate.Nanosecond())
	assert.Equal(t, 150000.0, job.Salary.Max)
}

func TestJobRecord_SummaryText(t *testing.T) {
	r := validRecord()
	assert.Equal(t,
		"Role Summary: Build user-facing features.\n"+
			"Key Responsibilities: Develop reusable components.\n"+
			"Skills Required: React, Go\n"+
			"Experience Required: 3 years\n"+
			"Education: BSc",
		r.SummaryText())

	r.JobDescription.Requirements.Certifications = []string{"CKA", "AWS"}
	assert.Contains(t, r.SummaryText(), "\nCertifications: CKA, AWS")
}
