// Package types provides the wire types exchanged with the job service.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// JobType is the employment type of a posting.
type JobType string

// Job types accepted by the job service.
const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeTemporary  JobType = "temporary"
	JobTypeInternship JobType = "internship"
)

// JobTypes lists every JobType in display order.
var JobTypes = []JobType{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeTemporary, JobTypeInternship}

// WorkArrangement is where the work happens.
type WorkArrangement string

// Work arrangements accepted by the job service.
const (
	WorkRemote WorkArrangement = "remote"
	WorkHybrid WorkArrangement = "hybrid"
	WorkOnSite WorkArrangement = "on-site"
)

// SalaryPeriod is the period a salary range is quoted for.
type SalaryPeriod string

// Salary periods accepted by the job service.
const (
	PeriodAnnual  SalaryPeriod = "annual"
	PeriodMonthly SalaryPeriod = "monthly"
	PeriodHourly  SalaryPeriod = "hourly"
)

// JobStatus is the publication state of a posting.
type JobStatus string

// Job statuses accepted by the job service.
const (
	StatusActive JobStatus = "active"
	StatusClosed JobStatus = "closed"
	StatusDraft  JobStatus = "draft"
)

// Requirements holds the candidate requirements of a posting.
type Requirements struct {
	Experience     int      `json:"experience" validate:"gte=0"`
	Skills         []string `json:"skills" validate:"min=1,dive,required"`
	Education      string   `json:"education"`
	Certifications []string `json:"certifications" validate:"dive,required"`
}

// JobDescription holds the free-text description of a posting.
type JobDescription struct {
	RoleSummary       string       `json:"role_summary" validate:"min=10"`
	KeyResponsibility string       `json:"key_responsibility" validate:"min=10"`
	Requirements      Requirements `json:"requirements"`
}

// Salary is an offered salary range.
type Salary struct {
	Min      float64      `json:"min" validate:"gt=0"`
	Max      float64      `json:"max" validate:"gt=0,gtefield=Min"`
	Currency string       `json:"currency" validate:"len=3"`
	Period   SalaryPeriod `json:"period" validate:"oneof=annual monthly hourly"`
}

// JobRecord is a job posting as stored and served by the job service.
// ID is assigned by the service and omitted when posting.
type JobRecord struct {
	ID                  string          `json:"_id,omitempty"`
	JobTitle            string          `json:"job_title" validate:"required"`
	JobType             JobType         `json:"job_type" validate:"oneof=full-time part-time contract temporary internship"`
	Company             string          `json:"company" validate:"required"`
	WorkArrangement     WorkArrangement `json:"work_arrangement" validate:"oneof=remote hybrid on-site"`
	JobLocation         string          `json:"job_location"`
	JobDescription      JobDescription  `json:"job_description"`
	Salary              Salary          `json:"salary"`
	ApplicationDeadline Instant         `json:"application_deadline"`
	PostedDate          Instant         `json:"posted_date"`
	JobStatus           JobStatus       `json:"job_status" validate:"oneof=active closed draft"`
	JobUUID             string          `json:"job_uuid"`
}

// ErrMissingDeadline is returned by Validate for a record without an
// application deadline.
var ErrMissingDeadline = errors.New("application_deadline is required")

// Validate validates the JobRecord using the validator.
func (r *JobRecord) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.ApplicationDeadline.IsZero() {
		return ErrMissingDeadline
	}
	return nil
}

// AssignUUID stamps a fresh job_uuid when the record has none and returns it.
func (r *JobRecord) AssignUUID() string {
	if strings.TrimSpace(r.JobUUID) == "" {
		r.JobUUID = uuid.NewString()
	}
	return r.JobUUID
}

// SummaryText renders the descriptive part of a posting as labelled lines.
func (r *JobRecord) SummaryText() string {
	jd := r.JobDescription
	req := jd.Requirements

	lines := []string{
		"Role Summary: " + jd.RoleSummary,
		"Key Responsibilities: " + jd.KeyResponsibility,
		"Skills Required: " + strings.Join(req.Skills, ", "),
		fmt.Sprintf("Experience Required: %d years", req.Experience),
		"Education: " + req.Education,
	}
	if len(req.Certifications) > 0 {
		lines = append(lines, "Certifications: "+strings.Join(req.Certifications, ", "))
	}
	return strings.Join(lines, "\n")
}
