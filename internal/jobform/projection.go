package jobform

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/jobboard/internal/formstore"
	"github.com/jonathan/jobboard/internal/types"
)

// ErrNotNumeric is the cause of a ProjectionError on a numeric field whose
// text is not a number.
var ErrNotNumeric = errors.New("not a number")

// Clock returns the current time.
type Clock func() time.Time

// Projector turns a form document into the record the job service accepts.
type Projector struct {
	// Now stamps posted_date. Defaults to time.Now.
	Now Clock
	// Location reads deadlines that carry no zone. Defaults to UTC.
	Location *time.Location
}

// Project converts doc with the default clock and UTC deadlines.
func Project(doc *formstore.Document, now time.Time) (types.JobRecord, error) {
	p := Projector{Now: func() time.Time { return now }}
	return p.Project(doc)
}

// Project converts doc into a JobRecord. It drops blank rows from the skill
// and certification lists, converts numeric inputs, normalizes the deadline
// to UTC and stamps posted_date. doc is not modified and job_uuid is copied
// as is; projecting the same document twice differs only in posted_date.
func (p Projector) Project(doc *formstore.Document) (types.JobRecord, error) {
	form := New(doc)

	experience, err := wholeNumber(form, Experience)
	if err != nil {
		return types.JobRecord{}, err
	}
	salaryMin, err := numberField(form, SalaryMin)
	if err != nil {
		return types.JobRecord{}, err
	}
	salaryMax, err := numberField(form, SalaryMax)
	if err != nil {
		return types.JobRecord{}, err
	}

	deadlineText := strings.TrimSpace(form.Text(ApplicationDeadline))
	deadline, err := types.ParseInstant(deadlineText, p.Location)
	if err != nil {
		return types.JobRecord{}, &ProjectionError{Field: ApplicationDeadline, Value: deadlineText, Cause: err}
	}

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	return types.JobRecord{
		JobTitle:        form.Text(JobTitle),
		JobType:         types.JobType(form.Text(JobType)),
		Company:         form.Text(Company),
		WorkArrangement: types.WorkArrangement(form.Text(WorkArrangement)),
		JobLocation:     form.Text(JobLocation),
		JobDescription: types.JobDescription{
			RoleSummary:       form.Text(RoleSummary),
			KeyResponsibility: form.Text(KeyResponsibility),
			Requirements: types.Requirements{
				Experience:     experience,
				Skills:         form.Filled(Skills),
				Education:      form.Text(Education),
				Certifications: form.Filled(Certifications),
			},
		},
		Salary: types.Salary{
			Min:      salaryMin,
			Max:      salaryMax,
			Currency: form.Text(SalaryCurrency),
			Period:   types.SalaryPeriod(form.Text(SalaryPeriod)),
		},
		ApplicationDeadline: deadline,
		PostedDate:          types.NewInstant(now()),
		JobStatus:           types.JobStatus(form.Text(JobStatus)),
		JobUUID:             form.Text(JobUUID),
	}, nil
}

// numberField parses a numeric input.
func numberField(form Form, field NumberField) (float64, error) {
	raw := strings.TrimSpace(form.Number(field))
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, &ProjectionError{Field: field, Value: raw, Cause: ErrNotNumeric}
	}
	return n, nil
}

// wholeNumber parses a numeric input and truncates it toward zero, the way
// an integer input parse would. Values outside the int32 range are rejected
// rather than wrapped.
func wholeNumber(form Form, field NumberField) (int, error) {
	n, err := numberField(form, field)
	if err != nil {
		return 0, err
	}
	n = math.Trunc(n)
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, &ProjectionError{Field: field, Value: strings.TrimSpace(form.Number(field)), Cause: ErrNotNumeric}
	}
	return int(n), nil
}
