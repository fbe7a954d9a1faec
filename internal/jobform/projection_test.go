package jobform

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobboard/internal/formstore"
	"github.com/jonathan/jobboard/internal/types"
)

func TestProject_DefaultTemplate(t *testing.T) {
	rec, err := Project(DefaultTemplate(fixedNow), fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "Senior Frontend Developer", rec.JobTitle)
	assert.Equal(t, types.JobTypeFullTime, rec.JobType)
	assert.Equal(t, types.WorkRemote, rec.WorkArrangement)
	assert.Equal(t, 3, rec.JobDescription.Requirements.Experience)
	assert.Equal(t, 80000.0, rec.Salary.Min)
	assert.Equal(t, 120000.0, rec.Salary.Max)
	assert.Equal(t, types.StatusDraft, rec.JobStatus)
	assert.True(t, rec.PostedDate.Equal(fixedNow))
	assert.True(t, rec.ApplicationDeadline.Equal(fixedNow.Add(DeadlineOffset)))
	assert.Empty(t, rec.ID)
	assert.Empty(t, rec.JobUUID)

	assert.NoError(t, rec.Validate(), "the default template projects to a valid record")
}

func TestProject_DropsBlankRows(t *testing.T) {
	form := newForm()
	form, err := form.SetItems(Skills, "  React ", "", "   ", "Go")
	require.NoError(t, err)
	form, err = form.SetItems(Certifications, "")
	require.NoError(t, err)

	rec, err := Project(form.Snapshot(), fixedNow)
	require.NoError(t, err)

	assert.Equal(t, []string{"React", "Go"}, rec.JobDescription.Requirements.Skills)
	assert.NotNil(t, rec.JobDescription.Requirements.Certifications)
	assert.Empty(t, rec.JobDescription.Requirements.Certifications)
}

func TestProject_Numbers(t *testing.T) {
	tests := []struct {
		name       string
		experience string
		min        string
		max        string
		wantExp    int
		wantMin    float64
		wantField  Field
	}{
		{name: "integers", experience: "5", min: "95000", max: "120000", wantExp: 5, wantMin: 95000},
		{name: "padded", experience: " 2 ", min: " 50000.50", max: "60000", wantExp: 2, wantMin: 50000.5},
		{name: "fractional experience truncates", experience: "3.9", min: "1", max: "2", wantExp: 3, wantMin: 1},
		{name: "empty experience", experience: "", min: "1", max: "2", wantField: Experience},
		{name: "text salary", experience: "1", min: "lots", max: "2", wantField: SalaryMin},
		{name: "infinite salary", experience: "1", min: "1", max: "Inf", wantField: SalaryMax},
		{name: "experience too large", experience: "1e19", min: "1", max: "2", wantField: Experience},
		{name: "experience too small", experience: "-3000000000", min: "1", max: "2", wantField: Experience},
		{name: "largest experience", experience: "2147483647", min: "1", max: "2", wantExp: 2147483647, wantMin: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form, err := newForm().ApplyAll(
				Edit{Op: OpSet, Path: Experience.Name(), Value: tt.experience},
				Edit{Op: OpSet, Path: SalaryMin.Name(), Value: tt.min},
				Edit{Op: OpSet, Path: SalaryMax.Name(), Value: tt.max},
			)
			require.NoError(t, err)

			rec, err := Project(form.Snapshot(), fixedNow)
			if tt.wantField != nil {
				var pe *ProjectionError
				require.ErrorAs(t, err, &pe)
				assert.Equal(t, tt.wantField.Name(), pe.Field.Name())
				assert.ErrorIs(t, err, ErrNotNumeric)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantExp, rec.JobDescription.Requirements.Experience)
			assert.Equal(t, tt.wantMin, rec.Salary.Min)
		})
	}
}

func TestProject_Deadline(t *testing.T) {
	tests := []struct {
		name     string
		deadline string
		loc      *time.Location
		want     time.Time
		wantErr  bool
	}{
		{name: "local input in UTC", deadline: "2026-12-01T17:00", want: time.Date(2026, 12, 1, 17, 0, 0, 0, time.UTC)},
		{name: "local input in zone", deadline: "2026-12-01T17:00", loc: time.FixedZone("EST", -5*3600), want: time.Date(2026, 12, 1, 22, 0, 0, 0, time.UTC)},
		{name: "RFC 3339", deadline: "2026-12-01T17:00:00+01:00", want: time.Date(2026, 12, 1, 16, 0, 0, 0, time.UTC)},
		{name: "blank", deadline: "", wantErr: true},
		{name: "date only", deadline: "2026-12-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form, err := newForm().SetText(ApplicationDeadline, tt.deadline)
			require.NoError(t, err)

			p := Projector{Now: func() time.Time { return fixedNow }, Location: tt.loc}
			rec, err := p.Project(form.Snapshot())
			if tt.wantErr {
				var pe *ProjectionError
				require.ErrorAs(t, err, &pe)
				assert.Equal(t, ApplicationDeadline.Name(), pe.Field.Name())
				assert.ErrorIs(t, err, types.ErrInvalidTimestamp)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(rec.ApplicationDeadline.Time), "got %s", rec.ApplicationDeadline.Time)
		})
	}
}

func TestProject_PureAndIdempotent(t *testing.T) {
	doc := DefaultTemplate(fixedNow)
	before := doc.ToMap()

	first, err := Project(doc, fixedNow)
	require.NoError(t, err)
	second, err := Project(doc, fixedNow.Add(time.Hour))
	require.NoError(t, err)

	if diff := cmp.Diff(before, doc.ToMap()); diff != "" {
		t.Errorf("projection changed the document (-before +after):\n%s", diff)
	}

	assert.False(t, first.PostedDate.Equal(second.PostedDate.Time))
	second.PostedDate = first.PostedDate
	assert.Equal(t, first, second, "records differ only in posted_date")
}

func TestProject_NumbersStoredAsNumbers(t *testing.T) {
	doc, err := formstore.Set(DefaultTemplate(fixedNow), SalaryMax.Path(), formstore.Number(150000))
	require.NoError(t, err)

	rec, err := Project(doc, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 150000.0, rec.Salary.Max)
}

func TestProjectionError_Message(t *testing.T) {
	err := &ProjectionError{Field: SalaryMin, Value: "lots", Cause: ErrNotNumeric}
	assert.Equal(t, `invalid salary.min "lots": not a number`, err.Error())
}
