// Package jobform binds the job-posting schema to the formstore engine.
//
// The valid locations of a posting are declared once as typed field
// descriptors. Code that edits a form names a descriptor, not a string, so a
// misspelled location does not compile. FieldByPath is the only way in from
// a dotted string and is meant for the HTTP and CLI boundaries.
package jobform

import (
	"sort"

	"github.com/jonathan/jobboard/internal/formstore"
)

// FieldKind tells how a field is edited.
type FieldKind int

// Field kinds.
const (
	TextKind FieldKind = iota
	NumberKind
	ListKind
)

func (k FieldKind) String() string {
	switch k {
	case NumberKind:
		return "number"
	case ListKind:
		return "list"
	default:
		return "text"
	}
}

// Field is a location in the job-posting document.
type Field interface {
	Path() formstore.Path
	Name() string
	Kind() FieldKind
}

type location struct {
	path formstore.Path
}

func at(path string) location {
	return location{path: formstore.MustParsePath(path)}
}

// Path returns a copy of the field's path.
func (l location) Path() formstore.Path {
	return append(formstore.Path(nil), l.path...)
}

// Name returns the dotted path.
func (l location) Name() string {
	return l.path.String()
}

// TextField is a free-text or enumerated scalar.
type TextField struct{ location }

// Kind implements Field.
func (TextField) Kind() FieldKind { return TextKind }

// NumberField is a numeric input. Like an HTML number input it holds the
// text the user typed; the projection converts it.
type NumberField struct{ location }

// Kind implements Field.
func (NumberField) Kind() FieldKind { return NumberKind }

// ListField is an editable list of text rows.
type ListField struct{ location }

// Kind implements Field.
func (ListField) Kind() FieldKind { return ListKind }

// The job-posting schema.
var (
	JobTitle        = TextField{at("job_title")}
	JobType         = TextField{at("job_type")}
	Company         = TextField{at("company")}
	WorkArrangement = TextField{at("work_arrangement")}
	JobLocation     = TextField{at("job_location")}

	RoleSummary       = TextField{at("job_description.role_summary")}
	KeyResponsibility = TextField{at("job_description.key_responsibility")}
	Experience        = NumberField{at("job_description.requirements.experience")}
	Skills            = ListField{at("job_description.requirements.skills")}
	Education         = TextField{at("job_description.requirements.education")}
	Certifications    = ListField{at("job_description.requirements.certifications")}

	SalaryMin      = NumberField{at("salary.min")}
	SalaryMax      = NumberField{at("salary.max")}
	SalaryCurrency = TextField{at("salary.currency")}
	SalaryPeriod   = TextField{at("salary.period")}

	ApplicationDeadline = TextField{at("application_deadline")}
	JobStatus           = TextField{at("job_status")}
	JobUUID             = TextField{at("job_uuid")}
)

var fields = []Field{
	JobTitle, JobType, Company, WorkArrangement, JobLocation,
	RoleSummary, KeyResponsibility, Experience, Skills, Education, Certifications,
	SalaryMin, SalaryMax, SalaryCurrency, SalaryPeriod,
	ApplicationDeadline, JobStatus, JobUUID,
}

var byName = func() map[string]Field {
	m := make(map[string]Field, len(fields))
	for _, f := range fields {
		m[f.Name()] = f
	}
	return m
}()

// Fields returns every field of the schema in form order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// FieldByPath resolves a dotted path to a schema field.
func FieldByPath(path string) (Field, bool) {
	f, ok := byName[path]
	return f, ok
}

// FieldNames returns the dotted paths of every field, sorted.
func FieldNames() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
