package jobform

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/jonathan/jobboard/internal/formstore"
	"github.com/jonathan/jobboard/internal/types"
)

// DeadlineOffset is how far ahead the default application deadline lies.
const DeadlineOffset = 30 * 24 * time.Hour

// DefaultTemplate returns the document a new job-posting form opens with.
// The deadline is now plus DeadlineOffset, formatted for a datetime-local
// input in UTC.
func DefaultTemplate(now time.Time) *formstore.Document {
	deadline := now.UTC().Add(DeadlineOffset).Format(types.LocalLayout)

	return formstore.NewDocument(
		formstore.F("job_title", formstore.String("Senior Frontend Developer")),
		formstore.F("job_type", formstore.String(string(types.JobTypeFullTime))),
		formstore.F("company", formstore.String("TechCorp Inc.")),
		formstore.F("work_arrangement", formstore.String(string(types.WorkRemote))),
		formstore.F("job_location", formstore.String("San Francisco, CA")),
		formstore.F("job_description", formstore.NewDocument(
			formstore.F("role_summary", formstore.String(
				"We are looking for a Senior Frontend Developer to join our dynamic team. "+
					"You will be responsible for building user-facing features and ensuring "+
					"the technical feasibility of UI/UX designs.")),
			formstore.F("key_responsibility", formstore.String(
				"Develop new user-facing features using React.js, "+
					"Build reusable components and front-end libraries, "+
					"Ensure the technical feasibility of UI/UX designs, "+
					"Optimize application for maximum speed and scalability, "+
					"Collaborate with back-end developers and web designers to improve usability")),
			formstore.F("requirements", formstore.NewDocument(
				formstore.F("experience", formstore.Number(3)),
				formstore.F("skills", formstore.NewStringList("React", "JavaScript", "TypeScript", "HTML/CSS", "Git")),
				formstore.F("education", formstore.String("Bachelor's degree in Computer Science or related field")),
				formstore.F("certifications", formstore.NewStringList("AWS Certified Developer", "React Developer Certification")),
			)),
		)),
		formstore.F("salary", formstore.NewDocument(
			formstore.F("min", formstore.String("80000")),
			formstore.F("max", formstore.String("120000")),
			formstore.F("currency", formstore.String("USD")),
			formstore.F("period", formstore.String(string(types.PeriodAnnual))),
		)),
		formstore.F("application_deadline", formstore.String(deadline)),
		formstore.F("job_status", formstore.String(string(types.StatusDraft))),
		formstore.F("job_uuid", formstore.String("")),
	)
}

// LoadTemplate reads a YAML or JSON template file into a document. Field
// order follows the file. Fields outside the schema are kept.
func LoadTemplate(path string) (*formstore.Document, error) {
	if path == "" {
		return nil, &TemplateError{Message: "template path is empty"}
	}
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, &TemplateError{Path: path, Message: "failed to get working directory", Cause: err}
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &TemplateError{Path: path, Message: "failed to read file", Cause: err}
	}
	doc, err := ParseTemplate(data)
	if err != nil {
		return nil, &TemplateError{Path: path, Message: "failed to parse", Cause: err}
	}
	return doc, nil
}

// ParseTemplate decodes YAML or JSON template content.
func ParseTemplate(data []byte) (*formstore.Document, error) {
	var root any
	if err := yaml.UnmarshalWithOptions(data, &root, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	v, err := templateValue(root)
	if err != nil {
		return nil, err
	}
	doc, ok := v.(*formstore.Document)
	if !ok {
		return nil, fmt.Errorf("top level is a %s, not a mapping", v.Kind())
	}
	return doc, nil
}

func templateValue(raw any) (formstore.Value, error) {
	switch t := raw.(type) {
	case yaml.MapSlice:
		fields := make([]formstore.Field, 0, len(t))
		for _, item := range t {
			name := fmt.Sprint(item.Key)
			v, err := templateValue(item.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			fields = append(fields, formstore.F(name, v))
		}
		return formstore.NewDocument(fields...), nil
	case []any:
		items := make([]formstore.Value, 0, len(t))
		for i, rawItem := range t {
			v, err := templateValue(rawItem)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			items = append(items, v)
		}
		elem := formstore.KindString
		if len(items) > 0 {
			elem = items[0].Kind()
		}
		return formstore.NewList(elem, items...)
	case int64:
		return formstore.Number(t), nil
	case uint64:
		return formstore.Number(t), nil
	default:
		// strings, float64 and plain ints share the JSON conversion rules
		return formstore.ValueOf(raw)
	}
}
