package formstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Path
		wantErr bool
	}{
		{name: "single segment", input: "job_title", want: Path{"job_title"}},
		{name: "nested", input: "job_description.requirements.skills", want: Path{"job_description", "requirements", "skills"}},
		{name: "empty", input: "", wantErr: true},
		{name: "leading dot", input: ".salary", wantErr: true},
		{name: "trailing dot", input: "salary.", wantErr: true},
		{name: "double dot", input: "salary..min", wantErr: true},
		{name: "whitespace segment", input: "salary. min", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePath(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedPath)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestMustParsePath_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParsePath("a..b") })
}

func TestLookup(t *testing.T) {
	doc := samplePosting()

	tests := []struct {
		name        string
		path        string
		want        Value
		wantErr     error
		wantSegment string
	}{
		{name: "top-level", path: "company", want: String("TechCorp Inc.")},
		{name: "nested number", path: "job_description.requirements.experience", want: Number(3)},
		{name: "missing leaf", path: "salary.bonus", wantErr: ErrNotFound, wantSegment: "bonus"},
		{name: "missing branch", path: "benefits.health", wantErr: ErrNotFound, wantSegment: "benefits"},
		{name: "through scalar", path: "company.name", wantErr: ErrNotDocument, wantSegment: "company"},
		{name: "through list", path: "job_description.requirements.skills.0", wantErr: ErrNotDocument, wantSegment: "skills"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lookup(doc, MustParsePath(tt.path))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				var pe *PathError
				require.ErrorAs(t, err, &pe)
				assert.Equal(t, tt.wantSegment, pe.Path[pe.Segment])
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookup_EmptyPath(t *testing.T) {
	_, err := Lookup(samplePosting(), nil)
	assert.ErrorIs(t, err, ErrMalformedPath)
}

func TestGetHelpers(t *testing.T) {
	doc := samplePosting()

	s, ok := GetString(doc, MustParsePath("job_description.requirements.experience"))
	require.True(t, ok)
	assert.Equal(t, "3", s)

	_, ok = GetString(doc, MustParsePath("salary"))
	assert.False(t, ok, "documents have no text form")

	salary, ok := GetDocument(doc, MustParsePath("salary"))
	require.True(t, ok)
	assert.Equal(t, []string{"min", "max", "currency", "period"}, salary.Keys())

	_, ok = GetList(doc, MustParsePath("salary.min"))
	assert.False(t, ok)

	_, ok = Get(nil, MustParsePath("salary"))
	assert.False(t, ok)
}

func TestText(t *testing.T) {
	tests := []struct {
		in   Value
		want string
	}{
		{in: String("USD"), want: "USD"},
		{in: Number(80000), want: "80000"},
		{in: Number(3.5), want: "3.5"},
		{in: Number(0), want: "0"},
	}
	for _, tt := range tests {
		got, ok := Text(tt.in)
		assert.True(t, ok)
		assert.Equal(t, tt.want, got)
	}

	_, ok := Text(NewStringList("a"))
	assert.False(t, ok)
}

func TestErrorMessages(t *testing.T) {
	err := &IndexError{Op: "remove item", Path: MustParsePath("job_description.requirements.skills"), Index: 4, Len: 2}
	assert.Equal(t, `remove item "job_description.requirements.skills": index 4 out of range [0, 2)`, err.Error())

	pe := &PathError{Op: "get", Path: MustParsePath("salary.bonus"), Segment: 1, Err: ErrNotFound}
	assert.Equal(t, `get "salary.bonus": field not found at "bonus"`, pe.Error())

	pe = &PathError{Op: "set", Segment: -1, Err: ErrMalformedPath}
	assert.Equal(t, `set "": malformed path`, pe.Error())
}
