package formstore

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var skillsPath = MustParsePath("job_description.requirements.skills")

func skills(t *testing.T, doc *Document) []string {
	t.Helper()
	l, ok := GetList(doc, skillsPath)
	require.True(t, ok, "skills list must resolve")
	return l.Strings()
}

func withSkills(t *testing.T, items ...string) *Document {
	t.Helper()
	doc, err := Set(samplePosting(), skillsPath, NewStringList(items...))
	require.NoError(t, err)
	return doc
}

func TestListEditing_SkillsScenario(t *testing.T) {
	doc := withSkills(t, "React")

	doc, err := InsertListItem(doc, skillsPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"React", ""}, skills(t, doc))

	doc, err = RemoveListItem(doc, skillsPath, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{""}, skills(t, doc))

	doc, err = RemoveListItem(doc, skillsPath, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{""}, skills(t, doc), "removing the last row leaves a placeholder, not an empty list")
}

func TestRemoveListItem_ConvergesToPlaceholder(t *testing.T) {
	doc := withSkills(t, "React", "Go", "SQL", "Rust")

	for i := 0; i < 10; i++ {
		var err error
		doc, err = RemoveListItem(doc, skillsPath, 0)
		require.NoError(t, err)

		got := skills(t, doc)
		require.NotEmpty(t, got)
		if i >= 3 {
			assert.Equal(t, []string{""}, got)
		}
	}
}

func TestRemoveListItem_KeepsOrder(t *testing.T) {
	doc := withSkills(t, "React", "Go", "SQL")

	out, err := RemoveListItem(doc, skillsPath, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"React", "SQL"}, skills(t, out))
	assert.Equal(t, []string{"React", "Go", "SQL"}, skills(t, doc))
}

func TestSetListItem(t *testing.T) {
	doc := withSkills(t, "React", "", "SQL")

	out, err := SetListItem(doc, skillsPath, 1, String("Go"))
	require.NoError(t, err)
	assert.Equal(t, []string{"React", "Go", "SQL"}, skills(t, out))
	assert.Equal(t, []string{"React", "", "SQL"}, skills(t, doc))
}

func TestSetListItem_KindMismatch(t *testing.T) {
	doc := withSkills(t, "React")

	_, err := SetListItem(doc, skillsPath, 0, Number(1))
	assert.ErrorIs(t, err, ErrKindMismatch)
}

func TestListOperations_IndexBounds(t *testing.T) {
	tests := []struct {
		name  string
		index int
	}{
		{name: "negative", index: -1},
		{name: "equal to size", index: 2},
		{name: "past size", index: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := withSkills(t, "React", "Go")
			before := doc.ToMap()

			out, err := SetListItem(doc, skillsPath, tt.index, String("x"))
			assert.Nil(t, out)
			var ie *IndexError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, tt.index, ie.Index)
			assert.Equal(t, 2, ie.Len)

			out, err = RemoveListItem(doc, skillsPath, tt.index)
			assert.Nil(t, out)
			require.ErrorAs(t, err, &ie)

			assert.Empty(t, cmp.Diff(before, doc.ToMap()))
		})
	}
}

func TestInsertListItem_GrowsByOne(t *testing.T) {
	doc := withSkills(t, "React", "Go")

	out, err := InsertListItem(doc, skillsPath)
	require.NoError(t, err)

	l, ok := GetList(out, skillsPath)
	require.True(t, ok)
	assert.Equal(t, 3, l.Len())
	last, _ := l.At(2)
	assert.Equal(t, String(""), last)
}

func TestInsertListItem_NumberListDefault(t *testing.T) {
	path := MustParsePath("scores")
	doc, err := Set(nil, path, NewNumberList(4, 5))
	require.NoError(t, err)

	doc, err = InsertListItem(doc, path)
	require.NoError(t, err)

	l, _ := GetList(doc, path)
	assert.Equal(t, []Value{Number(4), Number(5), Number(0)}, l.Items())
}

func TestInsertListItem_AbsentList(t *testing.T) {
	doc := samplePosting()
	path := MustParsePath("job_description.benefits.perks")

	out, err := InsertListItem(doc, path)
	require.NoError(t, err)

	l, ok := GetList(out, path)
	require.True(t, ok)
	assert.Equal(t, []string{""}, l.Strings())
}

func TestListOperations_NotAList(t *testing.T) {
	doc := samplePosting()
	path := MustParsePath("salary.currency")

	_, err := InsertListItem(doc, path)
	assert.ErrorIs(t, err, ErrNotList)

	_, err = RemoveListItem(doc, path, 0)
	assert.ErrorIs(t, err, ErrNotList)

	_, err = SetListItem(doc, path, 0, String("EUR"))
	assert.ErrorIs(t, err, ErrNotList)
}

func TestListOperations_ShareSiblings(t *testing.T) {
	doc := withSkills(t, "React")

	out, err := InsertListItem(doc, skillsPath)
	require.NoError(t, err)

	assert.Same(t, mustGet(t, doc, "salary"), mustGet(t, out, "salary"))
	assert.Same(t, mustGet(t, doc, "job_description.requirements.certifications"),
		mustGet(t, out, "job_description.requirements.certifications"))
	assert.NotSame(t, mustGet(t, doc, "job_description.requirements.skills"),
		mustGet(t, out, "job_description.requirements.skills"))
}

func TestNewList(t *testing.T) {
	l := NewStringList()
	assert.Equal(t, []string{""}, l.Strings(), "constructors never produce an empty list")

	_, err := NewList(KindDocument)
	assert.ErrorIs(t, err, ErrUnsupportedValue)

	_, err = NewList(KindString, String("a"), Number(1))
	assert.ErrorIs(t, err, ErrKindMismatch)

	l = NewStringList("a", "", " b ", "  ")
	assert.Equal(t, []Value{String("a"), String("b")}, l.Filled())
	assert.Equal(t, []string{"a", "", " b ", "  "}, l.Strings(), "Filled leaves the list alone")

	nums := NewNumberList(0, 2.5)
	assert.Equal(t, []Value{Number(2.5)}, nums.Filled())
}
