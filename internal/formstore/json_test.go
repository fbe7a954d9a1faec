package formstore

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromJSON_KeepsFieldOrder(t *testing.T) {
	input := `{"salary":{"period":"annual","min":"80000"},"job_title":"Dev","tags":["a","b"],"years":3}`

	doc, err := FromJSON([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"salary", "job_title", "tags", "years"}, doc.Keys())

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(out))
	assert.Equal(t, input, string(out), "encoding keeps insertion order")
}

func TestFromJSON_Values(t *testing.T) {
	doc, err := FromJSON([]byte(`{"n":2.5,"empty":[],"nums":[1,2]}`))
	require.NoError(t, err)

	n, _ := doc.Field("n")
	assert.Equal(t, Number(2.5), n)

	empty, ok := GetList(doc, MustParsePath("empty"))
	require.True(t, ok)
	assert.Equal(t, []string{""}, empty.Strings(), "empty arrays become a placeholder row")

	nums, ok := GetList(doc, MustParsePath("nums"))
	require.True(t, ok)
	assert.Equal(t, KindNumber, nums.Elem())
}

func TestFromJSON_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "top-level array", input: `["a"]`},
		{name: "top-level scalar", input: `"a"`},
		{name: "boolean", input: `{"remote":true}`},
		{name: "null", input: `{"remote":null}`},
		{name: "nested array", input: `{"a":[["x"]]}`},
		{name: "object in list", input: `{"a":[{"x":"y"}]}`},
		{name: "mixed list", input: `{"a":["x",1]}`},
		{name: "trailing data", input: `{"a":"b"} {}`},
		{name: "invalid JSON", input: `{"a":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromJSON([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestParseJSONValue_Scalars(t *testing.T) {
	v, err := ParseJSONValue([]byte(`"95000"`))
	require.NoError(t, err)
	assert.Equal(t, String("95000"), v)

	v, err = ParseJSONValue([]byte(`7`))
	require.NoError(t, err)
	assert.Equal(t, Number(7), v)

	v, err = ParseJSONValue([]byte(`["React","Go"]`))
	require.NoError(t, err)
	assert.True(t, Equal(NewStringList("React", "Go"), v))
}

func TestValueOf(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Value
	}{
		{name: "string", in: "x", want: String("x")},
		{name: "int", in: 3, want: Number(3)},
		{name: "float", in: 2.5, want: Number(2.5)},
		{name: "json number", in: json.Number("12"), want: Number(12)},
		{name: "string slice", in: []string{"a", "b"}, want: NewStringList("a", "b")},
		{name: "any slice", in: []any{1.0, 2.0}, want: NewNumberList(1, 2)},
		{name: "map", in: map[string]any{"b": "2", "a": "1"}, want: NewDocument(F("a", String("1")), F("b", String("2")))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValueOf(tt.in)
			require.NoError(t, err)
			assert.True(t, Equal(tt.want, got), "got %v", got)
		})
	}

	_, err := ValueOf(true)
	assert.ErrorIs(t, err, ErrUnsupportedValue)

	_, err = ValueOf([]any{[]any{"x"}})
	assert.ErrorIs(t, err, ErrUnsupportedValue)

	doc, err := ValueOf(map[string]any{"b": "2", "a": "1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, doc.(*Document).Keys())
}

func TestMarshalJSON_NilDocument(t *testing.T) {
	var doc *Document
	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))

	out, err = doc.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "{}", string(out))
}
