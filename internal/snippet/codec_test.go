package snippet

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDecode_AppliesDefaults(t *testing.T) {
	data := []byte(`[{"id": 1, "title": "Debounce", "code": "fn()", "tags": [" utils ", ""]}]`)

	got, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, DefaultLanguage, got[0].Language)
	require.Equal(t, DefaultCategory, got[0].Category)
	require.Equal(t, []string{"utils"}, got[0].Tags)
}

func TestDecode_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "  \n", "null", "[]"} {
		got, err := Decode([]byte(in))
		require.NoError(t, err, "input %q", in)
		require.NotNil(t, got)
		require.Empty(t, got)
	}
}

func TestDecode_RejectsUnparseable(t *testing.T) {
	for _, in := range []string{`[{"id": 1,`, `{"id": 1}`} {
		_, err := Decode([]byte(in))
		require.Error(t, err, "input %q", in)
		require.Contains(t, err.Error(), "invalid JSON")
	}
}

func TestDecode_KeepsRecordsThatBreakInvariants(t *testing.T) {
	data := []byte(`[{"id": 1, "title": "a"}, {"id": 1, "title": ""}, {"id": 0, "title": "c"}]`)

	got, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, DefaultCategory, got[1].Category)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"missing title", `[{"id": 1, "title": "  "}]`, "title is required"},
		{"zero id", `[{"id": 0, "title": "a"}]`, "id must be positive"},
		{"duplicate id", `[{"id": 1, "title": "a"}, {"id": 1, "title": "b"}]`, "duplicate id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snippets, err := Decode([]byte(tt.data))
			require.NoError(t, err)

			err = Validate(snippets)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, Validate([]Snippet{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}}))
	})
}

func TestProblems_ListsEveryViolation(t *testing.T) {
	problems := Problems([]Snippet{
		{ID: 1, Title: "a"},
		{ID: 1, Title: ""},
		{ID: -2, Title: "c"},
	})
	require.Len(t, problems, 3)
	require.Contains(t, problems[0].Error(), "duplicate id 1")
	require.Contains(t, problems[1].Error(), "record 1: title is required")
	require.Contains(t, problems[2].Error(), "id must be positive")
}

func TestEncodeDecode_PreservesOrder(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	in := []Snippet{
		{ID: 1, Title: "b", Code: "x", Language: "go", Tags: []string{"t"}, Category: "General", CreatedAt: created},
		{ID: 2, Title: "a", Code: "line1\nline2", Language: "python", Tags: []string{}, Category: "Scripts", Description: "d", CreatedAt: created.Add(time.Hour)},
	}

	data, err := Encode(in)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "[\n  {"), "expected pretty-printed array, got %s", data)
	require.Contains(t, string(data), `"createdAt": "2026-03-01T12:00:00Z"`)

	out, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestEncode_NilIsEmptyArray(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	require.Equal(t, "[]\n", string(data))
}
