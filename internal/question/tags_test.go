package question

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Tags
	}{
		{"empty", "", Tags{}},
		{"whitespace only", "   ", Tags{}},
		{"single", "React", Tags{"React"}},
		{"trimmed", " React , Frontend ,JavaScript", Tags{"React", "Frontend", "JavaScript"}},
		{"drops empty entries", "a,,b, ,", Tags{"a", "b"}},
		{"keeps inner spaces", "State Management, Redux", Tags{"State Management", "Redux"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTags(tt.in))
		})
	}
}

func TestTags_StringAndListNormalizeIdentically(t *testing.T) {
	fromString := ParseTags("React, Frontend,JavaScript")
	fromList := NormalizeTags([]string{" React", "Frontend ", "", "JavaScript"})

	assert.True(t, fromString.Equal(fromList))
	assert.Equal(t, "React, Frontend, JavaScript", fromString.String())
	assert.Equal(t, "React,Frontend,JavaScript", fromList.Joined())
	assert.Equal(t, fromList, ParseTags(fromList.Joined()), "storage form must round-trip")
}

func TestTags_UnmarshalJSON(t *testing.T) {
	var fromString, fromList Tags
	require.NoError(t, json.Unmarshal([]byte(`"a, b"`), &fromString))
	require.NoError(t, json.Unmarshal([]byte(`["a", " b", ""]`), &fromList))

	assert.Equal(t, Tags{"a", "b"}, fromString)
	assert.Equal(t, fromString, fromList)

	var bad Tags
	assert.Error(t, json.Unmarshal([]byte(`{"a": 1}`), &bad))
}

func TestTags_MarshalJSON_NilIsEmptyList(t *testing.T) {
	data, err := json.Marshal(struct {
		Tags Tags `json:"tags"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"tags": []}`, string(data))
}

func TestTags_UnmarshalYAML(t *testing.T) {
	var doc struct {
		A Tags `yaml:"a"`
		B Tags `yaml:"b"`
		C Tags `yaml:"c"`
	}
	src := `
a: "React, Redux"
b: [React, " Redux "]
c: ~
`
	require.NoError(t, yaml.Unmarshal([]byte(src), &doc))
	assert.Equal(t, Tags{"React", "Redux"}, doc.A)
	assert.Equal(t, doc.A, doc.B)
	assert.Equal(t, Tags{}, doc.C)
}

func TestTags_CloneIsIndependent(t *testing.T) {
	orig := Tags{"a", "b"}
	c := orig.Clone()
	c[0] = "z"
	assert.Equal(t, "a", orig[0])
	assert.Nil(t, Tags(nil).Clone())
}
