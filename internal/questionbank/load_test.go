package questionbank

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
version: v2.1.0
questions:
  - id: pace
    text: How fast do you work?
    kind: core
    order: 1
    options:
      - id: A
        text: Fast
        weights:
          efficient_processing: 2
      - id: B
        text: Slow
        weights:
          deep_processing: 2
  - id: depth
    text: Go deeper?
    kind: followup
    order: 1
    condition:
      deep_processing:
        min: 2
      scoreGap:
        max: 3
    options:
      - id: A
        text: Yes
        weights:
          deep_exploration: 1
      - id: B
        text: Skip
`

func TestParse_YAML(t *testing.T) {
	b, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "v2.1.0", b.Version())
	assert.Equal(t, 1, b.CoreCount())

	fs := b.FollowupQuestions()
	require.Len(t, fs, 1)
	cond := fs[0].Condition
	require.NotNil(t, cond["deep_processing"].Min)
	assert.Equal(t, 2, *cond["deep_processing"].Min)
	require.NotNil(t, cond[ScoreGap].Max)
	assert.Equal(t, 3, *cond[ScoreGap].Max)

	skip, ok := b.Option("depth", "B")
	require.True(t, ok)
	assert.True(t, skip.Weights.IsNeutral())
}

func TestParse_JSON(t *testing.T) {
	doc := `{"version":"v1","questions":[{"id":"q","text":"?","kind":"core","order":1,
  "options":[{"id":"A","text":"a","weights":{"openness":1}}]}]}`
	b, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "v1.0.0", b.Version(), "version is canonicalized")
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "bad semver",
			doc:  `{"version":"1.0","questions":[{"id":"q","text":"?","kind":"core","order":1,"options":[{"id":"A","text":"a"}]}]}`,
			want: "semantic version",
		},
		{
			name: "unknown kind",
			doc:  `{"version":"v1.0.0","questions":[{"id":"q","text":"?","kind":"bonus","order":1,"options":[{"id":"A","text":"a"}]}]}`,
			want: "schema",
		},
		{
			name: "non-integer weight",
			doc:  `{"version":"v1.0.0","questions":[{"id":"q","text":"?","kind":"core","order":1,"options":[{"id":"A","text":"a","weights":{"x":1.5}}]}]}`,
			want: "schema",
		},
		{
			name: "empty constraint",
			doc: `{"version":"v1.0.0","questions":[{"id":"q","text":"?","kind":"core","order":1,"options":[{"id":"A","text":"a"}]},
  {"id":"f","text":"?","kind":"followup","order":1,"condition":{"x":{}},"options":[{"id":"A","text":"a"}]}]}`,
			want: "schema",
		},
		{
			name: "structural problem",
			doc: `{"version":"v1.0.0","questions":[{"id":"q","text":"?","kind":"core","order":1,"options":[{"id":"A","text":"a"}]},
  {"id":"q","text":"?","kind":"core","order":2,"options":[{"id":"A","text":"a"}]}]}`,
			want: "duplicate question ID",
		},
		{
			name: "not a document",
			doc:  "version: [unclosed",
			want: "decode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParse_StructuralErrorIsConfigError(t *testing.T) {
	doc := `{"version":"v1.0.0","questions":[{"id":"f","text":"?","kind":"followup","order":1,
  "condition":{"x":{"min":1}},"options":[{"id":"A","text":"a"}]}]}`
	_, err := Parse([]byte(doc))
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, strings.Join(cfgErr.Problems, "\n"), "no core questions")
}

func TestMarshal_DefaultRoundTrips(t *testing.T) {
	orig := Default()
	data, err := Marshal(orig)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "bank.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	loaded, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, orig.Version(), loaded.Version())
	assert.Equal(t, orig.CoreQuestions(), loaded.CoreQuestions())
	assert.Equal(t, orig.FollowupQuestions(), loaded.FollowupQuestions())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read bank file")
}

func TestCompareVersions(t *testing.T) {
	assert.Equal(t, -1, CompareVersions("v1.0.0", "v1.2.0"))
	assert.Equal(t, 0, CompareVersions("v1.0.0", "v1.0.0"))
	assert.Equal(t, 1, CompareVersions("v2.0.0", "v1.9.9"))
}
