package plan

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rulesedit/internal/document"
	"rulesedit/internal/ini"
	"rulesedit/pkg/section"
)

const samplePlan = `# Remove the weather device

Notes are ignored.

- [ ] section GAWETH list BuildingTypes @delete
- [x] section NAWEAT list BuildingTypes
- [ ] entry GAWETH_ED list BuildingTypes @comment
- [ ] reindex BuildingTypes
- plain bullet, not a task
  - [ ] strip-comments
`

func TestParse(t *testing.T) {
	ops, err := Parse([]byte(samplePlan))
	require.NoError(t, err)
	require.Len(t, ops, 5)

	tests := []struct {
		verb   string
		target string
		list   string
		level  section.Level
		line   int
		done   bool
	}{
		{VerbSection, "GAWETH", "BuildingTypes", section.LevelDelete, 5, false},
		{VerbSection, "NAWEAT", "BuildingTypes", section.LevelPlaceholder, 6, true},
		{VerbEntry, "GAWETH_ED", "BuildingTypes", section.LevelComment, 7, false},
		{VerbReindex, "BuildingTypes", "", section.LevelPlaceholder, 8, false},
		{VerbStripComments, "", "", section.LevelPlaceholder, 10, false},
	}
	for i, tt := range tests {
		op := ops[i]
		assert.Equal(t, tt.verb, op.Verb, "item %d", i)
		assert.Equal(t, tt.target, op.Target, "item %d", i)
		assert.Equal(t, tt.list, op.List, "item %d", i)
		assert.Equal(t, tt.level, op.Level, "item %d", i)
		assert.Equal(t, tt.line, op.Line, "item %d", i)
		assert.Equal(t, tt.done, op.Done, "item %d", i)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "unknown verb", src: "- [ ] purge GAWETH\n"},
		{name: "entry without list", src: "- [ ] entry GAWETH\n"},
		{name: "dangling list keyword", src: "- [ ] section GAWETH list\n"},
		{name: "bad level", src: "- [ ] section GAWETH @wipe\n"},
		{name: "too many names", src: "- [ ] section GAWETH GAPOWR\n"},
		{name: "strip with args", src: "- [ ] strip-comments now\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSyntax))
			assert.Contains(t, err.Error(), "line 1")
		})
	}
}

func TestParseEmpty(t *testing.T) {
	ops, err := Parse([]byte("# nothing to do\n\n- just a note\n"))
	require.NoError(t, err)
	assert.Empty(t, ops)
}

const rulesText = "[BuildingTypes]\n0=GAPOWR\n1=GAWETH\n2=GAWETH_ED\n[GAWETH]\nStrength=1000 ; tough\n"

func TestApply(t *testing.T) {
	ops, err := Parse([]byte(samplePlan))
	require.NoError(t, err)

	ed := ini.New(document.FromString(rulesText))
	res, err := Apply(ed, ops, Options{})
	require.NoError(t, err)
	assert.Len(t, res.Applied, 4)
	assert.Equal(t, 1, res.Done)
	// strip-comments drops the entry commented out two steps earlier.
	assert.Equal(t, "[BuildingTypes]\n0=GAPOWR\n", ed.Document().String())
}

func TestApplyMissing(t *testing.T) {
	ops, err := Parse([]byte("- [ ] section GACNST\n- [ ] reindex BuildingTypes\n"))
	require.NoError(t, err)

	ed := ini.New(document.FromString("[BuildingTypes]\n5=GAPOWR\n"))
	_, err = Apply(ed, ops, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ini.ErrSectionNotFound))
	assert.Contains(t, err.Error(), "plan line 1")

	res, err := Apply(ed, ops, Options{ContinueOnMissing: true})
	require.NoError(t, err)
	assert.Len(t, res.Missing, 1)
	assert.Len(t, res.Applied, 1)
	assert.Equal(t, "[BuildingTypes]\n0=GAPOWR\n", ed.Document().String())
}

func TestApplyStopsOnBadPattern(t *testing.T) {
	ops, err := Parse([]byte("- [ ] entry GA( list BuildingTypes\n"))
	require.NoError(t, err)
	ed := ini.New(document.FromString(rulesText))
	_, err = Apply(ed, ops, Options{ContinueOnMissing: true})
	assert.True(t, errors.Is(err, ini.ErrBadPattern))
}

func TestCheckOffFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.md")
	require.NoError(t, os.WriteFile(path, []byte(samplePlan), 0o600))

	ops, err := ParseFile(path)
	require.NoError(t, err)
	require.NoError(t, CheckOffFile(path, ops[:1]))

	again, err := ParseFile(path)
	require.NoError(t, err)
	assert.True(t, again[0].Done)
	assert.True(t, again[1].Done)
	assert.False(t, again[2].Done)
}

func TestLineIndexOfByte(t *testing.T) {
	offsets := buildLineOffsets([]byte("ab\ncd\n\nef"))
	assert.Equal(t, []int{0, 3, 6, 7}, offsets)
	assert.Equal(t, 0, lineIndexOfByte(offsets, 1))
	assert.Equal(t, 1, lineIndexOfByte(offsets, 3))
	assert.Equal(t, 3, lineIndexOfByte(offsets, 8))
}
