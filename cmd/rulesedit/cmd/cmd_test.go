package cmd

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rulesedit/internal/document"
	"rulesedit/internal/ini"
	"rulesedit/internal/journal"
)

const rulesText = `; Rules
[BuildingTypes]
0=GAPOWR
1=GAWETH
2=GAREFN

[GAPOWR]
Strength=750

[GAWETH]
Strength=1000 ; tough
Power=-50

[GAREFN]
Strength=900
`

func resetFlags() {
	verbose, quiet, jsonOut = false, false, false
	encoding, journalPath = document.EncodingUTF8, ""
	removeSectionOutput, removeSectionList, removeSectionLevel, removeSectionReindex = "", "", "placeholder", false
	removeEntryOutput, removeEntryList, removeEntryLevel, removeEntryReindex = "", "", "placeholder", false
	reindexOutput, stripOutput = "", ""
	applyOutput, applyContinue, applyCheckOff = "", false, false
}

// runCLI executes the root command with args and returns what it printed.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var buf bytes.Buffer
	orig := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = orig })

	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func writeRules(t *testing.T) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	path = filepath.Join(dir, "rules.ini")
	require.NoError(t, os.WriteFile(path, []byte(rulesText), 0o644))
	return dir, path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestRemoveSectionCommand(t *testing.T) {
	dir, src := writeRules(t)
	out := filepath.Join(dir, "out.ini")

	output, err := runCLI(t, "remove-section", src, "GAWETH", "--list", "BuildingTypes", "-o", out)
	require.NoError(t, err)
	assert.Contains(t, output, "✓ remove-section GAWETH from BuildingTypes @placeholder")

	got := readFile(t, out)
	assert.Contains(t, got, "1=EMPTY0\n")
	assert.Contains(t, got, "; [GAWETH]\n; Strength=1000 ; tough\n; Power=-50\n")
	// The source is never modified.
	assert.Equal(t, rulesText, readFile(t, src))
}

func TestRemoveSectionDeleteReindex(t *testing.T) {
	dir, src := writeRules(t)
	out := filepath.Join(dir, "out.ini")

	_, err := runCLI(t, "remove-section", src, "GAPOWR", "--list", "BuildingTypes",
		"--level", "delete", "--reindex", "-o", out)
	require.NoError(t, err)

	got := readFile(t, out)
	assert.NotContains(t, got, "GAPOWR")
	assert.Contains(t, got, "[BuildingTypes]\n0=GAWETH\n1=GAREFN\n")
}

func TestRemoveSectionMissing(t *testing.T) {
	dir, src := writeRules(t)
	out := filepath.Join(dir, "out.ini")

	_, err := runCLI(t, "remove-section", src, "NAPOWR", "-o", out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ini.ErrSectionNotFound))
	_, statErr := os.Stat(out)
	assert.True(t, errors.Is(statErr, fs.ErrNotExist))
}

func TestRemoveSectionRefusesExistingOutput(t *testing.T) {
	dir, src := writeRules(t)
	out := filepath.Join(dir, "out.ini")
	require.NoError(t, os.WriteFile(out, []byte("keep"), 0o644))

	_, err := runCLI(t, "remove-section", src, "GAWETH", "-o", out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, document.ErrUnavailable))
	assert.Equal(t, "keep", readFile(t, out))

	_, err = runCLI(t, "remove-section", src, "GAWETH")
	require.Error(t, err)
}

func TestRemoveEntryCommand(t *testing.T) {
	dir, src := writeRules(t)
	out := filepath.Join(dir, "out.ini")

	_, err := runCLI(t, "remove-entry", src, "GAWETH", "--list", "BuildingTypes", "--level", "comment", "-o", out)
	require.NoError(t, err)
	got := readFile(t, out)
	assert.Contains(t, got, "; 1=GAWETH\n")
	assert.Contains(t, got, "[GAWETH]\nStrength=1000")
}

func TestReindexAndStripCommands(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "rules.ini")
	require.NoError(t, os.WriteFile(src, []byte("; list\n[L]\n4=a ; first\n9=b\n"), 0o644))

	reindexed := filepath.Join(dir, "reindexed.ini")
	_, err := runCLI(t, "reindex", src, "L", "-o", reindexed)
	require.NoError(t, err)
	assert.Equal(t, "; list\n[L]\n0=a ; first\n1=b\n", readFile(t, reindexed))

	stripped := filepath.Join(dir, "stripped.ini")
	_, err = runCLI(t, "strip-comments", src, "-o", stripped)
	require.NoError(t, err)
	assert.Equal(t, "[L]\n4=a\n9=b\n", readFile(t, stripped))
}

func TestSectionsCommandJSON(t *testing.T) {
	_, src := writeRules(t)

	output, err := runCLI(t, "sections", src, "--json")
	require.NoError(t, err)

	var result struct {
		Lines    int           `json:"lines"`
		Sections []sectionInfo `json:"sections"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, 15, result.Lines)
	require.Len(t, result.Sections, 4)
	assert.Equal(t, sectionInfo{Name: "BuildingTypes", Start: 1, End: 6, Entries: 3}, result.Sections[0])
	assert.Equal(t, sectionInfo{Name: "GAREFN", Start: 13, End: 15}, result.Sections[3])
}

func TestSectionsCommandText(t *testing.T) {
	_, src := writeRules(t)
	output, err := runCLI(t, "sections", src)
	require.NoError(t, err)
	assert.Contains(t, output, "BuildingTypes")
	assert.Contains(t, output, "entries 3")
}

func TestApplyCommandWithJournal(t *testing.T) {
	dir, src := writeRules(t)
	out := filepath.Join(dir, "out.ini")
	planPath := filepath.Join(dir, "plan.md")
	journalFile := filepath.Join(dir, "journal.json")
	require.NoError(t, os.WriteFile(planPath, []byte(
		"# cleanup\n\n- [ ] section GAWETH list BuildingTypes @delete\n- [ ] section NAWEAT\n- [ ] reindex BuildingTypes\n",
	), 0o644))

	_, err := runCLI(t, "apply", src, planPath, "-o", out, "--journal", journalFile)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ini.ErrSectionNotFound))

	_, err = runCLI(t, "apply", src, planPath, "-o", out, "--continue", "--check-off", "--journal", journalFile)
	require.NoError(t, err)

	got := readFile(t, out)
	assert.Contains(t, got, "[BuildingTypes]\n0=GAPOWR\n1=GAREFN\n")
	assert.NotContains(t, got, "GAWETH")
	assert.Contains(t, readFile(t, planPath), "- [x] section GAWETH")
	assert.Contains(t, readFile(t, planPath), "- [ ] section NAWEAT")

	j, err := journal.NewFileStore(journalFile).Load()
	require.NoError(t, err)
	assert.Equal(t, src, j.Source)
	assert.Equal(t, out, j.Output)
	// Failed first run plus three records from the second.
	require.Len(t, j.Records, 5)
	removed, err := j.Records[2].Snapshot()
	require.NoError(t, err)
	assert.Equal(t, "[GAWETH]\n", removed[0])
}

func TestWriteFailureSavesJournal(t *testing.T) {
	dir, src := writeRules(t)
	out := filepath.Join(dir, "missing", "out.ini")
	journalFile := filepath.Join(dir, "journal.json")

	_, err := runCLI(t, "remove-section", src, "GAWETH", "-o", out, "--journal", journalFile)
	require.Error(t, err)
	assert.True(t, errors.Is(err, document.ErrUnavailable))

	j, err := journal.NewFileStore(journalFile).Load()
	require.NoError(t, err)
	require.Len(t, j.Records, 1)
	assert.Equal(t, journal.OpRemoveSection, j.Records[0].Op)
	assert.Empty(t, j.Output)
}

func TestApplyReportCountsFailures(t *testing.T) {
	dir, src := writeRules(t)
	planPath := filepath.Join(dir, "plan.md")
	require.NoError(t, os.WriteFile(planPath, []byte("- [ ] section GAWETH\n- [ ] section NAWEAT\n"), 0o644))

	output, err := runCLI(t, "apply", src, planPath, "-o", filepath.Join(dir, "out.ini"), "--continue", "--json")
	require.NoError(t, err)

	var result struct {
		Records []journal.Record `json:"records"`
		Failed  int              `json:"failed"`
		Updated time.Time        `json:"updated"`
		Success bool             `json:"success"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Len(t, result.Records, 2)
	assert.Equal(t, 1, result.Failed)
	assert.False(t, result.Success)
	assert.True(t, result.Updated.Equal(result.Records[1].At))
}

func TestBadEncoding(t *testing.T) {
	_, src := writeRules(t)
	_, err := runCLI(t, "sections", src, "--encoding", "ebcdic")
	require.Error(t, err)
}
