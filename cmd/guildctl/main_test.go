package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"guild-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

const sampleBackup = `{
  "version": 1,
  "data": {
    "members": [
      {"name": "Alice", "v": [11, 11, 11, 11], "v2": 2, "d": [0, 0, 0, 0]},
      {"name": "Bob", "v": [5, 5, 5, 5], "v2": 0, "d": [0, 0, 0, 0]}
    ],
    "config": {"bossMaxHp": 100000000, "ocrKeywords": "Attack", "tiers": {"s": 5, "a": 4, "b": 3, "c": 2, "d": 1}},
    "days1": 11,
    "days2": 11,
    "deadBosses": {"1": [false, false, false, false], "2": [false]},
    "language": "en",
    "mode": "count",
    "filter": "all"
  }
}`

func TestParseCommand(t *testing.T) {
	out, err := run(t, "Alice\n1,234,567 30 Plays\nBob\n2,000,000\n", "parse")
	require.NoError(t, err)

	var entries []domain.OCREntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "Alice", entries[0].Name)
	assert.Equal(t, int64(1_234_567), entries[0].Damage)
	assert.Equal(t, "Bob", entries[1].Name)
}

func TestStatsCommand_FromBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleBackup), 0o644))

	out, err := run(t, "", "stats", "--backup", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "perfect")
	assert.Contains(t, out, "risk")
	assert.Contains(t, out, "members 2")
	assert.Contains(t, out, "72.7%")

	_, err = run(t, "", "stats", "--backup", path, "--page", "3")
	assert.Error(t, err)
}

func TestBackupCommands(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "guild.db")
	backupPath := filepath.Join(dir, "in.json")
	require.NoError(t, os.WriteFile(backupPath, []byte(sampleBackup), 0o644))

	out, err := run(t, "", "--db", dbPath, "import", "--in", backupPath)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 2 members")

	out, err = run(t, "", "--db", dbPath, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Bob")

	out, err = run(t, "", "--db", dbPath, "export", "--out", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Alice"`)
	assert.Contains(t, out, `"language": "en"`)

	out, err = run(t, "", "--db", dbPath, "reset-week")
	require.NoError(t, err)
	assert.Contains(t, out, "week reset")

	out, err = run(t, "", "--db", dbPath, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "total 0 / 88")
}

func TestImportCommand_RequiresInput(t *testing.T) {
	_, err := run(t, "", "--db", filepath.Join(t.TempDir(), "guild.db"), "import")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}
