package root

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cli struct {
	t    *testing.T
	args []string
}

func newCLI(t *testing.T) *cli {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })
	dir := t.TempDir()
	return &cli{t: t, args: []string{
		"--db-path", filepath.Join(dir, "cli.db"),
		"--repos-dir", filepath.Join(dir, "repos"),
		"--timezone", "UTC",
		"--log-level", "error",
	}}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, c.args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, out)
	return out
}

func TestAddReviewDelete(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("add", "JHN 3:16", "For God so loved the world")
	assert.Contains(t, out, "Added John 3:16")
	assert.Contains(t, out, "Badge earned: First card")
	id := regexp.MustCompile(`\(([0-9a-f-]{36})\)`).FindStringSubmatch(out)
	require.Len(t, id, 2, out)

	out = c.mustRun("due")
	assert.Contains(t, out, id[1])

	out = c.mustRun("review", id[1], "Good")
	assert.Contains(t, out, "Next review of John 3:16")
	assert.Contains(t, out, "+10 points")

	out = c.mustRun("due")
	assert.Contains(t, out, "Nothing due")

	out = c.mustRun("progress")
	assert.Contains(t, out, "Points:  10")
	assert.Contains(t, out, "Streak:  1 day(s)")
	assert.Contains(t, out, "[x] First review")

	_, err := c.run("review", id[1], "hard")
	assert.Error(t, err)

	out = c.mustRun("delete", id[1])
	assert.Contains(t, out, "Deleted")
	out = c.mustRun("delete", id[1])
	assert.Contains(t, out, "No card with id")
}

func TestAddRejectsBadReference(t *testing.T) {
	c := newCLI(t)
	_, err := c.run("add", "XYZ 1:1", "text")
	assert.Error(t, err)
	_, err = c.run("add", "JHN 3:16")
	assert.Error(t, err)
}

func TestImport(t *testing.T) {
	c := newCLI(t)
	dir := t.TempDir()
	list := "R: PSA 23:1\nT: The LORD is my shepherd\n---\nR: PSA 23:4\nL: Psalm 23:4\nT: Even though I walk through the valley\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "psalm.md"), []byte(list), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.json"), []byte("{}"), 0o644))

	out := c.mustRun("import", dir)
	assert.Contains(t, out, "Imported 2 cards from 1 files.")

	out = c.mustRun("due")
	assert.Contains(t, out, "Psalms 23:1")
	assert.Contains(t, out, "Psalm 23:4")

	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("R: XYZ 1:1\nT: x\n"), 0o644))
	out, err := c.run("import", bad)
	assert.Error(t, err)
	assert.Contains(t, out, "error parsing")
}

func TestKits(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("kits", "list")
	assert.Equal(t, 11, len(strings.Split(strings.TrimSpace(out), "\n")), out)

	out = c.mustRun("kits", "add", "faith")
	assert.Contains(t, out, "Added 2 cards from Faith")
	assert.Contains(t, out, "Badge earned: Starter: faith")

	out = c.mustRun("kits", "add", "faith")
	assert.Contains(t, out, "already added")

	_, err := c.run("kits", "add", "nope")
	assert.Error(t, err)
}

func TestKitsSyncLocalDirectory(t *testing.T) {
	c := newCLI(t)
	dir := t.TempDir()
	kit := `
- id: joy
  label: Joy
  badgeId: starter_joy
  verses:
    - bookId: NEH
      chapter: 8
      verseStart: 10
      verseEnd: 10
      referenceLabel: Nehemiah 8:10
      text: The joy of the LORD is your strength.
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "joy.yaml"), []byte(kit), 0o644))

	out := c.mustRun("kits", "sync", dir)
	assert.Contains(t, out, "Synced 1 starter kits")

	_, err := c.run("kits", "sync")
	assert.Error(t, err)
}
