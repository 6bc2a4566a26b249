package refresher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/muhammadolammi/resumerefresher/internal/config"
	"github.com/muhammadolammi/resumerefresher/internal/document"
)

const resumeBody = `JOHN DOE
Software Engineer

EXPERIENCE
I build APIs using Python and Go. I also use Docker daily.

SUMMARY
stale summary line
stale, old, keywords

EDUCATION
BSc Computer Science
`

func fixedClock() func() time.Time {
	return func() time.Time { return time.Date(2026, 8, 31, 6, 0, 0, 0, time.UTC) }
}

func testConfig(t *testing.T, body string) config.Config {
	t.Helper()
	dir := t.TempDir()
	resume := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(resume, []byte(body), 0o644))

	cfg := config.Default()
	cfg.ResumePath = resume
	cfg.BackupDir = filepath.Join(dir, "backups")
	return cfg
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestRunReplacesSection(t *testing.T) {
	cfg := testConfig(t, resumeBody)
	svc := New(cfg, zap.NewNop()).WithClock(fixedClock())

	report, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, report.Replaced)
	assert.Equal(t, []string{
		"apis", "bsc", "build", "computer", "daily", "docker",
		"doe", "education", "engineer", "experience", "john", "python",
	}, report.Keywords)

	lines := readLines(t, cfg.ResumePath)
	assert.Equal(t, []string{
		"JOHN DOE",
		"Software Engineer",
		"",
		"EXPERIENCE",
		"I build APIs using Python and Go. I also use Docker daily.",
		"",
		"Summary",
		"Updated 2026-08-31T06:00:00Z. 12 keywords extracted from this resume.",
		"Keywords: apis, bsc, build, computer, daily, docker, doe, education, engineer, experience, john, python",
		"EDUCATION",
		"BSc Computer Science",
	}, lines)
}

func TestRunIsIdempotent(t *testing.T) {
	cfg := testConfig(t, resumeBody)
	cfg.BackupDir = "" // keep the temp dir simple
	svc := New(cfg, zap.NewNop()).WithClock(fixedClock())

	_, err := svc.Run(context.Background())
	require.NoError(t, err)
	first, err := os.ReadFile(cfg.ResumePath)
	require.NoError(t, err)

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	second, err := os.ReadFile(cfg.ResumePath)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second), "same clock, same document")
	assert.True(t, report.Replaced)
}

func TestRunDoesNotTouchOtherParagraphs(t *testing.T) {
	cfg := testConfig(t, resumeBody)
	svc := New(cfg, zap.NewNop()).WithClock(fixedClock())

	_, err := svc.Run(context.Background())
	require.NoError(t, err)

	lines := readLines(t, cfg.ResumePath)
	assert.Contains(t, lines, "JOHN DOE")
	assert.Contains(t, lines, "I build APIs using Python and Go. I also use Docker daily.")
	assert.Contains(t, lines, "BSc Computer Science")
	assert.NotContains(t, lines, "stale summary line")
}

func TestRunAppendsWhenNoSection(t *testing.T) {
	cfg := testConfig(t, "EXPERIENCE\nBuilt claim pipelines with Jira.\n")
	svc := New(cfg, zap.NewNop()).WithClock(fixedClock())

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Replaced)

	lines := readLines(t, cfg.ResumePath)
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Equal(t, "EXPERIENCE", lines[0])
	assert.Equal(t, "Summary", lines[2])
}

func TestRunEmptyDocument(t *testing.T) {
	cfg := testConfig(t, "")
	svc := New(cfg, zap.NewNop()).WithClock(fixedClock())

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Keywords)

	lines := readLines(t, cfg.ResumePath)
	assert.Equal(t, []string{
		"Summary",
		"Updated 2026-08-31T06:00:00Z. 0 keywords extracted from this resume.",
		"Keywords:",
	}, lines)
}

func TestRunMissingResume(t *testing.T) {
	cfg := config.Default()
	cfg.ResumePath = filepath.Join(t.TempDir(), "gone.txt")
	svc := New(cfg, zap.NewNop())

	_, err := svc.Run(context.Background())
	assert.ErrorIs(t, err, document.ErrNotFound)
}

func TestRunWritesBackup(t *testing.T) {
	cfg := testConfig(t, resumeBody)
	svc := New(cfg, zap.NewNop()).WithClock(fixedClock())

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, report.BackupPath)

	data, err := os.ReadFile(report.BackupPath)
	require.NoError(t, err)
	assert.Equal(t, resumeBody, string(data), "backup holds the pre-write revision")
}

func TestRunDryRun(t *testing.T) {
	cfg := testConfig(t, resumeBody)
	cfg.DryRun = true
	svc := New(cfg, zap.NewNop()).WithClock(fixedClock())

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.NotEmpty(t, report.Keywords)
	assert.Empty(t, report.BackupPath)

	data, err := os.ReadFile(cfg.ResumePath)
	require.NoError(t, err)
	assert.Equal(t, resumeBody, string(data), "dry run leaves the file alone")

	_, err = os.Stat(cfg.BackupDir)
	assert.True(t, os.IsNotExist(err), "dry run takes no snapshot")
}

func TestRunWithSourceFile(t *testing.T) {
	cfg := testConfig(t, resumeBody)
	src := filepath.Join(t.TempDir(), "skills.txt")
	require.NoError(t, os.WriteFile(src, []byte("Kubernetes Terraform Kubernetes"), 0o644))
	cfg.SourcePath = src

	svc := New(cfg, zap.NewNop()).WithClock(fixedClock())
	report, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"kubernetes", "terraform"}, report.Keywords)
}

func TestRunCancelledContext(t *testing.T) {
	cfg := testConfig(t, resumeBody)
	svc := New(cfg, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestKeywordsDoesNotModifyDocument(t *testing.T) {
	cfg := testConfig(t, resumeBody)
	svc := New(cfg, zap.NewNop())

	kws, err := svc.Keywords(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, kws)

	data, err := os.ReadFile(cfg.ResumePath)
	require.NoError(t, err)
	assert.Equal(t, resumeBody, string(data))
}
