package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"niptreport/internal/config"
	"niptreport/internal/report"
	"niptreport/internal/testutil"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := execute(cmd, &stderr)
	return stdout.String(), stderr.String(), err
}

func writeSource(t *testing.T, dir string) {
	t.Helper()

	testutil.WriteWorkbook(t, dir, config.DefaultSourceFile,
		testutil.Sheet{Name: "May 2025", Rows: [][]any{
			testutil.CaseHeader,
			testutil.CaseRow("Anan", "Panorama", 4000, 6500, 2500, 5),
			testutil.CaseRow("Ploy", "NIFTY", 3000, 4200, 1200, 4),
			testutil.CaseRow("Anan", "Panorama", 4000, 6500, 2500, 6),
		}},
		testutil.Sheet{Name: "June 2025", Rows: [][]any{
			testutil.CaseHeader,
			testutil.CaseRow("Ploy", "NIFTY", 3000, 4200, 1200, 3),
			testutil.CaseRow("", "Panorama", 4000, 6500, "abc", 7),
		}},
		testutil.Sheet{Name: "Pivot", Rows: [][]any{{"Month", "Total"}}},
	)
}

func TestSummaryCommand(t *testing.T) {
	t.Setenv(config.EnvPort, "")
	t.Setenv(config.EnvDataDir, "")
	t.Setenv(config.EnvLogLevel, "")

	dir := t.TempDir()
	writeSource(t, dir)

	out, _, err := runCLI(t, "summary", "--config-dir", dir, "--sheets")
	require.NoError(t, err)

	assert.Contains(t, out, "BRIA NIPT Executive Report 2025")
	assert.Contains(t, out, "Last data update: June 2025")
	assert.Contains(t, out, "Total Cases")
	assert.Contains(t, out, "฿7,400")
	assert.Contains(t, out, "5.0 Days")
	assert.Contains(t, out, "Monthly Volume")
	assert.Contains(t, out, "6,200")
	assert.Contains(t, out, "Unknown")
	assert.Contains(t, out, "best performing month was May")
	assert.Contains(t, out, "missing columns")
}

func TestSummaryCommand_MonthFilter(t *testing.T) {
	t.Setenv(config.EnvPort, "")
	t.Setenv(config.EnvDataDir, "")
	t.Setenv(config.EnvLogLevel, "")

	dir := t.TempDir()
	writeSource(t, dir)

	out, _, err := runCLI(t, "summary", "--config-dir", dir, "--month", "June")
	require.NoError(t, err)
	assert.Contains(t, out, "Product Mix (June)")
	assert.Contains(t, out, "50.0%")

	_, stderr, err := runCLI(t, "summary", "--config-dir", dir, "--month", "Smarch")
	require.Error(t, err)
	assert.Contains(t, stderr, "unknown month")

	_, stderr, err = runCLI(t, "summary", "--config-dir", dir, "--month", "December")
	require.Error(t, err)
	assert.Contains(t, stderr, "no data for December")
}

func TestSummaryCommand_SourceNotFound(t *testing.T) {
	t.Setenv(config.EnvPort, "")
	t.Setenv(config.EnvDataDir, "")
	t.Setenv(config.EnvLogLevel, "")

	dir := t.TempDir()
	out, stderr, err := runCLI(t, "summary", "--config-dir", dir)
	require.Error(t, err)

	var halt *report.Halt
	require.True(t, errors.As(err, &halt))
	assert.Equal(t, "Source file not found", halt.Title)
	assert.Contains(t, stderr, "Data file not found")
	assert.NotContains(t, stderr, "Error:")
	assert.NotContains(t, out, "Total Cases")
}

func TestSummaryCommand_NoUsableData(t *testing.T) {
	t.Setenv(config.EnvPort, "")
	t.Setenv(config.EnvDataDir, "")
	t.Setenv(config.EnvLogLevel, "")

	dir := t.TempDir()
	testutil.WriteWorkbook(t, dir, config.DefaultSourceFile,
		testutil.Sheet{Name: "Notes", Rows: [][]any{{"Comment"}, {"empty"}}})

	out, stderr, err := runCLI(t, "summary", "--data-dir", dir, "--config-dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, stderr, "no usable data")
	assert.NotContains(t, out, "Total Cases")
}

func TestInvalidConfigIsReported(t *testing.T) {
	t.Setenv(config.EnvPort, "")
	t.Setenv(config.EnvDataDir, "")
	t.Setenv(config.EnvLogLevel, "")

	_, stderr, err := runCLI(t, "summary", "--config-dir", t.TempDir(), "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, stderr, "invalid log level")
}

func TestApplyFlags(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--port", "9000", "--no-browser", "--data-dir", "/srv"}))

	cfg := config.DefaultConfig()
	info := config.LoadConfigInfo{}
	applyFlags(cfg, &info, cmd.Flags())

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.True(t, info.PortSpecified)
	assert.False(t, cfg.Server.OpenBrowser)
	assert.True(t, cfg.Data.Watch)
	assert.Equal(t, "/srv", cfg.Data.DataDir)
}

func TestConfigInit(t *testing.T) {
	t.Setenv(config.EnvPort, "")
	t.Setenv(config.EnvDataDir, "")
	t.Setenv(config.EnvLogLevel, "")

	dir := t.TempDir()
	out, _, err := runCLI(t, "config", "init", "--config-dir", dir, "--data-dir", "input")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, config.FileName))

	cfg, info, err := config.LoadFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, config.FileName), info.Path)
	assert.Equal(t, "input", cfg.Data.DataDir)
	assert.Equal(t, 8501, cfg.Server.Port)

	_, stderr, err := runCLI(t, "config", "init", "--config-dir", dir)
	require.ErrorIs(t, err, config.ErrConfigExists)
	assert.Contains(t, stderr, "already exists")

	_, _, err = runCLI(t, "config", "init", "--config-dir", dir, "--force")
	require.NoError(t, err)
	cfg, _, err = config.LoadFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.Data.DataDir)
}

func TestConfigInit_ReplacesBrokenFile(t *testing.T) {
	t.Setenv(config.EnvPort, "")
	t.Setenv(config.EnvDataDir, "")
	t.Setenv(config.EnvLogLevel, "")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte("[server\n"), 0o644))

	_, _, err := runCLI(t, "summary", "--config-dir", dir)
	require.Error(t, err)

	_, _, err = runCLI(t, "config", "init", "--config-dir", dir, "--force")
	require.NoError(t, err)
	_, _, err = config.LoadFromDir(dir)
	require.NoError(t, err)
}
