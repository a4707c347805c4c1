package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizz/internal/export"
)

// isolate points every lookup at an empty temp dir and clears QUIZZ_* vars.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{"QUIZZ_DB", "QUIZZ_BANK", "QUIZZ_EPHEMERAL", "QUIZZ_LOG_FILE", "QUIZZ_LOG_LEVEL", "QUIZZ_EXPORT_LINE_ENDING", "QUIZZ_EXPORT_DIR"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return dir
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("db", "", "")
	fs.String("bank", "", "")
	fs.Bool("ephemeral", false, "")
	fs.String("log-file", "", "")
	fs.String("log-level", "", "")
	return fs
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", testFlags())
	require.NoError(t, err)
	assert.Equal(t, "", cfg.DB)
	assert.Equal(t, "", cfg.Bank)
	assert.False(t, cfg.Ephemeral)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, export.LF, cfg.LineEnding())
	assert.Empty(t, cfg.File)
}

func TestLoad_DefaultFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "quizz", "config.yaml"), `
db: /tmp/q.db
log:
  level: debug
export:
  line_ending: crlf
  dir: /tmp/out
`)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/q.db", cfg.DB)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, export.CRLF, cfg.LineEnding())
	assert.Equal(t, "/tmp/out", cfg.Export.Dir)
	assert.Equal(t, filepath.Join(dir, "quizz", "config.yaml"), cfg.File)
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.ErrorContains(t, err, "read config")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "bank: from-file.yaml\nlog:\n  level: warn\n")

	t.Setenv("QUIZZ_BANK", "from-env.yaml")
	t.Setenv("QUIZZ_EPHEMERAL", "true")
	t.Setenv("QUIZZ_EXPORT_LINE_ENDING", "crlf")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "from-env.yaml", cfg.Bank)
	assert.True(t, cfg.Ephemeral)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, export.CRLF, cfg.LineEnding())
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv("QUIZZ_DB", "env.db")
	t.Setenv("QUIZZ_LOG_LEVEL", "warn")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--db", "flag.db", "--ephemeral"}))

	cfg, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, "flag.db", cfg.DB)
	assert.True(t, cfg.Ephemeral)
	// Unset flags do not mask the environment.
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, env, value, want string
	}{
		{"level", "QUIZZ_LOG_LEVEL", "loud", "log.level"},
		{"line ending", "QUIZZ_EXPORT_LINE_ENDING", "cr", "export.line_ending"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.env, tt.value)
			_, err := Load("", nil)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestDefaultDir(t *testing.T) {
	dir := isolate(t)
	got, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "quizz"), got)
}
