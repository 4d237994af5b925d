package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copy-generator/internal/plan"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "copygen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
manifests:
  - types/**/*.yaml
output: Models/Generated
parallelism: 2
fluent: true
exclude:
  - "App.*.Secret"
modes:
  init:
    before: true
  update_target:
    after: false
log:
  level: debug
`)

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"types/**/*.yaml"}, cfg.Manifests)
	assert.Equal(t, "Models/Generated", cfg.Output)
	assert.Equal(t, 2, cfg.Parallelism)
	assert.Equal(t, ".g.cs", cfg.FileSuffix)
	assert.Equal(t, "debug", cfg.Log.Level)

	modes := cfg.ModeConfigs()
	require.Len(t, modes, len(plan.AllModes()))
	assert.True(t, modes[plan.ModeInit].Before)
	assert.True(t, modes[plan.ModeInit].After)
	assert.False(t, modes[plan.ModeUpdateTarget].After)
	assert.True(t, modes[plan.ModeUpdateTarget].Before)
	assert.Equal(t, plan.ReturnSelf, modes[plan.ModeCopy].Return)
	assert.Equal(t, plan.ReturnCount, modes[plan.ModeUpdate].Return)
}

func TestLoad_Env(t *testing.T) {
	path := writeConfig(t, "manifests: [a.yaml]\n")

	t.Setenv("COPYGEN_OUTPUT", "out")
	t.Setenv("COPYGEN_LOG_LEVEL", "warn")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.Output)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"no manifests", "output: x\n", "manifests"},
		{"bad level", "manifests: [a]\nlog: {level: loud}\n", "log.level"},
		{"bad suffix", "manifests: [a]\nfile_suffix: cs\n", "file_suffix"},
		{"unknown mode", "manifests: [a]\nmodes: {merge: {before: true}}\n", `unknown mode "merge"`},
		{"bad pattern", "manifests: [a]\nexclude: ['App.[']\n", "invalid pattern"},
		{
			"duplicate mode alias",
			"manifests: [a]\nmodes: {copy_to: {before: true}, copyto: {before: false}}\n",
			`"copy_to" and "copyto" both configure copy_to`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(viper.New(), writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestExcluded(t *testing.T) {
	cfg := &Config{Exclude: []string{"App.*.Secret", "Other.**"}}

	assert.True(t, cfg.Excluded("App.User", "Secret"))
	assert.False(t, cfg.Excluded("App.Sub.User", "Secret"))
	assert.True(t, cfg.Excluded("Other.Deep.Type", "Name"))
	assert.False(t, cfg.Excluded("App.User", "Name"))
}

func TestModeConfigs_AliasOrder(t *testing.T) {
	yes, no := true, false
	cfg := &Config{Modes: map[string]ModeOverride{
		"copy_to": {Before: &yes},
		"copyto":  {Before: &no},
		"CopyTo":  {After: &yes},
	}}

	for range 20 {
		var copyTo plan.ModeConfig

		for _, mc := range cfg.ModeConfigs() {
			if mc.Mode == plan.ModeCopyTo {
				copyTo = mc
			}
		}

		assert.False(t, copyTo.Before, "sorted keys apply copyto after copy_to")
		assert.True(t, copyTo.After)
	}
}
