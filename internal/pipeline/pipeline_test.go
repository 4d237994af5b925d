package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"copy-generator/internal/config"
	"copy-generator/internal/logger"
	"copy-generator/internal/manifest"
)

func readArchive(t *testing.T, name string) *txtar.Archive {
	t.Helper()

	ar, err := txtar.ParseFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	return ar
}

func parseArchive(t *testing.T, name string) []*manifest.File {
	t.Helper()

	var files []*manifest.File

	for _, f := range readArchive(t, name).Files {
		mf, err := manifest.Parse(f.Data)
		require.NoError(t, err, f.Name)

		mf.Source = f.Name
		files = append(files, mf)
	}

	return files
}

func testContext() context.Context {
	return logger.ContextWithLogger(context.Background(), logger.NewLogger(logger.TestConfig()))
}

func content(t *testing.T, res *Result, filename string) string {
	t.Helper()

	for _, f := range res.Files {
		if f.Filename == filename {
			return string(f.Content)
		}
	}

	require.FailNow(t, "file not generated", filename)

	return ""
}

func TestRun(t *testing.T) {
	res, err := Run(testContext(), parseArchive(t, "pass.txtar"), Options{})
	require.NoError(t, err)

	var names []string
	for _, f := range res.Files {
		names = append(names, f.Filename)
	}

	assert.Equal(t, []string{"OneBarker.Samples.Bravo.g.cs", "OneBarker.Samples.Lima.g.cs"}, names)

	require.Len(t, res.Diagnostics.Infos, 1)
	assert.Equal(t, "unresolved_attribute", res.Diagnostics.Infos[0].Code)

	bravo := content(t, res, "OneBarker.Samples.Bravo.g.cs")
	assert.Contains(t, bravo, "public void CopyFrom(Bravo source)")
	assert.Contains(t, bravo, "public int UpdateFrom(OneBarker.Samples.Charlie source)")
	// Members inherited from an interface are read from the source.
	assert.Contains(t, bravo, "var source_NonNullableString = source.NonNullableString;")
	assert.NotContains(t, bravo, "Secret")
}

func TestRun_OrderIndependent(t *testing.T) {
	files := parseArchive(t, "pass.txtar")

	first, err := Run(testContext(), files, Options{Parallelism: 1})
	require.NoError(t, err)

	reversed := slices.Clone(files)
	slices.Reverse(reversed)

	second, err := Run(testContext(), reversed, Options{Parallelism: 3})
	require.NoError(t, err)

	if diff := cmp.Diff(first.Files, second.Files); diff != "" {
		t.Fatalf("output depends on manifest order (-first +second):\n%s", diff)
	}
}

func TestRun_Exclude(t *testing.T) {
	cfg := &config.Config{
		FileSuffix: ".cs",
		Fluent:     true,
		Exclude:    []string{"OneBarker.Samples.Bravo.NullableString", "**.Lima2.Count"},
	}

	res, err := Run(testContext(), parseArchive(t, "pass.txtar"), FromConfig(cfg))
	require.NoError(t, err)

	bravo := content(t, res, "OneBarker.Samples.Bravo.cs")
	assert.NotContains(t, bravo, "_NullableString")
	assert.NotContains(t, bravo, ".NullableString")
	assert.Contains(t, bravo, "this.NonNullableString = source_NonNullableString;")
	assert.Contains(t, bravo, "public Bravo CopyFrom(Bravo source)")

	lima := content(t, res, "OneBarker.Samples.Lima.cs")
	assert.Contains(t, lima, "target.Value = this_Value;")
	assert.NotContains(t, lima, "target.Count")
}

func TestPlan_InvalidManifest(t *testing.T) {
	res, err := Plan(testContext(), parseArchive(t, "invalid.txtar"), Options{})
	require.ErrorIs(t, err, ErrInvalidManifest)
	require.NotNil(t, res)
	assert.Nil(t, res.Graph, "validation errors stop the pass before building")

	var codes []string
	for _, d := range res.Diagnostics.Errors {
		codes = append(codes, d.Code+"@"+d.Source)
	}

	assert.Equal(t, []string{"invalid_field@bad.yaml"}, codes)
}

func TestPlan_BuildErrors(t *testing.T) {
	files := parseArchive(t, "invalid.txtar")[:1]

	res, err := Plan(testContext(), files, Options{})
	require.ErrorIs(t, err, ErrInvalidManifest)
	require.NotEmpty(t, res.Diagnostics.Errors)
	assert.Equal(t, "unknown_base_type", res.Diagnostics.Errors[0].Code)
	assert.Empty(t, res.Plans)
}

func TestLoadAndRun(t *testing.T) {
	dir := t.TempDir()

	for _, f := range readArchive(t, "pass.txtar").Files {
		path := filepath.Join(dir, filepath.FromSlash(f.Name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, f.Data, 0o600))
	}

	res, err := LoadAndRun(testContext(), []string{filepath.Join(dir, "models", "*.yaml")}, Options{})
	require.NoError(t, err)
	assert.Len(t, res.Files, 2)
	assert.Len(t, res.Plans, 2)

	_, err = LoadAndRun(testContext(), []string{filepath.Join(dir, "none", "*.yaml")}, Options{})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "matched no files"))
}
