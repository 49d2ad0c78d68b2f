package scaffold

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackforge/internal/registry"
)

func TestGenerateWritesSelectedFiles(t *testing.T) {
	dir := t.TempDir()
	reg := registry.New()
	b := NewContextBuilder("My App", []string{"redis", "worker"}, reg)
	g := NewGenerator(b)

	report, err := g.Generate(dir, false)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "my-app"), report.ProjectPath)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, b.TemplateFiles(), report.Files)

	for _, file := range report.Files {
		_, err := os.Stat(filepath.Join(report.ProjectPath, file))
		assert.NoError(t, err, "missing generated file %s", file)
	}
}

func TestGenerateRendersContext(t *testing.T) {
	dir := t.TempDir()
	reg := registry.New()
	g := NewGenerator(NewContextBuilder("My App", []string{"redis"}, reg))

	report, err := g.Generate(dir, false)
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(report.ProjectPath, "pyproject.toml"))
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, `name = "my-app"`)
	assert.Contains(t, content, `"redis[hiredis]"`)
	assert.NotContains(t, content, "{{")

	raw, err = os.ReadFile(filepath.Join(report.ProjectPath, "docker-compose.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "redis:7-alpine")
	assert.NotContains(t, string(raw), "worker")
}

func TestGenerateRefusesExistingDirectory(t *testing.T) {
	dir := t.TempDir()
	reg := registry.New()
	g := NewGenerator(NewContextBuilder("app", nil, reg))

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "app"), 0755))

	_, err := g.Generate(dir, false)
	require.ErrorIs(t, err, ErrOutputExists)

	// force overwrites
	_, err = g.Generate(dir, true)
	require.NoError(t, err)
}

func TestGenerateWritesManifest(t *testing.T) {
	dir := t.TempDir()
	reg := registry.New()
	g := NewGenerator(NewContextBuilder("app", []string{"scheduler"}, reg))

	report, err := g.Generate(dir, false)
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(report.ProjectPath, ".stackforge.json"))
	require.NoError(t, err)

	var manifest GenerationReport
	require.NoError(t, json.Unmarshal(raw, &manifest))
	assert.Equal(t, report.RunID, manifest.RunID)
	assert.Contains(t, manifest.Components, "scheduler")
	assert.Contains(t, manifest.Components, "backend")
}

func TestEmbeddedTemplatesCoverBuiltinRegistry(t *testing.T) {
	reg := registry.New()
	g := NewGenerator(NewContextBuilder("app", reg.InfrastructureNames(), reg))

	report, err := g.Generate(t.TempDir(), false)
	require.NoError(t, err)

	// every file the registry can reference has a template behind it
	for _, spec := range reg.Specs() {
		for _, file := range spec.TemplateFiles {
			assert.True(t, contains(report.Files, file), "no template rendered for %s", file)
		}
	}
}

func contains(list []string, want string) bool {
	for _, item := range list {
		if strings.EqualFold(item, want) {
			return true
		}
	}
	return false
}
