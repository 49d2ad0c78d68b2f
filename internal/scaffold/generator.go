package scaffold

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/google/uuid"

	"stackforge/internal/logger"
)

//go:embed all:templates
var builtinTemplates embed.FS

var ErrOutputExists = errors.New("output directory already exists")

/**
 * Generator renders the embedded template set for a component selection
 * into an output directory
 */
type Generator struct {
	builder   *ContextBuilder
	templates fs.FS
}

// GenerationReport summarizes one generation run.
type GenerationReport struct {
	RunID       string    `json:"run_id"`
	ProjectName string    `json:"project_name"`
	ProjectPath string    `json:"project_path"`
	Components  []string  `json:"components"`
	Files       []string  `json:"files"`
	GeneratedAt time.Time `json:"generated_at"`
}

// NewGenerator returns a generator over the embedded template set.
func NewGenerator(builder *ContextBuilder) *Generator {
	sub, err := fs.Sub(builtinTemplates, "templates")
	if err != nil {
		panic(err)
	}
	return &Generator{builder: builder, templates: sub}
}

// OutputPath returns the project directory under baseDir.
func (g *Generator) OutputPath(baseDir string) string {
	return filepath.Join(baseDir, g.builder.ProjectSlug)
}

/**
 * Generate the project skeleton
 * @param {string} baseDir - Directory to create the project in
 * @param {bool} force - Overwrite an existing project directory
 * @returns {(*GenerationReport, error)} Returns report of the run, or error
 * @description
 * - Renders every template file of the selection into <baseDir>/<slug>
 * - Writes a .stackforge.json manifest tagged with the run ID
 * @throws
 * - ErrOutputExists when the directory exists and force is false
 * - Template parsing/rendering errors
 * - Filesystem errors
 */
func (g *Generator) Generate(baseDir string, force bool) (*GenerationReport, error) {
	projectDir := g.OutputPath(baseDir)
	if _, err := os.Stat(projectDir); err == nil && !force {
		return nil, fmt.Errorf("%w: %s", ErrOutputExists, projectDir)
	}

	report := &GenerationReport{
		RunID:       uuid.NewString(),
		ProjectName: g.builder.ProjectName,
		ProjectPath: projectDir,
		Components:  g.builder.Components(),
		GeneratedAt: time.Now(),
	}
	ctx := g.builder.TemplateContext()

	logger.Infof("Generation run %s: project '%s' -> %s", report.RunID, report.ProjectName, projectDir)

	for _, file := range g.builder.TemplateFiles() {
		if err := g.renderFile(file, projectDir, ctx); err != nil {
			return nil, err
		}
		report.Files = append(report.Files, file)
	}

	if err := g.writeManifest(projectDir, report); err != nil {
		return nil, err
	}

	return report, nil
}

// renderFile renders one embedded template to its place in the project tree.
func (g *Generator) renderFile(file, projectDir string, ctx map[string]interface{}) error {
	raw, err := fs.ReadFile(g.templates, file)
	if err != nil {
		return fmt.Errorf("template '%s' not found: %w", file, err)
	}

	tmpl, err := template.New(file).Parse(string(raw))
	if err != nil {
		return fmt.Errorf("failed to parse template '%s': %w", file, err)
	}

	target := filepath.Join(projectDir, file)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create directory for '%s': %w", file, err)
	}

	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create '%s': %w", target, err)
	}
	defer out.Close()

	if err := tmpl.Execute(out, ctx); err != nil {
		return fmt.Errorf("failed to render '%s': %w", file, err)
	}
	return nil
}

// writeManifest records the generation run inside the project directory.
func (g *Generator) writeManifest(projectDir string, report *GenerationReport) error {
	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	manifest := filepath.Join(projectDir, ".stackforge.json")
	if err := os.WriteFile(manifest, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
