package scaffold

import (
	"sort"
	"strings"

	"stackforge/internal/registry"
)

/**
 * Context builder turns a resolved component selection into the flat
 * key/value context consumed by the template renderer
 */
type ContextBuilder struct {
	ProjectName string
	ProjectSlug string

	// Ordered selection including core components; first-seen order drives
	// the aggregation of docker services and template files.
	components []string
	reg        *registry.Registry
}

/**
 * Create new context builder instance
 * @param {string} projectName - Name of the project being generated
 * @param {[]string} components - Resolved component names in selection order
 *   (optional components only, core is prepended here)
 * @param {*registry.Registry} reg - Component registry to read specs from
 * @returns {*ContextBuilder} New context builder instance
 */
func NewContextBuilder(projectName string, components []string, reg *registry.Registry) *ContextBuilder {
	return &ContextBuilder{
		ProjectName: projectName,
		ProjectSlug: Slugify(projectName),
		components:  withCore(components),
		reg:         reg,
	}
}

// Slugify derives the project slug used for directories and identifiers.
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "_", "-")
	return slug
}

// withCore prepends the always-on core components, keeping selection order
// for the rest and dropping duplicates.
func withCore(components []string) []string {
	out := append([]string(nil), registry.CoreComponents...)
	seen := make(map[string]bool, len(out))
	for _, name := range out {
		seen[name] = true
	}
	for _, name := range components {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// Components returns the full ordered selection including core.
func (b *ContextBuilder) Components() []string {
	return append([]string(nil), b.components...)
}

func (b *ContextBuilder) selected(name string) bool {
	for _, c := range b.components {
		if c == name {
			return true
		}
	}
	return false
}

/**
 * Generate the template context from the component selection
 * @returns {map[string]interface{}} Returns all template variables
 * @description
 * - One yes/no flag per registry optional component, emitted whether or not
 *   the component is selected (absent means "no")
 * - Derived flags are recomputed from the selection on every call, never
 *   cached
 */
func (b *ContextBuilder) TemplateContext() map[string]interface{} {
	ctx := map[string]interface{}{
		"project_name": b.ProjectName,
		"project_slug": b.ProjectSlug,
	}

	// Component flags for template conditionals, yes/no strings
	for _, name := range b.reg.InfrastructureNames() {
		flag := "no"
		if b.selected(name) {
			flag = "yes"
		}
		ctx["include_"+name] = flag
	}

	// Derived flags for template logic
	ctx["has_background_infrastructure"] = b.selected("worker") || b.selected("scheduler")
	ctx["needs_redis"] = b.selected("redis")

	ctx["selected_components"] = b.Components()
	ctx["docker_services"] = b.DockerServices()
	ctx["pyproject_dependencies"] = b.PyprojectDeps()

	return ctx
}

/**
 * Collect all docker services needed by the selection
 * @returns {[]string} Service names in first-seen order, deduplicated.
 * Two components may request the same backing service; it appears once, at
 * the position of its first contributor.
 */
func (b *ContextBuilder) DockerServices() []string {
	var services []string
	seen := make(map[string]bool)
	for _, name := range b.components {
		spec, ok := b.reg.Get(name)
		if !ok {
			continue
		}
		for _, svc := range spec.DockerServices {
			if !seen[svc] {
				seen[svc] = true
				services = append(services, svc)
			}
		}
	}
	return services
}

/**
 * Collect all package dependencies of the selection
 * @returns {[]string} Sorted, deduplicated dependency list. Order has no
 * semantic meaning here, so canonical sorted order eases diffing.
 */
func (b *ContextBuilder) PyprojectDeps() []string {
	seen := make(map[string]bool)
	var deps []string
	for _, name := range b.components {
		spec, ok := b.reg.Get(name)
		if !ok {
			continue
		}
		for _, dep := range spec.PyprojectDeps {
			if !seen[dep] {
				seen[dep] = true
				deps = append(deps, dep)
			}
		}
	}
	sort.Strings(deps)
	return deps
}

/**
 * Collect the template files to render for the selection
 * @returns {[]string} File paths in first-seen order, deduplicated.
 * Independently callable for the dry-run preview before generation.
 */
func (b *ContextBuilder) TemplateFiles() []string {
	var files []string
	seen := make(map[string]bool)
	for _, name := range b.components {
		spec, ok := b.reg.Get(name)
		if !ok {
			continue
		}
		for _, file := range spec.TemplateFiles {
			if !seen[file] {
				seen[file] = true
				files = append(files, file)
			}
		}
	}
	return files
}
