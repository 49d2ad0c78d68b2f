package registry

import (
	"fmt"
	"sort"
)

// Category classifies a component in the registry.
type Category string

const (
	CategoryCore           Category = "core"
	CategoryInfrastructure Category = "infrastructure"
)

/**
 * Static component definition (registry entry, immutable once loaded)
 * @property {string} name - Unique component identifier
 * @property {Category} category - core or infrastructure
 * @property {string} description - Human readable text
 * @property {[]string} requires - Components that must also be present
 * @property {[]string} recommends - Components suggested but not required
 * @property {[]string} docker_services - Docker services contributed when selected
 * @property {[]string} pyproject_deps - Package dependencies contributed when selected
 * @property {[]string} template_files - Template files contributed when selected
 */
type ComponentSpec struct {
	Name           string   `yaml:"name"`
	Category       Category `yaml:"category"`
	Description    string   `yaml:"description"`
	Requires       []string `yaml:"requires"`
	Recommends     []string `yaml:"recommends"`
	DockerServices []string `yaml:"docker_services"`
	PyprojectDeps  []string `yaml:"pyproject_deps"`
	TemplateFiles  []string `yaml:"template_files"`
}

/**
 * Component registry. Populated at construction time, read-only afterwards
 * in production; tests may build their own registries via NewFromSpecs.
 */
type Registry struct {
	specs map[string]ComponentSpec
	order []string
}

// New returns a registry holding the builtin component set.
func New() *Registry {
	reg, err := NewFromSpecs(builtinSpecs())
	if err != nil {
		// The builtin set is validated by tests, a bad one is a programming error
		panic(err)
	}
	return reg
}

/**
 * Build a registry from explicit specs, validating the dependency graph
 * @param {[]ComponentSpec} specs - Component definitions in listing order
 * @returns {(*Registry, error)} Returns registry, or error when a requires
 * edge points outside the registry or the graph has a cycle
 */
func NewFromSpecs(specs []ComponentSpec) (*Registry, error) {
	reg := &Registry{specs: make(map[string]ComponentSpec, len(specs))}
	for _, spec := range specs {
		if _, dup := reg.specs[spec.Name]; dup {
			return nil, fmt.Errorf("duplicate component '%s'", spec.Name)
		}
		reg.specs[spec.Name] = spec
		reg.order = append(reg.order, spec.Name)
	}
	for _, spec := range specs {
		for _, req := range spec.Requires {
			if _, ok := reg.specs[req]; !ok {
				return nil, fmt.Errorf("component '%s' requires unknown component '%s'", spec.Name, req)
			}
		}
	}
	if err := reg.checkAcyclic(); err != nil {
		return nil, err
	}
	return reg, nil
}

// checkAcyclic rejects cycles in the requires graph via coloring DFS.
func (r *Registry) checkAcyclic() error {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(r.specs))

	var visit func(name string) error
	visit = func(name string) error {
		color[name] = gray
		for _, req := range r.specs[name].Requires {
			switch color[req] {
			case gray:
				return fmt.Errorf("dependency cycle through component '%s'", req)
			case white:
				if err := visit(req); err != nil {
					return err
				}
			}
		}
		color[name] = black
		return nil
	}

	for _, name := range r.order {
		if color[name] == white {
			if err := visit(name); err != nil {
				return err
			}
		}
	}
	return nil
}

// Get returns the spec for a component name.
func (r *Registry) Get(name string) (ComponentSpec, bool) {
	spec, ok := r.specs[name]
	return spec, ok
}

// Names returns all component names in listing order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Specs returns all component specs in listing order.
func (r *Registry) Specs() []ComponentSpec {
	specs := make([]ComponentSpec, 0, len(r.order))
	for _, name := range r.order {
		specs = append(specs, r.specs[name])
	}
	return specs
}

// InfrastructureNames returns the optional component names in listing order.
func (r *Registry) InfrastructureNames() []string {
	var names []string
	for _, name := range r.order {
		if r.specs[name].Category == CategoryInfrastructure {
			names = append(names, name)
		}
	}
	return names
}

/**
 * Validate component names against the registry
 * @param {[]string} names - Requested component names
 * @returns {[]string} Returns one error string per unknown name, empty means valid
 * @description
 * - Does not mutate any state and never fails hard, callers decide how to
 *   surface the errors
 */
func (r *Registry) Validate(names []string) []string {
	var errs []string
	for _, name := range names {
		if _, ok := r.specs[name]; !ok {
			errs = append(errs, fmt.Sprintf("unknown component '%s'", name))
		}
	}
	return errs
}

/**
 * Resolve a requested component set to its closure under requires
 * @param {[]string} names - Validated component names, any order
 * @returns {map[string]bool} Returns the closed set
 * @description
 * - Fixpoint expansion: scan the set and add missing requirements until a
 *   full pass adds nothing. Safe because the registry is acyclic (checked at
 *   load time). Input ordering cannot influence the result since membership
 *   is tracked in a set.
 */
func (r *Registry) Resolve(names []string) map[string]bool {
	resolved := make(map[string]bool, len(names))
	for _, name := range names {
		resolved[name] = true
	}

	for {
		added := false
		members := make([]string, 0, len(resolved))
		for name := range resolved {
			members = append(members, name)
		}
		for _, name := range members {
			for _, req := range r.specs[name].Requires {
				if !resolved[req] {
					resolved[req] = true
					added = true
				}
			}
		}
		if !added {
			return resolved
		}
	}
}

/**
 * List the components that resolution would auto-add
 * @param {[]string} names - Validated component names
 * @returns {[]string} Returns resolve(names) minus names, in registry listing
 * order. Used for user-facing messaging only.
 */
func (r *Registry) Missing(names []string) []string {
	requested := make(map[string]bool, len(names))
	for _, name := range names {
		requested[name] = true
	}
	resolved := r.Resolve(names)

	var missing []string
	for _, name := range r.order {
		if resolved[name] && !requested[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

/**
 * Collect recommendations for a resolved component set
 * @param {map[string]bool} resolved - Closed component set
 * @returns {[]string} Returns the union of every member's recommends, minus
 * components already in the set, sorted. Surfaced as a suggestion, never
 * auto-applied.
 */
func (r *Registry) Recommendations(resolved map[string]bool) []string {
	seen := make(map[string]bool)
	var recs []string
	for name := range resolved {
		for _, rec := range r.specs[name].Recommends {
			if !resolved[rec] && !seen[rec] {
				seen[rec] = true
				recs = append(recs, rec)
			}
		}
	}
	sort.Strings(recs)
	return recs
}
