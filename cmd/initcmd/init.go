package initcmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"stackforge/cmd/root"
	"stackforge/internal/config"
	"stackforge/internal/registry"
	"stackforge/internal/scaffold"
)

var (
	flagComponents    string
	flagInteractive   bool
	flagNoInteractive bool
	flagForce         bool
	flagOutputDir     string
	flagYes           bool
	flagDryRun        bool
)

var initCmd = &cobra.Command{
	Use:   "init PROJECT_NAME",
	Short: "Initialize a new project",
	Long: `Create a complete project skeleton with the chosen components, with all
component dependencies resolved and configurations generated to match.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit(args[0])
	},
}

func runInit(projectName string) error {
	reg, err := registry.Load(config.Config.Scaffold.RegistryOverlay)
	if err != nil {
		return fmt.Errorf("failed to load component registry: %w", err)
	}

	fmt.Println("Project Initialization")
	fmt.Println(strings.Repeat("=", 50))

	baseDir := flagOutputDir
	if baseDir == "" {
		baseDir, err = os.Getwd()
		if err != nil {
			return err
		}
	}

	// Parse components from the command line
	var requested []string
	if flagComponents != "" {
		for _, name := range strings.Split(flagComponents, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				requested = append(requested, name)
			}
		}
	}

	// Validation errors are fail-fast: nothing is generated past this point
	if errs := reg.Validate(requested); len(errs) > 0 {
		for _, msg := range errs {
			fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
		}
		fmt.Fprintf(os.Stderr, "Valid components: %s\n", strings.Join(reg.InfrastructureNames(), ", "))
		return errors.New("invalid component selection")
	}

	// Interactive component selection
	interactive := flagInteractive && !flagNoInteractive
	if interactive && len(requested) == 0 {
		fmt.Println("Select components for your project:")
		fmt.Println("  (Core components backend and frontend are always included)")
		fmt.Println()
		for _, name := range reg.InfrastructureNames() {
			spec, _ := reg.Get(name)
			if confirm(fmt.Sprintf("  Include %s? (%s)", name, spec.Description), false) {
				requested = append(requested, name)
			}
		}
	}

	// Close the selection under requires and report what was auto-added
	autoAdded := reg.Missing(requested)
	resolved := append(append([]string(nil), requested...), autoAdded...)
	recommendations := reg.Recommendations(reg.Resolve(requested))

	builder := scaffold.NewContextBuilder(projectName, resolved, reg)
	generator := scaffold.NewGenerator(builder)
	projectPath := generator.OutputPath(baseDir)

	fmt.Println()
	fmt.Printf("Project Name: %s\n", projectName)
	fmt.Printf("Project will be created in: %s\n", projectPath)
	fmt.Println("Project structure:")
	fmt.Println("  - Core: backend, frontend")
	if len(requested) > 0 {
		fmt.Printf("  - Selected components: %s\n", strings.Join(requested, ", "))
	} else {
		fmt.Println("  - No additional components selected")
	}
	if len(autoAdded) > 0 {
		fmt.Printf("  - Auto-added dependencies: %s\n", strings.Join(autoAdded, ", "))
	}
	if len(recommendations) > 0 {
		fmt.Printf("  - Recommended (not included): %s\n", strings.Join(recommendations, ", "))
	}

	fmt.Println()
	fmt.Println("Files to be generated:")
	for _, file := range builder.TemplateFiles() {
		fmt.Printf("  - %s\n", file)
	}

	fmt.Println()
	fmt.Println("Dependencies to be installed:")
	for _, dep := range builder.PyprojectDeps() {
		fmt.Printf("  - %s\n", dep)
	}

	if services := builder.DockerServices(); len(services) > 0 {
		fmt.Println()
		fmt.Printf("Docker services: %s\n", strings.Join(services, ", "))
	}

	if flagDryRun {
		fmt.Println()
		fmt.Println("Dry run, nothing generated")
		return nil
	}

	// Precondition check before any side effect
	if _, err := os.Stat(projectPath); err == nil {
		if !flagForce {
			fmt.Fprintf(os.Stderr, "Error: directory '%s' already exists\n", projectPath)
			fmt.Fprintln(os.Stderr, "Use --force to overwrite or choose a different name")
			return errors.New("output directory conflict")
		}
		fmt.Printf("Overwriting existing directory: %s\n", projectPath)
	}

	fmt.Println()
	if !flagYes && !confirm("Create this project?", true) {
		fmt.Println("Project creation cancelled")
		return nil
	}

	fmt.Printf("Creating project: %s\n", projectName)
	report, err := generator.Generate(baseDir, flagForce)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	fmt.Println("Project created successfully!")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  cd %s\n", filepath.Clean(report.ProjectPath))
	fmt.Println("  uv sync")
	fmt.Println("  cp .env.example .env")
	fmt.Println("  docker compose up")

	return nil
}

// confirm asks a yes/no question on stdin.
func confirm(prompt string, def bool) bool {
	suffix := "[y/N]"
	if def {
		suffix = "[Y/n]"
	}
	fmt.Printf("%s %s: ", prompt, suffix)

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return def
	}
}

func init() {
	root.RootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&flagComponents, "components", "c", "", "Comma-separated list of components (redis,worker,scheduler)")
	initCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", true, "Use interactive component selection")
	initCmd.Flags().BoolVar(&flagNoInteractive, "no-interactive", false, "Disable interactive component selection")
	initCmd.Flags().BoolVarP(&flagForce, "force", "f", false, "Overwrite existing directory if it exists")
	initCmd.Flags().StringVarP(&flagOutputDir, "output-dir", "o", "", "Directory to create the project in (default: current directory)")
	initCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip confirmation prompt")
	initCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Preview files and dependencies without generating")

	initCmd.Example = `  stackforge init my-app
  stackforge init my-app --components worker
  stackforge init my-app --components redis,worker,scheduler --no-interactive -y`
}
