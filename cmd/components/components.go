package components

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"stackforge/cmd/root"
	"stackforge/internal/config"
	"stackforge/internal/registry"
)

var componentsCmd = &cobra.Command{
	Use:          "components",
	Short:        "List the component registry",
	Long:         "List every component available for project generation, with dependencies and contributed services.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listComponents()
	},
}

func listComponents() error {
	reg, err := registry.Load(config.Config.Scaffold.RegistryOverlay)
	if err != nil {
		return fmt.Errorf("failed to load component registry: %w", err)
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Name", "Category", "Description", "Requires", "Recommends", "Docker Services"})
	for _, spec := range reg.Specs() {
		tw.AppendRow(table.Row{
			spec.Name,
			string(spec.Category),
			spec.Description,
			strings.Join(spec.Requires, ", "),
			strings.Join(spec.Recommends, ", "),
			strings.Join(spec.DockerServices, ", "),
		})
	}
	tw.Render()
	return nil
}

func init() {
	root.RootCmd.AddCommand(componentsCmd)

	componentsCmd.Example = `  stackforge components`
}
