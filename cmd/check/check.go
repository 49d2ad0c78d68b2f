package check

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"stackforge/cmd/root"
	"stackforge/internal/config"
	"stackforge/internal/models"
	"stackforge/services"
)

var checkCmd = &cobra.Command{
	Use:           "check",
	Short:         "Run a one-shot health check",
	Long:          "Poll every registered component probe once and print the hierarchical status report. Exits with code 1 when any component is unhealthy.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(context.Background())
	},
}

func runCheck(ctx context.Context) error {
	system := services.NewSystemService(&config.Config.Health)
	health := services.NewHealthService(system)
	services.RegisterComponentChecks(health, &config.Config)

	status := health.PollAll(ctx)

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Component", "Healthy", "Response (ms)", "Message"})
	appendRows(tw, status.Components, "")
	tw.Render()

	fmt.Printf("\nOverall healthy: %v (%.1f%% of nodes healthy)\n",
		status.OverallHealthy, status.HealthPercentage())

	if !status.OverallHealthy {
		return errors.New("system unhealthy")
	}
	return nil
}

// appendRows walks the status trees in stable name order, prefixing nested
// components with their parent path.
func appendRows(tw table.Writer, components map[string]models.ComponentStatus, prefix string) {
	names := make([]string, 0, len(components))
	for name := range components {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		component := components[name]
		healthy := "yes"
		if !component.Healthy {
			healthy = "NO"
		}
		responseTime := "-"
		if component.ResponseTimeMs != nil {
			responseTime = fmt.Sprintf("%.1f", *component.ResponseTimeMs)
		}
		tw.AppendRow(table.Row{prefix + component.Name, healthy, responseTime, component.Message})
		appendRows(tw, component.SubComponents, prefix+component.Name+".")
	}
}

func init() {
	root.RootCmd.AddCommand(checkCmd)

	checkCmd.Example = `  stackforge check`
}
