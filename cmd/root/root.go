package root

import (
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "stackforge",
	Short: "Project scaffolding and component health tooling",
	Long:  `stackforge generates multi-service application skeletons from a component registry and ships the runtime health aggregation used by generated projects`,
}
