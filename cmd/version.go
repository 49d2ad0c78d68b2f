package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"stackforge/cmd/root"
	"stackforge/internal/env"
)

var BuildTime = ""
var BuildCommitId = ""

func PrintVersions() {
	fmt.Printf("stackforge v%s\n", env.Version)
	if BuildTime != "" {
		fmt.Printf("Build Time: %s\n", BuildTime)
	}
	if BuildCommitId != "" {
		fmt.Printf("Build Commit ID: %s\n", BuildCommitId)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Long:  `The 'version' command shows version details including git commit and build time`,

	Run: func(cmd *cobra.Command, args []string) {
		PrintVersions()
	},
}

func init() {
	root.RootCmd.AddCommand(versionCmd)

	versionCmd.Example = `  stackforge version`
}
