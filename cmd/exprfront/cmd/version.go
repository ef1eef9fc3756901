package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/exprfront/pkg/core/version"
)

var versionOutput string

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()
		w := cmd.OutOrStdout()
		switch versionOutput {
		case "json":
			return writeJSON(w, info)
		case "yaml":
			return writeYAML(w, info)
		default:
			fmt.Fprintf(w, "exprfront v%s\n", info.Version)
			fmt.Fprintf(w, "  Language:   %s\n", info.Language)
			fmt.Fprintf(w, "  Git Commit: %s\n", info.Commit)
			fmt.Fprintf(w, "  Build Date: %s\n", info.BuildDate)
			fmt.Fprintf(w, "  Go Version: %s\n", info.GoVersion)
			fmt.Fprintf(w, "  OS/Arch:    %s\n", info.Platform)
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().StringVarP(&versionOutput, "output", "o", "text", "output format: text, json or yaml")
}
