package cmd

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/rncdiscover/rnc/core/javasrc"
)

// versionCmd shows the verbose version for diagnostic purposes.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of rnc.",
	Long: `Display version information including build details.

Shows:
- Release version
- Git commit hash
- Build timestamp
- Go runtime version
- Whether the Java parser for business-rule metrics is compiled in`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("rnc CLI\n")
		cmd.Printf("  Version: %s\n", version)
		cmd.Printf("  Commit:  %s\n", commit)
		cmd.Printf("  Built:   %s\n", date)
		cmd.Printf("  Runtime: %s\n", runtime.Version())
		cmd.Printf("  Parser:  %t\n", javasrc.Available())
	},
}
