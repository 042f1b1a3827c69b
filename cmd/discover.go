package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rncdiscover/rnc/core"
	"github.com/rncdiscover/rnc/core/javasrc"
	"github.com/rncdiscover/rnc/internal/history"
	"github.com/rncdiscover/rnc/internal/runlog"
)

// discoverCmd scans one project tree and writes the discovery reports.
var discoverCmd = &cobra.Command{
	Use:   "discover <project-path>",
	Short: "Scan a Java/JSF project and write the discovery reports.",
	Long: `Walk a Java/JSF project tree once and classify what it finds.

Produces:
- Entity / persistence classes (@Entity, @Table) with inferred table names
- Business components (@Named, @Controller, @Service, @RestController, @ManagedBean)
- JSF pages (.xhtml, .jsf)
- Database configuration hints in .properties, .xml, .yml and .yaml files
- Business-rule metrics per class, when the Java parser is available

Reports are written to <project>/output unless --output-dir is set:
- rnc-<project>.md   (always)
- rnc-<project>.xlsx (unless --xlsx=false)
- rnc-<project>.html (unless --html=false)

Examples:
  # Discover a project with default settings
  rnc discover ~/src/legacy-shop

  # Use the text classifier and skip the workbook
  rnc discover ~/src/legacy-shop --classifier text --xlsx=false

  # Machine-readable summary for scripting
  rnc discover ~/src/legacy-shop --summary json

  # Keep a run history in SQLite
  rnc discover ~/src/legacy-shop --history-backend sqlite`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		deps := core.Deps{
			Parser:  javasrc.New(),
			History: history.Manager.GetStore(),
			Log:     runlog.New(cfg.LogLevel, os.Stderr),
			Stdout:  os.Stdout,
		}
		defer history.CloseHistory()
		return core.ExecuteDiscover(rootCtx, cfg, deps)
	},
}
