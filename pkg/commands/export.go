package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tally/pkg/commands/options"
	"tableflip.dev/tally/pkg/runner/export"
)

func addExport(topLevel *cobra.Command) {
	eo := &options.ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export intervals as an iCalendar file.",
		Example: `
tally export > tally.ics
tally export --out ~/tally.ics
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := load()
			if err != nil {
				return err
			}
			defer e.Close()
			svc, err := e.open()
			if err != nil {
				return err
			}

			x := export.Export{
				Service: svc,
				Out:     cmd.OutOrStdout(),
				Path:    eo.Out,
				Log:     e.log,
			}
			return x.Do(cmd.Context())
		},
	}

	options.AddExportArgs(cmd, eo)

	topLevel.AddCommand(cmd)
}
