package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/tally/pkg/commands/options"
	"tableflip.dev/tally/pkg/printers"
	"tableflip.dev/tally/pkg/runner/report"
	"tableflip.dev/tally/pkg/timeutil"
)

func addReport(topLevel *cobra.Command) {
	var window string
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Total recorded time per title.",
		Example: `
tally report
tally report --window 2w --show-id
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			if window == "" {
				window = timeutil.DefaultWindow
			}
			span, err := timeutil.ParseSpan(window)
			if err != nil {
				return oo.HandleError(err)
			}

			e, err := load()
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.Close()
			svc, err := e.open()
			if err != nil {
				return oo.HandleError(err)
			}

			r := report.Report{
				Service: svc,
				Out:     cmd.OutOrStdout(),
				Window:  span,
				ShowID:  io.ShowID,
			}
			if oo.JSON {
				r.Output = printers.FormatJSON
			}
			err = r.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	cmd.Flags().StringVarP(&window, "window", "w", timeutil.DefaultWindow,
		`Report window ending now, example: --window=1w2d.`)
	options.AddShowIDArgs(cmd, io)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
