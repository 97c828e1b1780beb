package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/tally/pkg/commands/options"
	"tableflip.dev/tally/pkg/printers"
	"tableflip.dev/tally/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	lo := &options.ListOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recorded intervals grouped by day.",
		Long: base.Wrap80("List recorded intervals grouped by day, newest day first. " +
			"An interval that crosses midnight is shown under both days."),
		Example: `
tally list
tally list --since 1w --table
tally list --json
tally list -o yaml
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			since, err := lo.GetSince()
			if err != nil {
				return oo.HandleError(err)
			}
			output, err := lo.GetOutput(oo.JSON)
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

			l := list.List{
				Service: svc,
				Out:     cmd.OutOrStdout(),
				ShowID:  io.ShowID,
				Table:   lo.Table,
				Month:   lo.Month,
				Output:  printers.Format(output),
				Since:   since,
			}
			err = l.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	options.AddListArgs(cmd, lo)
	options.AddShowIDArgs(cmd, io)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
