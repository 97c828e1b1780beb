package commands

import (
	"strings"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/tally/pkg/commands/options"
	"tableflip.dev/tally/pkg/runner/edit"
)

func addRename(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "rename <id> <title>",
		Short: "Change the title of an interval.",
		Example: `
tally rename 482913 "planning"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return cobra.MinimumNArgs(2)(cmd, args)
			}
			return io.ParseID(args[0])
		},
		ValidArgsFunction: idCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := load()
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.Close()
			svc, err := e.open()
			if err != nil {
				return oo.HandleError(err)
			}

			r := edit.Rename{
				Service: svc,
				Out:     cmd.OutOrStdout(),
				ID:      io.ID,
				Title:   strings.Join(args[1:], " "),
			}
			err = r.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addDelete(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an interval.",
		Example: `
tally delete 482913
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return err
			}
			return io.ParseID(args[0])
		},
		ValidArgsFunction: idCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := load()
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.Close()
			svc, err := e.open()
			if err != nil {
				return oo.HandleError(err)
			}

			d := edit.Delete{
				Service: svc,
				Out:     cmd.OutOrStdout(),
				ID:      io.ID,
			}
			err = d.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
