package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/tally/pkg/commands/options"
	"tableflip.dev/tally/pkg/runner/record"
)

func addRecord(topLevel *cobra.Command) {
	ro := &options.RecordOptions{}

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record an interval in the foreground.",
		Long: base.Wrap80("Start the recorder and show the elapsed time. Press enter, " +
			"or interrupt, to stop and save the interval."),
		Example: `
tally record
tally record --title "code review"
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			e, err := load()
			if err != nil {
				return err
			}
			defer e.Close()
			svc, err := e.open()
			if err != nil {
				return err
			}

			r := record.Record{
				Service: svc,
				In:      cmd.InOrStdin(),
				Out:     cmd.OutOrStdout(),
				Title:   ro.Title,
				Log:     e.log,
			}
			return r.Do(ctx)
		},
	}

	options.AddRecordArgs(cmd, ro)

	topLevel.AddCommand(cmd)
}
