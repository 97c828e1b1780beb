package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/tally/pkg/commands/options"
	"tableflip.dev/tally/pkg/runner/serve"
)

func addServe(topLevel *cobra.Command) {
	so := &options.ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local collections over HTTP.",
		Long: base.Wrap80("Serve the configured disk or sqlite collections over HTTP. " +
			"Other machines can point the http backend at this address."),
		Example: `
tally serve
tally serve --listen 0.0.0.0:8765
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

			listen := e.cfg.Listen
			if so.Listen != "" {
				listen = so.Listen
			}
			s := serve.Serve{
				Options:   e.cfg.RemoteOptions(),
				Listen:    listen,
				AccessLog: os.Stdout,
				Log:       e.log,
			}
			return s.Do(ctx)
		},
	}

	options.AddServeArgs(cmd, so)

	topLevel.AddCommand(cmd)
}
