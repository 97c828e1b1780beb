package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tally/pkg/tui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
tally ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadToFile()
			if err != nil {
				return err
			}
			defer e.Close()
			svc, err := e.open()
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), svc, e.log)
		},
	}

	topLevel.AddCommand(cmd)
}
