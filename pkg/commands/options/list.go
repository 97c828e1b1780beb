package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/tally/pkg/timeutil"
)

// ListOptions
type ListOptions struct {
	Table  bool
	Month  bool
	Output string
	Since  string
}

func AddListArgs(cmd *cobra.Command, o *ListOptions) {
	cmd.Flags().BoolVar(&o.Table, "table", false,
		"Show a table instead of grouped days.")
	cmd.Flags().BoolVarP(&o.Month, "month", "m", false,
		"Show the current month above the list.")
	cmd.Flags().StringVarP(&o.Output, "output", "o", "",
		"Output format. One of 'json' or 'yaml'.")
	cmd.Flags().StringVar(&o.Since, "since", "",
		`Only show intervals that ended within this span, example: --since=1w2d.`)
}

func (o *ListOptions) GetSince() (time.Duration, error) {
	return timeutil.ParseSpan(o.Since)
}

// GetOutput resolves --output against --json.
func (o *ListOptions) GetOutput(json bool) (string, error) {
	switch o.Output {
	case "":
		if json {
			return "json", nil
		}
		return "", nil
	case "json", "yaml":
		if json && o.Output != "json" {
			return "", fmt.Errorf("--json conflicts with --output=%s", o.Output)
		}
		return o.Output, nil
	}
	return "", fmt.Errorf("unknown output format %q", o.Output)
}
