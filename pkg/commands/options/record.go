package options

import (
	"github.com/spf13/cobra"
)

// RecordOptions
type RecordOptions struct {
	Title string
}

func AddRecordArgs(cmd *cobra.Command, o *RecordOptions) {
	cmd.Flags().StringVarP(&o.Title, "title", "t", "",
		"Title for the recorded interval.")
}

// ExportOptions
type ExportOptions struct {
	Out string
}

func AddExportArgs(cmd *cobra.Command, o *ExportOptions) {
	cmd.Flags().StringVar(&o.Out, "out", "",
		"Write to this file instead of stdout.")
}

// ServeOptions
type ServeOptions struct {
	Listen string
}

func AddServeArgs(cmd *cobra.Command, o *ServeOptions) {
	cmd.Flags().StringVar(&o.Listen, "listen", "",
		"Address to listen on, overrides the listen config key.")
}
