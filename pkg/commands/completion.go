package commands

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(tally completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(tally completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// idCompletions offers interval ids, with their titles, for the first
// argument.
func idCompletions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	e, err := load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer e.Close()
	svc, err := e.open()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	if err := svc.Load(context.Background()); err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var ids []string
	for _, ev := range svc.Events() {
		id := strconv.FormatInt(ev.ID, 10)
		if strings.HasPrefix(id, toComplete) {
			ids = append(ids, id+"\t"+ev.Title)
		}
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}
