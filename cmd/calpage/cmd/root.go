// Package cmd implements the calpage command line, a thin shell over the calendar
// paginator for inspecting how a period splits into pages.
package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the calpage command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "calpage",
		Short: "Paginate a time period into calendar pages",
		Long: `calpage splits a [start, end] period into year, month, week or day pages
and prints the resolved page views with their labels.`,
		SilenceUsage: true,
	}
	root.AddCommand(newPagesCmd())
	return root
}

func Execute() error {
	return NewRootCmd().Execute()
}
