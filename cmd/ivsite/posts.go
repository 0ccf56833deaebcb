package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ivs-digital/ivsite/content"
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List the blog catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := content.Load()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATE\tCATEGORY\tTITLE")
		for _, p := range catalog.Posts() {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.Published().Format("2006-01-02"), p.Category, p.Title)
		}
		return w.Flush()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the ivsite version",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ivsite %s\n", version)
	},
}
