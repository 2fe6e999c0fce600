package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/lecture-flow/internal/store"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs [id]",
	Short: "List recent runs, or show one run",
	Args:  cobra.MaximumNArgs(1),
	RunE:  listRuns,
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "number of runs to list")
}

func listRuns(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	if len(args) == 1 {
		r, err := st.Get(ctx, args[0])
		if err != nil {
			return err
		}
		printReport(r)
		return nil
	}

	runs, err := st.List(ctx, runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs yet.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tSTATUS\tSLIDES\tNO CLIP\tDECK")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%v\t%s\n",
			r.ID,
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			statusColor(r.Status).Sprint(r.Status),
			r.TotalSlides,
			r.FailedSlides,
			r.DeckPath,
		)
	}
	return tw.Flush()
}
