package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nkuzmik/slidedistill/internal/utils"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List archived distillation runs",
	Run: func(cmd *cobra.Command, args []string) {
		runRuns(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
}

func runRuns(ctx context.Context) {
	db := openArchive(ctx)
	defer db.Close(context.Background())

	runs, err := db.ListRuns(ctx)
	if err != nil {
		utils.Die("Failed to list runs", err)
	}

	if len(runs) == 0 {
		fmt.Println("No archived runs found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tINPUT\tFRAMES\tSLIDES\tOUTPUT\tCREATED")
	fmt.Fprintln(w, "--\t-----\t------\t------\t------\t-------")

	for _, r := range runs {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\t%s\n",
			r.ID, r.InputDir, r.FramesIn, r.SlidesOut, r.Output,
			r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	w.Flush()
}
