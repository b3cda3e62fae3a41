package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nkuzmik/slidedistill/internal/utils"
)

var showCmd = &cobra.Command{
	Use:   "show <run_id>",
	Short: "Show the slide sequence of an archived run",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			utils.Die("Invalid run ID", err)
		}
		runShow(cmd.Context(), id)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(ctx context.Context, id int64) {
	db := openArchive(ctx)
	defer db.Close(context.Background())

	slides, err := db.GetSlides(ctx, id)
	if err != nil {
		utils.Die("Failed to load slides", err)
	}

	if len(slides) == 0 {
		fmt.Printf("No slides recorded for run %d.\n", id)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "#\tFRAME\tFINGERPRINT\tSOURCE")
	fmt.Fprintln(w, "-\t-----\t-----------\t------")

	for _, sl := range slides {
		fmt.Fprintf(w, "%d\t%d\t%016x\t%s\n", sl.Position+1, sl.FrameIndex, sl.Fingerprint, sl.Source)
	}
	w.Flush()
}
