package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nkuzmik/slidedistill/internal/utils"
)

var (
	resetDB    bool
	resetCache bool
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset system state (Run Archive, Fingerprint Cache)",
	Long:  "Clears all data. By default, it resets everything. Use flags to clear specific components.",
	Run: func(cmd *cobra.Command, args []string) {
		// If no flags are set, default to clearing EVERYTHING
		if !resetDB && !resetCache {
			resetDB = true
			resetCache = true
		}

		reader := bufio.NewReader(os.Stdin)

		if resetDB {
			if archiveURL() == "" {
				fmt.Fprintln(os.Stderr, "⚠️  No archive database configured, skipping.")
			} else if confirm(reader, "⚠️  Are you sure you want to DROP all archive tables?") {
				fmt.Println("🗑️  Clearing Run Archive...")
				db := openArchive(cmd.Context())
				defer db.Close(context.Background())
				if err := db.Reset(cmd.Context()); err != nil {
					utils.Die("Failed to reset archive database", err)
				}
			}
		}

		if resetCache {
			if confirm(reader, "⚠️  Are you sure you want to delete the fingerprint cache?") {
				fmt.Println("🗑️  Clearing Fingerprint Cache...")
				removeFile(Cfg.ResolveCachePath())
			}
		}

		fmt.Println("✨ System Reset Complete.")
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetDB, "db", false, "Clear the PostgreSQL run archive")
	resetCmd.Flags().BoolVar(&resetCache, "cache", false, "Clear the local fingerprint cache")
	rootCmd.AddCommand(resetCmd)
}

func confirm(r *bufio.Reader, prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	res, _ := r.ReadString('\n')
	res = strings.TrimSpace(strings.ToLower(res))
	return res == "y" || res == "yes"
}

func removeFile(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "⚠️  Failed to remove %s: %v\n", path, err)
	}
}
