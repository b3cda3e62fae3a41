package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/nkuzmik/slidedistill/internal/config"
	"github.com/nkuzmik/slidedistill/internal/store"
	"github.com/nkuzmik/slidedistill/internal/utils"
)

// Options holds the configuration for the distill command
type Options struct {
	InputDir   string
	OutputPath string
	Animation  int
	NewSlide   int
	Workers    int
	NoCache    bool
	Archive    bool
}

var (
	// Cfg carries environment defaults. It is a var initializer, not an
	// init() assignment, so it is ready before any file's init() registers
	// flags that use it for defaults.
	Cfg = mustLoadConfig()
	// dbURL is the archive connection string
	dbURL string
	// verbose lowers the slog level to debug
	verbose bool
)

func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		utils.Die("Invalid environment configuration", err)
	}
	return cfg
}

// Version is the application version.
const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:     "slidedistill",
	Short:   "Lecture Screenshot Deduplication & PDF Assembly",
	Version: Version, // This enables the --version flag
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		lvl := slog.LevelWarn
		if verbose || Cfg.Verbose {
			lvl = slog.LevelDebug
		}
		slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: lvl})))
	},
}

func Execute() {
	// Create a context that listens for Ctrl+C (SIGINT) or Kill (SIGTERM)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// This tells Cobra not to print the version in the help text, which is cleaner.
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", Cfg.DatabaseURL, "PostgreSQL connection string for the run archive")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// archiveURL resolves the archive connection string: the --db flag first,
// then the POSTGRES_* environment, then empty (archive disabled).
func archiveURL() string {
	if dbURL != "" {
		return dbURL
	}
	if host := os.Getenv("POSTGRES_HOST"); host != "" {
		user := os.Getenv("POSTGRES_USER")
		pass := os.Getenv("POSTGRES_PASSWORD")
		name := os.Getenv("POSTGRES_DB")
		port := os.Getenv("POSTGRES_PORT")
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf("postgres://%s:%s@%s:%s/%s", user, pass, host, port, name)
	}
	return ""
}

// openArchive connects to the run archive or exits. Commands that can work
// without an archive must check archiveURL() themselves before calling this.
func openArchive(ctx context.Context) *store.Store {
	url := archiveURL()
	if url == "" {
		utils.Die("No archive database configured (use --db or POSTGRES_HOST)", nil)
	}
	db, err := store.New(ctx, url)
	if err != nil {
		utils.Die("Failed to connect to archive database", err)
	}
	return db
}
