package root

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/conorfennell/versekeep/internal/app"
	"github.com/conorfennell/versekeep/internal/cardstore"
	"github.com/conorfennell/versekeep/internal/config"
	"github.com/conorfennell/versekeep/internal/progress"
)

const Version = "0.1.0"

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "versekeep",
		Short:         "Memorize scripture with spaced repetition",
		Long:          "versekeep keeps a local deck of Bible verse flashcards, schedules reviews and tracks study streaks and badges.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	config.AddFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newServeCmd(),
		newAddCmd(),
		newImportCmd(),
		newKitsCmd(),
		newDueCmd(),
		newReviewCmd(),
		newDeleteCmd(),
		newProgressCmd(),
	)
	return rootCmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error: "+err.Error())
		os.Exit(1)
	}
}

// openApp loads the configuration from the command's flags and opens the
// application. Logs go to the command's error stream.
func openApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}
	return app.New(cmd.Context(), cfg, cmd.ErrOrStderr())
}

func printChange(w io.Writer, ch cardstore.Change) {
	if ch.Outcome.PointsAdded > 0 {
		fmt.Fprintf(w, "+%d points\n", ch.Outcome.PointsAdded)
	}
	for _, id := range ch.Outcome.NewBadges {
		fmt.Fprintf(w, "Badge earned: %s\n", progress.Describe(id).Label)
	}
}
