package root

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/conorfennell/versekeep/internal/bible"
	"github.com/conorfennell/versekeep/internal/domain"
	"github.com/conorfennell/versekeep/internal/parser"
	"github.com/conorfennell/versekeep/internal/progress"
	"github.com/conorfennell/versekeep/internal/validate"
)

func newAddCmd() *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "add <reference> <text>",
		Short: `Add a card, e.g. add "JHN 3:16" "For God so loved the world..."`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("a reference and the verse text are required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := bible.ParseReference(args[0])
			if err != nil {
				return err
			}
			if label == "" {
				label = ref.Label()
			}
			spec := domain.CardSpec{
				BookID:         ref.BookID,
				Chapter:        ref.Chapter,
				VerseStart:     ref.VerseStart,
				VerseEnd:       ref.VerseEnd,
				ReferenceLabel: label,
				Text:           strings.Join(args[1:], " "),
			}
			if err := validate.Struct(spec); err != nil {
				return err
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ch, err := a.Store.AddCards(cmd.Context(), []domain.CardSpec{spec})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Added %s (%s)\n", ch.Cards[0].ReferenceLabel, ch.Cards[0].ID)
			printChange(out, ch)
			return nil
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "", "Display label (defaults to the book name and verses)")
	return cmd
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file-or-dir>...",
		Short: "Import cards from R:/L:/T: verse list files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var specs []domain.CardSpec
			var errs []error
			files := 0

			for _, root := range args {
				err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
					if err != nil {
						return err // Propagate errors from WalkDir
					}
					if d.IsDir() {
						return nil
					}
					ext := strings.ToLower(filepath.Ext(d.Name()))
					if path != root && ext != ".md" && ext != ".txt" {
						return nil
					}
					files++
					fileSpecs, parseErr := parser.ParseFile(path)
					if parseErr != nil {
						errs = append(errs, fmt.Errorf("error parsing %s: %w", path, parseErr))
						return nil
					}
					specs = append(specs, fileSpecs...)
					return nil
				})
				if err != nil {
					return fmt.Errorf("error walking %s: %w", root, err)
				}
			}

			out := cmd.OutOrStdout()
			if len(errs) > 0 {
				fmt.Fprintln(out, "Errors:")
				for _, e := range errs {
					fmt.Fprintf(out, "- %s\n", e)
				}
				return fmt.Errorf("%d of %d files could not be parsed; nothing imported", len(errs), files)
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ch, err := a.Store.AddCards(cmd.Context(), specs)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Imported %d cards from %d files.\n", len(ch.Cards), files)
			printChange(out, ch)
			return nil
		},
	}
}

func newDueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "due",
		Short: "List the cards due for review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			due := a.Store.DueCards()
			out := cmd.OutOrStdout()
			if len(due) == 0 {
				fmt.Fprintln(out, "Nothing due. Well done!")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tREFERENCE\tTEXT")
			for _, c := range due {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", c.ID, c.ReferenceLabel, preview(c.Text, 60))
			}
			return tw.Flush()
		},
	}
}

func preview(text string, limit int) string {
	text = strings.Join(strings.Fields(text), " ")
	r := []rune(text)
	if len(r) <= limit {
		return text
	}
	return string(r[:limit-1]) + "…"
}

func newReviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "review <card-id> <again|good|easy>",
		Short: "Record how well you recalled a card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rating, err := domain.ParseRating(args[1])
			if err != nil {
				return err
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ch, err := a.Store.RecordReview(cmd.Context(), args[0], rating)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !ch.Applied {
				fmt.Fprintf(out, "No card with id %s\n", args[0])
				return nil
			}
			fmt.Fprintf(out, "Next review of %s: %s\n",
				ch.Cards[0].ReferenceLabel,
				ch.Review.NextReviewAt.In(a.Store.Location()).Format("Mon 2 Jan 15:04"))
			printChange(out, ch)
			return nil
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <card-id>",
		Short: "Delete a card and its review history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			removed, err := a.Store.DeleteCard(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if removed {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "No card with id %s\n", args[0])
			}
			return nil
		},
	}
}

func newProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show points, streak and badges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			p := a.Store.Progress()
			cards := a.Store.Cards()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Points:  %d\n", p.TotalPoints)
			fmt.Fprintf(out, "Streak:  %d day(s)\n", p.CurrentStreak)
			if p.LastStudyDate != "" {
				fmt.Fprintf(out, "Studied: %s\n", p.LastStudyDate)
			}
			fmt.Fprintf(out, "Cards:   %d (%d verses, %d due)\n", len(cards), domain.TotalVerses(cards), len(a.Store.DueCards()))
			fmt.Fprintln(out, "Badges:")
			for _, b := range progress.Catalog(p, a.Kits.All()) {
				mark := " "
				if b.Earned {
					mark = "x"
				}
				fmt.Fprintf(out, "  [%s] %s\n", mark, b.Label)
			}
			return nil
		},
	}
}
