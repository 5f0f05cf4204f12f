package root

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/conorfennell/versekeep/internal/config"
	"github.com/conorfennell/versekeep/internal/kits"
)

func newKitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kits",
		Short: "Browse and import starter kits",
	}
	cmd.AddCommand(newKitsListCmd(), newKitsAddCmd(), newKitsSyncCmd())
	return cmd
}

func newKitsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available starter kits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			p := a.Store.Progress()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tLABEL\tVERSES\tADDED")
			for _, k := range a.Kits.All() {
				added := ""
				if p.HasStarterKit(k.ID) {
					added = "yes"
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", k.ID, k.Label, len(k.Verses), added)
			}
			return tw.Flush()
		},
	}
}

func newKitsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <kit-id>",
		Short: "Import a starter kit's verses as cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			kit, ok := a.Kits.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown starter kit %q", args[0])
			}
			ch, err := a.Store.AddStarterKit(cmd.Context(), kit.ID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !ch.Applied {
				fmt.Fprintf(out, "%s was already added\n", kit.Label)
				return nil
			}
			fmt.Fprintf(out, "Added %d cards from %s\n", len(ch.Cards), kit.Label)
			printChange(out, ch)
			return nil
		},
	}
}

func newKitsSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync [source]",
		Short: "Clone or pull a git repository (or read a directory) of kit files",
		Long:  "Sync fetches kit files so later commands pick them up. Kits from kits_repo are loaded automatically once synced.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			source := cfg.KitsRepo
			if len(args) == 1 {
				source = args[0]
			}
			if source == "" {
				return errors.New("no kit source given and kits_repo is not configured")
			}

			loaded, err := kits.Sync(cmd.Context(), source, cfg.ReposDir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Synced %d starter kits from %s\n", len(loaded), source)
			return nil
		},
	}
}
