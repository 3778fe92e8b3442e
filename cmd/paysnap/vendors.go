package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Veraticus/paysnap/internal/classification"
	"github.com/Veraticus/paysnap/internal/cli"
)

func vendorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vendors",
		Short: "Manage merchant category overrides",
		Long: `View, set and delete the merchant categories you corrected by hand.
Overrides take precedence over keyword classification.`,
	}

	cmd.AddCommand(vendorsListCmd())
	cmd.AddCommand(vendorsSetCmd())
	cmd.AddCommand(vendorsDeleteCmd())

	return cmd
}

func vendorsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := initStorage(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			vendors, err := store.GetAllVendors(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(vendors) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("No overrides yet."))
				return nil
			}
			for _, v := range vendors {
				fmt.Fprintf(out, "%s  %s  %s\n",
					cli.TableCellStyle.Render(v.Name),
					cli.SuccessStyle.Render(v.Category),
					cli.SubtleStyle.Render(string(v.Source)+" · used "+strconv.Itoa(v.UseCount)+" · "+v.LastUpdated.Local().Format(dateLayout)))
			}
			return nil
		},
	}
}

func vendorsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <merchant> <category>",
		Short: "Set the category for a merchant",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := initStorage(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			classifier := classification.NewDefault(classification.WithOverrideStore(store))
			if err := classifier.Override(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(args[0]+" → "+args[1]))
			return nil
		},
	}
}

func vendorsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <merchant>",
		Short: "Delete an override",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := initStorage(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteVendor(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Deleted override for "+args[0]))
			return nil
		},
	}
}
