package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/paysnap/internal/cli"
	"github.com/Veraticus/paysnap/internal/model"
	"github.com/Veraticus/paysnap/internal/storage"
)

func recordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "List captured records",
		Long: `List ledger records. Without --from/--to the current month is shown.
--category and --pay-method narrow the listing; --summary prints
per-category expense totals for the range instead.`,
		Args: cobra.NoArgs,
		RunE: runRecords,
	}

	cmd.Flags().String("from", "", "first day to include (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "last day to include (YYYY-MM-DD)")
	cmd.Flags().String("category", "", "only records in this category")
	cmd.Flags().String("pay-method", "", "only records paid through this channel")
	cmd.Flags().Bool("summary", false, "print category totals instead of records")

	cmd.AddCommand(recordsDeleteCmd())
	cmd.AddCommand(recordsEditCmd())

	return cmd
}

// recordFilter is the parsed form of the records flags.
type recordFilter struct {
	Category  string
	PayMethod string
	Range     model.DateRange
}

func parseRecordFilter(cmd *cobra.Command, now time.Time) (recordFilter, error) {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	category, _ := cmd.Flags().GetString("category")
	payMethod, _ := cmd.Flags().GetString("pay-method")

	f := recordFilter{
		Category:  category,
		PayMethod: payMethod,
		Range:     model.MonthRange(now),
	}

	if from != "" {
		start, err := parseDay(from)
		if err != nil {
			return f, err
		}
		f.Range.Start = start
		if to == "" {
			f.Range.End = model.DayRange(now).End
		}
	}
	if to != "" {
		end, err := parseDay(to)
		if err != nil {
			return f, err
		}
		f.Range.End = model.DayRange(end).End
	}
	if f.Range.End.Before(f.Range.Start) {
		return f, storage.ErrInvalidDateRange
	}
	return f, nil
}

// load fetches candidates through the most selective query and narrows
// them by the remaining filters.
func (f recordFilter) load(ctx context.Context, store *storage.SQLiteStorage) ([]model.ExpenseRecord, error) {
	var (
		records []model.ExpenseRecord
		err     error
	)
	switch {
	case f.Category != "":
		records, err = store.GetRecordsByCategory(ctx, f.Category)
	case f.PayMethod != "":
		records, err = store.GetRecordsByPayMethod(ctx, f.PayMethod)
	default:
		records, err = store.GetRecordsByDateRange(ctx, f.Range)
	}
	if err != nil {
		return nil, err
	}
	return f.apply(records), nil
}

// apply keeps the records matching every filter.
func (f recordFilter) apply(records []model.ExpenseRecord) []model.ExpenseRecord {
	kept := records[:0:0]
	for _, r := range records {
		if !f.Range.Contains(r.OccurredAt) {
			continue
		}
		if f.Category != "" && r.Category != f.Category {
			continue
		}
		if f.PayMethod != "" && r.PayMethod != f.PayMethod {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

func runRecords(cmd *cobra.Command, _ []string) error {
	filter, err := parseRecordFilter(cmd, time.Now())
	if err != nil {
		return err
	}
	summary, _ := cmd.Flags().GetBool("summary")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	store, err := initStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	out := cmd.OutOrStdout()
	title := fmt.Sprintf("%s ~ %s", filter.Range.Start.Format(dateLayout), filter.Range.End.Format(dateLayout))
	fmt.Fprintln(out, cli.FormatTitle(title))

	if summary {
		text, err := renderSummary(ctx, store, filter.Range)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, text)
		return nil
	}

	records, err := filter.load(ctx, store)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, cli.RenderRecords(records, cfg.Capture.TimestampLayout))
	return nil
}

func renderSummary(ctx context.Context, store *storage.SQLiteStorage, r model.DateRange) (string, error) {
	totals, err := store.GetCategoryTotals(ctx, r)
	if err != nil {
		return "", err
	}
	total, err := store.GetTotalExpense(ctx, r)
	if err != nil {
		return "", err
	}
	return cli.RenderSummary(totals, total), nil
}

func recordsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a record",
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

			if err := store.DeleteRecord(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Deleted "+args[0]))
			return nil
		},
	}
}

func recordsEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the category or remark of a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			store, err := initStorage(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			record, err := store.GetRecord(ctx, args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("category") {
				record.Category, _ = cmd.Flags().GetString("category")
			}
			if cmd.Flags().Changed("remark") {
				record.Remark, _ = cmd.Flags().GetString("remark")
			}
			if err := store.UpdateRecord(ctx, *record); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Updated "+args[0]))
			return nil
		},
	}

	cmd.Flags().String("category", "", "new category")
	cmd.Flags().String("remark", "", "new remark")

	return cmd
}
