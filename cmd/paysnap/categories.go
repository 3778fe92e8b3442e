package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/paysnap/internal/classification"
	"github.com/Veraticus/paysnap/internal/cli"
	"github.com/Veraticus/paysnap/internal/model"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Show the keyword table used for classification",
		Long: `Print the categories in evaluation order together with their keywords.
The first category with a keyword contained in the merchant name wins;
merchants matching nothing fall back to the default category.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for i, set := range classification.NewDefault().KeywordSets() {
				fmt.Fprintf(out, "%d. %s\n   %s\n",
					i+1,
					cli.SuccessStyle.Render(set.Category),
					cli.SubtleStyle.Render(strings.Join(set.Keywords, " ")))
			}
			fmt.Fprintln(out, cli.FormatInfo("default: "+model.CategoryOther))
			return nil
		},
	}
}
