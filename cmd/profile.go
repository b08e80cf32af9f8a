package cmd

import (
	"fmt"
	"os"

	"github.com/KattaAkshaya/smart-data-cleaner/internal/dataset"
	"github.com/KattaAkshaya/smart-data-cleaner/internal/profile"
	"github.com/KattaAkshaya/smart-data-cleaner/internal/utils"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var prJSON bool

var profileCmd = &cobra.Command{
	Use:   "profile <file>",
	Short: "Show per-column type and statistics for a file",
	Long: `Profile classifies every column (numeric, categorical, text, or
empty) and prints missing counts plus numeric statistics including the
quartiles and IQR outlier bounds the cleaning pipeline would use.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := dataset.ReadFile(args[0])
		if err != nil {
			return err
		}
		profs := profile.Columns(ds)

		if prJSON {
			out, err := utils.PrettyJSON(profs)
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		fmt.Printf("%s %d rows, %d columns\n", styleHeader.Render(ds.Source+":"), ds.Rows(), ds.Cols())
		t := newTable(os.Stdout)
		t.AppendHeader(table.Row{"COLUMN", "KIND", "MISSING", "DISTINCT", "MIN", "MEDIAN", "MAX", "IQR BOUNDS"})
		for _, p := range profs {
			kind := string(p.Kind)
			if p.Mixed {
				kind = styleCaution.Render(kind + " (mixed)")
			}
			minV, medV, maxV, bounds := "-", "-", "-", "-"
			if p.Kind == profile.KindNumeric {
				minV = profile.FormatNumber(p.Min)
				medV = profile.FormatNumber(p.Median)
				maxV = profile.FormatNumber(p.Max)
				bounds = fmt.Sprintf("[%s, %s]", profile.FormatNumber(p.LowerBound), profile.FormatNumber(p.UpperBound))
			}
			t.AppendRow(table.Row{
				p.Name,
				kind,
				fmt.Sprintf("%d (%.1f%%)", p.Missing, 100*p.MissingFrac),
				p.Distinct,
				minV, medV, maxV, bounds,
			})
		}
		t.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().BoolVar(&prJSON, "json", false, "print machine-readable JSON")
}
