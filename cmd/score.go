package cmd

import (
	"fmt"
	"os"

	"github.com/KattaAkshaya/smart-data-cleaner/internal/dataset"
	"github.com/KattaAkshaya/smart-data-cleaner/internal/quality"
	"github.com/KattaAkshaya/smart-data-cleaner/internal/utils"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var scJSON bool

var scoreCmd = &cobra.Command{
	Use:   "score <file>",
	Short: "Score a file's data quality without cleaning it",
	Long: `Score evaluates completeness, uniqueness, and consistency for a
tabular file and combines them into a 0-100 quality score. The file is
only read, never modified.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := dataset.ReadFile(args[0])
		if err != nil {
			return err
		}
		b := quality.Evaluate(ds)
		dupes := quality.DuplicateRows(ds)

		if scJSON {
			out, err := utils.PrettyJSON(struct {
				Source        string            `json:"source"`
				Rows          int               `json:"rows"`
				Columns       int               `json:"columns"`
				DuplicateRows int               `json:"duplicate_rows"`
				Breakdown     quality.Breakdown `json:"breakdown"`
				Score         float64           `json:"score"`
			}{ds.Source, ds.Rows(), ds.Cols(), dupes, b, b.Score()})
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		fmt.Printf("%s %d rows, %d columns\n", styleHeader.Render(ds.Source+":"), ds.Rows(), ds.Cols())
		t := newTable(os.Stdout)
		t.AppendHeader(table.Row{"METRIC", "VALUE"})
		t.AppendRow(table.Row{"Completeness", fmt.Sprintf("%.1f%%", 100*b.Completeness)})
		t.AppendRow(table.Row{"Uniqueness", fmt.Sprintf("%.1f%%", 100*b.Uniqueness)})
		t.AppendRow(table.Row{"Consistency", fmt.Sprintf("%.1f%%", 100*b.Consistency)})
		t.AppendRow(table.Row{"Duplicate rows", fmt.Sprintf("%d", dupes)})
		t.Render()
		fmt.Printf("Quality score: %s/100\n", renderScore(b.Score()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().BoolVar(&scJSON, "json", false, "print machine-readable JSON")
}
