package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KattaAkshaya/smart-data-cleaner/internal/cleaner"
	"github.com/KattaAkshaya/smart-data-cleaner/internal/dataset"
	"github.com/KattaAkshaya/smart-data-cleaner/internal/pipeline"
	"github.com/KattaAkshaya/smart-data-cleaner/internal/report"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	clOutputPath string
	clFormat     string
	clReportPath string
	clDocPath    string
	clJSON       bool
	clQuiet      bool

	clNoDropEmpty bool
	clNoDedupe    bool
	clNoFill      bool
	clNoOutliers  bool
	clNoNormalize bool
	clNarrative   bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean <file>",
	Short: "Clean a CSV/TSV/XLSX file and report quality before and after",
	Long: `Clean runs the cleaning pipeline on a tabular file and writes the
cleaned data next to it (or to --output). Stages run in a fixed order:
drop empty columns, remove duplicate rows, fill missing values with the
column median or mode, clip outliers to the IQR bounds, and normalize
numeric-looking text. Individual stages can be switched off with the
--no-* flags.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		c := activeConfig()

		opts := c.Pipeline()
		applyStageFlags(cmd, &opts)

		if cmd.Flags().Changed("narrative") {
			c.NarrativeEnabled = clNarrative
		}

		ds, err := dataset.ReadFile(path)
		if err != nil {
			return err
		}
		if !clQuiet {
			fmt.Printf("⚙ Cleaning %s (%d rows, %d columns) ...\n", path, ds.Rows(), ds.Cols())
		}

		cl := cleaner.Cleaner{Options: opts, Narrative: c.Generator()}
		res, err := cl.Run(cmd.Context(), ds)
		if err != nil {
			return err
		}

		outPath, err := writeCleaned(res, path)
		if err != nil {
			return err
		}
		if !clQuiet {
			fmt.Printf("✓ Wrote cleaned data to %s\n", outPath)
		}

		if clJSON {
			b, err := res.Report.JSON()
			if err != nil {
				return err
			}
			fmt.Println(string(b))
		} else if !clQuiet {
			printRunSummary(res)
		}

		// Report exports come last: the cleaned data is already on disk
		// even if one of these fails.
		if clReportPath != "" {
			if err := saveReport(res.Report, clReportPath); err != nil {
				return err
			}
			if !clQuiet {
				fmt.Printf("✓ Wrote report to %s\n", clReportPath)
			}
		}
		if clDocPath != "" {
			if err := res.Report.SaveHTML(clDocPath); err != nil {
				return err
			}
			if !clQuiet {
				fmt.Printf("✓ Wrote report document to %s\n", clDocPath)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().StringVarP(&clOutputPath, "output", "o", "", "cleaned data path (default <input>_cleaned.<ext>)")
	cleanCmd.Flags().StringVar(&clFormat, "format", "csv", "cleaned data format: csv or xlsx")
	cleanCmd.Flags().StringVar(&clReportPath, "report", "", "write the run report (.json or .md by extension)")
	cleanCmd.Flags().StringVar(&clDocPath, "document", "", "write the HTML report document to this path")
	cleanCmd.Flags().BoolVar(&clJSON, "json", false, "print the report as JSON instead of the summary")
	cleanCmd.Flags().BoolVarP(&clQuiet, "quiet", "q", false, "suppress progress and summary output")
	cleanCmd.Flags().BoolVar(&clNoDropEmpty, "no-drop-empty", false, "skip dropping empty columns")
	cleanCmd.Flags().BoolVar(&clNoDedupe, "no-dedupe", false, "skip removing duplicate rows")
	cleanCmd.Flags().BoolVar(&clNoFill, "no-fill", false, "skip filling missing values")
	cleanCmd.Flags().BoolVar(&clNoOutliers, "no-outliers", false, "skip clipping outliers")
	cleanCmd.Flags().BoolVar(&clNoNormalize, "no-normalize", false, "skip normalizing numeric text")
	cleanCmd.Flags().BoolVar(&clNarrative, "narrative", true, "generate the AI narrative (needs an API key)")
}

// applyStageFlags folds --no-* flags into the configured stage toggles.
func applyStageFlags(cmd *cobra.Command, opts *pipeline.Options) {
	f := cmd.Flags()
	if f.Changed("no-drop-empty") && clNoDropEmpty {
		opts.DropEmptyColumns = false
	}
	if f.Changed("no-dedupe") && clNoDedupe {
		opts.RemoveDuplicates = false
	}
	if f.Changed("no-fill") && clNoFill {
		opts.FillMissing = false
	}
	if f.Changed("no-outliers") && clNoOutliers {
		opts.HandleOutliers = false
	}
	if f.Changed("no-normalize") && clNoNormalize {
		opts.NormalizeTypes = false
	}
}

// writeCleaned saves the cleaned dataset and returns the path written.
func writeCleaned(res *cleaner.Result, inputPath string) (string, error) {
	format := strings.ToLower(clFormat)
	ext := ".csv"
	if format == "xlsx" {
		ext = ".xlsx"
	} else if format != "csv" {
		return "", fmt.Errorf("unsupported output format: %s (use csv or xlsx)", clFormat)
	}

	outPath := clOutputPath
	if outPath == "" {
		outPath = cleanedPath(inputPath, ext)
	}
	if format == "xlsx" {
		return outPath, dataset.SaveXLSX(res.Dataset, outPath)
	}
	return outPath, dataset.SaveCSV(res.Dataset, outPath)
}

// cleanedPath derives <dir>/<base>_cleaned<ext> from the input path.
func cleanedPath(inputPath, ext string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	if base == "" {
		base = "dataset"
	}
	return filepath.Join(filepath.Dir(inputPath), base+"_cleaned"+ext)
}

// saveReport dispatches on the output extension.
func saveReport(rep *report.Report, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return rep.SaveMarkdown(path)
	case ".html":
		return rep.SaveHTML(path)
	default:
		return rep.SaveJSON(path)
	}
}

// printRunSummary writes the score movement, actions table, and
// narrative summary for one cleaning run.
func printRunSummary(res *cleaner.Result) {
	rep := res.Report
	fmt.Println()
	fmt.Printf("%s %s -> %s (%+.1f)\n", styleHeader.Render("Quality:"),
		renderScore(rep.ScoreBefore), renderScore(rep.ScoreAfter), rep.Improvement)
	fmt.Printf("Rows %d -> %d, columns %d -> %d\n", rep.RowsBefore, rep.RowsAfter, rep.ColsBefore, rep.ColsAfter)

	if len(rep.Actions) == 0 {
		fmt.Println(styleMuted.Render("No cleaning actions were needed."))
	} else {
		t := newTable(os.Stdout)
		t.AppendHeader(table.Row{"STAGE", "COLUMN", "COUNT"})
		for _, e := range rep.Actions {
			col := "-"
			if e.Column != nil {
				col = *e.Column
			}
			count := fmt.Sprintf("%d", e.Count)
			if e.Warning() {
				count = styleCaution.Render("⚠ " + e.Note)
			}
			t.AppendRow(table.Row{e.Stage, col, count})
		}
		t.Render()
	}

	if rep.Summary != "" {
		fmt.Println()
		fmt.Println(rep.Summary)
	}
}
