package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KattaAkshaya/smart-data-cleaner/internal/cleaner"
	"github.com/KattaAkshaya/smart-data-cleaner/internal/dataset"
	"github.com/KattaAkshaya/smart-data-cleaner/internal/utils"
	"github.com/spf13/cobra"
)

var (
	baOutputDir string
	baReports   bool
	baQuiet     bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <files...>",
	Short: "Clean multiple CSV/TSV/XLSX files with progress output",
	Long: `Batch cleans every matched file with the configured pipeline.
Arguments may be files, glob patterns, or directories (directories are
expanded to the tabular files directly inside them). Files are cleaned
sequentially; a file that fails to clean is reported and skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := expandBatchArgs(args)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		sort.Strings(files)

		if baOutputDir != "" {
			if err := utils.EnsureDir(baOutputDir); err != nil {
				return err
			}
		}

		c := activeConfig()
		cl := cleaner.Cleaner{Options: c.Pipeline(), Narrative: c.Generator()}

		total := len(files)
		failed := 0
		for i, path := range files {
			if !baQuiet {
				fmt.Printf("[%d/%d] Cleaning %s...\n", i+1, total, filepath.Base(path))
			}
			if err := batchOne(cmd, cl, path); err != nil {
				failed++
				fmt.Fprintf(os.Stderr, "⚠ Skipping %s: %v\n", filepath.Base(path), err)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, total)
		}
		if !baQuiet {
			fmt.Printf("✓ Cleaned %d file(s)\n", total)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVar(&baOutputDir, "output-dir", "", "write cleaned files into this directory (default: next to each input)")
	batchCmd.Flags().BoolVar(&baReports, "reports", false, "also write a JSON report next to each cleaned file")
	batchCmd.Flags().BoolVar(&baQuiet, "quiet", false, "suppress progress and non-essential output")
}

// expandBatchArgs resolves globs, literal paths, and directories into a
// deduplicated file list.
func expandBatchArgs(args []string) ([]string, error) {
	var files []string
	seen := map[string]struct{}{}
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// treat as literal path if exists
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil {
				continue
			}
			if !info.IsDir() {
				add(m)
				continue
			}
			entries, err := os.ReadDir(m)
			if err != nil {
				return nil, fmt.Errorf("read directory %s: %w", m, err)
			}
			for _, e := range entries {
				if e.IsDir() {
					continue
				}
				if dataset.Supported(e.Name()) {
					add(filepath.Join(m, e.Name()))
				}
			}
		}
	}
	return files, nil
}

// batchOne cleans a single file and writes its outputs.
func batchOne(cmd *cobra.Command, cl cleaner.Cleaner, path string) error {
	res, err := cl.RunFile(cmd.Context(), path)
	if err != nil {
		return err
	}

	outPath := batchOutputPath(path, "_cleaned.csv")
	if err := dataset.SaveCSV(res.Dataset, outPath); err != nil {
		return err
	}
	if !baQuiet {
		fmt.Printf("  %s -> %s (quality %.1f -> %.1f)\n",
			filepath.Base(path), filepath.Base(outPath), res.Report.ScoreBefore, res.Report.ScoreAfter)
	}

	if baReports {
		repPath := batchOutputPath(path, "_report.json")
		if err := res.Report.SaveJSON(repPath); err != nil {
			return err
		}
	}
	return nil
}

// batchOutputPath places <base><suffix> in --output-dir or next to the
// input, choosing a numbered name when the target already exists so two
// inputs with the same basename cannot overwrite each other.
func batchOutputPath(inputPath, suffix string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	if base == "" {
		base = "dataset"
	}
	dir := filepath.Dir(inputPath)
	if baOutputDir != "" {
		dir = baOutputDir
	}
	out := filepath.Join(dir, base+suffix)
	if baOutputDir == "" {
		return out
	}
	if _, err := os.Stat(out); os.IsNotExist(err) {
		return out
	}
	idx := 2
	for {
		cand := filepath.Join(dir, fmt.Sprintf("%s__%d%s", base, idx, suffix))
		if _, err := os.Stat(cand); os.IsNotExist(err) {
			return cand
		}
		idx++
	}
}
