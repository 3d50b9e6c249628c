package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"dirscope/internal/cache"
	"dirscope/internal/config"
	"dirscope/internal/model"
	"dirscope/internal/scanner"
	"dirscope/internal/session"
	ui "dirscope/internal/tui"
	"dirscope/pkg/utils"
)

var (
	flagConfig      string
	flagMinSize     int64
	flagShowAll     bool
	flagShowHidden  bool
	flagSortName    bool
	flagJSON        bool
	flagTUI         bool
	flagDryRun      bool
	flagConcurrency int
)

var rootCmd = &cobra.Command{
	Use:          "dirscope [path]",
	Short:        "Browse a directory tree by aggregate size, with cached scans and deletion",
	Args:         cobra.MaximumNArgs(1),
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&flagConfig, "config", "c", defaultConfigPath(), "config file path")
	f.Int64Var(&flagMinSize, "min-size", 0, "hide entries smaller than this many bytes (default 102400)")
	f.BoolVarP(&flagShowAll, "all", "a", false, "show entries below the size threshold")
	f.BoolVar(&flagShowHidden, "hidden", false, "show dot-entries")
	f.BoolVar(&flagSortName, "sort-name", false, "sort by name instead of size")
	f.BoolVar(&flagJSON, "json", false, "print one scan as JSON and exit")
	f.BoolVarP(&flagTUI, "tui", "t", true, "run the interactive browser")
	f.BoolVar(&flagDryRun, "dry-run", false, "simulate deletions without removing anything")
	f.IntVar(&flagConcurrency, "concurrency", 0, "workers for batch deletion (default from config)")
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "dirscope.yaml"
	}
	return filepath.Join(home, ".config", "dirscope", "config.yaml")
}

func run(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) == 1 {
		path = args[0]
	}
	absRoot, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	cfg, err := config.LoadConfig(flagConfig)
	if err != nil {
		return err
	}

	filter := cfg.Filter()
	if cmd.Flags().Changed("min-size") {
		filter.MinSize = flagMinSize
	}
	if cmd.Flags().Changed("all") {
		filter.ShowAll = flagShowAll
	}
	if cmd.Flags().Changed("hidden") {
		filter.ShowHidden = flagShowHidden
	}
	if cmd.Flags().Changed("sort-name") {
		filter.SortBySize = !flagSortName
	}
	concurrency := cfg.DeleteConcurrent
	if cmd.Flags().Changed("concurrency") && flagConcurrency > 0 {
		concurrency = flagConcurrency
	}

	sess := session.New(scanner.New(cache.New(cfg.CacheTTL())), filter)

	if flagTUI && !flagJSON {
		return ui.Run(sess, ui.Options{
			Root:            absRoot,
			RefreshInterval: cfg.RefreshInterval(),
			Concurrency:     concurrency,
			DryRun:          flagDryRun,
		})
	}

	start := time.Now()
	sess.SetRoot(absRoot)
	entries := sess.Entries()

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		payload := struct {
			Root      string            `json:"root"`
			TotalSize int64             `json:"totalSize"`
			Skipped   int               `json:"skipped"`
			Entries   []model.FileEntry `json:"entries"`
			Duration  string            `json:"duration"`
		}{Root: absRoot, TotalSize: sess.Total(), Skipped: sess.Skipped(), Entries: entries, Duration: time.Since(start).String()}
		return enc.Encode(payload)
	}

	fmt.Printf("dirscope scan\nroot: %s\nentries: %d\n", absRoot, len(entries))
	fmt.Println("----------------------------------------------")
	for _, e := range entries {
		marker := " "
		if e.IsDir {
			marker = "/"
		}
		fmt.Printf("%10s  %s%s\n", utils.HumanizeBytesCompact(e.Size), e.Name, marker)
	}
	fmt.Println("----------------------------------------------")
	fmt.Printf("Total size: %s\n", utils.HumanizeBytes(sess.Total()))
	if n := sess.Skipped(); n > 0 {
		fmt.Fprintf(os.Stderr, "warning: %d entries could not be read\n", n)
	}
	fmt.Printf("Duration: %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
