// Command batchdemo opens a production table editor built on batchui: rows
// can be dragged within and between nested groups, undone and redone, and
// filtered with a fuzzy query.
//
//	batchdemo --rows 40 --search steel
//	batchdemo --config demo.toml --script drag.json -v
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/batchui"
	"github.com/phanxgames/batchui/internal/production"
)

type options struct {
	config  string
	script  string
	search  string
	rows    int
	verbose bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          "batchdemo",
		Short:        "Edit a nested production table with drag and drop",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if opts.verbose {
				level = log.DebugLevel
			}
			batchui.SetLogger(batchui.NewLogger(os.Stderr, level))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML config file")
	cmd.Flags().StringVar(&opts.script, "script", "", "JSON test script to replay")
	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "fuzzy filter applied to the table")
	cmd.Flags().IntVarP(&opts.rows, "rows", "n", 24, "number of sample rows")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func run(opts options) error {
	if opts.rows <= 0 {
		return fmt.Errorf("--rows must be positive, got %d", opts.rows)
	}
	cfg := batchui.DefaultConfig()
	if opts.config != "" {
		var err error
		if cfg, err = batchui.LoadConfig(opts.config); err != nil {
			return err
		}
	}
	if opts.verbose {
		cfg.Debug = true
	}

	font, err := batchui.LoadTTFFont(goregular.TTF, 14)
	if err != nil {
		return err
	}

	model := production.NewModel(production.Sample(opts.rows))
	if opts.search != "" {
		n := model.Search(opts.search)
		batchui.Logger().Info("filtered table", "query", opts.search, "matches", n)
	}

	a, err := newApp(cfg, model, font)
	if err != nil {
		return err
	}

	if opts.script != "" {
		data, err := os.ReadFile(opts.script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err := batchui.LoadTestScript(data)
		if err != nil {
			return err
		}
		runner.ExitWhenDone = true
		a.window.SetTestRunner(runner)
	}

	return a.window.Run()
}
