// Command braggi is the reference driver for the WFCCC compiler core: it
// reads one source file, runs it through pkg/compile, writes the output
// adapter's text rendering to stdout or to the --output file (or, when the
// --output path ends in .svg, an SVG field/region visualization), and
// reports diagnostics to stderr (spec.md §6).
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iregaddr/braggi/pkg/compile"
	"github.com/iregaddr/braggi/pkg/config"
	"github.com/iregaddr/braggi/pkg/output"
	"github.com/iregaddr/braggi/pkg/visualize"
)

// Exit codes, per spec.md §6.
const (
	exitSuccess         = 0
	exitCompilationFail = 1
	exitUsage           = 2
	exitIO              = 3
)

var rootCmd = &cobra.Command{
	Use:   "braggi [options] <input-file>",
	Short: "Compile a Braggi source file through the WFCCC entropy field engine.",
	Args:  cobra.ExactArgs(1),
	Run:   runCompile,
}

func init() {
	rootCmd.Flags().StringP("output", "o", "", "write a rendering to FILE instead of stdout (.svg renders a field diagram; any other extension is plain text)")
	rootCmd.Flags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.Flags().IntP("optimization", "O", 0, "optimization level 0-3")
	rootCmd.Flags().Bool("no-stdlib", false, "disable the built-in declaration-header pattern rule")
	rootCmd.Flags().Int("tick-budget", 0, "abort after this many observe-collapse-propagate steps (0 = unbounded)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitUsage)
	}
}

func flagInt(cmd *cobra.Command, name string) int {
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}

	return v
}

func flagBool(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}

	return v
}

func flagString(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}

	return v
}

func runCompile(cmd *cobra.Command, args []string) {
	if flagBool(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}

	cfg := config.Default()
	cfg.Stdlib = !flagBool(cmd, "no-stdlib")
	cfg.OptimizationLevel = flagInt(cmd, "optimization")
	cfg.TickBudget = flagInt(cmd, "tick-budget")

	if cfg.OptimizationLevel < 0 || cfg.OptimizationLevel > 3 {
		fmt.Fprintf(os.Stderr, "invalid optimization level %d\n", cfg.OptimizationLevel)
		os.Exit(exitUsage)
	}

	path := args[0]

	contents, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading %s: %s\n", path, err)
		os.Exit(exitIO)
	}

	result := compile.File(path, contents, cfg)

	outPath := flagString(cmd, "output")
	writeErr := writeResult(result, outPath)

	// Diagnostics are printed after compiling *and* writing, so a Fatal
	// raised by the output adapter itself (an uncollapsed cell reaching
	// it) is included in the same report, per spec.md §7.
	result.Reporter.WriteText(os.Stderr)

	if writeErr != nil {
		fmt.Fprintf(os.Stderr, "writing output: %s\n", writeErr)
		os.Exit(exitIO)
	}

	if result.Reporter.HasErrors() {
		os.Exit(exitCompilationFail)
	}

	os.Exit(exitSuccess)
}

func writeResult(result compile.Result, outPath string) error {
	if strings.EqualFold(filepath.Ext(outPath), ".svg") {
		return writeSVG(result, outPath)
	}

	te := output.NewTextEmitter()
	if err := compile.Emit(result, te); err != nil {
		// Propagation incomplete or a similarly fatal adapter failure has
		// already been reported as a Diagnostic; nothing further to emit.
		return nil
	}

	if outPath == "" {
		fmt.Println(te.String())
		return nil
	}

	return os.WriteFile(outPath, []byte(te.String()), 0o644)
}

func writeSVG(result compile.Result, outPath string) error {
	opts := visualize.DefaultOptions()

	var svg []byte
	if result.Tree != nil {
		opts.Title = "Region Tree"
		svg = visualize.RenderRegionTree(result.Tree, opts)
	} else {
		opts.Title = "Entropy Field"
		svg = visualize.RenderField(result.Field, opts)
	}

	return os.WriteFile(outPath, svg, 0o644)
}
