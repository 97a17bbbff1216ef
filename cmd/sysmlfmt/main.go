// Command sysmlfmt is a thin flag-parsing wrapper around package pipeline.
// Argument parsing and process wiring are the CLI's job, not the module's;
// this file exists only so the pipeline has a runnable front end.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/viant/sysml/pipeline"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("sysmlfmt", flag.ContinueOnError)

	var (
		parseOnly     = fs.Bool("parse-only", false, "stop after parsing and import resolution; skip rendering")
		noResolve     = fs.Bool("no-resolve", false, "disable the import resolver")
		strictImports = fs.Bool("strict-imports", false, "report missing imports as errors")
		verbose       = fs.Bool("verbose", false, "print progress notes")
		recursive     = fs.Bool("recursive", false, "treat inputs as directories to walk")
		dryRun        = fs.Bool("dry-run", false, "compute output without writing it")
		outputFormat  = fs.String("format", "sysml", "output format: none, json, sysml")
		libraryPaths  = fs.String("library-paths", "", "colon-separated library search paths")
		selectPattern = fs.String("select", "", "comma-separated query patterns to select")
		deletePattern = fs.String("delete", "", "comma-separated query patterns to delete")
		configPath    = fs.String("config", "", "path to a YAML config file")
		maxErrors     = fs.Int("max-errors", 0, "stop after this many errors (0 = unlimited)")
		treatWarnErr  = fs.Bool("treat-warnings-as-errors", false, "elevate warnings to errors for exit code")
		colorMode     = fs.String("color", "auto", "diagnostic color mode")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := pipeline.Config{}
	if *configPath != "" {
		loaded, err := pipeline.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		cfg = *loaded
	}

	cfg.Inputs = fs.Args()
	cfg.ParseOnly = cfg.ParseOnly || *parseOnly
	cfg.NoResolve = cfg.NoResolve || *noResolve
	cfg.StrictImports = cfg.StrictImports || *strictImports
	cfg.Verbose = cfg.Verbose || *verbose
	cfg.Recursive = cfg.Recursive || *recursive
	cfg.DryRun = cfg.DryRun || *dryRun
	cfg.OutputFormat = pipeline.OutputFormat(*outputFormat)
	cfg.TreatWarningsAsErrors = cfg.TreatWarningsAsErrors || *treatWarnErr
	cfg.ColorMode = *colorMode
	if *maxErrors > 0 {
		cfg.MaxErrors = *maxErrors
	}
	if *libraryPaths != "" {
		cfg.LibraryPaths = append(cfg.LibraryPaths, strings.Split(*libraryPaths, ":")...)
	}
	if *selectPattern != "" {
		cfg.SelectPatterns = append(cfg.SelectPatterns, strings.Split(*selectPattern, ",")...)
	}
	if *deletePattern != "" {
		cfg.DeletePatterns = append(cfg.DeletePatterns, strings.Split(*deletePattern, ",")...)
	}

	p := pipeline.New(cfg, nil)
	outputs, err := p.Run(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if !cfg.DryRun {
		for _, out := range outputs {
			if out.Data == nil {
				continue
			}
			if err := os.WriteFile(out.Name, out.Data, 0o644); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
		}
	}

	collector := p.Collector()
	for _, d := range collector.Items() {
		fmt.Fprintln(os.Stderr, d.String())
	}
	fmt.Fprintf(os.Stderr, "%d error(s), %d warning(s)\n", collector.ErrorCount(), collector.WarningCount())

	return collector.ExitCode()
}
