// Command formdiff compares two folders of form screenshots, pairing files by
// name, and reports which pairs differ in content or focused element.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"formdiff/internal/batch"
	"formdiff/internal/compare"
	"formdiff/internal/config"
	"formdiff/internal/cvfocus"
	"formdiff/internal/focus"
	"formdiff/internal/header"
	"formdiff/internal/ocr/tesseract"
	"formdiff/internal/report"
	"formdiff/internal/version"
)

const appTitle = "formdiff"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	output := flag.String("o", "", "Output JSON file for results")
	htmlPath := flag.String("html", "comparison_report.html", "HTML report path (empty to skip)")
	configPath := flag.String("config", "", "YAML configuration file")
	workers := flag.Int("workers", 0, "Parallel comparisons (0 = one per CPU)")
	fields := flag.Bool("fields", false, "Report per-field differences")
	verbose := flag.Bool("verbose", false, "List texts found in only one version and log progress")
	langs := flag.String("lang", "", "Comma-separated Tesseract languages (default eng,jpn)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <folder1> <folder2>\n\n", appTitle)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	folderA, folderB := flag.Arg(0), flag.Arg(1)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Flags given on the command line win over file and environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "workers":
			cfg.Workers = *workers
		case "fields":
			cfg.FieldDiff = *fields
		case "verbose":
			cfg.Verbose = *verbose
		case "lang":
			cfg.Languages = config.SplitList(*langs)
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	log.Printf("Starting %s: %s vs %s", version.String(), folderA, folderB)

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	observer := compare.NewLogObserver(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := batch.NewRunner(newFactory(cfg, observer), cfg.Workers)
	rep, err := runner.Run(ctx, folderA, folderB)
	if rep == nil {
		log.Fatalf("Comparison failed: %v", err)
	}
	if err != nil {
		log.Printf("Comparison stopped early: %v", err)
	}

	printReport(rep)

	if *htmlPath != "" && len(rep.Results) > 0 {
		if err := report.SaveHTML(*htmlPath, rep); err != nil {
			log.Fatalf("Failed to write HTML report: %v", err)
		}
		log.Printf("HTML report saved to %s", *htmlPath)
	}

	if *output != "" {
		if err := report.SaveJSON(*output, rep.Results); err != nil {
			log.Fatalf("Failed to save results: %v", err)
		}
		log.Printf("Results saved to %s", *output)
	}
}

// newFactory builds one comparator per worker, each with its own Tesseract
// client and OpenCV detector.
func newFactory(cfg *config.Config, observer compare.Observer) batch.Factory {
	return func() (*compare.Comparator, func(), error) {
		engine, err := tesseract.NewEngine(cfg.Languages...)
		if err != nil {
			return nil, nil, err
		}
		cropper := header.NewCropper(cfg.HeaderParams())
		detector := cvfocus.NewDetector(focus.DefaultParams(), cropper)

		c := compare.NewComparator(cfg.CompareOptions(), cropper, engine, detector)
		c.SetObserver(observer)
		return c, func() { engine.Close() }, nil
	}
}

func printReport(rep *batch.Report) {
	for _, name := range rep.Missing {
		fmt.Printf("Skipping %s - not found in %s\n", name, rep.FolderB)
	}

	for _, r := range rep.Results {
		status := "PASS"
		if !r.OverallMatch {
			status = "FAIL"
		}
		fmt.Printf("\n%s: %s\n", status, r.ImageName)
		fmt.Printf("  Text match:  %s (%.1f%%)\n", mark(r.TextMatch), r.TextSimilarity*100)
		for _, d := range r.TextDifferences {
			fmt.Printf("    - %s\n", d)
		}
		fmt.Printf("  Focus match: %s\n", mark(r.FocusMatch))
		if !r.FocusMatch && r.FocusDetails.Message != "" {
			fmt.Printf("    - %s\n", r.FocusDetails.Message)
		}
		for _, fd := range r.FieldDifferences {
			fmt.Printf("    * %s at (%d,%d)\n", fd.Description, fd.Position.X, fd.Position.Y)
		}
	}

	for _, f := range rep.Failures {
		fmt.Printf("\nERROR: %v\n", f)
	}

	fmt.Printf("\n%s\nSUMMARY (run %s, %s)\n%s\n", strings.Repeat("=", 60), rep.RunID, rep.Duration.Round(time.Millisecond), strings.Repeat("=", 60))
	fmt.Printf("Total compared: %d\n", len(rep.Results))
	fmt.Printf("Passed: %d\n", rep.Passed())
	fmt.Printf("Failed: %d\n", rep.Failed())
	if len(rep.Failures) > 0 {
		fmt.Printf("Errors: %d\n", len(rep.Failures))
	}
}

func mark(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}
