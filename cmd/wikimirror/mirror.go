package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Mylezz/wiki-scripts/internal/config"
	"github.com/Mylezz/wiki-scripts/internal/errlog"
	"github.com/Mylezz/wiki-scripts/internal/manifest"
	"github.com/Mylezz/wiki-scripts/internal/mirror"
	"github.com/Mylezz/wiki-scripts/internal/progress"
	"github.com/Mylezz/wiki-scripts/internal/transport"
)

// runMirror downloads every manifest entry, verifying existing local
// copies against expected size/SHA-1 and re-fetching only stale or
// missing assets. Description documents are always refetched.
func runMirror(args []string) int {
	fs := flag.NewFlagSet("mirror", flag.ExitOnError)

	configPath := fs.String("config", "", "YAML config file")
	manifestPath := fs.String("manifest", "", "Manifest file listing files to mirror")
	baseURL := fs.String("base-url", "", "Base wiki URL, e.g. https://example.fandom.com (required)")
	images := fs.String("images", "", "Asset destination: directory or bucket URL")
	descs := fs.String("descs", "", "Description destination: directory or bucket URL")
	errorLog := fs.String("error-log", "", "File receiving one line per 404")
	workers := fs.Int("workers", 0, "Number of parallel download workers")
	timeout := fs.Duration("timeout", 0, "Per-request HTTP timeout")
	showProgress := fs.Bool("progress", false, "Show live progress output")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: wikimirror mirror [options]

Download every file listed in the manifest. Files whose local copy
already matches the manifest's size and SHA-1 are skipped; description
documents are refetched unconditionally. 404s are collected in the
error log instead of failing the run.

Defaults: -manifest image_list.txt, -images images, -descs descs,
-error-log error_log.txt, -workers 10, -timeout 30s.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	override := config.Config{
		Manifest: *manifestPath,
		BaseURL:  *baseURL,
		Images:   *images,
		Descs:    *descs,
		ErrorLog: *errorLog,
		Workers:  *workers,
		Timeout:  *timeout,
		Progress: *showProgress,
	}

	cfg, err := loadConfig(*configPath, override)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}

	entries, err := manifest.Load(cfg.Manifest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitManifestError
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals for a prompt stop
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\n[wikimirror] Received interrupt, shutting down...")
		cancel()
	}()

	assets, err := openBucket(ctx, cfg.Images)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitStorageError
	}
	defer assets.Close()

	descBucket, err := openBucket(ctx, cfg.Descs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitStorageError
	}
	defer descBucket.Close()

	sink := errlog.New(cfg.ErrorLog)
	if err := sink.Reset(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitStorageError
	}
	defer sink.Close()

	var reporter *progress.Reporter
	if cfg.Progress {
		reporter = progress.NewReporter(progress.Options{
			TotalFiles: len(entries),
			Workers:    cfg.Workers,
			Manifest:   cfg.Manifest,
		})
		reporter.Start()
		defer reporter.Stop()
	}

	fmt.Printf("Starting downloads for %d files...\n\n", len(entries))

	report := mirror.Run(ctx, entries, mirror.Options{
		Workers:  cfg.Workers,
		BaseURL:  cfg.BaseURL,
		Assets:   assets,
		Descs:    descBucket,
		Client:   transport.NewClient(transport.Options{Timeout: cfg.Timeout, MaxIdleConnsPerHost: cfg.Workers * 2}),
		Errors:   sink,
		Reporter: reporter,
	})

	if reporter != nil {
		reporter.Stop()
	}

	if ctx.Err() != nil {
		fmt.Fprintf(os.Stderr, "[wikimirror] Interrupted after %d of %d files\n", report.Processed, len(entries))
		return ExitGeneralError
	}

	fmt.Println("\nAll downloads completed.")

	if !report.OK() {
		fmt.Println("\nThe following errors occurred:")
		for _, e := range report.Errors {
			fmt.Println(" -", e)
		}
		fmt.Printf("\n404 errors were logged to %s.\n", cfg.ErrorLog)
		return ExitRunErrors
	}

	fmt.Println("\nAll files downloaded successfully.")
	return ExitSuccess
}

// loadConfig layers defaults, the optional YAML file, environment
// variables, and flag overrides, then validates the result.
func loadConfig(configPath string, override config.Config) (config.Config, error) {
	cfg := config.Default()

	if configPath != "" {
		fileCfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = fileCfg
	}

	if err := cfg.LoadFromEnv(); err != nil {
		return config.Config{}, err
	}

	cfg = cfg.Merge(override)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
