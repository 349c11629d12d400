package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Mylezz/wiki-scripts/internal/config"
	"github.com/Mylezz/wiki-scripts/internal/manifest"
	"github.com/Mylezz/wiki-scripts/internal/verify"
)

// runVerify checks every local asset against the manifest's expected
// size and SHA-1 without downloading anything. Reports a summary and
// per-file findings for anything missing or mismatched.
func runVerify(args []string) int {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)

	configPath := fs.String("config", "", "YAML config file")
	manifestPath := fs.String("manifest", "", "Manifest file listing files to check")
	images := fs.String("images", "", "Asset location: directory or bucket URL")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: wikimirror verify [options]

Check that every manifest entry's local asset exists and matches its
expected size and SHA-1. Does not download anything.

Defaults: -manifest image_list.txt, -images images.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	// The verify pass needs no base URL, so full Validate is skipped.
	override := config.Config{
		Manifest: *manifestPath,
		Images:   *images,
	}

	cfg := config.Default()
	if *configPath != "" {
		fileCfg, err := config.LoadFromFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitInvalidArgs
		}
		cfg = fileCfg
	}
	if err := cfg.LoadFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}
	cfg = cfg.Merge(override)

	entries, err := manifest.Load(cfg.Manifest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitManifestError
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	assets, err := openBucket(ctx, cfg.Images)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitStorageError
	}
	defer assets.Close()

	verifier := verify.New(assets)

	var missing, mismatched int
	for _, entry := range entries {
		exists, err := verifier.Exists(ctx, entry.Filename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitStorageError
		}
		if !exists {
			missing++
			fmt.Printf("  - %s: missing\n", entry.Filename)
			continue
		}

		match, err := verifier.Matches(ctx, entry.Filename, entry.Size, entry.SHA1)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitStorageError
		}
		if !match {
			mismatched++
			fmt.Printf("  - %s: size/hash mismatch\n", entry.Filename)
		}
	}

	fmt.Printf("Files: %d\n", len(entries))
	fmt.Printf("Missing: %d\n", missing)
	fmt.Printf("Mismatched: %d\n", mismatched)

	if missing == 0 && mismatched == 0 {
		fmt.Println("Status: VALID")
		return ExitSuccess
	}

	fmt.Println("Status: INVALID")
	return ExitValidationFailed
}
