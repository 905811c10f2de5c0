package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/handiism/pixiv-downloader/internal/config"
	"github.com/handiism/pixiv-downloader/internal/download"
	"github.com/handiism/pixiv-downloader/internal/pixiv"
)

func main() {
	// Command line flags
	var (
		urlFlag        = flag.String("url", "", "Pixiv URL to download (artwork or user profile)")
		outputFlag     = flag.String("output", "", "Output directory (overrides config)")
		configFlag     = flag.String("config", "", "Path to config file")
		subfoldersFlag = flag.Bool("subfolders", false, "One subfolder per post in gallery mode")
		workersFlag    = flag.Int("workers", 0, "Concurrent image downloads (overrides config)")
		verboseFlag    = flag.Bool("verbose", false, "Show verbose output")
		dryRunFlag     = flag.Bool("dry-run", false, "Resolve artworks without downloading")
	)

	flag.Parse()

	subfoldersSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "subfolders" {
			subfoldersSet = true
		}
	})

	// Load config
	configPath := *configFlag
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	settings, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Apply flags
	if *outputFlag != "" {
		settings.OutputPath = *outputFlag
	}
	if *workersFlag > 0 {
		settings.MaxConcurrentImages = *workersFlag
	}
	if subfoldersSet {
		settings.UsePostSubfolders = *subfoldersFlag
	}

	fmt.Println("🎨 Pixiv Downloader")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	// Get URL: flag, positional argument, or prompt
	stdin := bufio.NewReader(os.Stdin)
	url := *urlFlag
	if url == "" && flag.NArg() > 0 {
		url = flag.Arg(0)
	}
	interactive := false
	if url == "" {
		interactive = true
		fmt.Print("Enter pixiv URL (artwork or user): ")
		line, err := stdin.ReadString('\n')
		if err != nil {
			fmt.Fprintln(os.Stderr, "No URL given.")
			os.Exit(1)
		}
		url = strings.TrimSpace(line)
	}

	kind, _, err := pixiv.Classify(url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// In interactive gallery mode, ask about the folder layout unless
	// the flag already decided it.
	if interactive && kind == pixiv.KindUser && !subfoldersSet {
		fmt.Print("One subfolder per post? [y/N]: ")
		line, _ := stdin.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		settings.UsePostSubfolders = answer == "y" || answer == "yes"
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, finishing in-flight downloads...")
		cancel()
	}()

	// Create manager with progress callback
	manager := download.NewManager(settings, func(event download.ProgressEvent) {
		if event.Level == download.LevelVerbose && !*verboseFlag {
			return
		}

		prefix := ""
		switch event.Level {
		case download.LevelError:
			prefix = "❌ "
		case download.LevelWarning:
			prefix = "⚠️  "
		case download.LevelSuccess:
			prefix = "✅ "
		case download.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Println(prefix + event.Message)
	})

	if err := manager.Initialize(ctx, url); err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nCancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		os.Exit(1)
	}

	if *dryRunFlag {
		fmt.Println("\n[Dry run - not downloading]")
		for _, name := range manager.ArtworkNames() {
			fmt.Println("  ◆ " + name)
		}
		return
	}

	// Start downloads
	fmt.Println("\n📥 Starting downloads...")
	fmt.Println()

	downloadErr := manager.StartDownloads(ctx)

	// Archive whatever finished, even after an interrupt.
	zipPath, archiveErr := manager.Archive()
	if archiveErr != nil {
		fmt.Fprintf(os.Stderr, "Error archiving: %v\n", archiveErr)
	}

	received, filesReceived, filesTotal := manager.GetProgress()
	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("✨ Downloaded %d/%d images (%.2f MB)\n", filesReceived, filesTotal, float64(received)/1024/1024)
	if zipPath != "" {
		fmt.Printf("   Archive: %s\n", zipPath)
	}

	switch {
	case downloadErr != nil && ctx.Err() != nil:
		fmt.Println("\nDownload cancelled, partial results archived.")
		os.Exit(130)
	case downloadErr != nil:
		fmt.Fprintf(os.Stderr, "Error during download: %v\n", downloadErr)
		os.Exit(1)
	case archiveErr != nil:
		os.Exit(1)
	}
}
