// Package main provides the CLI entry point for pinframe.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/pinframe/pkg/adapters/chromewindow"
	"github.com/user/pinframe/pkg/adapters/dirlock"
	"github.com/user/pinframe/pkg/adapters/ffmpegdecoder"
	"github.com/user/pinframe/pkg/adapters/ggrenderer"
	"github.com/user/pinframe/pkg/adapters/logger"
	"github.com/user/pinframe/pkg/adapters/mp4probe"
	"github.com/user/pinframe/pkg/adapters/osfilesystem"
	"github.com/user/pinframe/pkg/config"
	"github.com/user/pinframe/pkg/driver"
	"github.com/user/pinframe/pkg/keymap"
	"github.com/user/pinframe/pkg/overlay"
	"github.com/user/pinframe/pkg/ports"
	"github.com/user/pinframe/pkg/scan"
	"github.com/user/pinframe/pkg/session"
	"github.com/user/pinframe/pkg/summarizer"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "pinframe",
		Usage:     l10n.T("Annotate one point per frame in a directory of videos"),
		UsageText: "pinframe [options] <input-dir>",
		Version:   version,
		Flags: []cli.Flag{
			// Input and output
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    l10n.T("Directory containing the videos to annotate"),
				Category: l10n.T("Input and Output"),
			},
			&cli.StringFlag{
				Name:     "output-dir",
				Aliases:  []string{"o"},
				Usage:    l10n.T("Record directory, relative to the input directory unless absolute"),
				Category: l10n.T("Input and Output"),
			},
			&cli.StringSliceFlag{
				Name:     "ext",
				Usage:    l10n.T("Video file extension to include (repeatable)"),
				Category: l10n.T("Input and Output"),
			},
			&cli.StringFlag{
				Name:     "summary",
				Usage:    l10n.T("Output batch summary to file (Markdown format)"),
				Category: l10n.T("Input and Output"),
			},

			// Annotation
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    l10n.T("Configuration file (YAML or TOML)"),
				Category: l10n.T("Annotation"),
			},
			&cli.IntFlag{
				Name:     "frame-jump",
				Usage:    l10n.T("Initial number of frames moved per step"),
				Category: l10n.T("Annotation"),
			},

			// Tools
			&cli.StringFlag{
				Name:     "chrome-path",
				Usage:    l10n.T("Path to Chrome executable"),
				Category: l10n.T("Tools"),
			},
			&cli.StringFlag{
				Name:     "ffmpeg-path",
				Usage:    l10n.T("Path to ffmpeg executable"),
				Category: l10n.T("Tools"),
			},

			// Logging
			&cli.StringFlag{
				Name:     "log-level",
				Aliases:  []string{"l"},
				Value:    "info",
				Usage:    l10n.T("Log level (debug, info, warn, error)"),
				Category: l10n.T("Logging"),
			},
			&cli.BoolFlag{
				Name:     "quiet",
				Aliases:  []string{"Q"},
				Usage:    l10n.T("Suppress all log output"),
				Category: l10n.T("Logging"),
			},
		},
		Action: run,
	}
}

// run executes an annotation batch.
func run(c *cli.Context) error {
	input, err := inputDir(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	keys, err := keymap.New(cfg.Keys)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	// Create logger
	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(c.String("log-level")))
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Create adapters
	fs := osfilesystem.New()
	renderer := ggrenderer.New()
	decoder := ffmpegdecoder.New(ffmpegdecoder.Options{
		FFmpegPath: cfg.FFmpegPath,
		Probe:      mp4probe.New(),
		Logger:     log,
	})
	defer decoder.Close()
	window := chromewindow.New(renderer, log)

	// Create the annotation core
	sess := session.New(decoder, log, session.Options{FrameJump: cfg.FrameJump})
	composer := overlay.NewComposer(renderer, overlayStyle(cfg))

	ctrl := driver.New(driver.Deps{
		FileSystem: fs,
		Session:    sess,
		Window:     window,
		Composer:   composer,
		Keymap:     keys,
		Logger:     log,
		Lock: func(dir string) ports.DirLocker {
			return dirlock.New(dir)
		},
	}, driver.Options{
		Extensions: cfg.Extensions,
		OutputDir:  cfg.OutputDir,
		Window: ports.WindowOptions{
			Title:      cfg.Window.Title,
			Width:      cfg.Window.Width,
			Height:     cfg.Window.Height,
			ChromePath: cfg.Window.ChromePath,
			Format:     cfg.ImageFormat(),
			Quality:    cfg.Display.Quality,
		},
	})

	log.Info("Annotating videos in %s", input)

	result, runErr := ctrl.Run(ctx, input)

	var dirErr *scan.DirectoryError
	if errors.As(runErr, &dirErr) {
		return cli.Exit(dirErr.Error(), 1)
	}

	summary := summarizer.FromResult(result)
	if table := summarizer.NewTableFormatter(summarizer.WithTranslator(l10n.T)).Format(summary); table != "" {
		fmt.Fprintln(c.App.Writer, table)
	}

	if path := c.String("summary"); path != "" {
		formatter := summarizer.NewMarkdownFormatter(
			summarizer.WithTranslator(l10n.T),
			summarizer.WithVersion(version),
		)
		if err := summarizer.NewWriter(fs, formatter).Write(path, summary); err != nil {
			log.Error("Failed to write summary: %s", err.Error())
		} else {
			log.Info("Summary saved to %s", path)
		}
	}

	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

// inputDir returns the positional input directory, or --input when no
// argument is given.
func inputDir(c *cli.Context) (string, error) {
	if c.NArg() > 1 {
		return "", errors.New(l10n.T("Only one input directory can be given"))
	}
	if dir := c.Args().First(); dir != "" {
		return dir, nil
	}
	if dir := c.String("input"); dir != "" {
		return dir, nil
	}
	return "", errors.New(l10n.T("Input directory is required"))
}

// loadConfig builds the configuration from defaults, the config file and
// flags, in increasing priority.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if c.IsSet("frame-jump") {
		cfg.FrameJump = c.Int("frame-jump")
	}
	if c.IsSet("ext") {
		cfg.Extensions = c.StringSlice("ext")
	}
	if c.IsSet("output-dir") {
		cfg.OutputDir = c.String("output-dir")
	}
	if c.IsSet("chrome-path") {
		cfg.Window.ChromePath = c.String("chrome-path")
	}
	if c.IsSet("ffmpeg-path") {
		cfg.FFmpegPath = c.String("ffmpeg-path")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func overlayStyle(cfg config.Config) overlay.Style {
	return overlay.Style{
		MarkerRadius:   cfg.Marker.Radius,
		ExactColor:     config.ParseColor(cfg.Marker.ExactColor),
		InheritedColor: config.ParseColor(cfg.Marker.InheritedColor),
		TextColor:      config.ParseColor(cfg.Text.Color),
		FontSize:       cfg.Text.FontSize,
		FontPath:       cfg.Text.FontPath,
		Margin:         overlay.DefaultStyle().Margin,
		MaxWidth:       cfg.Display.MaxWidth,
		MaxHeight:      cfg.Display.MaxHeight,
	}
}
