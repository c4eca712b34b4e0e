package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"

	"autotimeline/internal/config"
	"autotimeline/internal/dataset"
	"autotimeline/internal/render"
	"autotimeline/internal/video"
	"autotimeline/pkg/logger"
	"autotimeline/pkg/metrics"
)

// options are the command line flags. Non-empty values win over config.
type options struct {
	configFile string
	dataset    string
	output     string
	svg        string
	active     string
	offline    bool
	debug      bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("autotimeline", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configFile, "config", "", "YAML configuration file (optional)")
	fs.StringVar(&opts.dataset, "dataset", "", "YAML or CSV file replacing the built-in cars (optional)")
	fs.StringVar(&opts.output, "output", "", "Output HTML filename (optional)")
	fs.StringVar(&opts.svg, "svg", "", "Output SVG filename (optional)")
	fs.StringVar(&opts.active, "active", "", "Render with this event selected (optional)")
	fs.BoolVar(&opts.offline, "offline", false, "Skip fetching video metadata")
	fs.BoolVar(&opts.debug, "debug", false, "Enable debug mode for verbose output")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [options]\n", fs.Name())
		fmt.Fprintf(stderr, "\nOptions:\n")
		fmt.Fprintf(stderr, "  --config <file>     YAML configuration file (optional)\n")
		fmt.Fprintf(stderr, "  --dataset <file>    YAML or CSV file replacing the built-in cars (optional)\n")
		fmt.Fprintf(stderr, "  --output <file>     Output HTML filename (optional)\n")
		fmt.Fprintf(stderr, "  --svg <file>        Output SVG filename (optional)\n")
		fmt.Fprintf(stderr, "  --active <id>       Render with this event selected (optional)\n")
		fmt.Fprintf(stderr, "  --offline           Skip fetching video metadata\n")
		fmt.Fprintf(stderr, "  --debug             Enable debug mode for verbose output\n")
		fmt.Fprintf(stderr, "\nEnvironment variables prefixed with %s override the config file.\n", config.EnvPrefix)
		fmt.Fprintf(stderr, "\nThe built-in cars carry placeholder video ids: thumbnails will not load and\n")
		fmt.Fprintf(stderr, "metadata fetches will fail. Pass --offline, or --dataset with real ids.\n")
		fmt.Fprintf(stderr, "\nExample:\n")
		fmt.Fprintf(stderr, "  %s --config config.yaml --output site/index.html --active torino-380w\n", fs.Name())
	}

	err := fs.Parse(args)
	return opts, err
}

// getOutputFilename prefers the flag over the configured path.
func getOutputFilename(flagValue, configured string) string {
	if flagValue != "" {
		return flagValue
	}
	return configured
}

func loadCars(path string) ([]dataset.Car, error) {
	if path == "" {
		return dataset.Builtin()
	}
	return dataset.LoadFile(path)
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if err := logger.InitWithWriter(stderr); err != nil {
		return err
	}

	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	level := cfg.LogLevel
	if opts.debug {
		level = "debug"
	}
	if err := logger.SetLevelString(level); err != nil {
		return fmt.Errorf("loading configuration: %w: %w", config.ErrInvalidConfig, err)
	}

	buildID := uuid.NewString()
	log := logger.Named("generator").With(logger.String("build_id", buildID))
	log.Debug(ctx, "configuration loaded",
		logger.Float64("label_width", cfg.Layout.LabelWidth),
		logger.Int("max_lanes", cfg.Layout.MaxLanes),
		logger.String("marker", cfg.Marker.Shape))

	cars, err := loadCars(getOutputFilename(opts.dataset, cfg.Dataset))
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}
	if len(cars) == 0 {
		log.Warn(ctx, "dataset is empty, rendering a bare timeline")
	}
	log.Info(ctx, "dataset loaded", logger.Int("events", len(cars)))

	m := metrics.NewManager()

	meta := map[string]*video.Metadata{}
	if cfg.Fetch.Enabled && !opts.offline {
		client := video.NewClient(
			video.WithEndpoint(cfg.Fetch.Endpoint),
			video.WithTimeout(cfg.Fetch.Timeout),
			video.WithConcurrency(cfg.Fetch.Concurrency),
			video.WithRecorder(m),
			video.WithLogger(logger.Named("video")),
		)
		ids := make([]string, 0, len(cars))
		for _, c := range cars {
			ids = append(ids, c.VideoID)
		}
		meta = client.FetchAll(ctx, ids)
		log.Info(ctx, "video metadata fetched", logger.Int("found", len(meta)), logger.Int("requested", len(ids)))
	} else {
		log.Debug(ctx, "video metadata fetch skipped")
	}

	start := time.Now()
	page := render.NewPage(cfg, cars,
		render.WithMetadata(meta),
		render.WithBuildID(buildID),
		render.WithLogger(logger.Named("render")),
	)
	defer page.Close()

	if err := page.Select(opts.active); err != nil {
		log.Warn(ctx, "ignoring --active", logger.Error(err))
	}

	var html bytes.Buffer
	if err := page.Render(&html); err != nil {
		return err
	}
	svg := page.TimelineSVG()

	res := page.Timeline().Result
	m.ObserveRender(time.Since(start))
	m.SetEventsRendered(len(res.Placements))
	m.RecordLabelFallbacks(res.Fallbacks)
	if res.Fallbacks > 0 {
		log.Warn(ctx, "labels fell back to lane 0 and may overlap", logger.Int("count", res.Fallbacks))
	}

	htmlPath := getOutputFilename(opts.output, cfg.Output.HTML)
	if err := writeFile(htmlPath, html.Bytes()); err != nil {
		return err
	}
	log.Info(ctx, "page written", logger.String("path", htmlPath))

	if svgPath := getOutputFilename(opts.svg, cfg.Output.SVG); svgPath != "" {
		if err := writeFile(svgPath, []byte(svg)); err != nil {
			return err
		}
		log.Info(ctx, "timeline written", logger.String("path", svgPath))
	}

	if cfg.Metrics.Textfile != "" {
		if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			log.Warn(ctx, "metrics textfile not written", logger.Error(err))
		}
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
