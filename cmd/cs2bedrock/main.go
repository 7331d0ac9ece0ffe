package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"cs2bedrock/internal/batch"
	"cs2bedrock/internal/config"
	"cs2bedrock/internal/convert"
	"cs2bedrock/internal/format"
	"cs2bedrock/internal/logging"
	"cs2bedrock/internal/preview"
	"cs2bedrock/internal/texture"

	"go.uber.org/zap"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to a JSON or YAML config file")
	in := flag.String("in", "", "Convert a single file instead of a directory")
	out := flag.String("out", "", "Output file for -in (default: next to the input)")
	reverse := flag.Bool("reverse", false, "With -in, convert Bedrock .geo.json back to a CraftStudio tree")
	identifier := flag.String("identifier", "", "Geometry identifier for -in (default: from the model title)")
	atlas := flag.String("atlas", "", "Texture atlas for the -in preview")
	dir := flag.String("dir", "", "Input directory for batch mode (default: .)")
	outDir := flag.String("output", "", "Output directory for batch mode (default: <dir>/bedrock)")
	workers := flag.Int("workers", 0, "Number of concurrent conversions (default: NumCPU)")
	withPreview := flag.Bool("preview", false, "Also render a preview image per model")
	previewFormat := flag.String("preview-format", "", "Preview image format: webp, png or tga (default: webp)")
	force := flag.Bool("force", false, "Convert every model even if unchanged since the last run")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error (default: info)")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		InputDir:      *dir,
		OutputDir:     *outDir,
		Workers:       *workers,
		Preview:       *withPreview,
		PreviewFormat: *previewFormat,
		Force:         *force,
		LogLevel:      *logLevel,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *in != "" {
		var err error
		if *reverse {
			err = reverseFile(*in, *out, logger)
		} else {
			err = convertFile(cfg, *in, *out, *identifier, *atlas, logger)
		}
		if err != nil {
			logger.Error("convert failed", zap.String("input", *in), zap.Error(err))
			logger.Sync()
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := batch.Run(ctx, cfg, logger)
	if err != nil {
		logger.Error("batch aborted", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	if len(results) == 0 {
		fmt.Println("No *.csmodel.json / *.csmodel.yaml files found.")
		return
	}

	// Count results
	var failed []batch.Result
	for _, r := range results {
		if !r.Success {
			failed = append(failed, r)
		}
	}
	fmt.Printf("Converted: %d/%d\n", len(results)-len(failed), len(results))
	if len(failed) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(failed))
		for _, r := range failed[:min(len(failed), 20)] {
			fmt.Printf("  %s: %s\n", r.Source, r.Error)
		}
		logger.Sync()
		os.Exit(1)
	}
}

func convertFile(cfg config.Config, in, out, identifier, atlasPath string, logger *zap.Logger) error {
	m, err := format.ReadCraftStudio(in)
	if err != nil {
		return err
	}
	if m.Title == "" {
		m.Title = batch.SourceStem(in)
	}
	geo, err := convert.ToBedrock(m, convert.Options{
		Identifier:    identifier,
		TextureWidth:  cfg.TextureWidth,
		TextureHeight: cfg.TextureHeight,
	})
	if err != nil {
		return err
	}

	if out == "" {
		out = filepath.Join(filepath.Dir(in), batch.SourceStem(in)+".geo.json")
	}
	if err := format.WriteBedrock(out, geo, cfg.FormatVersion); err != nil {
		return err
	}
	logger.Info("wrote geometry",
		zap.String("path", out),
		zap.String("identifier", geo.Identifier),
		zap.Int("bones", len(geo.Bones)),
		zap.Int("cubes", geo.CubeCount()))

	if !cfg.Preview {
		return nil
	}
	opts := preview.DefaultOptions()
	opts.Size, opts.Supersample = cfg.PreviewSize, cfg.Supersample
	opts.Yaw, opts.Pitch = *cfg.Yaw, *cfg.Pitch
	if atlasPath != "" {
		if opts.Atlas, err = texture.LoadAtlas(atlasPath); err != nil {
			return err
		}
	}
	img, err := preview.Render(geo, opts)
	if err != nil {
		return err
	}
	imgPath := strings.TrimSuffix(out, ".geo.json") + "." + cfg.PreviewFormat
	if err := preview.Save(imgPath, img); err != nil {
		return err
	}
	logger.Info("wrote preview", zap.String("path", imgPath))
	return nil
}

func reverseFile(in, out string, logger *zap.Logger) error {
	geo, err := format.ReadBedrock(in)
	if err != nil {
		return err
	}
	m, err := convert.ToCraftStudio(geo)
	if err != nil {
		return err
	}
	if out == "" {
		stem := strings.TrimSuffix(filepath.Base(in), ".geo.json")
		stem = strings.TrimSuffix(stem, filepath.Ext(stem))
		out = filepath.Join(filepath.Dir(in), stem+".csmodel.json")
	}
	if err := format.WriteCraftStudio(out, m); err != nil {
		return err
	}
	logger.Info("wrote craftstudio tree", zap.String("path", out), zap.Int("blocks", m.Count()))
	return nil
}
