package batch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"cs2bedrock/internal/config"
	"cs2bedrock/internal/convert"
	"cs2bedrock/internal/format"
	"cs2bedrock/internal/logging"
	"cs2bedrock/internal/preview"
	"cs2bedrock/internal/texture"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Source files carry a double extension so that config and geometry files
// sharing the directory are left alone.
var sourceSuffixes = []string{".csmodel.json", ".csmodel.yaml", ".csmodel.yml"}

// Result holds the outcome of processing one source model.
type Result struct {
	Source     string // relative to the input dir
	Output     string // absolute .geo.json path
	Preview    string
	Identifier string
	Hash       string
	Bones      int
	Cubes      int
	Success    bool
	Skipped    bool // unchanged since the previous run
	Error      string
}

// SourceStem strips the directory and the CraftStudio suffix from a path.
func SourceStem(path string) string {
	base := filepath.Base(path)
	lower := strings.ToLower(base)
	for _, suf := range sourceSuffixes {
		if strings.HasSuffix(lower, suf) {
			return base[:len(base)-len(suf)]
		}
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Discover lists CraftStudio sources under inputDir, relative and sorted.
// The output directory is skipped when it lies inside the input.
func Discover(inputDir, outputDir string) ([]string, error) {
	outAbs, _ := filepath.Abs(outputDir)
	var found []string
	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if abs, _ := filepath.Abs(path); abs == outAbs && path != inputDir {
				return filepath.SkipDir
			}
			return nil
		}
		lower := strings.ToLower(d.Name())
		for _, suf := range sourceSuffixes {
			if strings.HasSuffix(lower, suf) {
				rel, err := filepath.Rel(inputDir, path)
				if err != nil {
					return err
				}
				found = append(found, filepath.ToSlash(rel))
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch: scan %s: %w", inputDir, err)
	}
	sort.Strings(found)
	return found, nil
}

type runner struct {
	cfg    config.Config
	prev   *Manifest
	atlas  *texture.Index
	cache  *texture.Cache
	logger *zap.Logger
}

// Run converts every source under cfg.InputDir with at most cfg.Workers
// conversions in flight, then writes the manifest. Per-file failures are
// reported in the results; the returned error is for cancellation and
// manifest I/O only. cfg must already be resolved.
func Run(ctx context.Context, cfg config.Config, logger *zap.Logger) ([]Result, error) {
	logger = logging.OrNop(logger)

	sources, err := Discover(cfg.InputDir, cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("batch: mkdir %s: %w", cfg.OutputDir, err)
	}

	manifestPath := filepath.Join(cfg.OutputDir, ManifestName)
	prev, err := LoadManifest(manifestPath)
	if err != nil {
		// A corrupt manifest only costs the incremental skip.
		logger.Warn("ignoring previous manifest", zap.Error(err))
		prev = &Manifest{}
	}

	r := &runner{cfg: cfg, prev: prev, logger: logger}
	if cfg.Preview {
		r.atlas = texture.BuildIndex(cfg.AtlasDir, cfg.OutputDir)
		r.cache = texture.NewCache()
	}

	runID := uuid.New()
	logger.Info("batch start",
		zap.String("run_id", runID.String()),
		zap.Int("sources", len(sources)),
		zap.Int("workers", cfg.Workers))

	total := len(sources)
	results := make([]Result, total)
	var processed atomic.Int64
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if p := processed.Load(); p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					logger.Info("progress", zap.Int64("done", p), zap.Int("total", total), zap.Float64("per_sec", rate))
				}
			}
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))
	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.processFile(src)
			processed.Add(1)
			return nil
		})
	}
	err = g.Wait()
	close(done)
	if err != nil {
		return results, fmt.Errorf("batch: %w", err)
	}

	m := &Manifest{
		RunID:         runID.String(),
		Generated:     time.Now().UTC(),
		FormatVersion: cfg.FormatVersion,
		Entries:       make([]ManifestEntry, 0, total),
	}
	var failed, skipped int
	for _, res := range results {
		if !res.Success {
			failed++
			logger.Warn("convert failed", zap.String("source", res.Source), zap.String("error", res.Error))
		}
		if res.Skipped {
			skipped++
		}
		m.Entries = append(m.Entries, r.entry(res))
	}
	if err := WriteManifest(manifestPath, m); err != nil {
		return results, err
	}

	logger.Info("batch done",
		zap.Int("converted", total-failed-skipped),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed),
		zap.Duration("elapsed", time.Since(start)))
	return results, nil
}

func (r *runner) entry(res Result) ManifestEntry {
	e := ManifestEntry{
		Source:     res.Source,
		Hash:       res.Hash,
		Identifier: res.Identifier,
		Bones:      res.Bones,
		Cubes:      res.Cubes,
		Error:      res.Error,
	}
	if res.Output != "" {
		e.Output = r.relOut(res.Output)
	}
	if res.Preview != "" {
		e.Preview = r.relOut(res.Preview)
	}
	return e
}

func (r *runner) relOut(path string) string {
	rel, err := filepath.Rel(r.cfg.OutputDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func (r *runner) outputPaths(src string) (geo, img string) {
	dir := filepath.Join(r.cfg.OutputDir, filepath.Dir(filepath.FromSlash(src)))
	stem := SourceStem(src)
	geo = filepath.Join(dir, stem+".geo.json")
	if r.cfg.Preview {
		img = filepath.Join(dir, stem+"."+r.cfg.PreviewFormat)
	}
	return geo, img
}

// unchanged reports whether the previous run already converted identical bytes
// and its outputs are still on disk.
func (r *runner) unchanged(src, hash, geo, img string) (ManifestEntry, bool) {
	if r.cfg.Force {
		return ManifestEntry{}, false
	}
	e, ok := r.prev.Lookup(src)
	if !ok || e.Hash != hash || e.Error != "" {
		return ManifestEntry{}, false
	}
	if e.Cubes == 0 {
		img = "" // nothing to draw, so no preview was written
	}
	for _, p := range []string{geo, img} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			return ManifestEntry{}, false
		}
	}
	return e, true
}

func (r *runner) processFile(src string) Result {
	res := Result{Source: src}
	path := filepath.Join(r.cfg.InputDir, filepath.FromSlash(src))

	data, err := os.ReadFile(path)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Hash = ContentHash(data)

	geoPath, imgPath := r.outputPaths(src)
	if e, ok := r.unchanged(src, res.Hash, geoPath, imgPath); ok {
		r.logger.Debug("unchanged", zap.String("source", src))
		res.Output = geoPath
		if e.Preview != "" {
			res.Preview = imgPath
		}
		res.Identifier, res.Bones, res.Cubes = e.Identifier, e.Bones, e.Cubes
		res.Success, res.Skipped = true, true
		return res
	}

	kind, err := format.KindFromPath(path)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	m, err := format.DecodeCraftStudio(bytes.NewReader(data), kind)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	if m.Title == "" {
		m.Title = SourceStem(src)
	}

	geo, err := convert.ToBedrock(m, convert.Options{
		TextureWidth:  r.cfg.TextureWidth,
		TextureHeight: r.cfg.TextureHeight,
	})
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Identifier = geo.Identifier
	res.Bones = len(geo.Bones)
	res.Cubes = geo.CubeCount()

	if err := os.MkdirAll(filepath.Dir(geoPath), 0o755); err != nil {
		res.Error = err.Error()
		return res
	}
	if err := format.WriteBedrock(geoPath, geo, r.cfg.FormatVersion); err != nil {
		res.Error = err.Error()
		return res
	}
	res.Output = geoPath

	if imgPath != "" {
		opts := preview.Options{
			Size:        r.cfg.PreviewSize,
			Supersample: r.cfg.Supersample,
			Yaw:         *r.cfg.Yaw,
			Pitch:       *r.cfg.Pitch,
			Fill:        preview.DefaultOptions().Fill,
			Atlas:       r.loadAtlas(src),
		}
		img, err := preview.Render(geo, opts)
		if errors.Is(err, preview.ErrNoCubes) {
			r.logger.Debug("no preview for empty model", zap.String("source", src))
			res.Success = true
			return res
		}
		if err == nil {
			err = preview.Save(imgPath, img)
		}
		if err != nil {
			res.Error = err.Error()
			return res
		}
		res.Preview = imgPath
	}

	res.Success = true
	return res
}

func (r *runner) loadAtlas(src string) *image.NRGBA {
	if r.atlas == nil {
		return nil
	}
	path, ok := r.atlas.ResolvePath(src)
	if !ok {
		return nil
	}
	img, err := r.cache.Load(path)
	if err != nil {
		r.logger.Warn("atlas unreadable", zap.String("path", path), zap.Error(err))
		return nil
	}
	return img
}
