package glyphfit

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/glyphfit/config"
	"github.com/gogpu/glyphfit/density"
	"github.com/gogpu/glyphfit/glyph"
	"github.com/gogpu/glyphfit/gradient"
	"github.com/gogpu/glyphfit/internal/cache"
	"github.com/gogpu/glyphfit/internal/parallel"
	"github.com/gogpu/glyphfit/report"
	"github.com/gogpu/glyphfit/sdf"
	"github.com/gogpu/glyphfit/search"
)

// ErrClosed is returned by Engine methods after Close.
var ErrClosed = errors.New("glyphfit: engine closed")

// LoadFont reads a font file. An empty path returns the built-in Go Regular
// font.
func LoadFont(path string) ([]byte, error) {
	if path == "" {
		return goregular.TTF, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("glyphfit: %w", err)
	}
	return data, nil
}

// Engine measures a glyph set of one font.
//
// Glyphs are processed concurrently on a worker pool; the methods themselves
// may be called from several goroutines.
type Engine struct {
	cfg        *config.Config
	runes      []rune
	metrics    []density.Metric
	gapDensity density.Metric

	raster   *glyph.Rasterizer
	bearings *glyph.Metrics
	pool     *parallel.WorkerPool
	fields   *cache.Cache[rune, prepared]

	mu     sync.RWMutex
	closed bool
}

// New validates cfg and prepares fontData for rendering. A nil cfg selects
// config.Default.
func New(cfg *config.Config, fontData []byte) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	runes, err := cfg.Runes()
	if err != nil {
		return nil, err
	}
	metrics, err := cfg.DensityMetrics()
	if err != nil {
		return nil, err
	}
	gapDensity, err := density.ByName(cfg.Gaps.DensityMetric)
	if err != nil && cfg.Gaps.Metric == config.GapMetricMargin {
		return nil, err
	}

	raster, err := glyph.NewRasterizer(fontData, cfg.Font.Options)
	if err != nil {
		return nil, err
	}
	bearings, err := glyph.LoadMetrics(fontData)
	if err != nil {
		_ = raster.Close()
		return nil, err
	}

	if cfg.Output.Dir != "" && (cfg.Output.SDF || cfg.Output.Traces) {
		if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
			_ = raster.Close()
			return nil, fmt.Errorf("glyphfit: output dir: %w", err)
		}
	}

	return &Engine{
		cfg:        cfg,
		runes:      runes,
		metrics:    metrics,
		gapDensity: gapDensity,
		raster:     raster,
		bearings:   bearings,
		pool:       parallel.NewWorkerPool(cfg.Workers),
		fields:     cache.New[rune, prepared](len(runes)),
	}, nil
}

// Config returns the engine configuration. It must not be modified.
func (e *Engine) Config() *config.Config {
	return e.cfg
}

// FontName returns the name recorded in the font.
func (e *Engine) FontName() string {
	return e.raster.Name()
}

// Close stops the worker pool and releases the font face.
// Close is safe to call multiple times.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	e.pool.Close()
	return e.raster.Close()
}

// Run step-scans every glyph for every configured metric and target.
func (e *Engine) Run(ctx context.Context) (*RunReport, error) {
	rep := &RunReport{Font: e.FontName(), Glyphs: make([]GlyphReport, len(e.runes))}
	err := e.forEach(ctx, func(i int, r rune) error {
		gr, err := e.runGlyph(r)
		if err != nil {
			return err
		}
		rep.Glyphs[i] = gr
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rep, nil
}

// Validate measures every metric over the rectangle implied by each glyph's
// recorded left side bearing: columns [center-lsb, center) over the full
// canvas height.
func (e *Engine) Validate(ctx context.Context) (*ValidationReport, error) {
	rep := &ValidationReport{Font: e.FontName(), Glyphs: make([]ValidationResult, len(e.runes))}
	err := e.forEach(ctx, func(i int, r rune) error {
		vr, err := e.validateGlyph(r)
		if err != nil {
			return err
		}
		rep.Glyphs[i] = vr
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rep, nil
}

// SolveGaps bisects for the left and right gap of every glyph at which the
// configured gap metric reaches the target.
func (e *Engine) SolveGaps(ctx context.Context) (*GapReport, error) {
	rep := &GapReport{
		Font:   e.FontName(),
		Metric: e.cfg.Gaps.Metric,
		Glyphs: make([]GapResult, len(e.runes)),
	}
	err := e.forEach(ctx, func(i int, r rune) error {
		gr, err := e.gapGlyph(r)
		if err != nil {
			return err
		}
		rep.Glyphs[i] = gr
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rep, nil
}

// forEach runs fn for every glyph on the pool. Glyphs not yet started when
// ctx is done are skipped and the context error is returned.
func (e *Engine) forEach(ctx context.Context, fn func(i int, r rune) error) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return ErrClosed
	}

	errs := make([]error, len(e.runes))
	e.pool.ForEach(len(e.runes), func(i int) {
		if ctx.Err() != nil {
			return
		}
		r := e.runes[i]
		if err := fn(i, r); err != nil {
			errs[i] = fmt.Errorf("glyphfit: %s: %w", report.GlyphLabel(r), err)
		}
	})
	if err := ctx.Err(); err != nil {
		return err
	}
	return errors.Join(errs...)
}

// prepared is a rendered glyph and its distance field.
type prepared struct {
	glyph *glyph.Glyph
	field *sdf.Field
}

// prepare renders r and builds its distance field. Results are cached, so
// Run, Validate and SolveGaps on one engine render each glyph once.
func (e *Engine) prepare(r rune) (*glyph.Glyph, *sdf.Field, error) {
	p, err := e.fields.GetOrCreate(r, func() (prepared, error) {
		g, err := e.raster.Rasterize(r)
		if err != nil {
			return prepared{}, err
		}
		f, err := sdf.Generate(g.Raster())
		if err != nil {
			return prepared{}, err
		}
		if f.Degenerate() {
			Logger().Warn("degenerate distance field", "glyph", report.GlyphLabel(r), "err", f.Err())
		}

		if e.cfg.Output.SDF {
			path := filepath.Join(e.cfg.Output.Dir, report.FileStem(r)+"."+e.cfg.Output.SDFFormat)
			if err := report.WriteSDF(path, f); err != nil {
				return prepared{}, err
			}
		}
		return prepared{glyph: g, field: f}, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return p.glyph, p.field, nil
}

func (e *Engine) runGlyph(r rune) (GlyphReport, error) {
	g, f, err := e.prepare(r)
	if err != nil {
		return GlyphReport{}, err
	}

	gr := GlyphReport{
		Glyph:      string(r),
		Label:      report.GlyphLabel(r),
		InkWidth:   g.InkWidth(),
		Degenerate: f.Degenerate(),
	}
	if !g.Ink.Empty() {
		st, err := gradient.Analyze(f, sdf.Rect(g.Ink.Min.X, g.Ink.Min.Y, g.Ink.Max.X, g.Ink.Max.Y))
		if err != nil {
			return GlyphReport{}, err
		}
		gr.Gradient = &st
		gr.Consistency = gradient.ConsistencyScore(st)
	}

	center := g.CenterX()
	for _, m := range e.metrics {
		sc := search.NewScanner(e.cfg.Scan.StepSize, m)
		for _, target := range e.cfg.Scan.Targets {
			res, err := sc.Search(f, center, f.Height, target)
			if err != nil {
				return GlyphReport{}, err
			}
			if e.cfg.Output.Traces {
				if err := e.writeTrace(r, m.Name(), target, res); err != nil {
					return GlyphReport{}, err
				}
			}

			sr := ScanReport{
				Metric: m.Name(),
				Target: target,
				Left:   summarize(res.Left),
				Right:  summarize(res.Right),
			}
			if !res.Left.Empty {
				sr.LSB = res.Left.Bearing(g.InkWidth())
			}
			if !res.Right.Empty {
				sr.RSB = res.Right.Bearing(g.InkWidth())
			}
			gr.Scans = append(gr.Scans, sr)
		}
	}

	Logger().Info("glyph scanned", "glyph", gr.Label, "ink", gr.InkWidth, "scans", len(gr.Scans))
	return gr, nil
}

func (e *Engine) writeTrace(r rune, metric string, target float64, res search.Result) (err error) {
	name := fmt.Sprintf("%s_%s_%s.csv", report.FileStem(r), metric, strconv.FormatFloat(target, 'f', -1, 64))
	file, err := os.Create(filepath.Join(e.cfg.Output.Dir, name))
	if err != nil {
		return fmt.Errorf("glyphfit: trace: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return report.WriteTrace(file, res.Left, res.Right)
}

func (e *Engine) validateGlyph(r rune) (ValidationResult, error) {
	b, err := e.bearings.Bearings(r, e.cfg.Font.Size)
	if err != nil {
		return ValidationResult{}, err
	}
	g, f, err := e.prepare(r)
	if err != nil {
		return ValidationResult{}, err
	}

	vr := ValidationResult{
		Glyph:    string(r),
		Label:    report.GlyphLabel(r),
		Bearings: b,
		LSB:      int(math.Round(b.LSB)),
	}
	if vr.LSB <= 0 {
		vr.Skipped = "recorded left side bearing is not positive"
		Logger().Info("glyph validation skipped", "glyph", vr.Label, "lsb", b.LSB)
		return vr, nil
	}

	center := g.CenterX()
	vr.Area = sdf.Rect(max(center-vr.LSB, 0), 0, center, f.Height)
	vr.Values = make(map[string]float64, len(e.metrics))
	for _, m := range e.metrics {
		v, err := m.Evaluate(f, vr.Area)
		if err != nil {
			return ValidationResult{}, err
		}
		vr.Values[m.Name()] = v
	}

	Logger().Info("glyph validated", "glyph", vr.Label, "lsb", vr.LSB)
	return vr, nil
}

func (e *Engine) gapGlyph(r rune) (GapResult, error) {
	g, f, err := e.prepare(r)
	if err != nil {
		return GapResult{}, err
	}

	var left, right search.GapFunc
	switch e.cfg.Gaps.Metric {
	case config.GapMetricMargin:
		half := g.InkWidth() / 2
		left = marginGapFunc(f, e.gapDensity, search.Left, g.CenterX(), half)
		right = marginGapFunc(f, e.gapDensity, search.Right, g.CenterX(), half)
	default:
		bg := newBlurredGlyph(g, e.cfg.Gaps.BlurRadius, e.cfg.Gaps.MaxGap)
		left = bg.gapFunc(search.Left)
		right = bg.gapFunc(search.Right)
	}

	lres, err := search.SolveGap(left, e.cfg.Gaps.Options)
	if err != nil {
		return GapResult{}, fmt.Errorf("left gap: %w", err)
	}
	rres, err := search.SolveGap(right, e.cfg.Gaps.Options)
	if err != nil {
		return GapResult{}, fmt.Errorf("right gap: %w", err)
	}

	gr := GapResult{
		Glyph:    string(r),
		Label:    report.GlyphLabel(r),
		InkWidth: g.InkWidth(),
		Left:     lres,
		Right:    rres,
	}
	Logger().Info("glyph gaps solved", "glyph", gr.Label,
		"left", lres.Gap, "left_converged", lres.Converged,
		"right", rres.Gap, "right_converged", rres.Converged)
	return gr, nil
}
