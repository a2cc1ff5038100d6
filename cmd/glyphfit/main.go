// Command glyphfit measures glyph spacing from signed distance fields.
//
// Usage:
//
//	glyphfit <command> [flags] [font files...]
//
// Commands:
//
//	run       step-scan side bearings for each glyph
//	validate  measure each glyph at the font's recorded left side bearing
//	gaps      bisect for the gap that reaches the target margin metric
//	version   print the version
//	help      print this help
//
// Without font files the font from -config is used, or Go Regular. With
// several font files, artifacts written to -out go to one subdirectory per
// font, named after the font file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/gogpu/glyphfit"
	"github.com/gogpu/glyphfit/config"
	"github.com/gogpu/glyphfit/glyph"
	"github.com/gogpu/glyphfit/report"
	"github.com/gogpu/glyphfit/search"
)

var version = "dev"

const usage = `Usage: glyphfit <command> [flags] [font files...]

Commands:
  run       step-scan side bearings for each glyph
  validate  measure each glyph at the font's recorded left side bearing
  gaps      bisect for the gap that reaches the target margin metric
  version   print the version
  help      print this help

Run "glyphfit <command> -h" for the flags of a command.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	cmd, args := args[0], args[1:]
	switch cmd {
	case "version":
		fmt.Fprintln(stdout, "glyphfit", version)
		return 0
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	case "run", "validate", "gaps":
	default:
		fmt.Fprintf(stderr, "glyphfit: unknown command %q\n\n%s", cmd, usage)
		return 2
	}

	opts, err := parseFlags(cmd, args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	glyphfit.SetLogger(newLogger(stderr, opts.verbose))
	if err := execute(ctx, cmd, opts, stdout); err != nil {
		fmt.Fprintln(stderr, "glyphfit:", err)
		return 1
	}
	return 0
}

// options holds a parsed command line.
type options struct {
	cfg     *config.Config
	fonts   []string
	verbose bool
}

func parseFlags(cmd string, args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("glyphfit "+cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configPath = fs.String("config", "", "YAML configuration file")
		glyphs     = fs.String("glyphs", "", "glyph set, e.g. \"HOno\"")
		size       = fs.Float64("size", 0, "font size in pixels per em")
		targets    = fs.String("targets", "", "comma-separated target densities")
		metrics    = fs.String("metrics", "", "comma-separated density metrics (total, mean, coverage)")
		step       = fs.Int("step", 0, "step-scan width increment in pixels")
		target     = fs.Float64("target", 0, "gap metric target")
		tolerance  = fs.Float64("tolerance", 0, "gap metric tolerance")
		gapMetric  = fs.String("gap-metric", "", "gap metric (blur, margin)")
		mode       = fs.String("mode", "", "bisection result mode (legacy, best)")
		workers    = fs.Int("workers", 0, "worker goroutines (0 = GOMAXPROCS)")
		format     = fs.String("format", "", "result format (json, yaml)")
		outDir     = fs.String("out", "", "artifact directory")
		sdfImages  = fs.Bool("sdf", false, "write distance-field images to -out")
		traces     = fs.Bool("traces", false, "write step traces to -out")
		verbose    = fs.Bool("v", false, "debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintln(stderr, "glyphfit:", err)
			return nil, err
		}
	}

	var ferr error
	fs.Visit(func(f *flag.Flag) {
		if ferr != nil {
			return
		}
		switch f.Name {
		case "glyphs":
			cfg.Glyphs = glyph.SplitSet(*glyphs)
		case "size":
			cfg.Font.Size = *size
		case "targets":
			cfg.Scan.Targets, ferr = parseFloats(*targets)
		case "metrics":
			cfg.Scan.Metrics = splitList(*metrics)
		case "step":
			cfg.Scan.StepSize = *step
		case "target":
			cfg.Gaps.Target = *target
		case "tolerance":
			cfg.Gaps.Tolerance = *tolerance
		case "gap-metric":
			cfg.Gaps.Metric = *gapMetric
		case "mode":
			cfg.Gaps.Mode, ferr = search.ParseMode(*mode)
		case "workers":
			cfg.Workers = *workers
		case "format":
			cfg.Output.Format = *format
		case "out":
			cfg.Output.Dir = *outDir
		case "sdf":
			cfg.Output.SDF = *sdfImages
		case "traces":
			cfg.Output.Traces = *traces
		}
	})
	if ferr == nil {
		ferr = cfg.Validate()
	}
	if ferr != nil {
		fmt.Fprintln(stderr, "glyphfit:", ferr)
		return nil, ferr
	}

	fonts := fs.Args()
	if len(fonts) == 0 {
		fonts = []string{cfg.Font.Path}
	}
	return &options{cfg: cfg, fonts: fonts, verbose: *verbose}, nil
}

// execute runs cmd for every font and writes one document to stdout: the
// report itself for a single font, a list of reports otherwise.
func execute(ctx context.Context, cmd string, opts *options, stdout io.Writer) error {
	docs := make([]any, 0, len(opts.fonts))
	dirs := fontDirs(opts.cfg.Output.Dir, opts.fonts)
	for i, path := range opts.fonts {
		cfg := opts.cfg
		if dirs[i] != cfg.Output.Dir {
			c := *opts.cfg
			c.Output.Dir = dirs[i]
			cfg = &c
		}
		doc, err := executeFont(ctx, cmd, cfg, path)
		if err != nil {
			if path == "" {
				return err
			}
			return fmt.Errorf("%s: %w", path, err)
		}
		docs = append(docs, doc)
	}

	if len(docs) == 1 {
		return report.Encode(stdout, opts.cfg.Output.Format, docs[0])
	}
	return report.Encode(stdout, opts.cfg.Output.Format, docs)
}

func executeFont(ctx context.Context, cmd string, cfg *config.Config, path string) (any, error) {
	data, err := glyphfit.LoadFont(path)
	if err != nil {
		return nil, err
	}
	eng, err := glyphfit.New(cfg, data)
	if err != nil {
		return nil, err
	}
	defer eng.Close()

	switch cmd {
	case "validate":
		return eng.Validate(ctx)
	case "gaps":
		return eng.SolveGaps(ctx)
	}
	return eng.Run(ctx)
}

// fontDirs returns the artifact directory of each font. A single font
// writes to dir itself; several fonts get one subdirectory each, named after
// the font file and made unique with a numeric suffix.
func fontDirs(dir string, fonts []string) []string {
	dirs := make([]string, len(fonts))
	if dir == "" || len(fonts) < 2 {
		for i := range dirs {
			dirs[i] = dir
		}
		return dirs
	}

	seen := make(map[string]int, len(fonts))
	for i, path := range fonts {
		name := fontStem(path)
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s-%d", name, n)
		}
		dirs[i] = filepath.Join(dir, name)
	}
	return dirs
}

// fontStem turns a font path into a directory name: the base name without
// extension, with anything but letters, digits, '.', '-' and '_' replaced.
func fontStem(path string) string {
	if path == "" {
		return "goregular"
	}
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	stem := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, base)
	if strings.Trim(stem, ".") == "" {
		return "font"
	}
	return stem
}

// newLogger logs text to terminals and JSON to everything else.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	hopts := &slog.HandlerOptions{Level: level}

	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return slog.New(slog.NewTextHandler(w, hopts))
	}
	return slog.New(slog.NewJSONHandler(w, hopts))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseFloats(s string) ([]float64, error) {
	parts := splitList(s)
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q in list", p)
		}
		out = append(out, v)
	}
	return out, nil
}
