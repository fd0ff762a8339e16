package jitbench

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

const (
	DefaultJITPath    = "jit.tsv"
	DefaultNativePath = "native.tsv"
)

var ErrUnexpectedArgs = errors.New("unexpected arguments")

type Reporter struct {
	jitPath, nativePath string
	plotPath            string
	breakdown           bool
	level               zerolog.Level
	stdout, stderr      io.Writer
	log                 zerolog.Logger
}

type Option func(*Reporter) error

func NewReporter(opts ...Option) (*Reporter, error) {
	r := &Reporter{
		jitPath:    DefaultJITPath,
		nativePath: DefaultNativePath,
		level:      zerolog.InfoLevel,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}
	for _, o := range opts {
		err := o(r)
		if err != nil {
			return nil, err
		}
	}
	if r.jitPath == "" || r.nativePath == "" {
		return nil, fmt.Errorf("results paths cannot be empty (jit %q, native %q)", r.jitPath, r.nativePath)
	}
	r.log = zerolog.New(zerolog.ConsoleWriter{Out: r.stderr, NoColor: true}).
		Level(r.level).
		With().Timestamp().Logger()
	return r, nil
}

func WithJITPath(path string) Option {
	return func(r *Reporter) error {
		r.jitPath = path
		return nil
	}
}

func WithNativePath(path string) Option {
	return func(r *Reporter) error {
		r.nativePath = path
		return nil
	}
}

func WithPlotPath(path string) Option {
	return func(r *Reporter) error {
		r.plotPath = path
		return nil
	}
}

func WithBreakdown(on bool) Option {
	return func(r *Reporter) error {
		r.breakdown = on
		return nil
	}
}

func WithLogLevel(level zerolog.Level) Option {
	return func(r *Reporter) error {
		r.level = level
		return nil
	}
}

func WithStdout(w io.Writer) Option {
	return func(r *Reporter) error {
		if w == nil {
			return ErrValueCannotBeNil
		}
		r.stdout = w
		return nil
	}
}

func WithStderr(w io.Writer) Option {
	return func(r *Reporter) error {
		if w == nil {
			return ErrValueCannotBeNil
		}
		r.stderr = w
		return nil
	}
}

func WithInputsFromArgs(args []string) Option {
	return func(r *Reporter) error {
		fset := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
		fset.SetOutput(r.stderr)
		jit := fset.String("jit", r.jitPath, "JIT results file (image<TAB>time per line)")
		native := fset.String("native", r.nativePath, "native results file (image<TAB>time per line)")
		breakdown := fset.Bool("breakdown", false, "also print per-image means")
		plotPath := fset.String("plot", "", "write a per-image bar chart to this file (.png, .svg or .pdf)")
		debug := fset.Bool("debug", false, "log loading details to stderr")
		err := fset.Parse(args)
		if err != nil {
			return err
		}
		if fset.NArg() > 0 {
			return fmt.Errorf("%w: %v", ErrUnexpectedArgs, fset.Args())
		}
		r.jitPath = *jit
		r.nativePath = *native
		r.breakdown = *breakdown
		r.plotPath = *plotPath
		if *debug {
			r.level = zerolog.DebugLevel
		}
		return nil
	}
}

func (r Reporter) JITPath() string {
	return r.jitPath
}

func (r Reporter) NativePath() string {
	return r.nativePath
}

func (r Reporter) PlotPath() string {
	return r.plotPath
}

func (r Reporter) Breakdown() bool {
	return r.breakdown
}

func (r Reporter) LogLevel() zerolog.Level {
	return r.level
}

// Build loads both tables and aggregates them. Nothing is written to stdout.
func (r *Reporter) Build() (*Report, error) {
	jitTable, err := r.load(r.jitPath)
	if err != nil {
		return nil, err
	}
	jit, err := SummarizeJIT(jitTable)
	if err != nil {
		return nil, err
	}
	nativeTable, err := r.load(r.nativePath)
	if err != nil {
		return nil, err
	}
	native, err := SummarizeNative(nativeTable)
	if err != nil {
		return nil, err
	}
	r.log.Debug().
		Int("jitImages", len(jit.Images)).
		Int("nativeImages", len(native.Images)).
		Msg("aggregated results")
	return NewReport(jit, native, WithReportStdout(r.stdout))
}

// Run builds the whole report before printing any of it, so a load or
// parse failure leaves stdout untouched. Errors are returned, not logged.
func (r *Reporter) Run() error {
	report, err := r.Build()
	if err != nil {
		return err
	}
	if r.plotPath != "" {
		if err := SavePlot(r.plotPath, *report); err != nil {
			return err
		}
		r.log.Info().Str("path", r.plotPath).Msg("saved plot")
	}
	if err := report.Print(); err != nil {
		return err
	}
	if r.breakdown {
		return report.PrintBreakdown()
	}
	return nil
}

func (r *Reporter) load(path string) (Table, error) {
	t, err := LoadTable(path)
	if err != nil {
		return Table{}, err
	}
	r.log.Debug().Str("path", path).Int("records", t.Len()).Msg("loaded results")
	return t, nil
}

func RunCLI(args []string) error {
	r, err := NewReporter(WithInputsFromArgs(args))
	if err != nil {
		return err
	}
	return r.Run()
}
