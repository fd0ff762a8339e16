package jitbench

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
)

var ErrValueCannotBeNil = errors.New("value cannot be nil")

type JITSummary struct {
	Summary
	Construction, Compilation float64
}

// SummarizeJIT splits the construction and compilation rows off as flat
// cohorts and summarizes the remaining rows per image.
func SummarizeJIT(t Table) (JITSummary, error) {
	s, err := Summarize(t, IsRuntime)
	if err != nil {
		return JITSummary{}, fmt.Errorf("%s: %w", t.Name, err)
	}
	return JITSummary{
		Summary:      s,
		Construction: Mean(timesOf(t.Filter(IsImage(ImageConstruction)))),
		Compilation:  Mean(timesOf(t.Filter(IsImage(ImageCompilation)))),
	}, nil
}

func SummarizeNative(t Table) (Summary, error) {
	s, err := Summarize(t, nil)
	if err != nil {
		return Summary{}, fmt.Errorf("%s: %w", t.Name, err)
	}
	return s, nil
}

func timesOf(t Table) []float64 {
	times := make([]float64, 0, t.Len())
	for _, r := range t.Records {
		times = append(times, r.Time)
	}
	return times
}

type Report struct {
	JIT    JITSummary
	Native Summary
	Stdout io.Writer
}

type ReportOption func(*Report) error

func NewReport(jit JITSummary, native Summary, opts ...ReportOption) (*Report, error) {
	if len(jit.Images) == 0 || len(native.Images) == 0 {
		return nil, ErrEmptyGroup
	}
	r := &Report{
		JIT:    jit,
		Native: native,
		Stdout: os.Stdout,
	}
	for _, o := range opts {
		err := o(r)
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}

func WithReportStdout(w io.Writer) ReportOption {
	return func(r *Report) error {
		if w == nil {
			return ErrValueCannotBeNil
		}
		r.Stdout = w
		return nil
	}
}

// JITWin is how much longer the native runtime took on average. Negative
// means the JIT was slower.
func (r Report) JITWin() float64 {
	return r.Native.MeanOfMeans - r.JIT.MeanOfMeans
}

func (r Report) String() string {
	buf := &bytes.Buffer{}
	fmt.Fprintf(buf, "number of jit results: %d\n", r.JIT.Count)
	fmt.Fprintf(buf, "avg construction time: %s\n", FormatFloat(r.JIT.Construction))
	fmt.Fprintf(buf, "avg compile time: %s\n", FormatFloat(r.JIT.Compilation))
	fmt.Fprintf(buf, "average jit runtime: %s\n", FormatFloat(r.JIT.MeanOfMeans))
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "number of native results: %d\n", r.Native.Count)
	fmt.Fprintf(buf, "average native runtime: %s\n", FormatFloat(r.Native.MeanOfMeans))
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "jit win: %s\n", FormatFloat(r.JITWin()))
	return buf.String()
}

// Breakdown lists every image seen in either table with its mean runtime
// on each side. A dash marks an image missing from one side.
func (r Report) Breakdown() string {
	buf := &bytes.Buffer{}
	writer := tabwriter.NewWriter(buf, 12, 0, 2, ' ', 0)
	fmt.Fprintln(writer, "Image\tJIT\tNative\tDelta")
	for _, name := range r.Images() {
		jit, okJIT := r.JIT.Images[name]
		native, okNative := r.Native.Images[name]
		delta := "-"
		if okJIT && okNative {
			delta = FormatFloat(native - jit)
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", name, cell(jit, okJIT), cell(native, okNative), delta)
	}
	writer.Flush()
	return buf.String()
}

// Images is the sorted union of image names across both tables.
func (r Report) Images() []string {
	seen := map[string]bool{}
	for name := range r.JIT.Images {
		seen[name] = true
	}
	for name := range r.Native.Images {
		seen[name] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r Report) Print() error {
	_, err := io.WriteString(r.Stdout, r.String())
	return err
}

// PrintBreakdown writes a blank line then the per-image table.
func (r Report) PrintBreakdown() error {
	_, err := io.WriteString(r.Stdout, "\n"+r.Breakdown())
	return err
}

func cell(v float64, ok bool) string {
	if !ok {
		return "-"
	}
	return FormatFloat(v)
}

// FormatFloat prints the shortest representation that round-trips, always
// with a fractional part, so 10 reads as 10.0.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	format := byte('f')
	if a := math.Abs(v); a != 0 && (a < 1e-4 || a >= 1e16) {
		format = 'e'
	}
	s := strconv.FormatFloat(v, format, -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
