package jitbench

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
)

const maxLineSize = 1024 * 1024

var (
	ErrNotFound = errors.New("results file not found")
	ErrParse    = errors.New("malformed results line")
)

// ParseError reports the file and line of a record that could not be read.
type ParseError struct {
	File string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

type Record struct {
	Image string
	Time  float64
}

type Table struct {
	Name    string
	Records []Record
}

func (t Table) Len() int {
	return len(t.Records)
}

func (t Table) Filter(keep Predicate) Table {
	if keep == nil {
		return t
	}
	out := Table{Name: t.Name}
	for _, r := range t.Records {
		if keep(r) {
			out.Records = append(out.Records, r)
		}
	}
	return out
}

func LoadTable(path string) (Table, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Table{}, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if err != nil {
		return Table{}, err
	}
	defer f.Close()
	return ReadTable(path, f)
}

// ReadTable reads headerless image<TAB>time lines. Blank lines are skipped.
// Quotes carry no meaning: the image is everything before the tab.
func ReadTable(name string, r io.Reader) (Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	table := Table{Name: name}
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSuffix(sc.Text(), "\r")
		if text == "" {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) != 2 {
			return Table{}, &ParseError{File: name, Line: line, Err: fmt.Errorf("want 2 tab-separated fields, got %d", len(fields))}
		}
		t, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return Table{}, &ParseError{File: name, Line: line, Err: err}
		}
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return Table{}, &ParseError{File: name, Line: line, Err: fmt.Errorf("time %q is not a finite number", fields[1])}
		}
		table.Records = append(table.Records, Record{Image: fields[0], Time: t})
	}
	if err := sc.Err(); err != nil {
		return Table{}, &ParseError{File: name, Line: line + 1, Err: err}
	}
	return table, nil
}
