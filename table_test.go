package jitbench_test

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/thiagonache/jitbench"
)

func TestLoadTableReadsEveryRecordInOrder(t *testing.T) {
	t.Parallel()
	got, err := jitbench.LoadTable("testdata/jit.tsv")
	if err != nil {
		t.Fatal(err)
	}
	want := jitbench.Table{
		Name: "testdata/jit.tsv",
		Records: []jitbench.Record{
			{Image: "construction", Time: 10},
			{Image: "compilation", Time: 5},
			{Image: "A", Time: 2},
			{Image: "A", Time: 4},
			{Image: "B", Time: 6},
		},
	}
	if !cmp.Equal(want, got) {
		t.Error(cmp.Diff(want, got))
	}
}

func TestLoadTableMissingFileReturnsErrNotFound(t *testing.T) {
	t.Parallel()
	_, err := jitbench.LoadTable("testdata/does-not-exist.tsv")
	if !errors.Is(err, jitbench.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("want fs.ErrNotExist to be wrapped, got %v", err)
	}
}

func TestLoadTableWithOneFieldReturnsParseErrorWithLine(t *testing.T) {
	t.Parallel()
	_, err := jitbench.LoadTable("testdata/missing_field.tsv")
	if !errors.Is(err, jitbench.ErrParse) {
		t.Fatalf("want ErrParse, got %v", err)
	}
	if !strings.Contains(err.Error(), "got 1") {
		t.Errorf("want field count in message, got %q", err)
	}
	var perr *jitbench.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("want *ParseError, got %T", err)
	}
	if perr.File != "testdata/missing_field.tsv" || perr.Line != 2 {
		t.Errorf("want testdata/missing_field.tsv:2, got %s:%d", perr.File, perr.Line)
	}
}

func TestLoadTableWithNonNumericTimeReturnsParseError(t *testing.T) {
	t.Parallel()
	_, err := jitbench.LoadTable("testdata/bad_time.tsv")
	var perr *jitbench.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("want *ParseError, got %v", err)
	}
	if perr.Line != 2 {
		t.Errorf("want error on line 2, got line %d", perr.Line)
	}
	if !strings.Contains(err.Error(), "testdata/bad_time.tsv:2") {
		t.Errorf("want file and line in message, got %q", err)
	}
}

func TestReadTableWithThreeFieldsReturnsParseError(t *testing.T) {
	t.Parallel()
	_, err := jitbench.ReadTable("extra", strings.NewReader("A\t1.0\tx\n"))
	if !errors.Is(err, jitbench.ErrParse) {
		t.Errorf("want ErrParse, got %v", err)
	}
}

func TestReadTableKeepsImageNamesExact(t *testing.T) {
	t.Parallel()
	got, err := jitbench.ReadTable("case", strings.NewReader("a\t1\nA\t2\n a\t3\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "A", " a"}
	var names []string
	for _, r := range got.Records {
		names = append(names, r.Image)
	}
	if !cmp.Equal(want, names) {
		t.Error(cmp.Diff(want, names))
	}
}

func TestReadTableCountsEveryNewlineTerminatedRecord(t *testing.T) {
	t.Parallel()
	input := "A\t1\nB\t2\nA\t3\nC\t4.5\n"
	got, err := jitbench.ReadTable("count", strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Count(input, "\n")
	if want != got.Len() {
		t.Errorf("want %d records, got %d", want, got.Len())
	}
}

func TestReadTableSkipsBlankLines(t *testing.T) {
	t.Parallel()
	got, err := jitbench.ReadTable("blank", strings.NewReader("A\t1\n\nB\t2\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 2 {
		t.Errorf("want 2 records, got %d", got.Len())
	}
}

func TestReadTableEmptyInputReturnsEmptyTable(t *testing.T) {
	t.Parallel()
	got, err := jitbench.ReadTable("empty", strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 0 {
		t.Errorf("want 0 records, got %d", got.Len())
	}
}

func TestReadTableWithNonFiniteTimeReturnsParseError(t *testing.T) {
	t.Parallel()
	for _, value := range []string{"nan", "NaN", "inf", "-Inf", "Infinity"} {
		_, err := jitbench.ReadTable("nonfinite", strings.NewReader("A\t2\nA\t"+value+"\nB\t6\n"))
		var perr *jitbench.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("time %q: want *ParseError, got %v", value, err)
			continue
		}
		if perr.Line != 2 {
			t.Errorf("time %q: want error on line 2, got line %d", value, perr.Line)
		}
	}
}

func TestReadTableTreatsQuotesAsPartOfImage(t *testing.T) {
	t.Parallel()
	got, err := jitbench.ReadTable("quotes", strings.NewReader("\"B\"\t2\n\"open\t3\nC\t4\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := []jitbench.Record{
		{Image: `"B"`, Time: 2},
		{Image: `"open`, Time: 3},
		{Image: "C", Time: 4},
	}
	if !cmp.Equal(want, got.Records) {
		t.Error(cmp.Diff(want, got.Records))
	}
}

func TestReadTableAcceptsCRLFLineEndings(t *testing.T) {
	t.Parallel()
	got, err := jitbench.ReadTable("crlf", strings.NewReader("A\t1.5\r\nB\t2\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := []jitbench.Record{{Image: "A", Time: 1.5}, {Image: "B", Time: 2}}
	if !cmp.Equal(want, got.Records) {
		t.Error(cmp.Diff(want, got.Records))
	}
}
