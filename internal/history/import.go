// Package history parses exercise log exports for import into the store.
package history

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/runger/fitcue/internal/suggestions/event"
)

// MaxImportEntries is the maximum number of entries to import from one file.
const MaxImportEntries = 25000

// Supported import formats.
const (
	FormatCSV   = "csv"
	FormatJSONL = "jsonl"
)

var (
	errMissingName      = errors.New("missing name")
	errMissingTimestamp = errors.New("missing timestamp")
)

// RowError describes an input row that was skipped.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// Result is the outcome of parsing an import file.
type Result struct {
	Entries []event.LogEntry
	Skipped []RowError

	// Truncated counts parsed entries dropped because the file held more
	// than MaxImportEntries. The earliest rows in the file are dropped.
	Truncated int
}

// timestampLayouts are tried in order for textual timestamps.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp accepts RFC 3339, common local date-time layouts (read in
// loc) and unix seconds.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errMissingTimestamp
	}
	if loc == nil {
		loc = time.Local
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0).In(loc), nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// ParseCSV reads rows of timestamp,name,duration_minutes,calories.
// A header row starting with "timestamp" is skipped. The numeric columns
// are optional. Bad rows are reported in Result.Skipped and never abort
// the parse; only I/O errors do.
func ParseCSV(r io.Reader, loc *time.Location) (Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	cr.LazyQuotes = true

	var res Result
	first := true
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				res.Skipped = append(res.Skipped, RowError{Line: perr.StartLine, Err: perr.Err})
				continue
			}
			return Result{}, fmt.Errorf("failed to read csv: %w", err)
		}
		line, _ := cr.FieldPos(0)

		if first {
			first = false
			if strings.EqualFold(strings.TrimSpace(record[0]), "timestamp") {
				continue
			}
		}
		if isBlank(record) {
			continue
		}

		e, err := parseRecord(record, loc)
		if err != nil {
			res.Skipped = append(res.Skipped, RowError{Line: line, Err: err})
			continue
		}
		res.Entries = append(res.Entries, e)
	}

	res.Entries, res.Truncated = trimToLimit(res.Entries, MaxImportEntries)
	return res, nil
}

func parseRecord(record []string, loc *time.Location) (event.LogEntry, error) {
	field := func(i int) string {
		if i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	ts, err := ParseTimestamp(field(0), loc)
	if err != nil {
		return event.LogEntry{}, err
	}
	name := field(1)
	if name == "" {
		return event.LogEntry{}, errMissingName
	}

	e := event.LogEntry{Name: name, Timestamp: ts, Source: event.SourceImport}
	if s := field(2); s != "" {
		d, err := strconv.Atoi(s)
		if err != nil || d < 0 {
			return event.LogEntry{}, fmt.Errorf("invalid duration %q", s)
		}
		e.DurationMinutes = d
	}
	if s := field(3); s != "" {
		c, err := strconv.ParseFloat(s, 64)
		if err != nil || !event.ValidCalories(c) {
			return event.LogEntry{}, fmt.Errorf("invalid calories %q", s)
		}
		e.CaloriesBurned = c
	}
	return e, nil
}

// ParseJSONL reads one JSON-encoded log entry per line, in the shape the
// HTTP API returns entries.
func ParseJSONL(r io.Reader) (Result, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	var res Result
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var e event.LogEntry
		if err := json.Unmarshal([]byte(text), &e); err != nil {
			res.Skipped = append(res.Skipped, RowError{Line: line, Err: err})
			continue
		}
		e.Name = strings.TrimSpace(e.Name)
		switch {
		case e.Name == "":
			res.Skipped = append(res.Skipped, RowError{Line: line, Err: errMissingName})
			continue
		case e.Timestamp.IsZero():
			res.Skipped = append(res.Skipped, RowError{Line: line, Err: errMissingTimestamp})
			continue
		case !event.ValidCalories(e.CaloriesBurned):
			res.Skipped = append(res.Skipped, RowError{Line: line, Err: fmt.Errorf("invalid calories %v", e.CaloriesBurned)})
			continue
		}
		e.ID = ""
		if e.Source == "" {
			e.Source = event.SourceImport
		}
		res.Entries = append(res.Entries, e)
	}
	if err := scanner.Err(); err != nil {
		return Result{}, fmt.Errorf("failed to read jsonl: %w", err)
	}

	res.Entries, res.Truncated = trimToLimit(res.Entries, MaxImportEntries)
	return res, nil
}

// DetectFormat guesses the format from the file extension, defaulting to CSV.
func DetectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson":
		return FormatJSONL
	default:
		return FormatCSV
	}
}

// ImportFile parses the file at path. An empty format is detected from the
// extension.
func ImportFile(path, format string, loc *time.Location) (Result, error) {
	if format == "" {
		format = DetectFormat(path)
	}

	file, err := os.Open(path) //nolint:gosec // G304: path is supplied by the user
	if err != nil {
		return Result{}, fmt.Errorf("failed to open import file: %w", err)
	}
	defer file.Close()

	switch format {
	case FormatCSV:
		return ParseCSV(file, loc)
	case FormatJSONL:
		return ParseJSONL(file)
	default:
		return Result{}, fmt.Errorf("unsupported import format %q (supported: %s, %s)", format, FormatCSV, FormatJSONL)
	}
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// trimToLimit keeps the last n entries and reports how many it dropped.
func trimToLimit(entries []event.LogEntry, n int) ([]event.LogEntry, int) {
	if len(entries) > n {
		return entries[len(entries)-n:], len(entries) - n
	}
	return entries, 0
}
