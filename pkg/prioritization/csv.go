package prioritization

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"feature-prioritizer/internal/entity"
)

var (
	RiceHeader   = []string{"Rank", "Feature Name", "Reach", "Impact", "Confidence (%)", "Effort (months)", "RICE Score"}
	MoscowHeader = []string{"Rank", "Feature Name", "Category", "Priority Level"}
)

// ErrEmptyCSV is returned when an import has no header line.
var ErrEmptyCSV = errors.New("csv import has no header row")

// ParseError wraps a CSV or backup text that could not be read at all.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ToCSV renders features in the given order; rank is the 1-based row position.
// Names are always quoted with embedded quotes doubled, so names containing
// commas survive a round trip. Rows are joined by "\n" without a trailing newline.
func ToCSV(features []entity.Feature, framework entity.Framework) (string, error) {
	var header []string
	switch framework {
	case entity.FrameworkRice:
		header = RiceHeader
	case entity.FrameworkMoscow:
		header = MoscowHeader
	default:
		return "", ErrUnknownFramework
	}

	rows := make([]string, 0, len(features)+1)
	rows = append(rows, strings.Join(header, ","))
	for i, f := range features {
		cells := []string{strconv.Itoa(i + 1), quoteCell(f.Header().Name)}
		if framework == entity.FrameworkRice {
			rf, _ := f.(entity.RiceFeature)
			cells = append(cells,
				intCell(rf.Reach),
				floatCell(rf.Impact),
				intCell(rf.Confidence),
				intCell(rf.Effort),
				floatCell(Score(f)),
			)
		} else {
			c := categoryOf(f)
			cells = append(cells, string(c), c.Label())
		}
		rows = append(rows, strings.Join(cells, ","))
	}
	return strings.Join(rows, "\n"), nil
}

// FromCSV reads rows after the header. RICE columns are
// name, reach, impact, confidence, effort; MoSCoW columns are name, category.
// When the header starts with a Rank column, as files written by ToCSV do,
// that column is skipped. Unparseable cells become absent fields instead of
// rejecting the row, and nothing is validated or scored here.
func FromCSV(text string, framework entity.Framework) ([]Draft, error) {
	if framework != entity.FrameworkRice && framework != entity.FrameworkMoscow {
		return nil, ErrUnknownFramework
	}

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Source: "csv", Err: ErrEmptyCSV}
		}
		return nil, &ParseError{Source: "csv", Err: err}
	}
	offset := 0
	if strings.EqualFold(strings.TrimPrefix(cell(header, 0), "\ufeff"), "Rank") {
		offset = 1
	}

	drafts := []Draft{}
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Source: "csv", Err: err}
		}
		if blankRecord(record) {
			continue
		}
		if framework == entity.FrameworkRice {
			drafts = append(drafts, RiceDraftFromStrings(
				cell(record, offset),
				cell(record, offset+1),
				cell(record, offset+2),
				cell(record, offset+3),
				cell(record, offset+4),
			))
		} else {
			drafts = append(drafts, MoscowDraftFromStrings(cell(record, offset), cell(record, offset+1)))
		}
	}
	return drafts, nil
}

// Filename follows feature-prioritization-<framework>-<YYYY-MM-DD>.csv, UTC date.
func Filename(framework entity.Framework, now time.Time) string {
	return fmt.Sprintf("feature-prioritization-%s-%s.csv", framework, now.UTC().Format("2006-01-02"))
}

func cell(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func blankRecord(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func quoteCell(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func intCell(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func floatCell(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
