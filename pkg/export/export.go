// Package export renders tabular reports as CSV or Excel workbooks.
package export

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// dateLayout matches the day-first dates used on printed fleet reports.
const dateLayout = "02/01/2006"

// ParseFormat accepts csv, excel or xlsx. An empty value means csv.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return FormatCSV, nil
	case "excel", "xlsx":
		return FormatExcel, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

func (f Format) Extension() string {
	if f == FormatExcel {
		return "xlsx"
	}
	return "csv"
}

func (f Format) ContentType() string {
	if f == FormatExcel {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Filename builds PEL_Fleet_<kind>_<YYYY-MM-DD>.<ext>.
func Filename(kind string, f Format, now time.Time) string {
	return fmt.Sprintf("PEL_Fleet_%s_%s.%s", kind, now.Format("2006-01-02"), f.Extension())
}

type Column struct {
	Header string
	Width  float64
}

// Table is a titled grid. Cells may be strings, numbers, bools, time.Time
// or pointers to those; nil pointers render empty.
type Table struct {
	Title   string
	Columns []Column
	Rows    [][]any
}

func (t *Table) AddRow(cells ...any) {
	t.Rows = append(t.Rows, cells)
}

func (t Table) headers() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Header
	}
	return out
}

// normalize unwraps pointers and formats dates so both writers agree on
// what a cell holds.
func normalize(v any) any {
	switch x := v.(type) {
	case nil:
		return ""
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format(dateLayout)
	case *time.Time:
		if x == nil {
			return ""
		}
		return normalize(*x)
	case *float64:
		if x == nil {
			return ""
		}
		return *x
	case *int:
		if x == nil {
			return ""
		}
		return *x
	case *string:
		if x == nil {
			return ""
		}
		return *x
	case []string:
		return strings.Join(x, ";")
	default:
		return v
	}
}

func cellText(v any) string {
	switch x := normalize(v).(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
