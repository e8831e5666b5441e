package batch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goodnatureofminers/chainguard-backend/internal/model"
	"github.com/shopspring/decimal"
)

// Column names of the batch input.
const (
	ColumnHash        = "TxHash"
	ColumnBlockHeight = "BlockHeight"
	ColumnTimestamp   = "TimeStamp"
	ColumnFrom        = "From"
	ColumnTo          = "To"
	ColumnValue       = "Value"
	ColumnIsError     = "isError"
)

var requiredColumns = []string{ColumnHash, ColumnBlockHeight, ColumnTimestamp, ColumnFrom, ColumnTo, ColumnValue}

var (
	// ErrMissingColumn rejects an input that lacks a required column.
	ErrMissingColumn = errors.New("missing required column")
	// ErrEmptyInput rejects an input without a header row.
	ErrEmptyInput = errors.New("empty input")
)

// Unit is the denomination of the Value column.
type Unit string

const (
	UnitEther Unit = "ether"
	// UnitWei values are divided by 1e18.
	UnitWei Unit = "wei"
	// UnitAuto treats values above autoWeiThreshold as wei.
	UnitAuto Unit = "auto"
)

const weiDecimals = 18

var autoWeiThreshold = decimal.NewFromInt(1000)

// ParseUnit validates a unit name. An empty name is ether.
func ParseUnit(s string) (Unit, error) {
	switch u := Unit(strings.ToLower(strings.TrimSpace(s))); u {
	case "":
		return UnitEther, nil
	case UnitEther, UnitWei, UnitAuto:
		return u, nil
	default:
		return "", fmt.Errorf("unknown value unit %q", s)
	}
}

// RowParseError describes a row that was skipped.
type RowParseError struct {
	Line   int
	Column string
	Err    error
}

func (e *RowParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d column %s: %v", e.Line, e.Column, e.Err)
}

func (e *RowParseError) Unwrap() error {
	return e.Err
}

// Rows is the outcome of reading a batch input.
type Rows struct {
	Records []model.TransactionRecord
	Errors  []*RowParseError
}

// ReadCSV parses transaction records from r. Malformed rows are collected in
// Rows.Errors and skipped.
func ReadCSV(r io.Reader, unit Unit) (Rows, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Rows{}, ErrEmptyInput
	}
	if err != nil {
		return Rows{}, fmt.Errorf("read header: %w", err)
	}
	index, err := columnIndex(header)
	if err != nil {
		return Rows{}, err
	}

	var out Rows
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			out.Errors = append(out.Errors, &RowParseError{Line: perr.Line, Err: perr.Err})
			continue
		}
		if err != nil {
			return out, fmt.Errorf("read rows: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if blank(row) {
			continue
		}
		rec, rerr := parseRow(row, index, unit)
		if rerr != nil {
			rerr.Line = line
			out.Errors = append(out.Errors, rerr)
			continue
		}
		out.Records = append(out.Records, rec)
	}
	return out, nil
}

func columnIndex(header []string) (map[string]int, error) {
	seen := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		seen[strings.ToLower(h)] = i
	}

	index := make(map[string]int, len(requiredColumns)+1)
	var missing []string
	for _, c := range requiredColumns {
		i, ok := seen[strings.ToLower(c)]
		if !ok {
			missing = append(missing, c)
			continue
		}
		index[c] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	if i, ok := seen[strings.ToLower(ColumnIsError)]; ok {
		index[ColumnIsError] = i
	}
	return index, nil
}

func parseRow(row []string, index map[string]int, unit Unit) (model.TransactionRecord, *RowParseError) {
	field := func(col string) (string, bool) {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[i]), true
	}

	var rec model.TransactionRecord
	for _, col := range requiredColumns {
		v, ok := field(col)
		if !ok {
			return rec, &RowParseError{Column: col, Err: errors.New("field missing")}
		}
		var err error
		switch col {
		case ColumnHash:
			if v == "" {
				err = errors.New("empty hash")
			}
			rec.Hash = v
		case ColumnBlockHeight:
			rec.BlockHeight, err = parseInt(v)
		case ColumnTimestamp:
			rec.Timestamp, err = parseInt(v)
		case ColumnFrom:
			rec.From = strings.ToLower(v)
		case ColumnTo:
			rec.To = strings.ToLower(v)
		case ColumnValue:
			rec.Value, err = parseValue(v, unit)
		}
		if err != nil {
			return rec, &RowParseError{Column: col, Err: err}
		}
	}

	if v, ok := field(ColumnIsError); ok && v != "" {
		isErr, err := parseFlag(v)
		if err != nil {
			return rec, &RowParseError{Column: ColumnIsError, Err: err}
		}
		rec.IsError = isErr
	}
	return rec, nil
}

// parseInt accepts integral values written as floats, e.g. "5000000.0".
func parseInt(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	return d.IntPart(), nil
}

func parseValue(s string, unit Unit) (float64, error) {
	if s == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("negative value %s", s)
	}
	switch unit {
	case UnitWei:
		d = d.Shift(-weiDecimals)
	case UnitAuto:
		if d.GreaterThan(autoWeiThreshold) {
			d = d.Shift(-weiDecimals)
		}
	}
	f, _ := d.Float64()
	return f, nil
}

func parseFlag(s string) (bool, error) {
	if b, err := strconv.ParseBool(s); err == nil {
		return b, nil
	}
	n, err := parseInt(s)
	if err != nil {
		return false, fmt.Errorf("invalid flag %q", s)
	}
	return n != 0, nil
}

func blank(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
