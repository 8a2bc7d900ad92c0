// Package table implements an in-memory tabular dataset with nullable typed
// cells, persisted as CSV between pipeline stages.
package table

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Kind identifies the type held by a Value
type Kind uint8

const (
	// KindNull is the null marker
	KindNull Kind = iota

	// KindString holds text
	KindString

	// KindInt holds a 64-bit integer
	KindInt

	// KindDecimal holds an exact decimal amount
	KindDecimal

	// KindDate holds a calendar date
	KindDate
)

// Value is a single nullable cell. Null propagates through operations and is
// never equal to another null.
type Value struct {
	kind Kind
	s    string
	i    int64
	d    decimal.Decimal
	t    time.Time
}

// Null returns the null cell
func Null() Value {
	return Value{kind: KindNull}
}

// String returns a text cell
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Int returns an integer cell
func Int(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// Dec returns a decimal cell
func Dec(d decimal.Decimal) Value {
	return Value{kind: KindDecimal, d: d}
}

// Date returns a date cell, truncated to the day
func Date(t time.Time) Value {
	return Value{kind: KindDate, t: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// IsNull reports whether the cell is null
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Kind returns the cell kind
func (v Value) Kind() Kind {
	return v.kind
}

// Str returns the text content
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// Int64 returns the integer content
func (v Value) Int64() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// Decimal returns the decimal content
func (v Value) Decimal() (decimal.Decimal, bool) {
	if v.kind != KindDecimal {
		return decimal.Zero, false
	}
	return v.d, true
}

// Time returns the date content
func (v Value) Time() (time.Time, bool) {
	if v.kind != KindDate {
		return time.Time{}, false
	}
	return v.t, true
}

// Render returns the serialized form used for CSV output and console tables:
// empty string for null, YYYY-MM-DD for dates, canonical decimal notation.
func (v Value) Render() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindString:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindDecimal:
		return v.d.String()
	case KindDate:
		return v.t.Format("2006-01-02")
	}
	return ""
}

// Equal reports whether two cells match. Null never matches anything,
// including another null.
func (v Value) Equal(o Value) bool {
	if v.kind == KindNull || o.kind == KindNull {
		return false
	}
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.s == o.s
	case KindInt:
		return v.i == o.i
	case KindDecimal:
		return v.d.Equal(o.d)
	case KindDate:
		return v.t.Equal(o.t)
	}
	return false
}

// Compare orders two cells for sorting. Nulls sort after every non-null
// value. Mixed kinds fall back to comparing rendered forms.
func (v Value) Compare(o Value) int {
	if v.kind == KindNull && o.kind == KindNull {
		return 0
	}
	if v.kind == KindNull {
		return 1
	}
	if o.kind == KindNull {
		return -1
	}
	if v.kind == o.kind {
		switch v.kind {
		case KindInt:
			switch {
			case v.i < o.i:
				return -1
			case v.i > o.i:
				return 1
			}
			return 0
		case KindDecimal:
			return v.d.Cmp(o.d)
		case KindDate:
			switch {
			case v.t.Before(o.t):
				return -1
			case v.t.After(o.t):
				return 1
			}
			return 0
		}
	}
	a, b := v.Render(), o.Render()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
