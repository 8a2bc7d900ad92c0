package clean

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"retail-etl/core/table"
)

// sentinels are placeholder markers that collapse to null
var sentinels = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"--":   {},
	"None": {},
	"null": {},
	"<NA>": {},
	"nan":  {},
}

func isSentinel(s string) bool {
	_, ok := sentinels[s]
	return ok
}

// CoerceInt converts a column to nullable integers. Unparseable values
// become null.
func CoerceInt(t *table.Table, col string) {
	t.Each(func(r int) {
		v := t.Value(r, col)
		if v.IsNull() {
			return
		}
		if _, ok := v.Int64(); ok {
			return
		}
		s, ok := v.Str()
		if !ok {
			t.SetValue(r, col, table.Null())
			return
		}
		t.SetValue(r, col, parseInt(s))
	})
}

func parseInt(s string) table.Value {
	s = strings.TrimSpace(s)
	if isSentinel(s) {
		return table.Null()
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return table.Int(i)
	}
	// values like "5.0" still count as integers
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) {
		return table.Int(int64(f))
	}
	return table.Null()
}

// coerceText trims a column and collapses sentinel markers to null
func coerceText(t *table.Table, col string) {
	t.Each(func(r int) {
		v := t.Value(r, col)
		s, ok := v.Str()
		if !ok {
			return
		}
		s = strings.TrimSpace(s)
		if isSentinel(s) {
			t.SetValue(r, col, table.Null())
			return
		}
		t.SetValue(r, col, table.String(s))
	})
}

// parseAmount cleans a currency string and parses it as a decimal: currency
// symbols and thousands separators are stripped, a comma decimal separator
// becomes a dot.
func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if isSentinel(s) {
		return decimal.Zero, false
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, " ", "")
	s = stripThousands(s)
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// stripThousands removes '.' or ',' separators that are followed by exactly
// three digits and then a non-digit or end of string.
func stripThousands(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '.' || c == ',' {
			digits := 0
			j := i + 1
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				digits++
				j++
			}
			if digits == 3 {
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// dateLayouts are tried in order after separator normalization
var dateLayouts = []string{"2006/01/02", "02/01/2006", "02/01/06"}

// ParseDate parses a date flexibly: separators \ . - normalize to /, an
// ordered list of explicit layouts is tried, then a lenient day-first
// inference.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if isSentinel(s) {
		return time.Time{}, false
	}
	s = strings.NewReplacer("\\", "/", ".", "/", "-", "/").Replace(s)

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return inferDayFirst(s)
}

// inferDayFirst handles unpadded numeric components. Four-digit leading
// components read as year/month/day, anything else as day/month/year.
func inferDayFirst(s string) (time.Time, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, false
		}
		nums[i] = n
	}

	var year, month, day int
	if len(strings.TrimSpace(parts[0])) == 4 {
		year, month, day = nums[0], nums[1], nums[2]
	} else {
		day, month, year = nums[0], nums[1], nums[2]
		if year < 100 {
			if year < 69 {
				year += 2000
			} else {
				year += 1900
			}
		}
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}

// dateBounds returns the accepted range: 2000-01-01 through tomorrow,
// inclusive.
func dateBounds(now time.Time) (time.Time, time.Time) {
	lo := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	hi := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	return lo, hi
}

func inDateRange(t, lo, hi time.Time) bool {
	return !t.Before(lo) && !t.After(hi)
}
