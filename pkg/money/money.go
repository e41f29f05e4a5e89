// Package money handles monetary values as integer minor units (cents).
// Amounts never pass through binary floats.
package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Cents is a monetary amount in USD minor units.
type Cents int64

var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrTooManyDigits  = errors.New("amount has more than 2 decimal places")
	ErrAmountOverflow = errors.New("amount out of range")
)

// ParseDollars converts a decimal string such as "19.99" into cents.
// At most two fractional digits are accepted.
func ParseDollars(value string) (Cents, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	negative := false
	switch s[0] {
	case '-':
		negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	if s == "" || s == "." {
		return 0, ErrInvalidAmount
	}

	whole, frac := s, ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		whole, frac = s[:idx], s[idx+1:]
	}
	if len(frac) > 2 {
		return 0, ErrTooManyDigits
	}
	if whole == "" {
		whole = "0"
	}
	for len(frac) < 2 {
		frac += "0"
	}

	// Only digits are valid past the leading sign; ParseInt alone would
	// accept a second sign inside either part.
	if !allDigits(whole) || !allDigits(frac) {
		return 0, ErrInvalidAmount
	}

	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	fracCents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	if dollars > (1<<63-1-fracCents)/100 {
		return 0, ErrAmountOverflow
	}
	cents := dollars*100 + fracCents
	if negative {
		cents = -cents
	}
	return Cents(cents), nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

// Dollars renders the amount as a plain decimal string without a symbol,
// e.g. 1999 -> "19.99". Used where the edit form expects a raw number.
func (c Cents) Dollars() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Format renders the amount as a localized currency string, e.g. "$1,234.56".
// Zero formats as "$0.00".
func (c Cents) Format() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + "$" + groupThousands(v/100) + fmt.Sprintf(".%02d", v%100)
}

func groupThousands(v int64) string {
	digits := strconv.FormatInt(v, 10)
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatDate renders a timestamp for dashboard tables, e.g. "Jan 2, 2006".
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// FormatMonth renders a (year, month) bucket label, e.g. "Mar 2024".
func FormatMonth(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month.String()[:3], year)
}
