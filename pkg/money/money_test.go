package money

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDollars(t *testing.T) {
	cases := []struct {
		in      string
		want    Cents
		wantErr error
	}{
		{"19.99", 1999, nil},
		{"0", 0, nil},
		{"0.5", 50, nil},
		{"9999999.99", 999999999, nil},
		{"1,000", 0, ErrInvalidAmount},
		{"12.345", 0, ErrTooManyDigits},
		{"", 0, ErrInvalidAmount},
		{".", 0, ErrInvalidAmount},
		{"-2.50", -250, nil},
		{"abc", 0, ErrInvalidAmount},
		{"--5", 0, ErrInvalidAmount},
		{"+-5", 0, ErrInvalidAmount},
		{"1.+5", 0, ErrInvalidAmount},
		{"1.-5", 0, ErrInvalidAmount},
		{"1.2e", 0, ErrInvalidAmount},
	}
	for _, tc := range cases {
		got, err := ParseDollars(tc.in)
		if tc.wantErr != nil {
			assert.ErrorIs(t, err, tc.wantErr, tc.in)
			continue
		}
		assert.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	c, err := ParseDollars("19.99")
	assert.NoError(t, err)
	assert.Equal(t, "19.99", c.Dollars())
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$0.00", Cents(0).Format())
	assert.Equal(t, "$19.99", Cents(1999).Format())
	assert.Equal(t, "$1,234.56", Cents(123456).Format())
	assert.Equal(t, "$9,999,999.99", Cents(999999999).Format())
	assert.Equal(t, "-$0.50", Cents(-50).Format())
}

func TestFormatMonth(t *testing.T) {
	assert.Equal(t, "Jan 2024", FormatMonth(2024, time.January))
	assert.Equal(t, "Mar 2024", FormatMonth(2024, time.March))
}
