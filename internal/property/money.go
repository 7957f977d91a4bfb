package property

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Cents is a currency amount in integer cents. All dollar math in the engine
// runs on this type; fractions of a cent are rounded away at the point a value
// is produced, never accumulated.
type Cents int64

// CentsFromDollars converts a dollar amount, rounding half away from zero.
func CentsFromDollars(d float64) Cents {
	return Cents(math.Round(d * 100))
}

// Dollars returns the amount as a float64 dollar value.
func (c Cents) Dollars() float64 {
	return float64(c) / 100
}

// Abs returns the magnitude of the amount.
func (c Cents) Abs() Cents {
	if c < 0 {
		return -c
	}
	return c
}

// Format renders the amount with the given currency symbol.
func (c Cents) Format(symbol string) string {
	n := int64(c)
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return fmt.Sprintf("%s%s%s.%02d", sign, symbol, groupThousands(n/100), n%100)
}

// String renders the amount like "$1,234.56" or "-$980.00".
func (c Cents) String() string {
	return c.Format("$")
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// MarshalJSON emits the amount as a dollar number with exactly two decimals,
// e.g. 912500.00. This is the transport form; internal math never touches it.
func (c Cents) MarshalJSON() ([]byte, error) {
	n := int64(c)
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return []byte(fmt.Sprintf("%s%d.%02d", sign, n/100, n%100)), nil
}

// UnmarshalJSON accepts a dollar number (int or float).
func (c *Cents) UnmarshalJSON(b []byte) error {
	d, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("parse currency amount: %w", err)
	}
	*c = CentsFromDollars(d)
	return nil
}
