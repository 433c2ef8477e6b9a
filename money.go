package cashbill

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Currency is the only currency bills are issued in.
const Currency = money.INR

// Money represents an amount in the bill currency.
//
// The value is kept with full precision, rounding only happens when the money
// is displayed or persisted.
type Money struct {
	value decimal.Decimal // as major unit value
}

// M creates a Money from a numeric value.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// currency returns the full definition of the bill currency.
func currency() *money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return money.New(0, Currency).Currency()
}

func (m Money) Decimal() decimal.Decimal { return m.value }
func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) }
func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) IsNegative() bool         { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool    { return m.value.LessThan(n.value) }
func (m Money) Add(n Money) Money        { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money        { return Money{value: m.value.Sub(n.value)} }
func (m Money) Mul(quantity int) Money   { return Money{value: m.value.Mul(decimal.NewFromInt(int64(quantity)))} }

// Round returns the money rounded to the currency fraction, half away from zero.
func (m Money) Round() Money {
	return Money{value: m.value.Round(int32(currency().Fraction))}
}

// String returns the money formatted for display, e.g. "₹12,34,567.00".
func (m Money) String() string { return m.format(true) }

// Plain returns the money formatted for display without the currency symbol,
// e.g. "12,34,567.00".
func (m Money) Plain() string { return m.format(false) }

// format renders the amount the way en-IN does: the last three digits of the
// integer part are grouped together, then every two digits.
func (m Money) format(symbol bool) string {
	cur := currency()
	rounded := m.value.Round(int32(cur.Fraction))

	// StringFixed keeps every digit, whatever the magnitude.
	digits := rounded.Abs().StringFixed(int32(cur.Fraction))
	integer, fraction, _ := strings.Cut(digits, ".")

	amount := groupIndian(integer, cur.Thousand)
	if cur.Fraction > 0 {
		amount += cur.Decimal + fraction
	}
	grapheme := ""
	if symbol {
		grapheme = cur.Grapheme
	}
	s := strings.Replace(cur.Template, "1", amount, 1)
	s = strings.Replace(s, "$", grapheme, 1)
	if rounded.IsNegative() {
		s = "-" + s
	}
	return s
}

// groupIndian inserts sep in a string of digits: 1234567 becomes 12,34,567.
func groupIndian(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var b strings.Builder
	first := len(head) % 2
	if first > 0 {
		b.WriteString(head[:first])
	}
	for i := first; i < len(head); i += 2 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(head[i : i+2])
	}
	b.WriteString(sep)
	b.WriteString(tail)
	return b.String()
}

// ParseMoney parses an amount as displayed by String or Plain, or as typed by
// a user ("10.5", "1,250", "₹ 31.50", "-₹31.50").
func ParseMoney(s string) (Money, error) {
	cur := currency()
	str := strings.TrimSpace(s)
	neg := strings.HasPrefix(str, "-")
	str = strings.TrimPrefix(str, "-")
	str = strings.ReplaceAll(str, cur.Grapheme, "")
	str = strings.ReplaceAll(str, cur.Thousand, "")
	str = strings.ReplaceAll(str, " ", "")
	if cur.Decimal != "." {
		str = strings.ReplaceAll(str, cur.Decimal, ".")
	}
	if str == "" || strings.HasPrefix(str, "-") || strings.HasPrefix(str, "+") {
		return Money{}, fmt.Errorf("invalid amount %q", s)
	}
	value, err := decimal.NewFromString(str)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if neg {
		value = value.Neg()
	}
	return Money{value: value}, nil
}

// MarshalJSON writes the money as a plain JSON number rounded to the currency fraction.
func (m Money) MarshalJSON() ([]byte, error) {
	return m.Round().value.MarshalJSON()
}

// UnmarshalJSON accepts JSON numbers and strings. null leaves m unchanged.
func (m *Money) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		v, err := ParseMoney(str)
		if err != nil {
			return err
		}
		*m = v
		return nil
	}
	return m.value.UnmarshalJSON(data)
}
