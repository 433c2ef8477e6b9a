package cashbill

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoney_String(t *testing.T) {
	testCases := []struct {
		in   Money
		want string
	}{
		{M(0), "₹0.00"},
		{M(0.05), "₹0.05"},
		{M(31.5), "₹31.50"},
		{M(999), "₹999.00"},
		{M(1000), "₹1,000.00"},
		{M(12345.678), "₹12,345.68"},
		{M(123456), "₹1,23,456.00"},
		{M(1234567.891), "₹12,34,567.89"},
		{M(100000000), "₹10,00,00,000.00"},
		{M(-31.5), "-₹31.50"},
		{M(-1234567), "-₹12,34,567.00"},
		{M(2.675), "₹2.68"}, // half away from zero on the exact decimal
		{M(-0.005), "-₹0.01"},
		{M(-0.004), "₹0.00"},
		{M(decimal.RequireFromString("123456789012345678.25")), "₹1,23,45,67,89,01,23,45,678.25"},
		{M(decimal.RequireFromString("-98765432109876543210.5")), "-₹9,87,65,43,21,09,87,65,43,210.50"},
	}
	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			if got := tc.in.String(); got != tc.want {
				t.Errorf("M(%v).String() = %q, want %q", tc.in.Decimal(), got, tc.want)
			}
		})
	}
}

func TestMoney_Plain(t *testing.T) {
	if got, want := M(1234567.5).Plain(), "12,34,567.50"; got != want {
		t.Errorf("Plain() = %q, want %q", got, want)
	}
	if got, want := M(-10.5).Plain(), "-10.50"; got != want {
		t.Errorf("Plain() = %q, want %q", got, want)
	}
}

func TestParseMoney(t *testing.T) {
	testCases := []struct {
		in      string
		want    Money
		wantErr bool
	}{
		{in: "10.5", want: M(10.5)},
		{in: "₹31.50", want: M(31.5)},
		{in: "₹ 1,250", want: M(1250)},
		{in: "12,34,567.89", want: M(1234567.89)},
		{in: "-₹31.50", want: M(-31.5)},
		{in: "", wantErr: true},
		{in: "₹", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "--5", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseMoney(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseMoney(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if !tc.wantErr && !got.Equal(tc.want) {
				t.Errorf("ParseMoney(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

// TestMoney_RoundTrip checks that parsing a formatted amount gives back the
// amount rounded to the currency fraction.
func TestMoney_RoundTrip(t *testing.T) {
	for _, v := range []float64{0, 0.004, 0.005, 1, 10.5, 31.499, 99999.999, 123456.789, -0.5, -98765.4321} {
		m := M(v)
		got, err := ParseMoney(m.String())
		if err != nil {
			t.Fatalf("ParseMoney(%q) unexpected error: %v", m.String(), err)
		}
		if !got.Equal(m.Round()) {
			t.Errorf("ParseMoney(M(%v).String()) = %v, want %v", v, got.Decimal(), m.Round().Decimal())
		}
	}
}

func TestMoney_RoundTripLargeAmounts(t *testing.T) {
	for _, v := range []string{"9223372036854775.807", "123456789012345678.25", "-1000000000000000000000.005"} {
		m := M(decimal.RequireFromString(v))
		got, err := ParseMoney(m.String())
		if err != nil {
			t.Fatalf("ParseMoney(%q) unexpected error: %v", m.String(), err)
		}
		if !got.Equal(m.Round()) {
			t.Errorf("ParseMoney(%q) = %v, want %v", m.String(), got.Decimal(), m.Round().Decimal())
		}
	}
}

func TestMoney_JSON(t *testing.T) {
	data, err := json.Marshal(M(10.555))
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	if got, want := string(data), "10.56"; got != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}

	for _, in := range []string{`31.5`, `"31.50"`, `"₹31.50"`} {
		var m Money
		if err := json.Unmarshal([]byte(in), &m); err != nil {
			t.Fatalf("Unmarshal(%s) unexpected error: %v", in, err)
		}
		if !m.Equal(M(31.5)) {
			t.Errorf("Unmarshal(%s) = %v, want ₹31.50", in, m)
		}
	}
}

func TestMoney_Mul(t *testing.T) {
	got := M(decimal.RequireFromString("10.50")).Mul(3)
	if !got.Equal(M(31.5)) {
		t.Errorf("Mul() = %v, want ₹31.50", got)
	}
}
