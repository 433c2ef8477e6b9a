package cmd

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseItem(t *testing.T) {
	tests := []struct {
		input    string
		name     string
		quantity int
		price    string
		wantErr  bool
	}{
		{input: "Pen:3:10.50", name: "Pen", quantity: 3, price: "10.50"},
		{input: "Tea: masala:2:₹1,250", name: "Tea: masala", quantity: 2, price: "1,250.00"},
		{input: "Pen: 1 : 5", name: "Pen", quantity: 1, price: "5.00"},
		{input: "Pen:3", wantErr: true},
		{input: "Pen", wantErr: true},
		{input: "Pen:x:1", wantErr: true},
		{input: "Pen:1:abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseItem(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseItem(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.name != tt.name || got.quantity != tt.quantity || got.price.Plain() != tt.price {
				t.Errorf("parseItem(%q) = %q %d %s, want %q %d %s", tt.input, got.name, got.quantity, got.price.Plain(), tt.name, tt.quantity, tt.price)
			}
		})
	}
}

func TestItemsFlag(t *testing.T) {
	var f itemsFlag
	for _, s := range []string{"Pen:3:10.5", "Ink:1:20"} {
		if err := f.Set(s); err != nil {
			t.Fatal(err)
		}
	}
	if got, want := f.String(), "Pen:3:10.50,Ink:1:20.00"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if err := f.Set("broken"); err == nil {
		t.Error("Set(\"broken\") succeeded, want an error")
	}
	if len(f) != 2 {
		t.Errorf("len = %d after a failed Set, want 2", len(f))
	}
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		line    string
		want    []string
		wantErr bool
	}{
		{line: "", want: nil},
		{line: "  total  ", want: []string{"total"}},
		{line: `bill B100 "Asha Rao" 9999999999`, want: []string{"bill", "B100", "Asha Rao", "9999999999"}},
		{line: `add "" 1 2`, want: []string{"add", "", "1", "2"}},
		{line: `add "Ball pen 1 2`, wantErr: true},
	}
	for _, tt := range tests {
		got, err := splitArgs(tt.line)
		if (err != nil) != tt.wantErr {
			t.Errorf("splitArgs(%q) error = %v, wantErr %v", tt.line, err, tt.wantErr)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("splitArgs(%q) mismatch (-want +got):\n%s", tt.line, diff)
		}
	}
}
