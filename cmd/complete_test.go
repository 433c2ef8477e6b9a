package cmd

import (
	"path/filepath"
	"testing"
)

func TestFlagFromLine(t *testing.T) {
	testCases := []struct {
		line, name, want string
	}{
		{"bill -store bills show -n ", "store", "bills"},
		{"bill --store=bills show ", "store", "bills"},
		{"bill -config shop.yaml show ", "config", "shop.yaml"},
		{"bill show store=bills ", "store", ""},
		{"bill show -n ", "store", ""},
		{"bill -store", "store", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.line, func(t *testing.T) {
			if got := flagFromLine(tc.line, tc.name); got != tc.want {
				t.Errorf("flagFromLine(%q, %q) = %q, want %q", tc.line, tc.name, got, tc.want)
			}
		})
	}
}

func TestCompletionStore(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, "cashbill.yaml"), "store: shop-bills\n")
	writeFile(t, filepath.Join(dir, "other.yaml"), "store: other-bills\n")

	testCases := []struct {
		name, line, env, want string
	}{
		{"configuration file", "bill show -n ", "", "shop-bills"},
		{"environment", "bill show -n ", "env-bills", "env-bills"},
		{"config flag", "bill -config other.yaml show -n ", "", "other-bills"},
		{"store flag", "bill -store flag-bills show -n ", "env-bills", "flag-bills"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("COMP_LINE", tc.line)
			t.Setenv("BILL_STORE", tc.env)
			if got := completionStore(); got != tc.want {
				t.Errorf("completionStore() = %q, want %q", got, tc.want)
			}
		})
	}
}
