package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/cashbill/renderer"
	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error: %v", err)
	}
	want := &Config{Shop: renderer.DefaultShop, Store: ".cashbill"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, "cashbill.yaml"), `
shop:
  name: Corner Store
  address: 12 MG Road, Pune
store: bills
`)
	t.Setenv("BILL_SHOP_PHONE", "020 1234 5678")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error: %v", err)
	}
	want := &Config{
		Shop:  renderer.Shop{Name: "Corner Store", Address: "12 MG Road, Pune", Phone: "020 1234 5678"},
		Store: "bills",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadConfig() with a missing explicit file succeeded, want an error")
	}

	blank := filepath.Join(dir, "blank.yaml")
	writeFile(t, blank, "shop:\n  name: \"\"\n")
	if _, err := LoadConfig(blank); err == nil {
		t.Error("LoadConfig() with a blank shop name succeeded, want an error")
	}
}
