package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/cashbill"
	"github.com/etnz/cashbill/renderer"
	"github.com/google/subcommands"
)

// deliver outputs an issued invoice the way the user asked for.
func deliver(inv cashbill.Invoice, shop renderer.Shop, share, download, pdf bool, dir string) subcommands.ExitStatus {
	write := func(asPDF bool) bool {
		path, err := writeDocument(inv, shop, dir, asPDF)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return false
		}
		fmt.Printf("Invoice %s written to %s\n", inv.Number(), path)
		return true
	}

	switch {
	case download || pdf:
		if download && !write(false) {
			return subcommands.ExitFailure
		}
		if pdf && !write(true) {
			return subcommands.ExitFailure
		}
	case share:
		text := shop.PlainText(inv)
		fmt.Printf("%s\n\n%s\n", text, renderer.ShareURL(text))
	default:
		fmt.Println(shop.PlainText(inv))
	}
	return subcommands.ExitSuccess
}

// writeDocument writes the printable invoice in dir and returns its path.
func writeDocument(inv cashbill.Invoice, shop renderer.Shop, dir string, asPDF bool) (string, error) {
	var (
		content []byte
		name    string
	)
	if asPDF {
		var b bytes.Buffer
		if err := shop.PDF(&b, inv); err != nil {
			return "", fmt.Errorf("cannot render PDF for invoice %q: %w", inv.Number(), err)
		}
		content, name = b.Bytes(), renderer.PDFFilename(inv)
	} else {
		doc, err := shop.Document(inv)
		if err != nil {
			return "", err
		}
		content, name = []byte(doc), renderer.DocumentFilename(inv)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("cannot create folder %q: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", err
	}
	logger().Debugw("document written", "path", path, "bytes", len(content))
	return path, nil
}
