package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestExtensionMechanism(t *testing.T) {
	tempDir := t.TempDir()

	// bill-hello prints the environment it received.
	helloCmdSource := fmt.Sprintf(`
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("args=%%v\n", os.Args[1:])
}
`, EnvStore, EnvStore, EnvConfig, EnvConfig, EnvVerbose, EnvVerbose)

	helloCmdPath := filepath.Join(tempDir, "bill-hello")
	srcFile := helloCmdPath + ".go"
	if err := os.WriteFile(srcFile, []byte(helloCmdSource), 0644); err != nil {
		t.Fatalf("Failed to write bill-hello source: %v", err)
	}
	cmd := exec.Command("go", "build", "-o", helloCmdPath, srcFile)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to compile bill-hello: %v", err)
	}

	billBinaryPath := filepath.Join(tempDir, "bill")
	cmd = exec.Command("go", "build", "-o", billBinaryPath, "../bill")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to compile bill binary: %v", err)
	}

	expectedStore := filepath.Join(tempDir, "shop-bills")
	configPath := filepath.Join(tempDir, "cashbill.yaml")
	if err := os.WriteFile(configPath, []byte("shop:\n  name: Corner Store\n"), 0644); err != nil {
		t.Fatal(err)
	}

	args := []string{
		"-store", expectedStore,
		"-config", configPath,
		"-v",
		"hello", "a", "b",
	}
	billCmd := exec.Command(billBinaryPath, args...)
	billCmd.Dir = tempDir
	billCmd.Env = []string{"PATH=" + tempDir + string(os.PathListSeparator) + os.Getenv("PATH")}

	var stdout, stderr bytes.Buffer
	billCmd.Stdout = &stdout
	billCmd.Stderr = &stderr
	if err := billCmd.Run(); err != nil {
		t.Fatalf("bill command failed: %v\nStdout: %s\nStderr: %s", err, stdout.String(), stderr.String())
	}

	output := stdout.String()
	for _, expectedLine := range []string{
		EnvStore + "=" + expectedStore,
		EnvConfig + "=" + configPath,
		EnvVerbose + "=" + strconv.FormatBool(true),
		"args=[a b]",
	} {
		if !strings.Contains(output, expectedLine) {
			t.Errorf("Expected output to contain %q, but got:\n%s", expectedLine, output)
		}
	}
}
