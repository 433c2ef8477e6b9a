package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

const (
	EnvStore   = "BILL_STORE"
	EnvConfig  = "BILL_CONFIG"
	EnvVerbose = "BILL_VERBOSE"
)

// RunExtension attempts to find and execute an external bill-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
//
// The extension receives the effective global flags as environment variables,
// BILL_STORE being also read by the configuration.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "bill-" + subcommand

	// Look for the external command in PATH
	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		logger().Debugw("external command not found", "command", externalCmdName, "error", err)
		return false, 0
	}

	cfg, err := config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return true, 1
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, EnvStore+"="+cfg.Store)
	cmd.Env = append(cmd.Env, EnvConfig+"="+*configFile)
	cmd.Env = append(cmd.Env, EnvVerbose+"="+strconv.FormatBool(*Verbose))

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}
