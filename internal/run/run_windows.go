//go:build windows

package run

import (
	"os"
	"os/exec"
)

// runWithEnviron spawns the child with inherited stdio; Windows has no
// exec(2), so the caller mirrors the child's exit code.
func runWithEnviron(cmdName string, cmdArgs []string, environ []string) error {
	cmd := exec.Command(cmdName, cmdArgs...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = environ
	return cmd.Run()
}
