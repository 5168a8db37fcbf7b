//go:build !windows

package run

import (
	"fmt"
	"os/exec"

	"golang.org/x/sys/unix"
)

// runWithEnviron replaces the current process with the child via exec(2),
// so signals and exit status pass straight through. It only returns on
// failure.
func runWithEnviron(cmdName string, cmdArgs []string, environ []string) error {
	path, err := exec.LookPath(cmdName)
	if err != nil {
		return fmt.Errorf("lookup %s: %w", cmdName, err)
	}
	argv := append([]string{path}, cmdArgs...)
	if err := unix.Exec(path, argv, environ); err != nil {
		return fmt.Errorf("exec %s: %w", path, err)
	}
	return nil
}
