package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	ps "github.com/mitchellh/go-ps"
)

// DetectShell picks the export syntax for the invoking shell: "sh",
// "pwsh", or "cmd". It walks the ancestor process chain first, which
// works on both Windows and Unix, then falls back to environment
// heuristics.
func DetectShell() string {
	if shell := shellFromAncestors(); shell != "" {
		return shell
	}

	if runtime.GOOS == "windows" {
		if strings.Contains(strings.ToLower(strings.TrimSpace(os.Getenv("COMSPEC"))), "cmd.exe") {
			return "cmd"
		}
		if os.Getenv("PSModulePath") != "" || os.Getenv("PSExecutionPolicyPreference") != "" {
			return "pwsh"
		}
		return "cmd"
	}

	shellEnv := strings.ToLower(strings.TrimSpace(os.Getenv("SHELL")))
	if strings.Contains(shellEnv, "pwsh") || strings.Contains(shellEnv, "powershell") {
		return "pwsh"
	}
	return "sh"
}

// shellFromAncestors walks up the parent process chain looking for a
// recognizable shell executable. Returns "" when nothing matches.
func shellFromAncestors() string {
	proc, err := ps.FindProcess(os.Getpid())
	if err != nil || proc == nil {
		return ""
	}
	for cur := proc; cur != nil && cur.Pid() != 0; cur, _ = ps.FindProcess(cur.PPid()) {
		if shell := classifyShellName(cur.Executable()); shell != "" {
			return shell
		}
	}
	return ""
}

func classifyShellName(executable string) string {
	switch strings.ToLower(filepath.Base(executable)) {
	case "cmd.exe", "cmd":
		return "cmd"
	case "pwsh.exe", "powershell.exe", "pwsh", "powershell":
		return "pwsh"
	case "bash", "zsh", "sh", "dash", "fish":
		return "sh"
	}
	return ""
}
