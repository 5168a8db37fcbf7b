// Package run executes a child command under a loaded environment. On
// Unix the current process is replaced via exec(2); on Windows the child
// is spawned and its exit code mirrored by the caller.
package run

import (
	"os"
	"sort"
)

// RunCommandWithEnv runs cmdName with cmdArgs under the current process
// environment overlaid with env. It only returns on error (Unix) or after
// the child exits (Windows).
func RunCommandWithEnv(cmdName string, cmdArgs []string, env map[string]string) error {
	return runWithEnviron(cmdName, cmdArgs, MergeEnviron(os.Environ(), env))
}

// MergeEnviron overlays env onto base KEY=VALUE entries; overlay keys
// replace base keys of the same name. Output is sorted for deterministic
// child environments.
func MergeEnviron(base []string, env map[string]string) []string {
	merged := make(map[string]string, len(base)+len(env))
	for _, kv := range base {
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				merged[kv[:i]] = kv[i+1:]
				break
			}
		}
	}
	for k, v := range env {
		merged[k] = v
	}

	out := make([]string, 0, len(merged))
	for k, v := range merged {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
