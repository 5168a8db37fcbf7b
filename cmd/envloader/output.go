package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

func quoteForSh(v string) string {
	if v == "" {
		return "''"
	}
	if !strings.ContainsAny(v, " \t'\"\\$`") {
		return v
	}
	return "'" + strings.ReplaceAll(v, "'", `'\''`) + "'"
}

func quoteForPowerShell(v string) string {
	if v == "" {
		return "''"
	}
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

func quoteForCmd(v string) string {
	if v == "" {
		return `""`
	}
	if !strings.ContainsAny(v, " \t\"") {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

func sortedKeys(m map[string]string) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

func printOutput(envMap map[string]string, format, shell string) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "env":
		printEnvForShell(envMap, shell)
	case "json":
		printJSON(envMap)
	case "yaml":
		printYAML(envMap)
	case "raw":
		for _, k := range sortedKeys(envMap) {
			fmt.Printf("%s=%s\n", k, envMap[k])
		}
	default:
		log.Fatalf("invalid --format value: %s (allowed: env, json, yaml, raw)", format)
	}
}

func printEnvForShell(envMap map[string]string, shell string) {
	switch shell {
	case "sh":
		fmt.Println("# POSIX shell (bash, sh, zsh):")
		for _, k := range sortedKeys(envMap) {
			fmt.Printf("export %s=%s\n", k, quoteForSh(envMap[k]))
		}
	case "pwsh":
		fmt.Println("# PowerShell (pwsh / powershell):")
		for _, k := range sortedKeys(envMap) {
			fmt.Printf("$Env:%s = %s\n", k, quoteForPowerShell(envMap[k]))
		}
	case "cmd":
		fmt.Println("# Windows cmd.exe:")
		for _, k := range sortedKeys(envMap) {
			fmt.Printf("set %s=%s\n", k, quoteForCmd(envMap[k]))
		}
	default:
		printEnvCommandsAll(envMap)
	}
}

func printEnvCommandsAll(envMap map[string]string) {
	fmt.Println("# POSIX shell (bash, sh, zsh):")
	for _, k := range sortedKeys(envMap) {
		fmt.Printf("export %s=%s\n", k, quoteForSh(envMap[k]))
	}
	fmt.Println()
	fmt.Println("# PowerShell (Windows and PowerShell Core):")
	for _, k := range sortedKeys(envMap) {
		fmt.Printf("$Env:%s = %s\n", k, quoteForPowerShell(envMap[k]))
	}
	fmt.Println()
	fmt.Println("# Windows cmd.exe:")
	for _, k := range sortedKeys(envMap) {
		fmt.Printf("set %s=%s\n", k, quoteForCmd(envMap[k]))
	}
}

// filterEnv returns a new map containing only keys allowed by onlyList
// and not in excludeList. An empty onlyList allows every key before
// exclusion.
func filterEnv(m map[string]string, onlyList, excludeList []string) map[string]string {
	out := make(map[string]string, len(m))
	onlySet := make(map[string]struct{})
	excludeSet := make(map[string]struct{})

	for _, k := range onlyList {
		if k = strings.TrimSpace(k); k != "" {
			onlySet[k] = struct{}{}
		}
	}
	for _, k := range excludeList {
		if k = strings.TrimSpace(k); k != "" {
			excludeSet[k] = struct{}{}
		}
	}

	for k, v := range m {
		if len(onlySet) > 0 {
			if _, ok := onlySet[k]; !ok {
				continue
			}
		}
		if _, ex := excludeSet[k]; ex {
			continue
		}
		out[k] = v
	}
	return out
}

func printJSON(envMap map[string]string) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(envMap); err != nil {
		log.Fatalf("failed to encode json: %v", err)
	}
}

func printYAML(envMap map[string]string) {
	enc := yaml.NewEncoder(os.Stdout)
	defer func() { _ = enc.Close() }()
	if err := enc.Encode(envMap); err != nil {
		log.Fatalf("failed to encode yaml: %v", err)
	}
}

func oneLinerForShell(shell, exeName string) string {
	// --shell is explicit so the printed command is deterministic no
	// matter where it is pasted
	switch shell {
	case "sh":
		return fmt.Sprintf(`eval "$(%s --shell=sh)"`, exeName)
	case "pwsh":
		return fmt.Sprintf(`%s --shell=pwsh | Invoke-Expression`, exeName)
	case "cmd":
		// inside a batch file the %% must be doubled
		return fmt.Sprintf(`for /f "delims=" %sL in ('%s --shell=cmd') do @%sL`, "%", exeName, "%")
	default:
		return fmt.Sprintf("# POSIX: eval \"$(%s)\"\n# PowerShell: %s | Invoke-Expression\n# cmd: for /f \"delims=\" %%L in ('%s --shell=cmd') do @%%L", exeName, exeName, exeName)
	}
}
