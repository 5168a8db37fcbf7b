// Package keys defines the closed set of configuration variables the
// tools know by identifier, mapped to their canonical .env names.
package keys

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Known identifies a member of the closed key set.
type Known int

const (
	Host Known = iota
	Port
	User
	Password
	Database
	LogLevel
	DataDir
	CacheDir
)

var canonical = map[Known]string{
	Host:     "HOST",
	Port:     "PORT",
	User:     "USER",
	Password: "PASSWORD",
	Database: "DATABASE",
	LogLevel: "LOG_LEVEL",
	DataDir:  "DATA_DIR",
	CacheDir: "CACHE_DIR",
}

var (
	aliasMu sync.RWMutex
	aliases map[string]string // canonical name -> override
)

func (k Known) String() string {
	if n, ok := canonical[k]; ok {
		return n
	}
	return fmt.Sprintf("Known(%d)", int(k))
}

// Name returns the string name Known k resolves to in an env mapping:
// the canonical name, unless an alias file remapped it.
func (k Known) Name() string {
	name := k.String()
	aliasMu.RLock()
	defer aliasMu.RUnlock()
	if override, ok := aliases[name]; ok {
		return override
	}
	return name
}

// Parse maps an identifier such as "host" or "LOG_LEVEL" to its Known
// member.
func Parse(s string) (Known, bool) {
	want := strings.ToUpper(strings.TrimSpace(s))
	for k, n := range canonical {
		if n == want {
			return k, true
		}
	}
	return 0, false
}

// All returns every member of the set in declaration order.
func All() []Known {
	return []Known{Host, Port, User, Password, Database, LogLevel, DataDir, CacheDir}
}

// LoadAliases reads the optional alias file remapping canonical names.
// The file lives next to the executable as keys.yaml unless
// ENVLOADER_KEYS_FILE overrides the path. A missing file is not an error.
func LoadAliases() error {
	exePath, err := os.Executable()
	if err != nil {
		return err
	}
	aliasesPath := filepath.Join(filepath.Dir(exePath), "keys.yaml")

	if override := os.Getenv("ENVLOADER_KEYS_FILE"); override != "" {
		aliasesPath = override
	}

	if _, err := os.Stat(aliasesPath); os.IsNotExist(err) {
		return nil
	}

	b, err := os.ReadFile(aliasesPath)
	if err != nil {
		return err
	}

	loaded := make(map[string]string)
	if err := yaml.Unmarshal(b, &loaded); err != nil {
		return fmt.Errorf("parse %s: %w", aliasesPath, err)
	}

	aliasMu.Lock()
	aliases = loaded
	aliasMu.Unlock()
	return nil
}

// SetAliases replaces the alias table directly. Tests use it to avoid
// touching the filesystem.
func SetAliases(m map[string]string) {
	aliasMu.Lock()
	aliases = m
	aliasMu.Unlock()
}
