// Package osenv isolates all process-environment access behind narrow
// interfaces so parsing and resolution stay testable without touching
// real process state.
package osenv

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// Lookup reads a single variable. Mirrors os.LookupEnv.
type Lookup func(name string) (string, bool)

// Environ enumerates the full environment as KEY=VALUE strings.
type Environ func() []string

// Setter mutates the process environment. Implementations must be safe to
// call once per entry; they are never called concurrently.
type Setter interface {
	Set(key, value string) error
	Unset(key string) error
}

// System is the real OS-backed Setter.
type System struct{}

func (System) Set(key, value string) error {
	if err := os.Setenv(key, value); err != nil {
		return fmt.Errorf("setenv %s: %w", key, err)
	}
	return nil
}

func (System) Unset(key string) error {
	if err := os.Unsetenv(key); err != nil {
		return fmt.Errorf("unsetenv %s: %w", key, err)
	}
	return nil
}

// Apply sets every entry through s. Failures are collected and reported;
// prior successful sets in the same batch are not rolled back.
func Apply(entries map[string]string, s Setter) []error {
	var errs []error
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := s.Set(k, entries[k]); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// SplitEntry splits a KEY=VALUE string on the first '='. ok is false when
// no '=' is present.
func SplitEntry(s string) (key, value string, ok bool) {
	idx := strings.IndexByte(s, '=')
	if idx < 0 {
		return "", "", false
	}
	return s[:idx], s[idx+1:], true
}

// Fake records mutations for tests and serves lookups from its own map.
type Fake struct {
	Values map[string]string
	Sets   []string // "KEY=VALUE" in call order
	Unsets []string
	Err    error // returned from every call when non-nil
}

func NewFake(values map[string]string) *Fake {
	if values == nil {
		values = make(map[string]string)
	}
	return &Fake{Values: values}
}

func (f *Fake) Set(key, value string) error {
	if f.Err != nil {
		return f.Err
	}
	f.Values[key] = value
	f.Sets = append(f.Sets, key+"="+value)
	return nil
}

func (f *Fake) Unset(key string) error {
	if f.Err != nil {
		return f.Err
	}
	delete(f.Values, key)
	f.Unsets = append(f.Unsets, key)
	return nil
}

func (f *Fake) Lookup(name string) (string, bool) {
	v, ok := f.Values[name]
	return v, ok
}

func (f *Fake) Environ() []string {
	out := make([]string, 0, len(f.Values))
	for k, v := range f.Values {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
