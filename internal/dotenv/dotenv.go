// Package dotenv turns .env-formatted text into a resolved key/value
// mapping: comment and blank-line skipping, whitespace trimming,
// single-layer quote stripping, and $NAME / ${NAME} interpolation with
// fallback to the ambient process environment.
package dotenv

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/it-atelier-gn/envloader/internal/envio"
	"github.com/it-atelier-gn/envloader/internal/keys"
	"github.com/it-atelier-gn/envloader/internal/osenv"
)

// DefaultFilename is used by Load and AppendToFile when no filename is
// given.
const DefaultFilename = ".env"

// Env holds the environment mapping for one instance. It assumes
// exclusive access; callers sharing an instance across goroutines must
// supply their own synchronization.
type Env struct {
	// MaxRead caps the size of files Load will read. Zero means no cap.
	MaxRead int64

	values        map[string]string
	fileKeys      map[string]struct{}
	seededAmbient bool

	lookup  osenv.Lookup
	environ osenv.Environ
}

// New returns an Env backed by the real process environment. When
// seedAmbient is true the mapping is pre-seeded with every ambient
// variable at construction time.
func New(seedAmbient bool) *Env {
	return NewWithAmbient(seedAmbient, os.LookupEnv, os.Environ)
}

// NewWithAmbient is New with an injectable ambient environment, for tests
// and embedders that must not touch real process state.
func NewWithAmbient(seedAmbient bool, lookup osenv.Lookup, environ osenv.Environ) *Env {
	e := &Env{
		values:        make(map[string]string),
		fileKeys:      make(map[string]struct{}),
		seededAmbient: seedAmbient,
		lookup:        lookup,
		environ:       environ,
	}
	if seedAmbient {
		for _, kv := range environ() {
			if k, v, ok := osenv.SplitEntry(kv); ok {
				e.values[k] = v
			}
		}
	}
	return e
}

// NotFoundError reports a lookup for a name absent from the mapping.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("env key %q not found", e.Name)
}

// Lookup returns the value for name and whether it is present.
func (e *Env) Lookup(name string) (string, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Get returns the value for name, or *NotFoundError when absent. Absence
// is a recoverable condition; callers decide whether it is fatal.
func (e *Env) Get(name string) (string, error) {
	v, ok := e.values[name]
	if !ok {
		return "", &NotFoundError{Name: name}
	}
	return v, nil
}

// GetKnown looks up a member of the closed known-key set by its canonical
// name.
func (e *Env) GetKnown(k keys.Known) (string, error) {
	return e.Get(k.Name())
}

// Len reports the number of entries in the mapping.
func (e *Env) Len() int { return len(e.values) }

// Load reads filename (DefaultFilename when empty), parses it, resolves
// interpolation references, and optionally applies the file-sourced
// entries to the process environment. A missing file under silent mode is
// not an error and loads zero entries. Malformed lines are logged and
// skipped, never fatal.
func (e *Env) Load(filename string, setInProcess, silent bool) error {
	if filename == "" {
		filename = DefaultFilename
	}

	raw, err := envio.ReadAll(filename, e.MaxRead)
	if err != nil {
		if silent && envio.IsNotFound(err) {
			return nil
		}
		return err
	}

	for _, perr := range e.Parse(raw) {
		log.Printf("%s: %v", filename, perr)
	}

	if setInProcess {
		return e.SetInProcess(osenv.System{})
	}
	return nil
}

// SetInProcess applies every file-sourced entry through s. A failed set is
// reported but does not roll back prior sets in the batch.
func (e *Env) SetInProcess(s osenv.Setter) error {
	entries := make(map[string]string, len(e.fileKeys))
	for k := range e.fileKeys {
		entries[k] = e.values[k]
	}
	errs := osenv.Apply(entries, s)
	if len(errs) > 0 {
		return fmt.Errorf("applying environment: %d of %d entries failed (first: %w)", len(errs), len(entries), errs[0])
	}
	return nil
}

// ExportAll returns the mapping as sorted KEY=VALUE lines. When
// includeAmbient is true the ambient environment is unioned in underneath
// the mapping (mapping entries win on conflict).
func (e *Env) ExportAll(includeAmbient bool) []string {
	merged := make(map[string]string, len(e.values))
	if includeAmbient && !e.seededAmbient {
		for _, kv := range e.environ() {
			if k, v, ok := osenv.SplitEntry(kv); ok {
				merged[k] = v
			}
		}
	}
	for k, v := range e.values {
		merged[k] = v
	}

	out := make([]string, 0, len(merged))
	for k, v := range merged {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

// Values returns a copy of the current mapping.
func (e *Env) Values() map[string]string {
	out := make(map[string]string, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// AppendToFile appends key=value to filename (DefaultFilename when empty)
// and records the pair in the mapping.
func (e *Env) AppendToFile(key, value, filename string) error {
	if filename == "" {
		filename = DefaultFilename
	}
	if err := envio.AppendLine(filename, key, value); err != nil {
		return err
	}
	e.values[key] = value
	e.fileKeys[key] = struct{}{}
	return nil
}
