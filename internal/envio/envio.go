// Package envio is the file boundary for env files: a size-capped reader
// with a typed error taxonomy and a newline-aware, lock-guarded appender.
// The parser never opens files itself; it receives bytes from here.
package envio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"
)

// ErrorKind classifies file access failures.
type ErrorKind int

const (
	KindNotFound ErrorKind = iota
	KindPermissionDenied
	KindTooLarge
	KindOther
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindPermissionDenied:
		return "permission denied"
	case KindTooLarge:
		return "too large"
	default:
		return "io error"
	}
}

// FileError reports a failed file access with its classification.
type FileError struct {
	Path string
	Kind ErrorKind
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("env file %s: %s", e.Path, e.Kind)
}

func (e *FileError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a FileError for a missing file.
func IsNotFound(err error) bool {
	var fe *FileError
	return errors.As(err, &fe) && fe.Kind == KindNotFound
}

func classify(path string, err error) *FileError {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &FileError{Path: path, Kind: KindNotFound, Err: err}
	case errors.Is(err, fs.ErrPermission):
		return &FileError{Path: path, Kind: KindPermissionDenied, Err: err}
	default:
		return &FileError{Path: path, Kind: KindOther, Err: err}
	}
}

// ReadAll reads the whole file. maxSize > 0 is an upper bound on the file
// size; larger files fail with KindTooLarge instead of being truncated.
func ReadAll(path string, maxSize int64) ([]byte, error) {
	cleanPath := filepath.Clean(path)

	if maxSize > 0 {
		info, err := os.Stat(cleanPath)
		if err != nil {
			return nil, classify(cleanPath, err)
		}
		if info.Size() > maxSize {
			return nil, &FileError{
				Path: cleanPath,
				Kind: KindTooLarge,
				Err:  fmt.Errorf("%d bytes exceeds limit of %d", info.Size(), maxSize),
			}
		}
	}

	b, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, classify(cleanPath, err)
	}
	return b, nil
}

// AppendLine appends "key=value\n" to path, creating the file if absent.
// When the file is non-empty and does not already end in a newline, a
// separating newline is written first. An advisory lock on a sidecar file
// keeps concurrent appenders from interleaving.
func AppendLine(path, key, value string) error {
	cleanPath := filepath.Clean(path)

	lock := flock.New(cleanPath + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", cleanPath, err)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(cleanPath + ".lock")
	}()

	needSep, err := needsSeparator(cleanPath)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(cleanPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return classify(cleanPath, err)
	}
	defer func() { _ = f.Close() }()

	line := key + "=" + value + "\n"
	if needSep {
		line = "\n" + line
	}
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("append to %s: %w", cleanPath, err)
	}
	return nil
}

// needsSeparator reports whether path exists, is non-empty, and does not
// end in '\n'.
func needsSeparator(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, classify(path, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return false, classify(path, err)
	}
	if info.Size() == 0 {
		return false, nil
	}

	buf := make([]byte, 1)
	if _, err := f.ReadAt(buf, info.Size()-1); err != nil {
		return false, classify(path, err)
	}
	return buf[0] != '\n', nil
}

// CombineTemplates reads all files matching pattern under dir, sorts them
// by filename for deterministic ordering, and returns their concatenated
// contents separated by a single blank line. No matches yields empty
// output and no error.
func CombineTemplates(dir, pattern string) ([]byte, error) {
	files, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	sort.Strings(files)

	var parts []string
	for _, f := range files {
		b, err := os.ReadFile(f)
		if err != nil {
			return nil, classify(f, err)
		}
		parts = append(parts, string(b))
	}
	return []byte(strings.Join(parts, "\n\n")), nil
}
