package dotenv

import (
	"fmt"
	"strings"
)

// Parse extracts KEY=VALUE pairs from raw .env text and inserts them into
// the mapping, last write wins. Lines without '=' (or with an empty key)
// are reported in the returned slice and skipped; they never abort the
// pass. When any inserted value starts with '$' a single interpolation
// pass runs after all lines are in (see resolve.go).
//
// Lines end at '\n'; one trailing '\r' is trimmed so CRLF files parse the
// same as LF files.
func (e *Env) Parse(raw []byte) []error {
	var errs []error
	needsResolve := false

	lines := strings.Split(string(raw), "\n")
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx < 0 {
			errs = append(errs, fmt.Errorf("line %d: no '=' separator: %q", i+1, line))
			continue
		}

		key := strings.Trim(line[:idx], " \t")
		if key == "" {
			errs = append(errs, fmt.Errorf("line %d: empty key: %q", i+1, line))
			continue
		}
		value := unquote(strings.Trim(line[idx+1:], " \t"))

		if strings.HasPrefix(value, "$") {
			needsResolve = true
		}
		e.values[key] = value
		e.fileKeys[key] = struct{}{}
	}

	if needsResolve {
		e.resolve()
	}
	return errs
}

// unquote strips exactly one outer layer of matching quotes. It does not
// recurse and does not unescape interior characters; a lone quote (length
// 1) is left intact.
func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if first == last && (first == '"' || first == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
