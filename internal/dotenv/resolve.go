package dotenv

import (
	"strings"

	"github.com/it-atelier-gn/envloader/internal/osenv"
)

// resolve runs the single interpolation pass. It builds a snapshot of the
// combined lookup (the ambient environment, unless the instance was
// already seeded with it, overlaid with the current mapping), resolves
// every snapshot value of the form $NAME or ${NAME} against that
// snapshot, and writes the results back into the primary mapping under
// their original keys.
//
// The pass is deliberately non-transitive: a reference resolving to
// another reference yields that reference's literal text. References to
// names absent from the snapshot, and the degenerate forms "$" and "${}",
// resolve to the empty string.
func (e *Env) resolve() {
	snapshot := make(map[string]string)
	if !e.seededAmbient {
		for _, kv := range e.environ() {
			if k, v, ok := osenv.SplitEntry(kv); ok {
				snapshot[k] = v
			}
		}
	}
	for k, v := range e.values {
		snapshot[k] = v
	}

	for k, v := range snapshot {
		if !strings.HasPrefix(v, "$") {
			continue
		}
		e.values[k] = snapshot[refName(v)]
	}
}

// refName extracts the referenced variable name from a value known to
// start with '$'. A "${NAME}" form requires the closing brace; without it
// the name is taken literally from everything after the '$'.
func refName(v string) string {
	name := v[1:]
	if strings.HasPrefix(name, "{") && strings.HasSuffix(name, "}") {
		name = name[1 : len(name)-1]
	}
	return name
}
