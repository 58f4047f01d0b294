// Package fragment reads and writes the "#/<scope>/<period>" location
// fragment that makes the selected period bookmarkable.
package fragment

import (
	"strings"

	"choromap/internal/region"
)

// Parse returns the period named by frag when it belongs to scope and is
// one of periods. Anything else falls back to the first period; an empty
// period list yields "".
func Parse(frag, scope string, periods []region.Period) region.Period {
	if len(periods) == 0 {
		return ""
	}
	parts := strings.Split(strings.TrimPrefix(strings.TrimSpace(frag), "#"), "/")
	// ["", scope, period]
	if len(parts) == 3 && parts[0] == "" && parts[1] == scope {
		want := region.Period(parts[2])
		for _, p := range periods {
			if p == want {
				return p
			}
		}
	}
	return periods[0]
}

func Format(scope string, p region.Period) string {
	return "#/" + scope + "/" + string(p)
}
