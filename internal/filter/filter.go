// Package filter decides which units take part in a run and which of
// those are ignored.
package filter

import (
	"strings"

	"github.com/AndreyAkinshin/mimic/internal/args"
	"github.com/AndreyAkinshin/mimic/internal/model"
)

// IsFilteredOut reports whether the unit is excluded from the run by the
// name filter or by any --skip pattern. Filtered units are not printed
// and only count towards the filtered-out counter.
func IsFilteredOut(a *args.Arguments, info model.Info) bool {
	name := info.Name

	if a.HasFilter() {
		if a.Exact && name != a.Filter {
			return true
		}
		if !a.Exact && !strings.Contains(name, a.Filter) {
			return true
		}
	}

	for _, skip := range a.Skip {
		if a.Exact && name == skip {
			return true
		}
		if !a.Exact && strings.Contains(name, skip) {
			return true
		}
	}

	return false
}

// IsIgnored reports whether the unit is printed as ignored instead of
// being executed.
func IsIgnored(a *args.Arguments, info model.Info) bool {
	return (info.Ignored && !a.Ignored) ||
		(info.Bench && a.Test) ||
		(!info.Bench && a.Bench)
}

// Apply returns the units that survive filtering, in input order, and the
// number of units that were filtered out. info extracts the metadata of a unit.
func Apply[T any](a *args.Arguments, units []T, info func(T) model.Info) ([]T, uint64) {
	if !a.HasFilter() && len(a.Skip) == 0 {
		return units, 0
	}

	kept := make([]T, 0, len(units))
	for _, u := range units {
		if !IsFilteredOut(a, info(u)) {
			kept = append(kept, u)
		}
	}
	return kept, uint64(len(units) - len(kept))
}
