// Package history remembers the places a visitor looked at recently.
package history

import (
	"context"

	"github.com/spencer-p/goldenhour/pkg/geo"
)

// MaxRecent is how many places are remembered.
const MaxRecent = 5

// Recent is a list of places, most recent first, unique by label.
type Recent []geo.Place

// Add puts p first, dropping any older place with the same label and anything
// past MaxRecent.
func (r Recent) Add(p geo.Place) Recent {
	out := make(Recent, 0, MaxRecent)
	out = append(out, p)
	for _, old := range r {
		if len(out) == MaxRecent {
			break
		}
		if old.Label == p.Label {
			continue
		}
		out = append(out, old)
	}
	return out
}

// Store persists recent places by visitor id.
type Store interface {
	Recent(ctx context.Context, visitor string) (Recent, error)
	Save(ctx context.Context, visitor string, r Recent) error
}
