// Package slugger derives unique URL-safe identifiers from display names.
package slugger

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
)

// ErrEmptyName is returned when the name normalizes to nothing usable.
var ErrEmptyName = errors.New("name produces an empty slug")

// TakenFunc reports whether candidate is already used by a row other than
// excludeID within the target table.
type TakenFunc func(ctx context.Context, candidate string, excludeID snowflake.ID) (bool, error)

// Generate normalizes name and probes for a free slug, appending -1, -2, …
// until taken reports the candidate as free. excludeID lets an update keep
// its own current slug without counting it as a collision.
func Generate(ctx context.Context, name string, excludeID snowflake.ID, taken TakenFunc) (string, error) {
	base := slug.Make(name)
	if base == "" {
		return "", ErrEmptyName
	}

	candidate := base
	for i := 1; ; i++ {
		inUse, err := taken(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !inUse {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
