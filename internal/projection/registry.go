// Package projection synchronously updates read-optimised views inside the
// same transaction an event is appended in. Each Projector is registered
// once at package load; Save (internal/store) calls every registered
// projector's Update for every event it appends, in registration order.
package projection

import (
	"context"
	"fmt"

	"github.com/chomba/rackd/internal/db"
	"github.com/chomba/rackd/internal/event"
)

// Projector updates a view table in response to one event. Implementations
// must be idempotent: a projector is invoked exactly once per committed
// event, inside that event's transaction, and must not assume it is the
// only consumer of the stream.
type Projector interface {
	Update(ctx context.Context, ex db.Executor, e event.Event) error
}

// Registry holds the ordered, append-only set of projectors active for this
// process.
type Registry struct {
	projectors []Projector
}

var defaultRegistry = &Registry{}

// Register appends p to the default registry. Called from each projector's
// file-level init().
func Register(p Projector) {
	defaultRegistry.projectors = append(defaultRegistry.projectors, p)
}

// Apply runs every registered projector against e, in registration order,
// stopping at the first error.
func Apply(ctx context.Context, ex db.Executor, e event.Event) error {
	for _, p := range defaultRegistry.projectors {
		if err := p.Update(ctx, ex, e); err != nil {
			return fmt.Errorf("projection: %T: %w", p, err)
		}
	}
	return nil
}
