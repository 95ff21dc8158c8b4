package projection

import (
	"context"
	"fmt"

	"github.com/chomba/rackd/internal/db"
	"github.com/chomba/rackd/internal/event"
)

// trunkView projects trunk creation into its own table, kept separate from
// network_view: a trunk's name lives in a different uniqueness namespace
// than the wan/lan names network_view guards.
type trunkView struct{}

func init() {
	Register(trunkView{})
}

func (trunkView) Update(ctx context.Context, ex db.Executor, e event.Event) error {
	switch p := e.Payload.(type) {
	case event.TrunkCreated:
		_, err := ex.Exec(ctx, `
			INSERT INTO trunk_view (id, name, deleted)
			VALUES ($1, $2, FALSE)
			ON CONFLICT (id) DO NOTHING`,
			p.TrunkID.String(), p.Name.String())
		if err != nil {
			return fmt.Errorf("project trunk_created: %w", err)
		}
	}
	return nil
}
