package projection

import (
	"context"
	"fmt"

	"github.com/chomba/rackd/internal/db"
	"github.com/chomba/rackd/internal/event"
)

// ViewKind discriminates the rows network_view holds. Trunks live in their
// own trunk_view table (trunk_view.go); network_view is scoped to the
// wan/lan namespace the command catalogue's uniqueness checks query.
type ViewKind string

const (
	ViewWan ViewKind = "wan"
	ViewLan ViewKind = "lan"
)

// networkView projects wan creation and renaming into the flat table used
// for the name- and (trunk,vlan)-uniqueness checks the command catalogue's
// reads depend on.
type networkView struct{}

func init() {
	Register(networkView{})
}

func (networkView) Update(ctx context.Context, ex db.Executor, e event.Event) error {
	switch p := e.Payload.(type) {
	case event.WanCreated:
		_, err := ex.Exec(ctx, `
			INSERT INTO network_view (id, kind, trunk_id, vlan, name, deleted)
			VALUES ($1, $2, $3, $4, $5, FALSE)
			ON CONFLICT (id) DO NOTHING`,
			p.WanID.String(), ViewWan, p.TrunkID.String(), p.Vlan.Int(), p.Name.String())
		if err != nil {
			return fmt.Errorf("project wan_created: %w", err)
		}
	case event.WanRenamed:
		_, err := ex.Exec(ctx, `UPDATE network_view SET name = $2 WHERE id = $1`,
			p.WanID.String(), p.Name.String())
		if err != nil {
			return fmt.Errorf("project wan_renamed: %w", err)
		}
	}
	return nil
}
