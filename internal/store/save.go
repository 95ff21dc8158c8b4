package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chomba/rackd/internal/db"
	"github.com/chomba/rackd/internal/projection"
)

// Save performs the two-step commit procedure every command's Process
// adapter ends with: upsert the entity's full JSON snapshot, then append
// each event queued on its Metadata since the last Save, running every
// registered projector over each newly appended event in the same
// transaction. Callers must invoke Save inside the transaction they intend
// to commit; on any error the caller rolls back.
func Save(ctx context.Context, tx db.Tx, entity Entity) error {
	meta := entity.Meta()
	pending := meta.PendingEvents
	meta.PendingEvents = nil

	value, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("marshal entity: %w", err)
	}
	if err := upsertSnapshot(ctx, tx, entity.StreamID(), value); err != nil {
		return err
	}
	if err := appendEvents(ctx, tx, pending); err != nil {
		return err
	}
	for _, e := range pending {
		if err := projection.Apply(ctx, tx, e); err != nil {
			return err
		}
	}
	return nil
}
