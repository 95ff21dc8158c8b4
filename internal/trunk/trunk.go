// Package trunk holds the Trunk aggregate: a logical VLAN-carrying uplink
// on the rack. Physical links map, per node, onto trunk ids.
package trunk

import (
	"github.com/chomba/rackd/internal/ids"
	"github.com/chomba/rackd/internal/store"
	"github.com/chomba/rackd/internal/valobj"
)

// Trunk is the trunk aggregate. Its Name is unique, case-insensitively,
// within the rack.
type Trunk struct {
	ID       ids.Id         `json:"id"`
	Name     valobj.Name    `json:"name"`
	Metadata store.Metadata `json:"metadata"`
}

func (t *Trunk) StreamID() ids.Id      { return t.ID }
func (t *Trunk) Meta() *store.Metadata { return &t.Metadata }

var _ store.Entity = (*Trunk)(nil)
