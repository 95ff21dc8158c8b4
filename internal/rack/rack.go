// Package rack holds the Rack aggregate: the process-wide singleton
// identifying the local cluster of nodes sharing a configuration database.
package rack

import (
	"github.com/chomba/rackd/internal/ids"
	"github.com/chomba/rackd/internal/store"
)

// SingletonID is the well-known stream id the rack aggregate is always
// stored and looked up under: there is exactly one Rack per daemon.
var SingletonID = ids.MustParse("00000000-0000-0000-0000-000000000001")

// Rack is the rack aggregate. Exactly one row exists while the daemon is
// running; commands that need a rack to exist read it by SingletonID.
type Rack struct {
	ID       ids.Id         `json:"id"`
	Asn      uint32         `json:"asn"`
	Metadata store.Metadata `json:"metadata"`
}

func (r *Rack) StreamID() ids.Id      { return r.ID }
func (r *Rack) Meta() *store.Metadata { return &r.Metadata }

var _ store.Entity = (*Rack)(nil)
