// Package query implements the read side (C6, C8): typed lookups against
// the entity/network_view tables, and a stateless QueryActor wrapping a
// read pool.
package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/chomba/rackd/internal/cache"
	"github.com/chomba/rackd/internal/db"
	"github.com/chomba/rackd/internal/ids"
	"github.com/chomba/rackd/internal/rack"
	"github.com/chomba/rackd/internal/store"
	"github.com/chomba/rackd/internal/trunk"
	"github.com/chomba/rackd/internal/wan"
)

// QueryActor wraps a read-only database handle. It is stateless: no
// goroutine owns it, since reads don't need serialisation against each
// other. Run is the symmetric counterpart to the Command Actor's envelope
// dispatch, so callers can treat both buses the same way.
type QueryActor struct {
	DB db.Executor

	// Cache, if non-nil, fronts the wan/trunk lookups below with a
	// short-TTL read-through cache. Nil (the default) means every read
	// goes straight to DB, which is always correct, just slower under
	// load; cmd/rackd only sets this when Redis is configured.
	Cache cache.Cache
}

func NewQueryActor(ex db.Executor) *QueryActor {
	return &QueryActor{DB: ex}
}

// entityCacheTTL bounds how stale a cached wan/trunk snapshot may be.
// Short enough that a rename or reconfiguration becomes visible to the
// tracker's startup scan well within a human operator's patience, long
// enough to absorb a thundering herd of lookups for the same aggregate.
const entityCacheTTL = 5 * time.Second

func cacheKey(kind string, id ids.Id) string {
	return fmt.Sprintf("rackd:query:%s:%s", kind, id.String())
}

// CacheKeyFor returns the cache key LoadWanCached/LoadTrunkCached use for
// id, for a Command Actor commit hook that also needs to publish a
// cross-instance invalidation signal (see cache.CacheInvalidator).
func CacheKeyFor(kind string, id ids.Id) string {
	return cacheKey(kind, id)
}

// LoadWanCached is LoadWan fronted by qa.Cache, when set. A cache miss or
// disabled cache falls through to LoadWan transparently.
func LoadWanCached(ctx context.Context, qa *QueryActor, id ids.Id) (*wan.Wan, error) {
	if qa.Cache == nil {
		return LoadWan(ctx, qa.DB, id)
	}
	key := cacheKey("wan", id)
	if raw, err := qa.Cache.Get(ctx, key); err == nil {
		var w wan.Wan
		if err := json.Unmarshal(raw, &w); err == nil {
			return &w, nil
		}
	}
	w, err := LoadWan(ctx, qa.DB, id)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(w); err == nil {
		_ = qa.Cache.Set(ctx, key, raw, entityCacheTTL)
	}
	return w, nil
}

// LoadTrunkCached is LoadTrunk fronted by qa.Cache, when set.
func LoadTrunkCached(ctx context.Context, qa *QueryActor, id ids.Id) (*trunk.Trunk, error) {
	if qa.Cache == nil {
		return LoadTrunk(ctx, qa.DB, id)
	}
	key := cacheKey("trunk", id)
	if raw, err := qa.Cache.Get(ctx, key); err == nil {
		var t trunk.Trunk
		if err := json.Unmarshal(raw, &t); err == nil {
			return &t, nil
		}
	}
	t, err := LoadTrunk(ctx, qa.DB, id)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(t); err == nil {
		_ = qa.Cache.Set(ctx, key, raw, entityCacheTTL)
	}
	return t, nil
}

// InvalidateEntity evicts id's cached wan/trunk entry, for a Command
// Actor commit hook to call once it knows which aggregate changed.
func InvalidateEntity(ctx context.Context, qa *QueryActor, kind string, id ids.Id) {
	if qa.Cache == nil {
		return
	}
	_ = qa.Cache.Delete(ctx, cacheKey(kind, id))
}

// Query is any read against the QueryActor's handle.
type Query[T any] func(ctx context.Context, ex db.Executor) (T, error)

// Run executes q against qa's handle. A free function rather than a method
// because Go methods can't carry their own type parameters.
func Run[T any](ctx context.Context, qa *QueryActor, q Query[T]) (T, error) {
	return q(ctx, qa.DB)
}

// LoadRack returns the singleton rack aggregate, or store.ErrNotFound if
// it hasn't been created yet (RackUninitialized in the command catalogue).
func LoadRack(ctx context.Context, ex db.Executor) (*rack.Rack, error) {
	raw, err := store.LoadSnapshot(ctx, ex, rack.SingletonID)
	if err != nil {
		return nil, err
	}
	var r rack.Rack
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("unmarshal rack: %w", err)
	}
	return &r, nil
}

// LoadTrunk returns the trunk aggregate by id.
func LoadTrunk(ctx context.Context, ex db.Executor, id ids.Id) (*trunk.Trunk, error) {
	raw, err := store.LoadSnapshot(ctx, ex, id)
	if err != nil {
		return nil, err
	}
	var t trunk.Trunk
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("unmarshal trunk: %w", err)
	}
	return &t, nil
}

// LoadWan returns the wan aggregate by id.
func LoadWan(ctx context.Context, ex db.Executor, id ids.Id) (*wan.Wan, error) {
	raw, err := store.LoadSnapshot(ctx, ex, id)
	if err != nil {
		return nil, err
	}
	var w wan.Wan
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("unmarshal wan: %w", err)
	}
	return &w, nil
}

// NetworkViewRow is one row of the network_view projection: a trunk or wan,
// identified by name and, for wans, by (trunk, vlan).
type NetworkViewRow struct {
	ID      ids.Id
	Kind    string
	TrunkID ids.Id
	Vlan    int
	Name    string
	Deleted bool
}

// FindNetworkViewByName returns the live (non-deleted) network_view row
// whose name matches raw under case-insensitive comparison, or
// store.ErrNotFound.
func FindNetworkViewByName(ctx context.Context, ex db.Executor, foldKey string) (*NetworkViewRow, error) {
	row := ex.QueryRow(ctx, `
		SELECT id, kind, COALESCE(trunk_id, ''), COALESCE(vlan, 0), name, deleted
		FROM network_view WHERE lower(name) = $1 AND NOT deleted`, foldKey)
	return scanNetworkViewRow(row)
}

// FindNetworkViewByTrunkVlan returns the live network_view row for the
// given (trunk, vlan) pair, or store.ErrNotFound.
func FindNetworkViewByTrunkVlan(ctx context.Context, ex db.Executor, trunkID ids.Id, vlan int) (*NetworkViewRow, error) {
	row := ex.QueryRow(ctx, `
		SELECT id, kind, COALESCE(trunk_id, ''), COALESCE(vlan, 0), name, deleted
		FROM network_view WHERE trunk_id = $1 AND vlan = $2 AND NOT deleted`,
		trunkID.String(), vlan)
	return scanNetworkViewRow(row)
}

// ListWans returns every live (non-deleted) wan row in network_view, for
// daemon startup to enumerate which links the tracker registry should
// track.
func ListWans(ctx context.Context, ex db.Executor) ([]NetworkViewRow, error) {
	rows, err := ex.Query(ctx, `
		SELECT id, kind, COALESCE(trunk_id, ''), COALESCE(vlan, 0), name, deleted
		FROM network_view WHERE kind = 'wan' AND NOT deleted`)
	if err != nil {
		return nil, fmt.Errorf("query wans: %w", err)
	}
	defer rows.Close()

	var out []NetworkViewRow
	for rows.Next() {
		row, err := scanNetworkViewRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wans: %w", err)
	}
	return out, nil
}

// TrunkViewRow is one row of the trunk_view projection, identified by name
// within a namespace kept separate from network_view's wan/lan names.
type TrunkViewRow struct {
	ID      ids.Id
	Name    string
	Deleted bool
}

// FindTrunkViewByName returns the live (non-deleted) trunk_view row whose
// name matches raw under case-insensitive comparison, or store.ErrNotFound.
func FindTrunkViewByName(ctx context.Context, ex db.Executor, foldKey string) (*TrunkViewRow, error) {
	row := ex.QueryRow(ctx, `
		SELECT id, name, deleted
		FROM trunk_view WHERE lower(name) = $1 AND NOT deleted`, foldKey)

	var (
		idStr, name string
		deleted     bool
	)
	if err := row.Scan(&idStr, &name, &deleted); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("scan trunk_view row: %w", err)
	}
	id, err := ids.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("parse trunk_view id: %w", err)
	}
	return &TrunkViewRow{ID: id, Name: name, Deleted: deleted}, nil
}

func scanNetworkViewRow(row db.Row) (*NetworkViewRow, error) {
	var (
		idStr, kind, trunkIDStr, name string
		vlan                          int
		deleted                       bool
	)
	if err := row.Scan(&idStr, &kind, &trunkIDStr, &vlan, &name, &deleted); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("scan network_view row: %w", err)
	}
	id, err := ids.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("parse network_view id: %w", err)
	}
	var trunkID ids.Id
	if trunkIDStr != "" {
		trunkID, err = ids.Parse(trunkIDStr)
		if err != nil {
			return nil, fmt.Errorf("parse network_view trunk_id: %w", err)
		}
	}
	return &NetworkViewRow{ID: id, Kind: kind, TrunkID: trunkID, Vlan: vlan, Name: name, Deleted: deleted}, nil
}
