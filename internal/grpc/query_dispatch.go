package grpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chomba/rackd/internal/db"
	"github.com/chomba/rackd/internal/ids"
	"github.com/chomba/rackd/internal/query"
)

// runQuery dispatches a JSON-encoded query by kind against ex. Each case
// decodes its own parameter shape; queries that take no parameters
// (LoadRack) ignore params entirely.
func runQuery(ctx context.Context, ex db.Executor, kind string, params []byte) (any, error) {
	switch kind {
	case "LoadRack":
		return query.LoadRack(ctx, ex)

	case "LoadTrunk":
		var p struct{ ID ids.Id }
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("decode params: %w", err)
		}
		return query.LoadTrunk(ctx, ex, p.ID)

	case "LoadWan":
		var p struct{ ID ids.Id }
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("decode params: %w", err)
		}
		return query.LoadWan(ctx, ex, p.ID)

	case "FindNetworkViewByName":
		var p struct{ FoldKey string }
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("decode params: %w", err)
		}
		return query.FindNetworkViewByName(ctx, ex, p.FoldKey)

	case "FindNetworkViewByTrunkVlan":
		var p struct {
			TrunkID ids.Id
			Vlan    int
		}
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("decode params: %w", err)
		}
		return query.FindNetworkViewByTrunkVlan(ctx, ex, p.TrunkID, p.Vlan)

	case "FindTrunkViewByName":
		var p struct{ FoldKey string }
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("decode params: %w", err)
		}
		return query.FindTrunkViewByName(ctx, ex, p.FoldKey)

	default:
		return nil, fmt.Errorf("unknown query kind %q", kind)
	}
}
