package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/chomba/rackd/api/proto/rackdpb"
	"github.com/chomba/rackd/internal/actor"
	"github.com/chomba/rackd/internal/cache"
	"github.com/chomba/rackd/internal/config"
	rackdgrpc "github.com/chomba/rackd/internal/grpc"
	"github.com/chomba/rackd/internal/ids"
	"github.com/chomba/rackd/internal/logging"
	"github.com/chomba/rackd/internal/metrics"
	"github.com/chomba/rackd/internal/netlinkx"
	"github.com/chomba/rackd/internal/observability"
	"github.com/chomba/rackd/internal/prefix"
	"github.com/chomba/rackd/internal/queue"
	"github.com/chomba/rackd/internal/query"
	"github.com/chomba/rackd/internal/rack"
	"github.com/chomba/rackd/internal/store"
	"github.com/chomba/rackd/internal/tracker"
	"github.com/chomba/rackd/internal/trunk"
	"github.com/chomba/rackd/internal/valobj"
	"github.com/chomba/rackd/internal/wan"
)

func daemonCmd() *cobra.Command {
	var (
		logLevel    string
		inboxSize   int
		grpcEnabled bool
		grpcAddr    string
	)

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run rackd as a daemon",
		Long:  "Run rackd's Command Actor, Query Actor and link/gateway tracker, optionally fronted by gRPC.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configDir, os.Getenv("RUN_MODE"))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			if cmd.Flags().Changed("log-level") {
				cfg.Daemon.LogLevel = logLevel
			}
			if cmd.Flags().Changed("inbox-size") {
				cfg.Daemon.InboxSize = inboxSize
			}
			if cmd.Flags().Changed("grpc") {
				cfg.GRPC.Enabled = grpcEnabled
			}
			if cmd.Flags().Changed("grpc-addr") {
				cfg.GRPC.Addr = grpcAddr
			}

			logging.SetLevelFromString(cfg.Daemon.LogLevel)
			logging.InitStructured(cfg.Observability.Logging.Format, cfg.Observability.Logging.Level)

			ctx := context.Background()

			if err := observability.Init(ctx, observability.Config{
				Enabled:     cfg.Observability.Tracing.Enabled,
				Exporter:    cfg.Observability.Tracing.Exporter,
				Endpoint:    cfg.Observability.Tracing.Endpoint,
				ServiceName: cfg.Observability.Tracing.ServiceName,
				SampleRate:  cfg.Observability.Tracing.SampleRate,
			}); err != nil {
				return fmt.Errorf("init tracing: %w", err)
			}
			defer observability.Shutdown(context.Background())

			if cfg.Observability.Metrics.Enabled {
				metrics.InitPrometheus(cfg.Observability.Metrics.Namespace, cfg.Observability.Metrics.HistogramBuckets)
			}

			if cfg.Observability.Audit.Enabled {
				if err := logging.InitAuditStore(
					cfg.Observability.Audit.StorageDir,
					cfg.Observability.Audit.MaxSize,
					cfg.Observability.Audit.RetentionS,
				); err != nil {
					logging.Op().Warn("failed to init audit store", "error", err)
				}
			}

			cmdStore, err := store.NewPostgresStore(ctx, cfg.Database.Cmd)
			if err != nil {
				return fmt.Errorf("open command store: %w", err)
			}
			defer cmdStore.Close()

			queryPool, err := store.NewQueryPool(ctx, cfg.Database.Query)
			if err != nil {
				return fmt.Errorf("open query pool: %w", err)
			}
			defer queryPool.Close()

			if err := bootstrapRack(ctx, cmdStore); err != nil {
				return fmt.Errorf("bootstrap rack: %w", err)
			}

			commands := actor.NewCommandActor(cmdStore, cfg.Daemon.InboxSize)
			defer commands.Close()

			queries := query.NewQueryActor(queryPool)

			notifier := queue.Notifier(queue.NewNoopNotifier())
			var invalidator *cache.CacheInvalidator
			if cfg.Redis.Enabled {
				redisClient := redis.NewClient(&redis.Options{
					Addr:     cfg.Redis.Addr,
					Password: cfg.Redis.Password,
					DB:       cfg.Redis.DB,
				})
				defer redisClient.Close()

				l1 := cache.NewInMemoryCache()
				l2 := cache.NewRedisCacheFromClient(redisClient, "rackd:cache:")
				queries.Cache = cache.NewTieredCache(l1, l2, 10*time.Second)

				invalidator = cache.NewCacheInvalidator(l1, redisClient)
				go invalidator.Start(ctx)
				defer invalidator.Close()

				notifier = queue.NewRedisNotifier(redisClient)
			}
			defer notifier.Close()

			commands.OnCommitted = func(value any) {
				var kind string
				var id ids.Id
				switch v := value.(type) {
				case *trunk.Trunk:
					kind, id = "trunk", v.ID
				case *wan.Wan:
					kind, id = "wan", v.ID
					if err := notifier.Notify(ctx, queue.QueueLinkEvents); err != nil {
						logging.Op().Debug("notify link-events queue", "error", err)
					}
				default:
					return
				}
				query.InvalidateEntity(ctx, queries, kind, id)
				if invalidator != nil {
					if err := invalidator.PublishInvalidation(ctx, query.CacheKeyFor(kind, id)); err != nil {
						logging.Op().Debug("publish cache invalidation", "error", err)
					}
				}
			}

			var grpcServer *rackdgrpc.Server
			if cfg.GRPC.Enabled {
				grpcServer = rackdgrpc.NewServer(commands, queryPool)
				if err := grpcServer.Start(cfg.GRPC.Addr); err != nil {
					return fmt.Errorf("start gRPC server: %w", err)
				}
				logging.Op().Info("gRPC API started", "addr", cfg.GRPC.Addr)
			}

			registry := tracker.NewRegistry()
			sink := trackerSink{commands: commands, grpcServer: grpcServer}
			trackWans(ctx, registry, queries, cfg, sink)

			logging.Op().Info("rackd daemon started",
				"cmd_db", cfg.Database.Cmd,
				"query_db", cfg.Database.Query,
				"log_level", cfg.Daemon.LogLevel)

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh

			logging.Op().Info("shutdown signal received")
			if grpcServer != nil {
				grpcServer.Stop()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().IntVar(&inboxSize, "inbox-size", 64, "Command Actor inbox buffer size")
	cmd.Flags().BoolVar(&grpcEnabled, "grpc", false, "Enable the gRPC command/query server")
	cmd.Flags().StringVar(&grpcAddr, "grpc-addr", ":9090", "gRPC server address")

	return cmd
}

// bootstrapRack ensures the singleton rack aggregate exists. Unlike every
// other entity, the rack has no creation command in the netcmd catalogue:
// it is node identity, established once at first startup, not a fact
// worth event-sourcing.
func bootstrapRack(ctx context.Context, database *store.PostgresStore) error {
	if _, err := query.LoadRack(ctx, database); err == nil {
		return nil
	} else if err != store.ErrNotFound {
		return err
	}

	r := &rack.Rack{ID: rack.SingletonID}
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bootstrap tx: %w", err)
	}
	if err := store.Save(ctx, tx, r); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("save bootstrap rack: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit bootstrap rack: %w", err)
	}
	logging.Op().Info("rack bootstrapped", "id", r.ID.String())
	return nil
}

// trackWans enumerates every live wan from the network_view projection and
// starts tracking the physical link it rides, per cfg.Links' trunk-name to
// interface-name mapping. Wans whose trunk has no configured interface, or
// whose 802.1Q sub-interface does not yet exist, are logged and skipped:
// link tracking is best-effort against whatever hardware is actually
// present on this node.
func trackWans(ctx context.Context, registry *tracker.Registry, queries *query.QueryActor, cfg *config.Config, sink tracker.Sink) {
	rows, err := query.Run(ctx, queries, query.ListWans)
	if err != nil {
		logging.Op().Error("list wans for tracking", "error", err)
		return
	}
	for _, row := range rows {
		trackOneWan(ctx, registry, queries, cfg, row, sink)
	}
}

func trackOneWan(ctx context.Context, registry *tracker.Registry, queries *query.QueryActor, cfg *config.Config, row query.NetworkViewRow, sink tracker.Sink) {
	t, err := query.LoadTrunkCached(ctx, queries, row.TrunkID)
	if err != nil {
		logging.Op().Warn("skipping wan: load trunk", "wan", row.ID.String(), "error", err)
		return
	}

	ifname := cfg.Links[t.Name.String()]
	if ifname == "" {
		logging.Op().Debug("skipping wan: trunk has no configured interface", "wan", row.ID.String(), "trunk", t.Name.String())
		return
	}
	vlanIfname := fmt.Sprintf("%s.%d", ifname, row.Vlan)

	link, err := netlinkx.GetLinkByName(vlanIfname)
	if err != nil {
		logging.Op().Warn("skipping wan: vlan sub-interface not present", "wan", row.ID.String(), "ifname", vlanIfname, "error", err)
		return
	}

	w, err := query.LoadWanCached(ctx, queries, row.ID)
	if err != nil {
		logging.Op().Warn("skipping wan: load wan", "wan", row.ID.String(), "error", err)
		return
	}

	var routedPrefix prefix.Ipv4Prefix
	if w.Ipv4.Mode == valobj.Ipv4Static {
		var addr [4]byte
		copy(addr[:], w.Ipv4.Addr.To4())
		routedPrefix = prefix.NewIpv4Prefix(addr, w.Ipv4.MaskLen)
	}

	registry.Track(ctx, row.ID, link.Index, link.Name, routedPrefix, sink)
	logging.Op().Info("tracking wan link", "wan", row.ID.String(), "ifname", link.Name)
}

// trackerSink fans a tracker observation out to the Command Actor (the
// system of record) and, if the gRPC server is running, to its
// StreamLinkEvents subscribers.
type trackerSink struct {
	commands   *actor.CommandActor
	grpcServer *rackdgrpc.Server
}

func (s trackerSink) Emit(linkID ids.Id, down *tracker.DownReason, up *tracker.Status, routedPrefix prefix.Ipv4Prefix, gateway *tracker.GatewayObservation) {
	tracker.CommandSink{Actor: s.commands}.Emit(linkID, down, up, routedPrefix, gateway)
	if s.grpcServer == nil {
		return
	}
	s.grpcServer.PublishLinkEvent(toLinkEventProto(linkID, down, up, gateway))
}

var _ tracker.Sink = trackerSink{}

// toLinkEventProto mirrors the observation dispatch tracker.CommandSink
// performs, producing the wire form StreamLinkEvents subscribers see.
// Exactly one of down, up, gateway is non-nil, matching tracker.Sink's
// contract.
func toLinkEventProto(linkID ids.Id, down *tracker.DownReason, up *tracker.Status, gateway *tracker.GatewayObservation) *rackdpb.LinkEvent {
	var kind string
	var payload []byte
	switch {
	case down != nil:
		kind = "link_went_down"
		payload, _ = json.Marshal(struct{ Reason string }{down.String()})
	case up != nil:
		kind = "link_went_up"
	case gateway != nil:
		kind = "gateway_changed"
		payload, _ = json.Marshal(gateway)
	}
	return &rackdpb.LinkEvent{
		LinkId:          linkID.String(),
		Kind:            kind,
		Payload:         payload,
		TimestampUnixMs: time.Now().UnixMilli(),
	}
}
