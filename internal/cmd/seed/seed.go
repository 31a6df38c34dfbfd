// Package seed parses seed command flags and loads demo ledger data.
package seed

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"time"

	"github.com/meeplelog/meeplelog/internal/campaign/key"
	"github.com/meeplelog/meeplelog/internal/campaign/service"
	"github.com/meeplelog/meeplelog/internal/campaign/session"
	entrypoint "github.com/meeplelog/meeplelog/internal/platform/cmd"
	"github.com/meeplelog/meeplelog/internal/storage/rediscache"
	"github.com/meeplelog/meeplelog/internal/storage/sqlite"
	"github.com/redis/go-redis/v9"
)

// Config holds seed command configuration.
type Config struct {
	DBPath     string `env:"MEEPLELOG_DB_PATH" envDefault:"meeplelog.db"`
	RedisAddr  string `env:"MEEPLELOG_REDIS_ADDR"`
	CampaignID string `env:"MEEPLELOG_SEED_CAMPAIGN_ID" envDefault:"demo-campaign"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "Redis address for the snapshot cache (optional)")
	fs.StringVar(&cfg.CampaignID, "campaign", cfg.CampaignID, "campaign ID to seed")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run seeds a demo campaign and prints its projected snapshots.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSeed, func(ctx context.Context) error {
		return run(ctx, cfg)
	})
}

func run(ctx context.Context, cfg Config) error {
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		_ = store.Close()
	}()

	serviceCfg := service.Config{
		Stores: service.Stores{Keys: store, Sessions: store, Events: store},
	}
	if cfg.RedisAddr != "" {
		cache, err := rediscache.New(&rediscache.Config{
			RedisClient: redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}),
			TTL:         time.Hour,
		})
		if err != nil {
			return fmt.Errorf("connect snapshot cache: %w", err)
		}
		serviceCfg.Cache = cache
	}
	ledger, err := service.New(serviceCfg)
	if err != nil {
		return err
	}

	if err := seedCampaign(ctx, ledger, cfg.CampaignID); err != nil {
		return err
	}

	snapshots, err := ledger.ProjectCampaign(ctx, cfg.CampaignID)
	if err != nil {
		return fmt.Errorf("project campaign: %w", err)
	}
	rendered, err := json.MarshalIndent(snapshots, "", "  ")
	if err != nil {
		return fmt.Errorf("render snapshots: %w", err)
	}
	fmt.Printf("Seeded campaign %s with %d sessions:\n%s\n", cfg.CampaignID, len(snapshots), rendered)
	return nil
}

// seedCampaign loads one small campaign exercising every value type, both
// scopes, and a weapon sub-scope.
func seedCampaign(ctx context.Context, ledger *service.Ledger, campaignID string) error {
	chapter, err := ledger.CreateKey(ctx, key.CreateInput{
		Name: "Chapter", ValueType: "string", Scope: "global", OwnerID: campaignID,
	})
	if err != nil {
		return fmt.Errorf("create chapter key: %w", err)
	}
	gold, err := ledger.CreateKey(ctx, key.CreateInput{
		Name: "Gold", ValueType: "number", Scope: "player", OwnerID: campaignID, Shareable: true,
	})
	if err != nil {
		return fmt.Errorf("create gold key: %w", err)
	}
	inventory, err := ledger.CreateKey(ctx, key.CreateInput{
		Name: "Inventory", ValueType: "list", Scope: "player", OwnerID: campaignID,
	})
	if err != nil {
		return fmt.Errorf("create inventory key: %w", err)
	}
	loot, err := ledger.CreateKey(ctx, key.CreateInput{
		Name: "Loot", ValueType: "counted_list", Scope: "player", OwnerID: campaignID,
	})
	if err != nil {
		return fmt.Errorf("create loot key: %w", err)
	}
	kills, err := ledger.CreateKey(ctx, key.CreateInput{
		Name: "Kills", ValueType: "number", Scope: "player", OwnerID: campaignID,
		ScopedToFieldID: "field-weapon",
	})
	if err != nil {
		return fmt.Errorf("create kills key: %w", err)
	}

	firstNight, err := ledger.CreateSession(ctx, session.CreateInput{
		CampaignID: campaignID,
		PlayedAt:   time.Now().UTC().AddDate(0, 0, -14),
	})
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	secondNight, err := ledger.CreateSession(ctx, session.CreateInput{
		CampaignID: campaignID,
		PlayedAt:   time.Now().UTC().AddDate(0, 0, -7),
	})
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	type seedEvent struct {
		sessionID string
		keyID     string
		verb      string
		payload   string
		playerID  string
		subScope  string
	}
	events := []seedEvent{
		{firstNight.ID, chapter.ID, "replace", `{"verb":"replace","value":"Prologue"}`, "", ""},
		{firstNight.ID, gold.ID, "increase", `{"verb":"increase","amount":50}`, "alice", ""},
		{firstNight.ID, gold.ID, "increase", `{"verb":"increase","amount":30}`, "bob", ""},
		{firstNight.ID, inventory.ID, "add", `{"verb":"add","values":["Sword","Shield"]}`, "alice", ""},
		{firstNight.ID, loot.ID, "add", `{"verb":"add","items":[{"item":"Arrow","quantity":20}]}`, "bob", ""},
		{firstNight.ID, kills.ID, "increase", `{"verb":"increase","amount":3}`, "alice", "Sword"},

		{secondNight.ID, chapter.ID, "replace", `{"verb":"replace","value":"Chapter 1"}`, "", ""},
		{secondNight.ID, gold.ID, "decrease", `{"verb":"decrease","amount":15}`, "alice", ""},
		{secondNight.ID, inventory.ID, "remove", `{"verb":"remove","values":["Shield"]}`, "alice", ""},
		{secondNight.ID, loot.ID, "remove", `{"verb":"remove","items":[{"item":"Arrow","quantity":8}]}`, "bob", ""},
		{secondNight.ID, kills.ID, "increase", `{"verb":"increase","amount":2}`, "alice", "Bow"},
	}
	for _, evt := range events {
		if _, err := ledger.AppendEvent(ctx, service.AppendEventInput{
			SessionID: evt.sessionID,
			KeyID:     evt.keyID,
			Verb:      evt.verb,
			Payload:   json.RawMessage(evt.payload),
			PlayerID:  evt.playerID,
			SubScope:  evt.subScope,
		}); err != nil {
			return fmt.Errorf("append event: %w", err)
		}
	}
	return nil
}
