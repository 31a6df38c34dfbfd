package seed

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "meeplelog.db" {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.CampaignID != "demo-campaign" {
		t.Fatalf("expected default campaign, got %q", cfg.CampaignID)
	}
	if cfg.RedisAddr != "" {
		t.Fatalf("expected no default redis addr, got %q", cfg.RedisAddr)
	}
}

func TestParseConfigFlagOverrides(t *testing.T) {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	args := []string{"-db", "/tmp/demo.db", "-campaign", "camp-42", "-redis-addr", "localhost:6379"}
	cfg, err := ParseConfig(fs, args)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "/tmp/demo.db" {
		t.Fatalf("expected flag db path, got %q", cfg.DBPath)
	}
	if cfg.CampaignID != "camp-42" {
		t.Fatalf("expected flag campaign, got %q", cfg.CampaignID)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("expected flag redis addr, got %q", cfg.RedisAddr)
	}
}
