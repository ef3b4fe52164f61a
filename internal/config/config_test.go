package config

import (
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Addr != ":8080" {
		t.Fatalf("addr = %q", cfg.Addr)
	}
	if cfg.OrdersTable != "orders" || cfg.PaymentDedupTable != "payment-dedup" || cfg.ProductsTable != "products" {
		t.Fatalf("table defaults = %q %q %q", cfg.OrdersTable, cfg.PaymentDedupTable, cfg.ProductsTable)
	}
	if len(cfg.AllowedOrigins) == 0 {
		t.Fatalf("no default allowed origins")
	}
	if !reflect.DeepEqual(cfg.PreviewSuffixes, []string{".lovableproject.com", ".lovable.app"}) {
		t.Fatalf("preview suffixes = %v", cfg.PreviewSuffixes)
	}
	if cfg.RunLocal {
		t.Fatalf("run local should default off")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ORDERS_TABLE", "orders-prod")
	t.Setenv("RUN_LOCAL", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com ,")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg := Load()

	if cfg.OrdersTable != "orders-prod" {
		t.Fatalf("orders table = %q", cfg.OrdersTable)
	}
	if !cfg.RunLocal {
		t.Fatalf("run local not picked up")
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Fatalf("origins = %v, want %v", cfg.AllowedOrigins, want)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("redis addr = %q", cfg.RedisAddr)
	}
}

func TestSplitList(t *testing.T) {
	if got := splitList(""); got != nil {
		t.Fatalf("empty input = %v", got)
	}
	if got := splitList(" a ,, b "); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("got %v", got)
	}
}
