package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config is everything the API and worker read from the environment.
type Config struct {
	// HTTP
	Addr           string
	RunLocal       bool
	AllowedOrigins []string
	PreviewSuffixes []string
	AdminToken     string

	// Payment gateway
	RazorpayKeyID     string
	RazorpayKeySecret string

	// Storage
	OrdersTable       string
	PaymentDedupTable string
	ProductsTable     string
	OrderEventsQueue  string

	// Redis product cache; empty Addr disables caching
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Chat proxy
	ChatAPIKey      string
	ChatUpstreamURL string
	ChatModel       string

	// Observability
	LogLevel         string
	MetricsNamespace string
}

// Load reads configuration from the environment with sane defaults.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ADDR", ":8080")
	v.SetDefault("ORDERS_TABLE", "orders")
	v.SetDefault("PAYMENT_DEDUP_TABLE", "payment-dedup")
	v.SetDefault("PRODUCTS_TABLE", "products")
	v.SetDefault("ALLOWED_ORIGINS", strings.Join([]string{
		"https://3sgoldenhair.com",
		"https://www.3sgoldenhair.com",
		"http://localhost:8080",
		"http://localhost:5173",
		"http://localhost:3000",
	}, ","))
	v.SetDefault("PREVIEW_ORIGIN_SUFFIXES", ".lovableproject.com,.lovable.app")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("METRICS_NAMESPACE", "Storefront")

	return &Config{
		Addr:            v.GetString("ADDR"),
		RunLocal:        v.GetString("RUN_LOCAL") == "true",
		AllowedOrigins:  splitList(v.GetString("ALLOWED_ORIGINS")),
		PreviewSuffixes: splitList(v.GetString("PREVIEW_ORIGIN_SUFFIXES")),
		AdminToken:      v.GetString("ADMIN_TOKEN"),

		RazorpayKeyID:     v.GetString("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: v.GetString("RAZORPAY_KEY_SECRET"),

		OrdersTable:       v.GetString("ORDERS_TABLE"),
		PaymentDedupTable: v.GetString("PAYMENT_DEDUP_TABLE"),
		ProductsTable:     v.GetString("PRODUCTS_TABLE"),
		OrderEventsQueue:  v.GetString("ORDER_EVENTS_QUEUE_URL"),

		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),

		ChatAPIKey:      v.GetString("CHAT_API_KEY"),
		ChatUpstreamURL: v.GetString("CHAT_UPSTREAM_URL"),
		ChatModel:       v.GetString("CHAT_MODEL"),

		LogLevel:         v.GetString("LOG_LEVEL"),
		MetricsNamespace: v.GetString("METRICS_NAMESPACE"),
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
