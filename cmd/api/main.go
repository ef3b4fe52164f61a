package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/goldenhair/storefront/internal/aws"
	"github.com/goldenhair/storefront/internal/chat"
	"github.com/goldenhair/storefront/internal/config"
	"github.com/goldenhair/storefront/internal/handlers"
	"github.com/goldenhair/storefront/internal/logging"
	"github.com/goldenhair/storefront/internal/middleware"
	"github.com/goldenhair/storefront/internal/orders"
	"github.com/goldenhair/storefront/internal/payments"
	"github.com/goldenhair/storefront/internal/products"
)

const (
	dedupTTL        = 48 * time.Hour
	productCacheTTL = 5 * time.Minute
)

func setupRouter(cfg handlers.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.Register(r, cfg)

	return r
}

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	clients, err := aws.NewAWSClients(context.Background())
	if err != nil {
		logger.Fatal("failed to init aws clients", zap.Error(err))
	}

	var cache *products.Cache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		cache = products.NewCache(rdb, productCacheTTL)
	}

	var publisher *aws.Publisher
	if cfg.OrderEventsQueue != "" {
		publisher = aws.NewPublisher(clients.SQS, cfg.OrderEventsQueue)
	}

	var chatClient *chat.Client
	if cfg.ChatAPIKey != "" {
		chatClient = chat.NewClient(cfg.ChatAPIKey, cfg.ChatUpstreamURL, cfg.ChatModel)
	}

	var gateway payments.Gateway
	if cfg.RazorpayKeyID != "" && cfg.RazorpayKeySecret != "" {
		gateway = payments.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	}

	hcfg := handlers.Config{
		Logger: logger,

		Orders:   orders.NewStore(clients.DynamoDB, cfg.OrdersTable),
		Dedup:    payments.NewDedupStore(clients.DynamoDB, cfg.PaymentDedupTable, dedupTTL),
		Products: products.NewStore(clients.DynamoDB, cfg.ProductsTable),

		Gateway:           gateway,
		RazorpayKeyID:     cfg.RazorpayKeyID,
		RazorpayKeySecret: cfg.RazorpayKeySecret,

		Publisher:    publisher,
		Metrics:      aws.NewMetrics(clients.CloudWatch, cfg.MetricsNamespace, logger),
		ProductCache: cache,
		Chat:         chatClient,

		CORS: middleware.CORSPolicy{
			AllowedOrigins:  cfg.AllowedOrigins,
			PreviewSuffixes: cfg.PreviewSuffixes,
		},
		AdminToken: cfg.AdminToken,
	}

	r := setupRouter(hcfg)

	// if environment variable RUN_LOCAL is set to "true", run local HTTP server for development.
	if cfg.RunLocal {
		logger.Info("running local server", zap.String("addr", cfg.Addr))
		if err := r.Run(cfg.Addr); err != nil {
			logger.Fatal("failed to run local server", zap.Error(err))
		}
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (interface{}, error) {
		// the adapter handles proxying; use adapter.ProxyWithContext for proper context propagation
		return adapter.ProxyWithContext(ctx, req)
	})
}
