package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/goldenhair/storefront/internal/aws"
	"github.com/goldenhair/storefront/internal/chat"
	"github.com/goldenhair/storefront/internal/middleware"
	"github.com/goldenhair/storefront/internal/orders"
	"github.com/goldenhair/storefront/internal/payments"
	"github.com/goldenhair/storefront/internal/products"
	"github.com/goldenhair/storefront/internal/ratelimit"
	"github.com/goldenhair/storefront/internal/validation"
)

// Per-endpoint fixed-window maximums.
const (
	orderIntakeMax  = 5
	paymentOrderMax = 10
	chatMax         = 10
)

// Config groups dependencies for the API handlers. Publisher, Metrics,
// ProductCache and Chat may be nil; the corresponding behavior degrades to
// a no-op (or, for chat, a 503).
type Config struct {
	Logger *zap.Logger

	Orders   *orders.Store
	Dedup    *payments.DedupStore
	Products *products.Store

	Gateway           payments.Gateway
	RazorpayKeyID     string
	RazorpayKeySecret string

	Publisher    *aws.Publisher
	Metrics      *aws.Metrics
	ProductCache *products.Cache
	Chat         *chat.Client

	CORS       middleware.CORSPolicy
	AdminToken string
}

// Register wires all storefront routes onto the engine. Each rate-limited
// endpoint gets its own limiter instance so counters stay independent.
func Register(r *gin.Engine, cfg Config) {
	v := validation.New()

	r.Use(middleware.CORS(cfg.CORS))

	h := &handler{cfg: cfg, validate: v, nowFunc: time.Now}

	orderLimit := ratelimit.New(orderIntakeMax, ratelimit.DefaultWindow)
	paymentLimit := ratelimit.New(paymentOrderMax, ratelimit.DefaultWindow)
	chatLimit := ratelimit.New(chatMax, ratelimit.DefaultWindow)

	r.POST("/orders",
		middleware.RateLimit(orderLimit, "order",
			"Too many order attempts. Please try again in a moment.",
			cfg.Logger, h.countRateLimited),
		h.createOrder)

	r.POST("/payments/order",
		middleware.RateLimit(paymentLimit, "razorpay",
			"Too many payment attempts. Please try again in a moment.",
			cfg.Logger, h.countRateLimited),
		h.createPaymentOrder)

	r.POST("/payments/verify", h.verifyPayment)

	r.POST("/chat",
		middleware.RateLimit(chatLimit, "chat",
			"Too many requests. Please try again in a moment.",
			cfg.Logger, h.countRateLimited),
		h.chatCompletion)

	r.GET("/products", h.listProducts)
	r.GET("/products/:id", h.getProduct)

	admin := r.Group("/admin", middleware.AdminAuth(cfg.AdminToken))
	{
		admin.GET("/orders/:id", h.getOrder)
		admin.PATCH("/orders/:id/status", h.updateOrderStatus)
		admin.PUT("/products/:id", h.upsertProduct)
	}
}

type handler struct {
	cfg      Config
	validate *validatorv10.Validate
	nowFunc  func() time.Time
}
