package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/goldenhair/storefront/internal/products"
)

// listProducts serves the storefront grid, cache-aside over the table.
func (h *handler) listProducts(c *gin.Context) {
	ctx := c.Request.Context()

	if list, err := h.cfg.ProductCache.GetCatalog(ctx); err == nil && list != nil {
		c.JSON(http.StatusOK, gin.H{"products": list})
		return
	} else if err != nil {
		h.cfg.Logger.Warn("catalog cache read failed", zap.Error(err))
	}

	list, err := h.cfg.Products.List(ctx)
	if err != nil {
		h.cfg.Logger.Error("product list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
		return
	}
	if err := h.cfg.ProductCache.SetCatalog(ctx, list); err != nil {
		h.cfg.Logger.Warn("catalog cache write failed", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"products": list})
}

func (h *handler) getProduct(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if p, err := h.cfg.ProductCache.GetProduct(ctx, id); err == nil && p != nil {
		c.JSON(http.StatusOK, p)
		return
	} else if err != nil {
		h.cfg.Logger.Warn("product cache read failed", zap.Error(err))
	}

	p, err := h.cfg.Products.Get(ctx, id)
	if err != nil {
		h.cfg.Logger.Error("product lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load product"})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err := h.cfg.ProductCache.SetProduct(ctx, p); err != nil {
		h.cfg.Logger.Warn("product cache write failed", zap.Error(err))
	}
	c.JSON(http.StatusOK, p)
}

type upsertProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	ImageURL    string  `json:"image_url"`
	InStock     bool    `json:"in_stock"`
}

// upsertProduct is the admin catalog editor. The cache is invalidated so
// shoppers see the change within one request.
func (h *handler) upsertProduct(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	var req upsertProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product payload"})
		return
	}

	p := products.Product{
		ProductID:   id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		InStock:     req.InStock,
	}
	if err := h.cfg.Products.Upsert(ctx, p); err != nil {
		h.cfg.Logger.Error("product upsert failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save product"})
		return
	}
	if err := h.cfg.ProductCache.Invalidate(ctx, id); err != nil {
		h.cfg.Logger.Warn("product cache invalidation failed", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product_id": id})
}
