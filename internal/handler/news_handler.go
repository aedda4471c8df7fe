package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"newstagger/internal/category"
	"newstagger/internal/model"
	"newstagger/pkg/news"

	"github.com/gin-gonic/gin"
)

type CategoryLister interface {
	All() []model.Category
	Resolve(id string) (model.Category, error)
}

type NewsPipeline interface {
	HandleCategoryRequest(ctx context.Context, categoryID string) ([]model.Article, error)
}

type NewsHandler struct {
	categories CategoryLister
	pipeline   NewsPipeline
}

func NewNewsHandler(categories CategoryLister, pipeline NewsPipeline) *NewsHandler {
	return &NewsHandler{categories: categories, pipeline: pipeline}
}

func (h *NewsHandler) Register(r gin.IRoutes) {
	r.GET("/", h.GetIndex)
	r.GET("/api/categories", h.GetCategories)
	r.GET("/api/news/:category", h.GetNews)
	r.GET("/health", h.GetHealth)
}

func (h *NewsHandler) GetIndex(c *gin.Context) {
	c.JSON(http.StatusOK, IndexResponse{Categories: h.categoryResponses()})
}

func (h *NewsHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.categoryResponses())
}

func (h *NewsHandler) GetNews(c *gin.Context) {
	id := c.Param("category")

	articles, err := h.pipeline.HandleCategoryRequest(c.Request.Context(), id)
	switch {
	case errors.Is(err, category.ErrUnknownCategory):
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown category"})
		return
	case errors.Is(err, news.ErrFeedUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "feed unavailable"})
		return
	case err != nil:
		slog.Error("error handling category request", "category", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	cat, err := h.categories.Resolve(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown category"})
		return
	}

	c.JSON(http.StatusOK, BuildNewsResponse(cat, articles))
}

func (h *NewsHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (h *NewsHandler) categoryResponses() []CategoryResponse {
	all := h.categories.All()
	res := make([]CategoryResponse, 0, len(all))
	for _, cat := range all {
		res = append(res, toCategoryResponse(cat))
	}
	return res
}
