package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"automation-coach/internal/shared/server/respond"
	"automation-coach/internal/shared/telemetry"
)

// Handler exposes the catalog over HTTP.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches catalog routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/tools", h.listTools)
	rg.GET("/tools/categories", h.listCategories)
}

func (h *Handler) listTools(c *gin.Context) {
	tools, err := h.Repo.ListActive(c.Request.Context())
	if err != nil {
		telemetry.Error("catalog.list_failed", map[string]any{"error": err})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch tools", nil)
		return
	}
	respond.OK(c, gin.H{"data": tools})
}

func (h *Handler) listCategories(c *gin.Context) {
	counts, err := h.Repo.CategoryCounts(c.Request.Context())
	if err != nil {
		telemetry.Error("catalog.categories_failed", map[string]any{"error": err})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch categories", nil)
		return
	}
	respond.OK(c, gin.H{"data": counts})
}
