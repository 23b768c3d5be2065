package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fittrack/fitness-tracker/internal/catalog"
)

const (
	defaultCatalogPage     = 1
	defaultCatalogPageSize = 20
)

// CatalogHandler proxies the external exercise catalog so mobile clients only
// ever talk to this API.
type CatalogHandler struct {
	catalogClient *catalog.Client
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogClient *catalog.Client) *CatalogHandler {
	return &CatalogHandler{catalogClient: catalogClient}
}

// ListExercises returns one page of the catalog, optionally filtered by
// body part via the bodyPart query parameter.
func (h *CatalogHandler) ListExercises(c *gin.Context) {
	page := queryInt(c, "page", defaultCatalogPage)
	pageSize := queryInt(c, "limit", defaultCatalogPageSize)

	var (
		result *catalog.ExercisePage
		err    error
	)
	if bodyPart := c.Query("bodyPart"); bodyPart != "" {
		result, err = h.catalogClient.ListByBodyPart(c.Request.Context(), bodyPart, page, pageSize)
	} else {
		result, err = h.catalogClient.ListExercises(c.Request.Context(), page, pageSize)
	}
	if err != nil {
		abortWithError(c, http.StatusBadGateway, "Exercise catalog is unavailable.")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Autocomplete returns exercise name suggestions for a search query.
func (h *CatalogHandler) Autocomplete(c *gin.Context) {
	search := c.Query("search")
	if search == "" {
		abortWithError(c, http.StatusBadRequest, "Query parameter 'search' is required.")
		return
	}

	suggestions, err := h.catalogClient.Autocomplete(c.Request.Context(), search)
	if err != nil {
		abortWithError(c, http.StatusBadGateway, "Exercise catalog is unavailable.")
		return
	}

	c.JSON(http.StatusOK, suggestions)
}

// GetExercise returns one exercise with full details.
func (h *CatalogHandler) GetExercise(c *gin.Context) {
	exercise, err := h.catalogClient.GetByID(c.Request.Context(), c.Param("exerciseId"))
	if err != nil {
		abortWithError(c, http.StatusBadGateway, "Exercise catalog is unavailable.")
		return
	}

	c.JSON(http.StatusOK, exercise)
}

// ListBodyParts returns the catalog's body-part taxonomy.
func (h *CatalogHandler) ListBodyParts(c *gin.Context) {
	bodyParts, err := h.catalogClient.ListBodyParts(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusBadGateway, "Exercise catalog is unavailable.")
		return
	}

	c.JSON(http.StatusOK, bodyParts)
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
