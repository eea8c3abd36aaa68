package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"spiegelmatch/internal/taxonomy"
)

// TaxonomyHandler sirve la taxonomia embebida (solo lectura).
type TaxonomyHandler struct {
	tax *taxonomy.Taxonomy
}

func NewTaxonomyHandler(tax *taxonomy.Taxonomy) *TaxonomyHandler {
	return &TaxonomyHandler{tax: tax}
}

// Get maneja GET /taxonomy.
func (h *TaxonomyHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":    h.tax.Version,
		"categories": h.tax.Categories,
		"totalTags":  h.tax.TotalTags(),
	})
}

// Search maneja GET /taxonomy/search?q=&category=&limit=.
func (h *TaxonomyHandler) Search(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	if limit > 200 {
		limit = 200
	}
	tags, total := h.tax.Search(c.Query("q"), c.Query("category"), limit)
	if tags == nil {
		tags = []taxonomy.Tag{}
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags, "count": len(tags), "total": total})
}

// Tag maneja GET /taxonomy/tags/:id.
func (h *TaxonomyHandler) Tag(c *gin.Context) {
	tag, ok := h.tax.Tag(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "tag not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tag": tag})
}

// Category maneja GET /taxonomy/categories/:id con id como path punteado.
func (h *TaxonomyHandler) Category(c *gin.Context) {
	cat, tags, ok := h.tax.Category(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}
	if tags == nil {
		tags = []taxonomy.Tag{}
	}
	c.JSON(http.StatusOK, gin.H{"category": cat, "tags": tags, "count": len(tags)})
}
