package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	catalogsvc "storefront/internal/service/catalog"
)

func (h *handlers) listProducts(c *gin.Context) {
	filter := domain.ProductFilter{
		Category:     c.Query("category"),
		Availability: c.Query("availability"),
		Search:       c.Query("search"),
	}

	products, err := h.catalog.List(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	respondList(c, products, len(products))
}

func (h *handlers) getProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	product, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondData(c, http.StatusOK, product)
}

func (h *handlers) listCategories(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	respondData(c, http.StatusOK, categories)
}

func (h *handlers) createProduct(c *gin.Context) {
	var in catalogsvc.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.catalog.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondData(c, http.StatusCreated, product)
}

func (h *handlers) updateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var patch domain.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.catalog.Update(c.Request.Context(), id, patch); err != nil {
		h.fail(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "product updated")
}

func (h *handlers) deleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.catalog.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "product removed")
}

// pathID parses an integer path parameter, answering 400 on garbage.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		respondError(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
