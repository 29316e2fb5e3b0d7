package http

import (
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	httpapi "github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/api/http"
	"github.com/JoyCmollik/eyeside-niche-website-server-side-react/internal/store"
)

// ListProducts returns every product, or the first `size` when it is a
// positive integer.
func (h *Handler) ListProducts(c *gin.Context) {
	var limit int64
	if size, err := strconv.ParseInt(c.Query("size"), 10, 64); err == nil && size > 0 {
		limit = size
	}

	products, err := h.products.Find(c.Request.Context(), store.All(), limit)
	if err != nil {
		httpapi.ServerError(c, "list products", err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetProduct returns one product, or null when it does not exist.
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.products.FindOne(c.Request.Context(), store.ByID(c.Param("id")))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusOK, nil)
		return
	}
	if err != nil {
		httpapi.ServerError(c, "get product", err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// CartProducts resolves a cart, keyed by product id, to its products in one
// lookup. Unknown ids are left out.
func (h *Handler) CartProducts(c *gin.Context) {
	cart, ok := httpapi.BindDocument(c)
	if !ok {
		return
	}

	ids := make([]string, 0, len(cart))
	for id := range cart {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	products, err := h.products.Find(c.Request.Context(), store.ByIDs(ids), 0)
	if err != nil {
		httpapi.ServerError(c, "cart lookup", err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// AddProduct inserts a catalog entry as given.
func (h *Handler) AddProduct(c *gin.Context) {
	doc, ok := httpapi.BindDocument(c)
	if !ok {
		return
	}

	res, err := h.products.InsertOne(c.Request.Context(), doc)
	if err != nil {
		httpapi.ServerError(c, "add product", err)
		return
	}

	c.JSON(http.StatusOK, res)
}
