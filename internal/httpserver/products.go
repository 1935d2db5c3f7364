package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodcheq-companion/internal/api"
)

// The catalog lives on the backend; these routes proxy it so pages load
// everything from one origin, with imageUrl already resolved to something
// an <img> tag can fetch.

func listProductsHandler(backend BackendClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := backend.Products(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		for i := range products {
			products[i].ImageURL = backend.ResolveImageURL(products[i].ImageURL)
		}
		if products == nil {
			products = []api.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func getProductHandler(backend BackendClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := backend.Product(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		product.ImageURL = backend.ResolveImageURL(product.ImageURL)
		c.JSON(http.StatusOK, gin.H{"product": product})
	}
}
