package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodcheq-companion/internal/domain"
)

type cartResponse struct {
	Items     []domain.CartItem `json:"items"`
	TotalKobo int64             `json:"totalKobo"`
	Count     int               `json:"count"`
}

func cartBody(items []domain.CartItem) cartResponse {
	res := cartResponse{Items: items}
	for _, item := range items {
		res.TotalKobo += item.PriceKobo * int64(item.Quantity)
		res.Count += item.Quantity
	}
	return res
}

func getCartHandler(carts CartManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, cartBody(carts.Items(c.Request.Context())))
	}
}

func replaceCartHandler(carts CartManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Items []domain.RawCartInput `json:"items"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
			return
		}
		items, err := carts.Replace(c.Request.Context(), body.Items)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cartBody(items))
	}
}

func addCartItemHandler(carts CartManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Product  domain.RawCartInput `json:"product"`
			Quantity int                 `json:"quantity"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
			return
		}
		if body.Quantity < 1 {
			body.Quantity = 1
		}
		items, err := carts.Add(c.Request.Context(), body.Product, body.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cartBody(items))
	}
}

func setQuantityHandler(carts CartManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Quantity int `json:"quantity"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
			return
		}
		items, err := carts.SetQuantity(c.Request.Context(), c.Param("productId"), body.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cartBody(items))
	}
}

func removeCartItemHandler(carts CartManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := carts.Remove(c.Request.Context(), c.Param("productId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cartBody(items))
	}
}

func clearCartHandler(carts CartManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := carts.Clear(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cartBody(nil))
	}
}

// badgesHandler feeds the navbar counters: total cart units and saved
// wishlist ids.
func badgesHandler(carts CartManager, lists WishlistManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		c.JSON(http.StatusOK, gin.H{
			"cart":     carts.Count(ctx),
			"wishlist": lists.Count(ctx),
		})
	}
}
