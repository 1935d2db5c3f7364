package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func wishlistBody(ids []string) gin.H {
	if ids == nil {
		ids = []string{}
	}
	return gin.H{"ids": ids, "count": len(ids)}
}

func getWishlistHandler(lists WishlistManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, wishlistBody(lists.IDs(c.Request.Context())))
	}
}

func addWishlistHandler(lists WishlistManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			ProductID string `json:"productId"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || body.ProductID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "productId required"})
			return
		}
		ids, err := lists.Add(c.Request.Context(), body.ProductID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, wishlistBody(ids))
	}
}

func removeWishlistHandler(lists WishlistManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ids, err := lists.Remove(c.Request.Context(), c.Param("productId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, wishlistBody(ids))
	}
}

// syncWishlistHandler refreshes the local set from the server so badge
// counts match what the signed-in user sees elsewhere.
func syncWishlistHandler(lists WishlistManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ids, err := lists.Reconcile(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, wishlistBody(ids))
	}
}
