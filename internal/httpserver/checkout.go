package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func summaryHandler(checkouts CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, checkouts.Summary(c.Request.Context()))
	}
}

func submitHandler(checkouts CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := checkouts.Submit(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func verifyHandler(checkouts CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// The gateway redirect carries the reference under any of these.
		reference := c.Query("reference")
		if reference == "" {
			reference = c.Query("trxref")
		}
		if reference == "" {
			reference = c.Query("ref")
		}
		if reference == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "reference required"})
			return
		}
		status, err := checkouts.VerifyPayment(c.Request.Context(), reference)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, status)
	}
}

func trackHandler(backend BackendClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		shipment, err := backend.TrackShipment(c.Request.Context(), c.Param("code"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    fallback(shipment.Status, "UNKNOWN"),
			"location":  shipment.Location,
			"eta":       shipment.ETA,
			"updatedAt": shipment.UpdatedAt,
		})
	}
}

func fallback(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
