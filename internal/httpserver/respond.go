package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"foodcheq-companion/internal/api"
	"foodcheq-companion/internal/domain"
)

// respondError maps service errors onto the facade's status codes.
// Backend failures keep their message but surface as 502: the facade is a
// proxy there, not the origin.
func respondError(c *gin.Context, err error) {
	var apiErr *api.Error
	switch {
	case errors.As(err, &apiErr):
		c.JSON(http.StatusBadGateway, gin.H{"message": apiErr.Message, "backendStatus": apiErr.Status})
	case errors.Is(err, domain.ErrPersist):
		c.JSON(http.StatusInsufficientStorage, gin.H{"message": "could not persist change"})
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrUnpricedItem),
		errors.Is(err, domain.ErrInvalidItem):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	}
}
