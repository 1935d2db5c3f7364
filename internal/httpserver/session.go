package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodcheq-companion/internal/api"
	"foodcheq-companion/internal/session"
)

// sessionStatusHandler reports the session plus the stable anonymous
// client id, so pages can identify a guest profile before any login.
func sessionStatusHandler(sessions SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		clientID, err := sessions.ClientID(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"authenticated": sessions.IsAuthenticated(ctx),
			"authType":      sessions.AuthType(ctx),
			"clientId":      clientID,
		})
	}
}

// loginHandler signs in against the backend as the requested role and
// persists the returned bearer plus the auth-type flag.
func loginHandler(sessions SessionManager, backend BackendClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Role     string `json:"role"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
			return
		}
		if body.Role == "" {
			body.Role = session.AuthTypeUser
		}
		if body.Role != session.AuthTypeUser && body.Role != session.AuthTypeVendor {
			c.JSON(http.StatusBadRequest, gin.H{"message": "role must be user or vendor"})
			return
		}

		ctx := c.Request.Context()
		creds := api.Credentials{Email: body.Email, Password: body.Password}

		var token string
		var err error
		if body.Role == session.AuthTypeVendor {
			token, err = backend.LoginVendor(ctx, creds)
		} else {
			token, err = backend.LoginUser(ctx, creds)
		}
		if err != nil {
			respondError(c, err)
			return
		}

		if body.Role == session.AuthTypeVendor {
			err = sessions.SetVendorToken(ctx, token)
		} else {
			err = sessions.SetToken(ctx, token)
		}
		if err == nil {
			err = sessions.SetAuthType(ctx, body.Role)
		}
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"authenticated": true, "authType": body.Role})
	}
}

// vendorProfileHandler proxies the vendor dashboard's profile lookup. The
// backend authorizes it; without a vendor token it fails there.
func vendorProfileHandler(backend BackendClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		vendor, err := backend.VendorProfile(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, vendor)
	}
}

func logoutHandler(sessions SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := sessions.Logout(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
	}
}
