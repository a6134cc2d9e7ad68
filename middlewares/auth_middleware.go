package middlewares

import (
	"net/http"

	"github.com/cafeforyou/cafe-admin/models"
	"github.com/cafeforyou/cafe-admin/utils"
	"github.com/gin-gonic/gin"
)

// AuthCookieName is the cookie carrying the signed session token.
const AuthCookieName = "auth_token"

// RequireAdmin resolves the session identity from the auth cookie and aborts
// any request that is not an authenticated admin. Controllers behind it can
// rely on userID/fullName/role being set on the context.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(AuthCookieName)
		if err != nil || token == "" {
			redirectToLogin(c, "Please log in to continue")
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil || claims.UserID == 0 {
			redirectToLogin(c, "Your session has expired, please log in again")
			return
		}

		if claims.Role != models.RoleAdmin {
			redirectToLogin(c, "Admin access required")
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("fullName", claims.FullName)
		c.Set("role", claims.Role)
		c.Next()
	}
}

func redirectToLogin(c *gin.Context, message string) {
	utils.SetFlash(c, utils.FlashError, message)
	c.Redirect(http.StatusSeeOther, "/login")
	c.Abort()
}

// CurrentUserID returns the authenticated user's id, 0 when unauthenticated.
func CurrentUserID(c *gin.Context) uint {
	v, ok := c.Get("userID")
	if !ok {
		return 0
	}
	id, _ := v.(uint)
	return id
}
