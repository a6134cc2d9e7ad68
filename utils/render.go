package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Render executes an HTML template with the ambient page data every admin
// view needs: the pending flash message (consumed here) and the CSRF token.
func Render(c *gin.Context, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if flash, ok := ConsumeFlash(c); ok {
		data["Flash"] = flash
	}
	data["CSRFToken"] = CSRFToken(c)
	if name, ok := c.Get("fullName"); ok {
		data["CurrentUserName"] = name
	}
	c.HTML(http.StatusOK, tmpl, data)
}
