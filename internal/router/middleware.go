package router

import (
	"github.com/budgetradar/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// URLMiddleware puts the API base URL into the request context so that
// handlers can construct resource links.
func URLMiddleware(url string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(models.DBContextURL), url)
		c.Next()
	}
}
