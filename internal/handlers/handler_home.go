package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func getHome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Cooperative Ledger API v1"})
}

// registerHomeRoutes registers the informational root route of the API group.
func registerHomeRoutes(group *gin.RouterGroup) {
	group.GET("/", getHome)
}
