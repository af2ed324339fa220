package v1

import (
	"github.com/gin-gonic/gin"

	"prizedraw-api/internal/api/middleware"
	"prizedraw-api/internal/pkg/jwthelper"
)

func getUserID(ctx *gin.Context) (uint, bool) {
	val, exists := ctx.Get(middleware.ContextUserID)
	if !exists {
		return 0, false
	}

	userID, ok := val.(uint)

	return userID, ok
}

func getClaims(ctx *gin.Context) (*jwthelper.Claims, bool) {
	val, exists := ctx.Get(middleware.ContextClaims)
	if !exists {
		return nil, false
	}

	claims, ok := val.(*jwthelper.Claims)

	return claims, ok
}
