package middleware

import (
	"github.com/gin-gonic/gin"

	"prizedraw-api/internal/api/handler/v1/response"
	"prizedraw-api/internal/pkg/jwthelper"
	"prizedraw-api/internal/service"
)

// RequireAdmin guards admin routes with the authoritative database check.
// The optimistic token hint is passed along for logging consistency but a
// route is only served once the check confirms.
func RequireAdmin(gate *service.AdminGate) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		val, exists := ctx.Get(ContextClaims)
		claims, ok := val.(*jwthelper.Claims)
		if !exists || !ok {
			response.RenderErr(ctx, response.ErrUnauthorized())
			return
		}

		if !gate.IsAdmin(ctx, claims.UserID, claims.IsAdmin) {
			response.RenderErr(ctx, response.ErrPermissionDenied())
			return
		}

		ctx.Next()
	}
}
