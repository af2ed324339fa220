package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"prizedraw-api/internal/api/handler/v1/response"
	"prizedraw-api/internal/pkg/jwthelper"
)

const (
	// SessionCookie is the httpOnly cookie carrying the session token.
	SessionCookie = "token"

	ContextUserID = "userID"
	ContextClaims = "claims"
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey []byte) *Authenticator {
	return &Authenticator{
		signingKey: signingKey,
	}
}

// VerifyJWT authenticates the request from the session cookie, falling
// back to a bearer header for non-browser clients. No token means no
// session, which renders as a plain 401 rather than an error page.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := a.extractToken(ctx)
		if token == "" {
			response.RenderErr(ctx, response.ErrUnauthorized())
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, token)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized())
			return
		}

		ctx.Set(ContextUserID, claims.UserID)
		ctx.Set(ContextClaims, claims)
		ctx.Next()
	}
}

func (a *Authenticator) extractToken(ctx *gin.Context) string {
	if cookie, err := ctx.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}

	header := ctx.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return ""
}
