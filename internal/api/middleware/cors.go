package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// ConfigCORS allows the listed front-end origins. Credentials stay on so
// the session cookie survives cross-origin requests.
func ConfigCORS(domains []string) gin.HandlerFunc {
	conf := cors.DefaultConfig()
	conf.AllowOrigins = domains
	conf.AllowCredentials = true
	conf.AllowHeaders = append(conf.AllowHeaders, "Authorization")

	return cors.New(conf)
}
