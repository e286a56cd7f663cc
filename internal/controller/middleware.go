package controller

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/learnora/backend/internal/authz"
	"github.com/learnora/backend/internal/service"
)

// PrincipalMiddleware resolves the optional Authorization header into a
// principal for downstream handlers. A missing or invalid token degrades
// to an anonymous principal; the authorization rules decide what an
// anonymous principal may do, so parsing never rejects the request here.
func PrincipalMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		principal := authz.Anonymous()

		header := ctx.GetHeader("Authorization")
		if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
			resolved, err := authService.PrincipalFromToken(token)
			if err != nil {
				log.Debug().Err(err).Msg("principal middleware: token rejected")
			} else {
				principal = resolved
			}
		}

		ctx.Set(principalKey, principal)
		ctx.Next()
	}
}
