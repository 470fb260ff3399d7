package middleware

import (
	"go-devnet-backend/internal/delivery/http/response"
	"go-devnet-backend/internal/domain"
	"go-devnet-backend/pkg/apperror"
	"go-devnet-backend/pkg/audit"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the Authorization bearer credential to a live
// account and stores its identity on the context. Nothing behind it runs
// for an anonymous request.
func AuthMiddleware(authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			audit.Default().UnauthorizedAccess(c.ClientIP(), c.GetString("RequestID"), "missing_bearer")
			response.Error(c, http.StatusUnauthorized, apperror.Unauthorized("Unauthorized").Body())
			c.Abort()
			return
		}

		identity, err := authUC.Authenticate(c.Request.Context(), token)
		if err != nil {
			audit.Default().UnauthorizedAccess(c.ClientIP(), c.GetString("RequestID"), "rejected_bearer")
			c.Error(err)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), identity.ID)
		c.Set(string(domain.KeyUserName), identity.Name)
		c.Set(string(domain.KeyUserEmail), identity.Email)
		c.Set(string(domain.KeyUserAvatar), identity.Avatar)

		c.Next()
	}
}

// bearerToken accepts "Bearer <token>" with any casing of the scheme.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// CurrentIdentity reads what AuthMiddleware stored.
func CurrentIdentity(c *gin.Context) domain.Identity {
	return domain.Identity{
		ID:     c.GetString(string(domain.KeyUserID)),
		Name:   c.GetString(string(domain.KeyUserName)),
		Email:  c.GetString(string(domain.KeyUserEmail)),
		Avatar: c.GetString(string(domain.KeyUserAvatar)),
	}
}
