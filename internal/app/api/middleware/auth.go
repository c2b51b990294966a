package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tiffinly/dabba/pkg/config"
	"github.com/tiffinly/dabba/pkg/response"
	"github.com/tiffinly/dabba/pkg/types"
)

const actorKey = "actor"

// AuthMiddleware authenticates the bearer token and, when roles are given,
// requires the actor to hold one of them. Token issuance is external; the
// token carries the actor id ("sub") and role ("role") claims.
func AuthMiddleware(cfg *config.Config, roles ...types.ActorRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorT[any](response.APIResponseCodeForbidden, "missing bearer token"))
			return
		}

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(cfg.Auth.Secret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorT[any](response.APIResponseCodeForbidden, "invalid token"))
			return
		}

		sub, _ := claims["sub"].(string)
		roleStr, _ := claims["role"].(string)
		actor := types.Actor{ID: sub, Role: types.ActorRole(roleStr)}
		if actor.ID == "" || actor.Role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorT[any](response.APIResponseCodeForbidden, "token missing actor claims"))
			return
		}

		if len(roles) > 0 {
			allowed := false
			for _, r := range roles {
				if actor.Role == r {
					allowed = true
					break
				}
			}
			if !allowed {
				c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorT[any](response.APIResponseCodeForbidden, "insufficient role"))
				return
			}
		}

		c.Set(actorKey, actor)
		ctx := context.WithValue(c.Request.Context(), "actor_id", actor.ID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// ActorFrom returns the authenticated actor attached by AuthMiddleware.
func ActorFrom(c *gin.Context) types.Actor {
	if v, ok := c.Get(actorKey); ok {
		if a, ok := v.(types.Actor); ok {
			return a
		}
	}
	return types.Actor{}
}
