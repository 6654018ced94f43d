package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"profiler-backend/internal/delivery/http/response"
	"profiler-backend/pkg/apperror"
	"profiler-backend/internal/domain"
	"profiler-backend/pkg/auth"
	"profiler-backend/pkg/logger"
)

// AuthMiddleware requires a bearer token: HS256 signed with secret, or RS256
// signed by a key from jwks. Either may be unset. The token subject is stored
// under domain.KeySubject.
func AuthMiddleware(secret string, jwks *auth.Provider) gin.HandlerFunc {
	key := []byte(secret)
	methods := []string{}
	if secret != "" {
		methods = append(methods, jwt.SigningMethodHS256.Alg())
	}
	if jwks != nil {
		methods = append(methods, jwt.SigningMethodRS256.Alg())
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			_ = c.Error(apperror.Unauthorized("Authorization header required"))
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			switch token.Method.(type) {
			case *jwt.SigningMethodHMAC:
				if secret == "" {
					return nil, fmt.Errorf("HS256 token received but AUTH_JWT_SECRET is not configured")
				}
				return key, nil
			case *jwt.SigningMethodRSA:
				if jwks == nil {
					return nil, fmt.Errorf("RS256 token received but AUTH_JWKS_URL is not configured")
				}
				return jwks.KeyFunc(token)
			}
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}, jwt.WithValidMethods(methods))
		if err != nil || !token.Valid {
			logger.Log.WarnContext(c.Request.Context(), "token validation failed",
				"request_id", response.RequestID(c),
				"error", err,
			)
			_ = c.Error(apperror.Unauthorized("Invalid token"))
			c.Abort()
			return
		}

		sub, err := token.Claims.GetSubject()
		if err != nil {
			_ = c.Error(apperror.Unauthorized("Invalid claims"))
			c.Abort()
			return
		}

		c.Set(string(domain.KeySubject), sub)
		c.Next()
	}
}
