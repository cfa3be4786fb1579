package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stemkits/backend/internal/domain/identity"
	"github.com/stemkits/backend/internal/infrastructure/auth"
	"github.com/stemkits/backend/internal/infrastructure/logger"
	"github.com/stemkits/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	JWTUserIDKey  = "jwt_user_id"
	JWTEmailKey   = "jwt_email"
	JWTRoleKey    = "jwt_role"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	JWTService *auth.JWTService
	// TokenBlacklist is optional; when set, revoked tokens are rejected
	TokenBlacklist auth.TokenBlacklist
	Logger         *zap.Logger
}

// JWTAuth creates JWT authentication middleware. Routes behind it require
// a valid, unrevoked bearer token.
func JWTAuth(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, cfg, auth.ErrInvalidToken, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, cfg, auth.ErrInvalidToken, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, cfg, auth.ErrInvalidToken, "Missing token")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			abortUnauthorized(c, cfg, err, "Token validation failed")
			return
		}

		if cfg.TokenBlacklist != nil {
			ctx := c.Request.Context()

			if claims.ID != "" {
				blacklisted, err := cfg.TokenBlacklist.IsBlacklisted(ctx, claims.ID)
				if err != nil {
					// Fail open so a Redis outage does not lock everyone out.
					if cfg.Logger != nil {
						cfg.Logger.Error("Failed to check token blacklist",
							zap.String("jti", claims.ID),
							zap.Error(err))
					}
				} else if blacklisted {
					abortUnauthorized(c, cfg, auth.ErrTokenBlacklisted, "Token has been revoked")
					return
				}
			}

			issuedAt := time.Time{}
			if claims.IssuedAt != nil {
				issuedAt = claims.IssuedAt.Time
			}
			invalidated, err := cfg.TokenBlacklist.IsUserTokenInvalidated(ctx, claims.UserID, issuedAt)
			if err != nil {
				if cfg.Logger != nil {
					cfg.Logger.Error("Failed to check user token invalidation",
						zap.String("user_id", claims.UserID),
						zap.Error(err))
				}
			} else if invalidated {
				abortUnauthorized(c, cfg, auth.ErrTokenBlacklisted, "Session has been invalidated")
				return
			}
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTEmailKey, claims.Email)
		c.Set(JWTRoleKey, claims.Role)

		ctx := c.Request.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithUserID(ctx, log, claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRole rejects requests whose token does not carry one of the
// allowed roles. Must run after JWTAuth.
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[string(role)] = true
	}

	return func(c *gin.Context) {
		role := GetJWTRole(c)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
			return
		}
		if !allowed[role] {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Insufficient permissions"))
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, cfg JWTMiddlewareConfig, err error, message string) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("JWT authentication failed",
			zap.Error(err),
			zap.String("message", message),
			zap.String("path", c.Request.URL.Path),
		)
	}

	code := "UNAUTHORIZED"
	errorMessage := "Authentication required"
	switch err {
	case auth.ErrExpiredToken:
		code = "TOKEN_EXPIRED"
		errorMessage = "Token has expired"
	case auth.ErrTokenBlacklisted:
		code = "TOKEN_REVOKED"
		errorMessage = "Token has been revoked"
	case auth.ErrInvalidTokenType:
		code = "INVALID_TOKEN_TYPE"
		errorMessage = "Invalid token type"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, errorMessage))
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTUserID retrieves the user ID from JWT claims in context
func GetJWTUserID(c *gin.Context) string {
	if userID, exists := c.Get(JWTUserIDKey); exists {
		if id, ok := userID.(string); ok {
			return id
		}
	}
	return ""
}

// GetJWTRole retrieves the role from JWT claims in context
func GetJWTRole(c *gin.Context) string {
	if role, exists := c.Get(JWTRoleKey); exists {
		if r, ok := role.(string); ok {
			return r
		}
	}
	return ""
}
