package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meric/studentbase/internal/app/models"
	"github.com/meric/studentbase/internal/app/models/dto"
	"github.com/meric/studentbase/internal/app/policy"
	"github.com/meric/studentbase/internal/pkg/apperrors"
	"github.com/meric/studentbase/internal/pkg/auth"
)

// AccessTokenCookie is the cookie name used as the alternate token carrier.
// The header and the cookie are accepted interchangeably on every
// authenticated endpoint.
const AccessTokenCookie = "access_token"

// Context keys set by JWTAuth for downstream handlers.
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextRole     = "role"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// JWTAuth validates the identity token and loads the subject into the
// request context. The token may arrive in the Authorization header (with
// or without the Bearer prefix) or in the access_token cookie.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""

		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			extracted, err := auth.ExtractBearerToken(authHeader)
			if err != nil {
				errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
				errorDetail = errorDetail.WithDetails("Invalid token format")
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
				return
			}
			tokenString = extracted
		} else if cookieToken, err := c.Cookie(AccessTokenCookie); err == nil && cookieToken != "" {
			tokenString = cookieToken
		}

		if tokenString == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("No token in Authorization header or cookie")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			errorCode := dto.ErrorCodeInvalidToken
			errorDetails := "Invalid token"
			if errors.Is(err, apperrors.ErrTokenExpired) {
				errorCode = dto.ErrorCodeExpiredToken
				errorDetails = "Token has expired"
			}

			errorDetail := dto.NewErrorDetail(errorCode, "Authentication failed")
			errorDetail = errorDetail.WithDetails(errorDetails)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Authentication failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, models.ParseRole(claims.Role))

		c.Next()
	}
}

// RoleRequired gates a route group to one exact role.
func (m *AuthMiddleware) RoleRequired(requiredRole models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		if role.(models.Role) != requiredRole {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")
			errorDetail = errorDetail.WithDetails("You don't have sufficient permissions for this operation")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}

// SubjectFromContext rebuilds the policy subject placed by JWTAuth.
func SubjectFromContext(c *gin.Context) (policy.Subject, bool) {
	userID, ok := c.Get(ContextUserID)
	if !ok {
		return policy.Subject{}, false
	}
	role, ok := c.Get(ContextRole)
	if !ok {
		return policy.Subject{}, false
	}
	return policy.Subject{
		UserID: userID.(int64),
		Role:   role.(models.Role),
	}, true
}
