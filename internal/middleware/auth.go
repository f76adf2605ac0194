package middleware

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskdock-dev/taskdock/internal/auth"
	"github.com/taskdock-dev/taskdock/internal/store"
)

type AuthenticatedUser struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

const contextUserKey = "user"

// Auth requires a valid bearer token and puts the resolved user in the
// gin context. Every failure is a 401; the token-error kind only shows
// up in the log line.
func Auth(tokens *auth.TokenManager, users *store.UserStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := tokens.Validate(parts[1])

		if err != nil {
			log.Printf("Rejected token: %v", err)
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		user, err := users.ByID(claims.UserID)

		if err != nil {
			log.Printf("Failed to load user %d: %v", claims.UserID, err)
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		if user == nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		ctx.Set(contextUserKey, AuthenticatedUser{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
		})
		ctx.Next()
	}
}

// CurrentUser returns the user placed in the context by Auth.
func CurrentUser(ctx *gin.Context) (AuthenticatedUser, error) {
	value, exists := ctx.Get(contextUserKey)

	if !exists {
		return AuthenticatedUser{}, fmt.Errorf("user not authenticated")
	}

	user, ok := value.(AuthenticatedUser)

	if !ok {
		return AuthenticatedUser{}, fmt.Errorf("invalid user type in context")
	}

	return user, nil
}
