package middleware

import (
	"net/http"

	"cargolink/internal/db"
	"cargolink/internal/models"
	"cargolink/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"
const UnseenCountKey = "unseen_count"

// LoadUser retrieves the user from the session and sets it on the context,
// along with the unseen notification count for the badge.
func LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")

		if userID != nil {
			var user models.User
			result := db.DB.First(&user, userID)
			if result.Error == nil {
				c.Set(CheckUserKey, &user)

				if count, err := services.UnseenCount(user.ID); err == nil {
					c.Set(UnseenCountKey, count)
				}
			}
		}
		c.Next()
	}
}

// AuthRequired ensures a user is logged in
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// RoleRequired ensures the logged-in user has one of the given roles.
// Runs after AuthRequired.
func RoleRequired(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := c.Get(CheckUserKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		currentUser := user.(*models.User)
		for _, role := range roles {
			if currentUser.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
	}
}
