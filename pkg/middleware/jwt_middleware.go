package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quill/pkg/utils"
)

const (
	UserIDKey = "user_id"
	EmailKey  = "email"
)

type Auth struct {
	tokens *utils.TokenIssuer
}

func NewAuth(tokens *utils.TokenIssuer) *Auth {
	return &Auth{tokens: tokens}
}

// Required rejects requests without a valid bearer token.
func (a *Auth) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		if !a.authenticate(c, tokenString) {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Optional authenticates when a token is present and lets guests through.
// A present but invalid token is still rejected.
func (a *Auth) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if ok && !a.authenticate(c, tokenString) {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (a *Auth) authenticate(c *gin.Context, tokenString string) bool {
	claims, err := a.tokens.ValidateToken(tokenString)
	if err != nil {
		return false
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return false
	}

	c.Set(UserIDKey, userID)
	c.Set(EmailKey, claims.Email)
	return true
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}

// UserID returns the authenticated user, if any.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
