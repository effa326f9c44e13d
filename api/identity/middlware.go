package identity

import (
	"errors"
	"net/http"
	"strings"

	"github.com/beka-birhanu/mazechase/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextUserClaims is the key used to store user claims in the Gin context.
	ContextUserClaims = "userClaims"

	claimUserID = "userID"
)

var ErrNoPlayer = errors.New("no authenticated player")

func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the access token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatus(http.StatusUnauthorized) // No token found in the header.
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatus(http.StatusUnauthorized) // Malformed Authorization header.
			return
		}

		claims, err := ts.Decode(parts[1])
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if _, err := playerFromClaims(claims); err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		// Attach user claims to the request context for further use.
		c.Set(ContextUserClaims, claims)
		c.Next()
	}
}

// PlayerID returns the authenticated player attached by Authoriz.
func PlayerID(c *gin.Context) (uuid.UUID, error) {
	value, ok := c.Get(ContextUserClaims)
	if !ok {
		return uuid.Nil, ErrNoPlayer
	}
	claims, ok := value.(map[string]interface{})
	if !ok {
		return uuid.Nil, ErrNoPlayer
	}
	return playerFromClaims(claims)
}

func playerFromClaims(claims map[string]interface{}) (uuid.UUID, error) {
	raw, ok := claims[claimUserID].(string)
	if !ok {
		return uuid.Nil, ErrNoPlayer
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrNoPlayer
	}
	return id, nil
}
