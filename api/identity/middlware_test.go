package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beka-birhanu/mazechase/infrastruture/token"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthoriz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokenizer := token.NewJwtService("test-secret", "mazechase")
	playerID := uuid.New()

	router := gin.New()
	router.Use(Authoriz(tokenizer))
	router.GET("/me", func(c *gin.Context) {
		id, err := PlayerID(c)
		require.NoError(t, err)
		c.String(http.StatusOK, id.String())
	})

	valid, err := tokenizer.Generate(map[string]interface{}{"userID": playerID.String()}, time.Minute)
	require.NoError(t, err)
	noPlayer, err := tokenizer.Generate(map[string]interface{}{"username": "maze_runner"}, time.Minute)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"valid token", "Bearer " + valid, http.StatusOK},
		{"lowercase scheme", "bearer " + valid, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
		{"token without player", "Bearer " + noPlayer, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, playerID.String(), rec.Body.String())
			}
		})
	}
}

func TestPlayerIDWithoutClaims(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, err := PlayerID(c)
	assert.ErrorIs(t, err, ErrNoPlayer)
}
