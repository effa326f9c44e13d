package i

import (
	"time"
)

// Tokenizer signs and verifies the access tokens handed to players at login.
type Tokenizer interface {
	// Generate signs claims into a token that expires after expTime.
	Generate(claims map[string]interface{}, expTime time.Duration) (string, error)

	// Decode verifies a token and returns its claims. Expired tokens are rejected.
	Decode(token string) (map[string]interface{}, error)
}
