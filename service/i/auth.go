package i

import (
	"context"

	dmn "github.com/beka-birhanu/mazechase/domain"
)

// Authenticator registers players and issues access tokens.
type Authenticator interface {
	Register(ctx context.Context, username, password string) error
	SignIn(ctx context.Context, username, password string) (*dmn.User, string, error)
}
