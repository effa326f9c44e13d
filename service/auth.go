package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/mazechase/domain"
	"github.com/beka-birhanu/mazechase/service/i"
	"github.com/google/uuid"
)

const tokenLifetime = 24 * time.Hour

var ErrInvalidCredentials = errors.New("invalid username or password")

// Auth registers players and signs them in.
type Auth struct {
	userRepo  i.UserRepo
	tokenizer i.Tokenizer
}

// NewAuthService creates an Auth backed by the repo and tokenizer.
func NewAuthService(ur i.UserRepo, t i.Tokenizer) (*Auth, error) {
	if ur == nil || t == nil {
		return nil, errors.New("auth service needs a user repo and a tokenizer")
	}
	return &Auth{
		userRepo:  ur,
		tokenizer: t,
	}, nil
}

func (a *Auth) Register(ctx context.Context, username, password string) error {
	userConfig := dmn.UserConfig{
		ID:            uuid.New(),
		Username:      username,
		PlainPassword: password,
	}

	user, err := dmn.NewUser(userConfig)
	if err != nil {
		return err
	}

	return a.userRepo.Save(ctx, user)
}

func (a *Auth) SignIn(ctx context.Context, username, password string) (*dmn.User, string, error) {
	user, err := a.userRepo.ByUsername(ctx, username)
	if errors.Is(err, dmn.ErrUserNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("looking up user: %w", err)
	}

	if !user.VerifyPassword(password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := a.tokenizer.Generate(map[string]interface{}{
		"userID":   user.ID.String(),
		"username": user.Username,
	}, tokenLifetime)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
