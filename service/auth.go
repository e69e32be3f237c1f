package service

import (
	"errors"
	"time"

	dmn "github.com/beka-birhanu/vinom-trapmaze/domain"
	"github.com/beka-birhanu/vinom-trapmaze/service/i"
	"github.com/google/uuid"
)

var _ i.Authenticator = &Auth{}

const tokenTTL = 24 * time.Hour

var ErrInvalidCredentials = errors.New("invalid username or password")

// Auth registers players and issues their bearer tokens.
type Auth struct {
	userRepo  i.UserRepo
	tokenizer i.Tokenizer
}

// NewAuthService creates an Auth backed by the given repository and tokenizer.
func NewAuthService(userRepo i.UserRepo, tokenizer i.Tokenizer) (*Auth, error) {
	if userRepo == nil || tokenizer == nil {
		return nil, errors.New("auth service needs a user repository and a tokenizer")
	}
	return &Auth{userRepo: userRepo, tokenizer: tokenizer}, nil
}

// Register implements i.Authenticator.
func (a *Auth) Register(username, password string) error {
	userConfig := dmn.UserConfig{
		ID:            uuid.New(),
		Username:      username,
		PlainPassword: password,
	}

	user, err := dmn.NewUser(userConfig)
	if err != nil {
		return err
	}

	return a.userRepo.Save(user)
}

// SignIn implements i.Authenticator.
func (a *Auth) SignIn(username, password string) (*dmn.User, string, error) {
	user, err := a.userRepo.ByUsername(username)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !user.VerifyPassword(password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := a.tokenizer.Generate(map[string]interface{}{
		"userID":   user.ID.String(),
		"username": user.Username,
	}, tokenTTL)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
