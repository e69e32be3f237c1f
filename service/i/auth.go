package i

import (
	dmn "github.com/beka-birhanu/vinom-trapmaze/domain"
)

// Authenticator registers players and signs them in.
type Authenticator interface {
	Register(username, password string) error
	// SignIn returns the user and a bearer token for it.
	SignIn(username, password string) (*dmn.User, string, error)
}
