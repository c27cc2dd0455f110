package domain

import (
	"errors"
)

// User is the signed-in account as exposed by the identity provider.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarRef string `json:"avatarRef,omitempty"`
}

// ErrNotFound is returned by stores when the requested entity does not exist.
var ErrNotFound = errors.New("not found")
