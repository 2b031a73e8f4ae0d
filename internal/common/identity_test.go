package common

import (
	"os/user"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestIdentity(t *testing.T) {
	defer func() { currentUser = user.Current }()

	currentUser = func() (*user.User, error) {
		return &user.User{Username: "Alice"}, nil
	}
	name, err := Identity()
	assert.NoError(t, err)
	assert.Equal(t, "Alice", name)

	currentUser = func() (*user.User, error) {
		return nil, errors.New("no user database")
	}
	_, err = Identity()
	assert.Error(t, err)
}
