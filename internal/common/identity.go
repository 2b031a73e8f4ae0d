package common

import (
	"os/user"

	"github.com/pkg/errors"
)

// currentUser can be swapped out in tests.
var currentUser = user.Current

// Identity returns the name of the OS user running the harness.
// The name is used as-is; job-name derivation is responsible for any
// normalisation the remote engine requires.
func Identity() (string, error) {
	u, err := currentUser()
	if err != nil {
		return "", errors.WithMessage(err, "resolving current user")
	}
	return u.Username, nil
}
