package main

import (
	"errors"

	"github.com/rios0rios0/cup/internal/infrastructure/controllers"
)

// alreadyReported tells whether the workflow logged err itself before returning it.
func alreadyReported(err error) bool {
	return errors.Is(err, controllers.ErrUpdateFailed)
}
