package usecase

import crerr "github.com/cockroachdb/errors"

var (
	ErrInvalidInput          = crerr.New("invalid input")
	ErrNotFound              = crerr.New("resource not found")
	ErrDependencyUnavailable = crerr.New("dependency unavailable")
	ErrInvalidSport          = crerr.New("invalid sport")
	ErrNoGames               = crerr.New("no games scheduled")
	ErrCycleInProgress       = crerr.New("cycle already in progress")
)
