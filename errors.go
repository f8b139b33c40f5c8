package authcore

import "errors"

var (
	// ErrBuilderUsed is returned by a second Build on the same Builder.
	ErrBuilderUsed = errors.New("builder already used")
	// ErrMissingService is returned by Build without WithAuthService.
	ErrMissingService = errors.New("auth service required")
	// ErrMissingFallback is returned by Build when neither a fallback backend
	// nor a redis client was provided.
	ErrMissingFallback = errors.New("fallback backend or redis client required")
)
