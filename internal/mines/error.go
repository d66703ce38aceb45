package mines

import (
	"errors"
	"fmt"
)

var ErrOutOfRange = errors.New("cell out of range")

// ConfigurationError is returned for board parameters no game can be played
// with.
type ConfigurationError struct {
	Params Params
	Reason string
}

// [ConfigurationError] implements [error]
func (e ConfigurationError) Error() string {
	return fmt.Sprintf("invalid board %s: %s", e.Params, e.Reason)
}
