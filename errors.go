package rescuepath

import (
	"github.com/pkg/errors"
)

var (
	// ErrDataUnavailable is returned when road network source can not be read.
	// Fatal for session start.
	ErrDataUnavailable = errors.New("road network data unavailable")
	// ErrEmptyNetwork is returned when locator is built over network with zero nodes
	ErrEmptyNetwork = errors.New("road network has no nodes")
	// ErrBrokenTopology is returned when edge references node missing in the network
	ErrBrokenTopology = errors.New("broken network topology")
)
