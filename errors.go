package platform

import (
	"github.com/k0sproject/platform/errstring"
)

var (
	ErrReadReleaseFile = errstring.New("read release file") // ErrReadReleaseFile is returned when a release file exists but can not be read
	ErrInvalidPath     = errstring.New("invalid path")      // ErrInvalidPath is returned when a configured release file path is not valid
	ErrInvalidOptions  = errstring.New("invalid options")   // ErrInvalidOptions is returned when the detector options can not be applied
)
