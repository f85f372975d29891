package db

import "fmt"

type UnsupportedPlatformError struct {
	Platform string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("the platform %s is not supported", e.Platform)
}
