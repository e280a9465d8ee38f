package domain

import (
	"errors"
	"fmt"
)

var (
	ErrWorkspace  = errors.New("workspace failure")
	ErrDiscovery  = errors.New("discovery failure")
	ErrPipeline   = errors.New("pipeline failure")
	ErrConversion = errors.New("conversion failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
