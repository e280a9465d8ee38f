package ports

import "context"

// BatchProcessor is the inbound contract for one batch execution, either a
// single fixed-directory run or a recursive tree walk.
type BatchProcessor interface {
	Execute(ctx context.Context) error
}
