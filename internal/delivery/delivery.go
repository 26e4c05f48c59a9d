// Package delivery defines the contract every transport entry point
// implements, so the application can start them uniformly.
package delivery

import "context"

// Delivery is implemented by every transport server (HTTP today). Serve
// blocks until the server stops or the context is cancelled.
type Delivery interface {
	Serve(ctx context.Context) error
}
