package repository

import "context"

// ConnectivityProbe reports whether the remote store looks reachable. The
// answer is advisory: it selects the sync path and never gates the
// correctness of an operation that already completed.
type ConnectivityProbe interface {
	IsOnline(ctx context.Context) bool
}
