// Package drive wraps the remote drive used for evaluation-sheet uploads.
// The rest of the system depends only on the Client contract; uploads are
// a best-effort side channel and callers must treat every failure here as
// non-fatal.
package drive

import (
	"context"
	"errors"
)

// ErrNotAuthenticated is returned by operations invoked before a
// successful Authenticate.
var ErrNotAuthenticated = errors.New("drive: not authenticated")

// Client is the narrow drive contract.
type Client interface {
	// Authenticate obtains an access token. Must be called before any
	// other operation.
	Authenticate(ctx context.Context) error
	// IsAuthenticated reports whether a usable token is held.
	IsAuthenticated() bool
	// EnsureFolder resolves a slash-separated folder path, creating
	// missing segments, and returns the id of the final folder. It is
	// idempotent by folder name.
	EnsureFolder(ctx context.Context, path string) (string, error)
	// Upload stores data as a file named name inside folderID and
	// returns the new file id.
	Upload(ctx context.Context, data []byte, name, folderID string) (string, error)
	// SignOut revokes the held token.
	SignOut(ctx context.Context) error
}
