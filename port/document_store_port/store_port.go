package document_store_port

import (
	"context"
	"encoding/json"
)

// DocumentStorePort reads and writes named JSON documents in the external
// version-controlled store. Reads may be served from a session cache; a write
// invalidates the cached copy of its path.
type DocumentStorePort interface {
	// ReadJSON returns the raw document at path, or nil when it does not
	// exist. All other failures are labeled with the path.
	ReadJSON(ctx context.Context, path string) (json.RawMessage, error)

	// WriteJSON serializes doc and commits it to path with message.
	WriteJSON(ctx context.Context, path string, doc any, message string) error

	// Invalidate drops any cached copy of path.
	Invalidate(path string)
}
