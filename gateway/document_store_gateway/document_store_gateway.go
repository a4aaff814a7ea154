// Package document_store_gateway fronts the version-controlled document
// store with a session cache so repeated reads of the same document within a
// run hit the network only once.
package document_store_gateway

import (
	"context"
	"encoding/json"

	"newsroom/port/document_store_port"
	"newsroom/utils/doc_cache"
	"newsroom/utils/logger"
)

// Verify interface compliance at compile time.
var _ document_store_port.DocumentStorePort = (*DocumentStoreGateway)(nil)

// RemoteStore is the raw store boundary, satisfied by the GitHub contents
// client.
type RemoteStore interface {
	ReadJSON(ctx context.Context, path string) (json.RawMessage, error)
	WriteJSON(ctx context.Context, path string, doc any, message string) error
}

type DocumentStoreGateway struct {
	remote RemoteStore
	cache  *doc_cache.DocumentCache
}

func NewDocumentStoreGateway(remote RemoteStore) *DocumentStoreGateway {
	return &DocumentStoreGateway{
		remote: remote,
		cache:  doc_cache.NewDocumentCache(),
	}
}

// ReadJSON serves path from the cache when possible. Only documents that
// exist are cached; a missing document is reported as nil every time so a
// later creation is observed.
func (g *DocumentStoreGateway) ReadJSON(ctx context.Context, path string) (json.RawMessage, error) {
	if doc, ok := g.cache.Get(path); ok {
		logger.Logger.Debug("document served from cache", "path", path)
		return doc, nil
	}

	doc, err := g.remote.ReadJSON(ctx, path)
	if err != nil {
		return nil, err
	}
	if doc != nil {
		g.cache.Set(path, doc)
	}
	return doc, nil
}

// WriteJSON commits doc and drops the stale cached copy. The fresh content
// is not re-cached here; the next read fetches what the store actually
// accepted.
func (g *DocumentStoreGateway) WriteJSON(ctx context.Context, path string, doc any, message string) error {
	if err := g.remote.WriteJSON(ctx, path, doc, message); err != nil {
		return err
	}
	g.cache.Invalidate(path)
	return nil
}

func (g *DocumentStoreGateway) Invalidate(path string) {
	g.cache.Invalidate(path)
}
