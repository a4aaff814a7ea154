package document_store_gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsroom/utils/logger"
)

type stubRemote struct {
	docs   map[string]json.RawMessage
	reads  int
	writes int
	err    error
}

func (s *stubRemote) ReadJSON(ctx context.Context, path string) (json.RawMessage, error) {
	s.reads++
	if s.err != nil {
		return nil, s.err
	}
	return s.docs[path], nil
}

func (s *stubRemote) WriteJSON(ctx context.Context, path string, doc any, message string) error {
	s.writes++
	if s.err != nil {
		return s.err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	s.docs[path] = raw
	return nil
}

func TestReadJSON_CachesExistingDocuments(t *testing.T) {
	logger.InitLogger()
	remote := &stubRemote{docs: map[string]json.RawMessage{
		"news_data.json": json.RawMessage(`{"a":1}`),
	}}
	g := NewDocumentStoreGateway(remote)

	for i := 0; i < 3; i++ {
		doc, err := g.ReadJSON(context.Background(), "news_data.json")
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":1}`, string(doc))
	}

	assert.Equal(t, 1, remote.reads, "repeat reads must hit the cache")
}

func TestReadJSON_MissingDocumentIsNotCached(t *testing.T) {
	logger.InitLogger()
	remote := &stubRemote{docs: map[string]json.RawMessage{}}
	g := NewDocumentStoreGateway(remote)

	doc, err := g.ReadJSON(context.Background(), "feeds.json")
	require.NoError(t, err)
	assert.Nil(t, doc)

	// Document appears later; the read must see it.
	remote.docs["feeds.json"] = json.RawMessage(`{"feeds":[]}`)
	doc, err = g.ReadJSON(context.Background(), "feeds.json")
	require.NoError(t, err)
	assert.NotNil(t, doc)
	assert.Equal(t, 2, remote.reads)
}

func TestReadJSON_ErrorIsPropagated(t *testing.T) {
	logger.InitLogger()
	remote := &stubRemote{err: fmt.Errorf("store unreachable")}
	g := NewDocumentStoreGateway(remote)

	_, err := g.ReadJSON(context.Background(), "news_data.json")
	assert.Error(t, err)
}

func TestWriteJSON_InvalidatesCachedCopy(t *testing.T) {
	logger.InitLogger()
	remote := &stubRemote{docs: map[string]json.RawMessage{
		"stats.json": json.RawMessage(`{"total_visitors":1}`),
	}}
	g := NewDocumentStoreGateway(remote)

	_, err := g.ReadJSON(context.Background(), "stats.json")
	require.NoError(t, err)

	err = g.WriteJSON(context.Background(), "stats.json", map[string]int{"total_visitors": 2}, "update stats")
	require.NoError(t, err)

	doc, err := g.ReadJSON(context.Background(), "stats.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_visitors":2}`, string(doc))
	assert.Equal(t, 2, remote.reads, "write must force the next read back to the store")
}

func TestWriteJSON_FailureKeepsCache(t *testing.T) {
	logger.InitLogger()
	remote := &stubRemote{docs: map[string]json.RawMessage{
		"stats.json": json.RawMessage(`{"total_visitors":1}`),
	}}
	g := NewDocumentStoreGateway(remote)

	_, err := g.ReadJSON(context.Background(), "stats.json")
	require.NoError(t, err)

	remote.err = fmt.Errorf("conflict")
	err = g.WriteJSON(context.Background(), "stats.json", map[string]int{"total_visitors": 2}, "update stats")
	assert.Error(t, err)

	remote.err = nil
	doc, err := g.ReadJSON(context.Background(), "stats.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_visitors":1}`, string(doc))
	assert.Equal(t, 1, remote.reads, "failed write must not evict the cached copy")
}
