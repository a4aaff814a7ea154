// Package feed_registry_usecase manages the registry of news sources kept in
// the feeds document. Every change overwrites the whole document.
package feed_registry_usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"newsroom/domain"
	"newsroom/port/document_store_port"
	"newsroom/port/fetch_feed_port"
	"newsroom/utils/errors"
	"newsroom/utils/logger"
)

type FeedRegistryUsecase struct {
	store   document_store_port.DocumentStorePort
	fetcher fetch_feed_port.FetchFeedPort
}

func NewFeedRegistryUsecase(store document_store_port.DocumentStorePort, fetcher fetch_feed_port.FetchFeedPort) *FeedRegistryUsecase {
	return &FeedRegistryUsecase{store: store, fetcher: fetcher}
}

// List returns the registered feeds. When no feeds document exists yet the
// registry is seeded with the default sources and persisted.
func (u *FeedRegistryUsecase) List(ctx context.Context) ([]domain.FeedConfig, error) {
	raw, err := u.store.ReadJSON(ctx, domain.FeedsDocumentPath)
	if err != nil {
		return nil, err
	}

	if raw == nil {
		feeds := domain.DefaultFeeds()
		logger.Logger.Info("seeding feed registry with defaults", "count", len(feeds))
		if err := u.write(ctx, feeds, "Seed default feeds"); err != nil {
			return nil, err
		}
		return feeds, nil
	}

	var doc domain.FeedsDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.StorageError("feeds document is not valid JSON", err,
			map[string]interface{}{"path": domain.FeedsDocumentPath})
	}
	return doc.Feeds, nil
}

// Add validates the feed URL by fetching it, then appends the feed. Names
// and URLs must be unique within the registry.
func (u *FeedRegistryUsecase) Add(ctx context.Context, feed domain.FeedConfig) error {
	feed.Name = strings.TrimSpace(feed.Name)
	feed.URL = strings.TrimSpace(feed.URL)
	if feed.Name == "" || feed.URL == "" {
		return errors.ValidationError("feed name and url are required", nil)
	}

	test := u.fetcher.TestFeed(ctx, feed.URL)
	if !test.Valid {
		return errors.ValidationError(fmt.Sprintf("feed url is not a usable feed: %s", test.Error),
			map[string]interface{}{"url": feed.URL})
	}

	feeds, err := u.List(ctx)
	if err != nil {
		return err
	}
	for _, existing := range feeds {
		if existing.Name == feed.Name {
			return errors.ValidationError("a feed with this name already exists",
				map[string]interface{}{"name": feed.Name})
		}
		if existing.URL == feed.URL {
			return errors.ValidationError("a feed with this url already exists",
				map[string]interface{}{"url": feed.URL})
		}
	}

	feeds = append(feeds, feed)
	return u.write(ctx, feeds, fmt.Sprintf("Add feed %s", feed.Name))
}

// Remove deletes the feed with the given name.
func (u *FeedRegistryUsecase) Remove(ctx context.Context, name string) error {
	feeds, err := u.List(ctx)
	if err != nil {
		return err
	}

	kept := make([]domain.FeedConfig, 0, len(feeds))
	for _, feed := range feeds {
		if feed.Name != name {
			kept = append(kept, feed)
		}
	}
	if len(kept) == len(feeds) {
		return errors.NotFoundError("feed not found", map[string]interface{}{"name": name})
	}

	return u.write(ctx, kept, fmt.Sprintf("Remove feed %s", name))
}

// TestFeed validates a feed URL without registering it.
func (u *FeedRegistryUsecase) TestFeed(ctx context.Context, feedURL string) domain.FeedTestResult {
	return u.fetcher.TestFeed(ctx, feedURL)
}

func (u *FeedRegistryUsecase) write(ctx context.Context, feeds []domain.FeedConfig, message string) error {
	return u.store.WriteJSON(ctx, domain.FeedsDocumentPath, domain.FeedsDocument{Feeds: feeds}, message)
}
