// Package briefing_reader_usecase serves persisted briefings to the display
// path.
package briefing_reader_usecase

import (
	"context"
	"encoding/json"
	"sort"

	"newsroom/domain"
	"newsroom/port/document_store_port"
	"newsroom/utils/errors"
)

type BriefingReaderUsecase struct {
	store document_store_port.DocumentStorePort
}

func NewBriefingReaderUsecase(store document_store_port.DocumentStorePort) *BriefingReaderUsecase {
	return &BriefingReaderUsecase{store: store}
}

// GetBriefing returns the briefing stored under date (2006-01-02).
func (u *BriefingReaderUsecase) GetBriefing(ctx context.Context, date string) (domain.BriefingResult, error) {
	doc, err := u.load(ctx)
	if err != nil {
		return domain.BriefingResult{}, err
	}

	result, ok := doc[date]
	if !ok {
		return domain.BriefingResult{}, errors.NotFoundError("no briefing for this date",
			map[string]interface{}{"date": date})
	}
	return result, nil
}

// ListDates returns every date that has a briefing, newest first.
func (u *BriefingReaderUsecase) ListDates(ctx context.Context) ([]string, error) {
	doc, err := u.load(ctx)
	if err != nil {
		return nil, err
	}

	dates := make([]string, 0, len(doc))
	for date := range doc {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates, nil
}

func (u *BriefingReaderUsecase) load(ctx context.Context) (domain.NewsDocument, error) {
	raw, err := u.store.ReadJSON(ctx, domain.NewsDocumentPath)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return domain.NewsDocument{}, nil
	}

	var doc domain.NewsDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.StorageError("news document is not valid JSON", err,
			map[string]interface{}{"path": domain.NewsDocumentPath})
	}
	return doc, nil
}
