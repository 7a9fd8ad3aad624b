/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package paging

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/suparena/attrdao/datastore"
	"github.com/suparena/attrdao/errors"
	"github.com/suparena/attrdao/mapper"
	"github.com/suparena/attrdao/storagemodels"
)

// BatchSizeCeiling is the largest batch the store hands out in one call.
const BatchSizeCeiling = 250

// ClampBatchSize turns a requested batch size into the MaxCount sent to the store.
// A missing, zero, negative or oversized request becomes BatchSizeCeiling.
func ClampBatchSize(count *int) int32 {
	if count == nil || *count <= 0 || *count > BatchSizeCeiling {
		return BatchSizeCeiling
	}
	return int32(*count)
}

// Option configures a Paginator.
type Option func(*settings)

type settings struct {
	logger zerolog.Logger
}

// WithLogger sets the logger used for page events.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// Paginator walks the items of one collection in store-sized batches and maps them.
type Paginator[T any] struct {
	collection datastore.Collection
	mapper     mapper.Mapper[T]
	logger     zerolog.Logger
}

// New creates a Paginator over collection.
func New[T any](collection datastore.Collection, m mapper.Mapper[T], opts ...Option) *Paginator[T] {
	s := settings{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&s)
	}
	return &Paginator[T]{
		collection: collection,
		mapper:     m,
		logger:     s.logger,
	}
}

// FetchPage issues exactly one listing call. The token is forwarded verbatim and
// the returned page carries the store's next token. A mapping failure discards
// the whole batch.
func (p *Paginator[T]) FetchPage(ctx context.Context, count *int, token string) (*storagemodels.Page[T], error) {
	raw, err := p.collection.ListItemsWithAttributes(ctx, &storagemodels.ListParams{
		NextToken: token,
		MaxCount:  ClampBatchSize(count),
	})
	if err != nil {
		return nil, err
	}

	page, err := p.mapPage(raw)
	if err != nil {
		return nil, err
	}

	p.logger.Debug().
		Str("domain", p.collection.Name()).
		Int("items", len(page.Items)).
		Bool("more", page.HasMore()).
		Msg("page fetched")
	return page, nil
}

// FetchAll follows continuation tokens until the store reports no more batches
// and returns every entity in batch order.
func (p *Paginator[T]) FetchAll(ctx context.Context) ([]T, error) {
	var (
		token string
		pages int
	)
	all := make([]T, 0)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := p.FetchPage(ctx, nil, token)
		if err != nil {
			return nil, err
		}
		pages++
		all = append(all, page.Items...)

		if !page.HasMore() {
			break
		}
		if err := checkCursor(p.collection.Name(), token, page.NextToken, len(page.Items)); err != nil {
			return nil, err
		}
		token = page.NextToken
	}

	p.logger.Debug().
		Str("domain", p.collection.Name()).
		Int("items", len(all)).
		Int("pages", pages).
		Msg("enumeration finished")
	return all, nil
}

func (p *Paginator[T]) mapPage(raw *storagemodels.ItemPage) (*storagemodels.Page[T], error) {
	if raw == nil {
		return &storagemodels.Page[T]{}, nil
	}

	page := &storagemodels.Page[T]{
		Items:     make([]T, 0, len(raw.Items)),
		NextToken: raw.NextToken,
	}
	for _, item := range raw.Items {
		entity, err := mapper.Apply(p.mapper, item)
		if err != nil {
			return nil, err
		}
		page.Items = append(page.Items, entity)
	}
	return page, nil
}

// checkCursor rejects a continuation that cannot make progress: an empty batch
// that still carries a token, or the same token handed back unchanged.
func checkCursor(domain, sent, next string, items int) error {
	if items == 0 || next == sent {
		return errors.NewStaleCursorError(domain, next)
	}
	return nil
}
