/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package attrdao

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/suparena/attrdao/config"
	"github.com/suparena/attrdao/datastore"
	"github.com/suparena/attrdao/datastore/ddb"
	"github.com/suparena/attrdao/errors"
	"github.com/suparena/attrdao/mapper"
	"github.com/suparena/attrdao/paging"
	"github.com/suparena/attrdao/query"
	"github.com/suparena/attrdao/registry"
	"github.com/suparena/attrdao/storagemodels"
)

// Option configures a DAO.
type Option func(*settings)

type settings struct {
	domain     string
	logger     zerolog.Logger
	handles    *HandleCache
	collection datastore.Collection
	pageSize   int
}

func newSettings(opts []Option) settings {
	s := settings{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithDomain binds the DAO to the named domain instead of the one registered
// for the entity type. An empty name is ignored.
func WithDomain(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.domain = name
		}
	}
}

// WithLogger sets the logger used by the DAO and everything it creates.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithHandleCache shares connections and collection handles with other DAOs.
func WithHandleCache(handles *HandleCache) Option {
	return func(s *settings) {
		s.handles = handles
	}
}

// WithCollection uses an already resolved collection handle. No connection is made.
func WithCollection(coll datastore.Collection) Option {
	return func(s *settings) {
		s.collection = coll
	}
}

// WithStreamPageSize sets the batch size used by Stream unless overridden per call.
func WithStreamPageSize(size int) Option {
	return func(s *settings) {
		s.pageSize = size
	}
}

// DAO is a read-only data access object for entities of type T stored in one domain.
//
// The collection handle is obtained on first use. Concurrent first calls
// initialise it once; a failed initialisation is reported to the caller and
// attempted again by the next call. All methods are safe for concurrent use.
type DAO[T any] struct {
	connect  datastore.Connector
	creds    datastore.Credentials
	mapper   mapper.Mapper[T]
	domain   string
	logger   zerolog.Logger
	handles  *HandleCache
	pageSize int

	mu         sync.Mutex
	collection datastore.Collection
	paginator  *paging.Paginator[T]
	executor   *query.Executor
}

// New creates a DAO for T. The domain defaults to the name registered for T
// and then to T's type name.
func New[T any](connect datastore.Connector, creds datastore.Credentials, m mapper.Mapper[T], opts ...Option) (*DAO[T], error) {
	if m == nil {
		return nil, errors.NewValidationError("mapper", "mapper is required")
	}

	s := newSettings(opts)
	if connect == nil && s.collection == nil {
		return nil, errors.NewValidationError("connector", "a connector or a collection is required")
	}

	d := &DAO[T]{
		connect:  connect,
		creds:    creds,
		mapper:   m,
		domain:   s.domain,
		logger:   s.logger,
		handles:  s.handles,
		pageSize: s.pageSize,
	}
	if d.domain == "" {
		d.domain = registry.DomainOf[T]()
	}
	if d.handles == nil {
		d.handles = NewHandleCache()
	}
	if s.collection != nil {
		if s.domain != "" && s.domain != s.collection.Name() {
			return nil, errors.NewValidationError("domain",
				fmt.Sprintf("domain %q conflicts with collection %q", s.domain, s.collection.Name()))
		}
		d.domain = s.collection.Name()
		d.bind(s.collection)
	}
	return d, nil
}

// NewFromConfig creates a DAO backed by DynamoDB using cfg. The configured
// domain and page size apply unless opts override them.
func NewFromConfig[T any](ctx context.Context, cfg *config.Config, m mapper.Mapper[T], opts ...Option) (*DAO[T], error) {
	if cfg == nil {
		return nil, errors.NewValidationError("config", "config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts = append([]Option{WithDomain(cfg.Domain), WithStreamPageSize(cfg.PageSize)}, opts...)
	s := newSettings(opts)
	return New[T](ddb.Connector(ddb.WithLogger(s.logger)), cfg.Credentials(), m, opts...)
}

// Domain returns the name of the bound domain.
func (d *DAO[T]) Domain() string {
	return d.domain
}

// handle returns the collection, initialising it on first use.
func (d *DAO[T]) handle(ctx context.Context) (datastore.Collection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.collection != nil {
		return d.collection, nil
	}

	start := time.Now()
	coll, err := d.handles.Collection(ctx, d.connect, d.creds, d.domain)
	if err != nil {
		return nil, err
	}
	d.bind(coll)

	d.logger.Debug().
		Str("domain", d.domain).
		Dur("elapsed", time.Since(start)).
		Msg("collection handle initialized")
	return coll, nil
}

func (d *DAO[T]) bind(coll datastore.Collection) {
	d.collection = coll
	d.paginator = paging.New(coll, d.mapper, paging.WithLogger(d.logger))
	d.executor = query.NewExecutor(coll, query.WithLogger(d.logger))
}

// GetByID returns the entity stored under id. The id is formatted with fmt.Sprint.
// A missing item yields an error matching errors.ErrNotFound.
func (d *DAO[T]) GetByID(ctx context.Context, id any) (T, error) {
	var zero T

	key := fmt.Sprint(id)
	if id == nil || strings.TrimSpace(key) == "" {
		return zero, errors.NewValidationError("id", "id is required")
	}

	coll, err := d.handle(ctx)
	if err != nil {
		return zero, err
	}

	item, err := coll.GetItem(ctx, key)
	if err != nil {
		if errors.IsNotFound(err) {
			return zero, errors.NewNotFoundError(registry.SimpleName[T](), key)
		}
		return zero, err
	}
	return mapper.Apply(d.mapper, item)
}

// GetAll returns every entity of the domain, following continuation tokens
// until the store reports the end.
func (d *DAO[T]) GetAll(ctx context.Context) ([]T, error) {
	if _, err := d.handle(ctx); err != nil {
		return nil, err
	}
	return d.paginator.FetchAll(ctx)
}

// GetPortion returns one batch of at most count entities starting at nextToken.
// A nil, zero, negative or too large count requests paging.BatchSizeCeiling items.
func (d *DAO[T]) GetPortion(ctx context.Context, count *int, nextToken string) (*storagemodels.Page[T], error) {
	if _, err := d.handle(ctx); err != nil {
		return nil, err
	}
	return d.paginator.FetchPage(ctx, count, nextToken)
}

// CountRows returns the number of items in the domain.
func (d *DAO[T]) CountRows(ctx context.Context) (int64, error) {
	coll, err := d.handle(ctx)
	if err != nil {
		return 0, err
	}
	return d.executor.CountAll(ctx, coll.Name())
}

// CountRowsWhere returns the number of items matching predicate. The predicate
// is passed to the store unescaped.
func (d *DAO[T]) CountRowsWhere(ctx context.Context, predicate string) (int64, error) {
	coll, err := d.handle(ctx)
	if err != nil {
		return 0, err
	}
	return d.executor.CountWhere(ctx, coll.Name(), predicate)
}

// Select runs a store-native select statement and maps the returned items.
func (d *DAO[T]) Select(ctx context.Context, expression, nextToken string) (*storagemodels.Page[T], error) {
	if _, err := d.handle(ctx); err != nil {
		return nil, err
	}

	raw, err := d.executor.Select(ctx, expression, nextToken)
	if err != nil {
		return nil, err
	}

	page := &storagemodels.Page[T]{
		Items:     make([]T, 0, len(raw.Items)),
		NextToken: raw.NextToken,
	}
	for _, item := range raw.Items {
		entity, err := mapper.Apply(d.mapper, item)
		if err != nil {
			return nil, err
		}
		page.Items = append(page.Items, entity)
	}
	return page, nil
}

// Stream enumerates the domain lazily. See paging.Paginator.Stream.
func (d *DAO[T]) Stream(ctx context.Context, opts ...paging.StreamOption) <-chan paging.StreamResult[T] {
	if _, err := d.handle(ctx); err != nil {
		ch := make(chan paging.StreamResult[T], 1)
		ch <- paging.StreamResult[T]{Error: err, Meta: paging.StreamMeta{Timestamp: time.Now()}}
		close(ch)
		return ch
	}

	if d.pageSize > 0 {
		opts = append([]paging.StreamOption{paging.WithPageSize(d.pageSize)}, opts...)
	}
	return d.paginator.Stream(ctx, opts...)
}
