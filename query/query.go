/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package query

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/suparena/attrdao/datastore"
	"github.com/suparena/attrdao/errors"
	"github.com/suparena/attrdao/storagemodels"
)

// Executor issues select statements against one collection.
type Executor struct {
	collection datastore.Collection
	logger     zerolog.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the logger used for query events.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// NewExecutor creates an Executor bound to collection.
func NewExecutor(collection datastore.Collection, opts ...Option) *Executor {
	e := &Executor{
		collection: collection,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CountStatement builds the count statement for domain, with an optional predicate.
func CountStatement(domain, predicate string) string {
	predicate = strings.TrimSpace(predicate)
	if predicate == "" {
		return fmt.Sprintf("select count(*) from %s", domain)
	}
	return fmt.Sprintf("select count(*) from %s where %s", domain, predicate)
}

// CountAll returns the number of items in domain.
func (e *Executor) CountAll(ctx context.Context, domain string) (int64, error) {
	return e.count(ctx, domain, CountStatement(domain, ""))
}

// CountWhere returns the number of items of domain matching predicate. The
// predicate is inserted verbatim; callers must not pass untrusted input. An
// empty predicate counts every item.
func (e *Executor) CountWhere(ctx context.Context, domain, predicate string) (int64, error) {
	return e.count(ctx, domain, CountStatement(domain, predicate))
}

// Select runs expression as-is and returns the raw batch.
func (e *Executor) Select(ctx context.Context, expression, nextToken string) (*storagemodels.ItemPage, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, errors.NewValidationError("expression", "select expression is required")
	}
	return e.collection.SelectItems(ctx, &storagemodels.SelectParams{
		Expression: expression,
		NextToken:  nextToken,
	})
}

func (e *Executor) count(ctx context.Context, domain, statement string) (int64, error) {
	if strings.TrimSpace(domain) == "" {
		return 0, errors.NewValidationError("domain", "domain name is required")
	}

	page, err := e.collection.SelectItems(ctx, &storagemodels.SelectParams{Expression: statement})
	if err != nil {
		return 0, err
	}

	n, err := ParseCount(statement, page)
	if err != nil {
		return 0, err
	}

	e.logger.Debug().
		Str("domain", domain).
		Str("statement", statement).
		Int64("count", n).
		Msg("count executed")
	return n, nil
}

// ParseCount reads the first attribute value of the first result item as a
// base-10 integer. A result without items counts as zero.
func ParseCount(statement string, page *storagemodels.ItemPage) (int64, error) {
	if page == nil {
		return 0, nil
	}
	for _, item := range page.Items {
		if len(item.Attributes) == 0 {
			continue
		}
		raw := item.Attributes[0].Value
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return 0, errors.NewParseError(statement, raw, err)
		}
		return n, nil
	}
	return 0, nil
}
