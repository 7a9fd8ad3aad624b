/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package paging

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/suparena/attrdao/errors"
	"github.com/suparena/attrdao/mapper"
	"github.com/suparena/attrdao/storagemodels"
)

// StreamResult represents a single item in a stream with metadata
type StreamResult[T any] struct {
	Item  T                  // The mapped entity
	Raw   storagemodels.Item // Raw item as returned by the store
	Error error              // Item-specific or terminal error, if any
	Meta  StreamMeta         // Metadata about this item
}

// StreamMeta contains metadata about a streamed item
type StreamMeta struct {
	Index      int64     // Item index in stream (0-based)
	PageNumber int       // Store batch number (1-based)
	Timestamp  time.Time // When item was retrieved
}

// StreamOptions configures streaming behavior
type StreamOptions struct {
	BufferSize      int                 // Channel buffer size (default: 100)
	MaxRetries      int                 // Retry attempts for transient errors (default: 3)
	RetryBackoff    time.Duration       // Backoff between retries (default: 1s)
	PageSize        int                 // Items per batch, clamped like FetchPage (default: 100)
	ProgressHandler func(StreamProgress) // Optional progress callback
	ErrorHandler    func(error) bool    // Return true to continue, false to stop
}

// StreamProgress tracks streaming progress
type StreamProgress struct {
	ItemsProcessed int64     // Total items processed
	PagesProcessed int       // Total batches processed
	LastToken      string    // Continuation token of the latest batch
	Errors         []error   // Accumulated non-fatal errors
	StartTime      time.Time // When streaming started
	CurrentRate    float64   // Items per second
}

// StreamOption is a functional option for configuring streaming
type StreamOption func(*StreamOptions)

// DefaultStreamOptions returns default streaming options
func DefaultStreamOptions() StreamOptions {
	return StreamOptions{
		BufferSize:   100,
		MaxRetries:   3,
		RetryBackoff: time.Second,
		PageSize:     100,
	}
}

// WithBufferSize sets the channel buffer size
func WithBufferSize(size int) StreamOption {
	return func(opts *StreamOptions) {
		opts.BufferSize = size
	}
}

// WithMaxRetries sets the maximum retry attempts
func WithMaxRetries(retries int) StreamOption {
	return func(opts *StreamOptions) {
		opts.MaxRetries = retries
	}
}

// WithRetryBackoff sets the retry backoff duration
func WithRetryBackoff(backoff time.Duration) StreamOption {
	return func(opts *StreamOptions) {
		opts.RetryBackoff = backoff
	}
}

// WithPageSize sets the batch size requested from the store
func WithPageSize(size int) StreamOption {
	return func(opts *StreamOptions) {
		opts.PageSize = size
	}
}

// WithProgressHandler sets a progress callback
func WithProgressHandler(handler func(StreamProgress)) StreamOption {
	return func(opts *StreamOptions) {
		opts.ProgressHandler = handler
	}
}

// WithErrorHandler sets an error handler that can decide whether to continue
// after a failed batch. Continuing requests the same batch again.
func WithErrorHandler(handler func(error) bool) StreamOption {
	return func(opts *StreamOptions) {
		opts.ErrorHandler = handler
	}
}

// Stream enumerates the collection lazily. Entities are delivered one by one on
// the returned channel, which is closed when the enumeration ends, fails or ctx
// is cancelled. A mapping failure is reported on the item and the stream goes on.
func (p *Paginator[T]) Stream(ctx context.Context, opts ...StreamOption) <-chan StreamResult[T] {
	options := DefaultStreamOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.BufferSize < 0 {
		options.BufferSize = 0
	}

	resultCh := make(chan StreamResult[T], options.BufferSize)
	go p.streamWorker(ctx, options, resultCh)
	return resultCh
}

func (p *Paginator[T]) streamWorker(ctx context.Context, options StreamOptions, resultCh chan<- StreamResult[T]) {
	defer close(resultCh)

	var (
		itemIndex  int64
		pageNumber int
		failures   []error
		token      string
	)
	startTime := time.Now()
	pageSize := ClampBatchSize(&options.PageSize)

	reportProgress := func(lastToken string) {
		if options.ProgressHandler == nil {
			return
		}
		progress := StreamProgress{
			ItemsProcessed: atomic.LoadInt64(&itemIndex),
			PagesProcessed: pageNumber,
			LastToken:      lastToken,
			Errors:         slices.Clone(failures),
			StartTime:      startTime,
		}
		if elapsed := time.Since(startTime).Seconds(); elapsed > 0 {
			progress.CurrentRate = float64(progress.ItemsProcessed) / elapsed
		}
		options.ProgressHandler(progress)
	}

	terminal := func(err error) {
		select {
		case <-ctx.Done():
		case resultCh <- StreamResult[T]{
			Error: err,
			Meta: StreamMeta{
				Index:      atomic.LoadInt64(&itemIndex),
				PageNumber: pageNumber,
				Timestamp:  time.Now(),
			},
		}:
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		raw, err := p.listWithRetry(ctx, token, pageSize, options)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if options.ErrorHandler == nil || !options.ErrorHandler(err) {
				terminal(err)
				return
			}
			failures = append(failures, err)
			continue
		}

		pageNumber++
		for _, item := range raw.Items {
			result := StreamResult[T]{
				Raw: item,
				Meta: StreamMeta{
					Index:      atomic.LoadInt64(&itemIndex),
					PageNumber: pageNumber,
					Timestamp:  time.Now(),
				},
			}
			result.Item, result.Error = mapper.Apply(p.mapper, item)
			atomic.AddInt64(&itemIndex, 1)

			select {
			case <-ctx.Done():
				return
			case resultCh <- result:
			}

			if result.Error != nil {
				failures = append(failures, result.Error)
			}
		}

		reportProgress(raw.NextToken)

		if raw.NextToken == "" {
			break
		}
		if err := checkCursor(p.collection.Name(), token, raw.NextToken, len(raw.Items)); err != nil {
			terminal(err)
			return
		}
		token = raw.NextToken
	}

	p.logger.Debug().
		Str("domain", p.collection.Name()).
		Int64("items", atomic.LoadInt64(&itemIndex)).
		Int("pages", pageNumber).
		Msg("stream finished")
}

// listWithRetry fetches one raw batch, retrying transient store failures with
// a linear backoff.
func (p *Paginator[T]) listWithRetry(ctx context.Context, token string, pageSize int32, options StreamOptions) (*storagemodels.ItemPage, error) {
	var lastErr error

	for attempt := 0; attempt <= options.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, err := p.collection.ListItemsWithAttributes(ctx, &storagemodels.ListParams{
			NextToken: token,
			MaxCount:  pageSize,
		})
		if err == nil {
			if raw == nil {
				raw = &storagemodels.ItemPage{}
			}
			return raw, nil
		}

		lastErr = err
		if !errors.IsRetryable(err) {
			return nil, err
		}

		p.logger.Warn().
			Err(err).
			Str("domain", p.collection.Name()).
			Int("attempt", attempt+1).
			Msg("transient listing failure")

		if attempt < options.MaxRetries {
			backoff := time.Duration(attempt+1) * options.RetryBackoff
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("listing failed after %d retries: %w", options.MaxRetries, lastErr)
}
