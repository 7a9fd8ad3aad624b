/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/suparena/attrdao/storagemodels"
)

// Credentials identify the caller to the store.
type Credentials struct {
	AccessKey    string
	SecretKey    string
	SessionToken string
	Region       string
	// Endpoint overrides the service endpoint, e.g. for a local emulator.
	Endpoint string
}

// CacheKey identifies the connection these credentials open. The secret and
// session token contribute only a digest, so the key is safe to print.
func (c Credentials) CacheKey() string {
	sum := sha256.Sum256([]byte(c.SecretKey + "|" + c.SessionToken))
	return c.AccessKey + "|" + c.Region + "|" + c.Endpoint + "|" + hex.EncodeToString(sum[:8])
}

// Connector opens a client against the store.
type Connector func(ctx context.Context, creds Credentials) (Client, error)

// Client is a connection to the store able to resolve named collections.
type Client interface {
	Collection(ctx context.Context, name string) (Collection, error)
}

// Collection is a handle bound to one named collection ("domain").
// Implementations must be safe for concurrent read-only use.
type Collection interface {
	Name() string

	// GetItem returns the item stored under key, or an error matching
	// errors.ErrNotFound when there is none.
	GetItem(ctx context.Context, key string) (storagemodels.Item, error)

	// ListItemsWithAttributes fetches exactly one batch of at most params.MaxCount items.
	ListItemsWithAttributes(ctx context.Context, params *storagemodels.ListParams) (*storagemodels.ItemPage, error)

	// SelectItems runs a select statement and returns one batch of its result.
	SelectItems(ctx context.Context, params *storagemodels.SelectParams) (*storagemodels.ItemPage, error)
}
