/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package attrdao

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/suparena/attrdao/datastore"
)

// HandleCache holds store clients and collection handles so that several DAOs
// can reuse one connection. Entries are created at most once and never replaced.
// A HandleCache is safe for concurrent use.
type HandleCache struct {
	mu          sync.RWMutex
	clients     map[string]datastore.Client
	collections map[string]datastore.Collection
}

// NewHandleCache creates an empty HandleCache.
func NewHandleCache() *HandleCache {
	return &HandleCache{
		clients:     make(map[string]datastore.Client),
		collections: make(map[string]datastore.Collection),
	}
}

// Client returns the client for creds, connecting on first use.
func (hc *HandleCache) Client(ctx context.Context, connect datastore.Connector, creds datastore.Credentials) (datastore.Client, error) {
	key := creds.CacheKey()

	hc.mu.RLock()
	client, ok := hc.clients[key]
	hc.mu.RUnlock()
	if ok {
		return client, nil
	}

	hc.mu.Lock()
	defer hc.mu.Unlock()
	return hc.clientLocked(ctx, connect, creds)
}

// Collection returns the handle of domain, resolving it (and connecting) on first use.
func (hc *HandleCache) Collection(ctx context.Context, connect datastore.Connector, creds datastore.Credentials, domain string) (datastore.Collection, error) {
	key := collectionKey(creds, domain)

	hc.mu.RLock()
	coll, ok := hc.collections[key]
	hc.mu.RUnlock()
	if ok {
		return coll, nil
	}

	hc.mu.Lock()
	defer hc.mu.Unlock()

	if coll, ok := hc.collections[key]; ok {
		return coll, nil
	}

	client, err := hc.clientLocked(ctx, connect, creds)
	if err != nil {
		return nil, err
	}
	coll, err = client.Collection(ctx, domain)
	if err != nil {
		return nil, err
	}
	hc.collections[key] = coll
	return coll, nil
}

// Register stores a caller-constructed handle for domain.
func (hc *HandleCache) Register(creds datastore.Credentials, domain string, coll datastore.Collection) error {
	hc.mu.Lock()
	defer hc.mu.Unlock()

	key := collectionKey(creds, domain)
	if _, exists := hc.collections[key]; exists {
		return fmt.Errorf("collection for domain %q already registered", domain)
	}
	hc.collections[key] = coll
	return nil
}

// Domains returns the names of every cached collection, sorted.
func (hc *HandleCache) Domains() []string {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	seen := make(map[string]struct{}, len(hc.collections))
	domains := make([]string, 0, len(hc.collections))
	for _, coll := range hc.collections {
		if _, dup := seen[coll.Name()]; dup {
			continue
		}
		seen[coll.Name()] = struct{}{}
		domains = append(domains, coll.Name())
	}
	sort.Strings(domains)
	return domains
}

// clientLocked must be called with hc.mu held for writing.
func (hc *HandleCache) clientLocked(ctx context.Context, connect datastore.Connector, creds datastore.Credentials) (datastore.Client, error) {
	key := creds.CacheKey()
	if client, ok := hc.clients[key]; ok {
		return client, nil
	}
	if connect == nil {
		return nil, fmt.Errorf("no connector configured for %q", key)
	}

	client, err := connect(ctx, creds)
	if err != nil {
		return nil, err
	}
	hc.clients[key] = client
	return client, nil
}

func collectionKey(creds datastore.Credentials, domain string) string {
	return creds.CacheKey() + "/" + domain
}
