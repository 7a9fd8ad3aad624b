/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides in-memory implementations of the datastore contract for testing
package mock

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/suparena/attrdao/datastore"
	"github.com/suparena/attrdao/errors"
	"github.com/suparena/attrdao/storagemodels"
)

const tokenPrefix = "o:"

var countPattern = regexp.MustCompile(`(?is)^\s*select\s+count\(\s*\*\s*\)\s+from\s+(\S+)(?:\s+where\s+(.+?))?\s*$`)

// Client is an in-memory datastore.Client holding named collections.
type Client struct {
	mu          sync.RWMutex
	collections map[string]*Collection
	connects    int
	resolves    int
}

// New creates an empty mock Client.
func New() *Client {
	return &Client{
		collections: make(map[string]*Collection),
	}
}

// Connector returns a datastore.Connector that hands out this client and counts calls.
func (c *Client) Connector() datastore.Connector {
	return func(ctx context.Context, creds datastore.Credentials) (datastore.Client, error) {
		c.mu.Lock()
		c.connects++
		c.mu.Unlock()
		return c, nil
	}
}

// AddCollection creates (or returns) the collection called name.
func (c *Client) AddCollection(name string) *Collection {
	c.mu.Lock()
	defer c.mu.Unlock()

	if coll, ok := c.collections[name]; ok {
		return coll
	}
	coll := NewCollection(name)
	c.collections[name] = coll
	return coll
}

// Collection resolves a previously added collection.
func (c *Client) Collection(ctx context.Context, name string) (datastore.Collection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resolves++
	coll, ok := c.collections[name]
	if !ok {
		return nil, errors.NewStoreAccessError("Collection", name, fmt.Errorf("no such domain"))
	}
	return coll, nil
}

// Connects returns how many times the connector was invoked.
func (c *Client) Connects() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connects
}

// Resolves returns how many times Collection was invoked.
func (c *Client) Resolves() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resolves
}

// Collection is an in-memory datastore.Collection keeping items in insertion order.
// List pages use offset tokens of the form "o:<n>".
type Collection struct {
	mu          sync.RWMutex
	name        string
	order       []string
	items       map[string]storagemodels.Attributes
	listFunc    func(ctx context.Context, params *storagemodels.ListParams) (*storagemodels.ItemPage, error)
	selectFunc  func(ctx context.Context, params *storagemodels.SelectParams) (*storagemodels.ItemPage, error)
	countFunc   func(predicate string) (string, error)
	getError    error
	listError   error
	selectError error
	listCalls   int
	lastList    storagemodels.ListParams
	lastSelect  storagemodels.SelectParams
}

// NewCollection creates an empty mock Collection.
func NewCollection(name string) *Collection {
	return &Collection{
		name:  name,
		items: make(map[string]storagemodels.Attributes),
	}
}

// WithListFunc replaces the default listing with f
func (m *Collection) WithListFunc(f func(ctx context.Context, params *storagemodels.ListParams) (*storagemodels.ItemPage, error)) *Collection {
	m.listFunc = f
	return m
}

// WithSelectFunc replaces the default select handling with f
func (m *Collection) WithSelectFunc(f func(ctx context.Context, params *storagemodels.SelectParams) (*storagemodels.ItemPage, error)) *Collection {
	m.selectFunc = f
	return m
}

// WithCountFunc answers count statements with the value returned by f.
// The value is returned as-is so tests can feed non-numeric results.
func (m *Collection) WithCountFunc(f func(predicate string) (string, error)) *Collection {
	m.countFunc = f
	return m
}

// WithGetError makes GetItem return err
func (m *Collection) WithGetError(err error) *Collection {
	m.getError = err
	return m
}

// WithListError makes ListItemsWithAttributes return err
func (m *Collection) WithListError(err error) *Collection {
	m.listError = err
	return m
}

// WithSelectError makes SelectItems return err
func (m *Collection) WithSelectError(err error) *Collection {
	m.selectError = err
	return m
}

// Name returns the collection name.
func (m *Collection) Name() string {
	return m.name
}

// Put stores items, replacing the attributes of existing keys in place.
func (m *Collection) Put(items ...storagemodels.Item) *Collection {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, item := range items {
		if _, exists := m.items[item.Name]; !exists {
			m.order = append(m.order, item.Name)
		}
		m.items[item.Name] = append(storagemodels.Attributes(nil), item.Attributes...)
	}
	return m
}

// GetItem retrieves an item by key
func (m *Collection) GetItem(ctx context.Context, key string) (storagemodels.Item, error) {
	if m.getError != nil {
		return storagemodels.Item{}, m.getError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	attrs, exists := m.items[key]
	if !exists {
		return storagemodels.Item{}, errors.NewNotFoundError(m.name, key)
	}
	return storagemodels.Item{Name: key, Attributes: append(storagemodels.Attributes(nil), attrs...)}, nil
}

// ListItemsWithAttributes returns one page of at most params.MaxCount items.
func (m *Collection) ListItemsWithAttributes(ctx context.Context, params *storagemodels.ListParams) (*storagemodels.ItemPage, error) {
	if params == nil {
		params = &storagemodels.ListParams{}
	}

	m.mu.Lock()
	m.listCalls++
	m.lastList = *params
	m.mu.Unlock()

	if m.listError != nil {
		return nil, m.listError
	}
	if m.listFunc != nil {
		return m.listFunc(ctx, params)
	}

	offset, err := parseOffset(params.NextToken)
	if err != nil {
		return nil, errors.NewStoreAccessError("ListItemsWithAttributes", m.name, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	end := len(m.order)
	if params.MaxCount > 0 && offset+int(params.MaxCount) < end {
		end = offset + int(params.MaxCount)
	}

	page := &storagemodels.ItemPage{}
	for _, key := range m.order[min(offset, len(m.order)):end] {
		page.Items = append(page.Items, storagemodels.Item{
			Name:       key,
			Attributes: append(storagemodels.Attributes(nil), m.items[key]...),
		})
	}
	if end < len(m.order) {
		page.NextToken = tokenPrefix + strconv.Itoa(end)
	}
	return page, nil
}

// SelectItems answers count statements from the stored items; anything else
// needs a select func.
func (m *Collection) SelectItems(ctx context.Context, params *storagemodels.SelectParams) (*storagemodels.ItemPage, error) {
	if params == nil {
		params = &storagemodels.SelectParams{}
	}

	m.mu.Lock()
	m.lastSelect = *params
	m.mu.Unlock()

	if m.selectError != nil {
		return nil, m.selectError
	}
	if m.selectFunc != nil {
		return m.selectFunc(ctx, params)
	}

	match := countPattern.FindStringSubmatch(params.Expression)
	if match == nil {
		return nil, errors.NewStoreAccessError("SelectItems", m.name,
			fmt.Errorf("unsupported statement %q", params.Expression))
	}

	var value string
	if m.countFunc != nil {
		v, err := m.countFunc(strings.TrimSpace(match[2]))
		if err != nil {
			return nil, err
		}
		value = v
	} else {
		value = strconv.Itoa(m.Count())
	}

	return &storagemodels.ItemPage{
		Items: []storagemodels.Item{{
			Name:       "Domain",
			Attributes: storagemodels.Attributes{{Name: "Count", Value: value}},
		}},
	}, nil
}

// Helper methods for testing

// Count returns the number of stored items
func (m *Collection) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}

// ListCalls returns how many times ListItemsWithAttributes was invoked
func (m *Collection) ListCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.listCalls
}

// LastListParams returns the parameters of the latest listing call
func (m *Collection) LastListParams() storagemodels.ListParams {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastList
}

// LastSelectParams returns the parameters of the latest select call
func (m *Collection) LastSelectParams() storagemodels.SelectParams {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastSelect
}

// Clear removes all data
func (m *Collection) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.order = nil
	m.items = make(map[string]storagemodels.Attributes)
}

func parseOffset(token string) (int, error) {
	if token == "" {
		return 0, nil
	}
	if !strings.HasPrefix(token, tokenPrefix) {
		return 0, fmt.Errorf("malformed continuation token %q", token)
	}
	n, err := strconv.Atoi(strings.TrimPrefix(token, tokenPrefix))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("malformed continuation token %q", token)
	}
	return n, nil
}
