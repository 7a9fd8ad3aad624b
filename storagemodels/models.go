/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

// Attribute is a single name/value pair as returned by the store.
// A multi-valued attribute appears as several Attributes sharing a Name.
type Attribute struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Attributes is the raw attribute set of one item: an unordered multi-map
// from attribute name to one or more string values.
type Attributes []Attribute

// Get returns the first value stored under name.
func (a Attributes) Get(name string) (string, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Values returns every value stored under name, in store order.
func (a Attributes) Values(name string) []string {
	var values []string
	for _, attr := range a {
		if attr.Name == name {
			values = append(values, attr.Value)
		}
	}
	return values
}

// Names returns the distinct attribute names in first-seen order.
func (a Attributes) Names() []string {
	seen := make(map[string]struct{}, len(a))
	names := make([]string, 0, len(a))
	for _, attr := range a {
		if _, ok := seen[attr.Name]; ok {
			continue
		}
		seen[attr.Name] = struct{}{}
		names = append(names, attr.Name)
	}
	return names
}

// ToMap groups the attribute values by name.
func (a Attributes) ToMap() map[string][]string {
	m := make(map[string][]string, len(a))
	for _, attr := range a {
		m[attr.Name] = append(m[attr.Name], attr.Value)
	}
	return m
}

// Item is a single key-addressed record of a collection.
type Item struct {
	// Name is the item key.
	Name string
	// Attributes holds the raw attributes of the item.
	Attributes Attributes
}

// ItemPage is one raw batch returned by a listing or select call.
type ItemPage struct {
	// Items are returned in store order.
	Items []Item
	// NextToken resumes the enumeration. Empty means there are no more pages.
	NextToken string
}

// ListParams defines parameters for a bounded listing of a collection.
type ListParams struct {
	// Filter is an optional store-native filter, passed through verbatim.
	Filter string
	// SortAttribute optionally orders the returned batch by the first value
	// of the named attribute.
	SortAttribute string
	// Descending reverses the SortAttribute order.
	Descending bool
	// NextToken is the continuation token of the previous batch, empty for the first.
	NextToken string
	// MaxCount caps the number of items in the batch.
	MaxCount int32
}

// SelectParams defines parameters for a select statement.
type SelectParams struct {
	// Expression is the statement text, passed through verbatim.
	Expression string
	// NextToken is the continuation token of the previous batch, empty for the first.
	NextToken string
}

// Page is a batch of mapped entities together with the token for the next batch.
// Tokens are issued by the store and must be passed back unmodified.
type Page[T any] struct {
	Items     []T    `json:"items" yaml:"items"`
	NextToken string `json:"nextToken,omitempty" yaml:"nextToken,omitempty"`
}

// HasMore reports whether the store announced another batch.
func (p *Page[T]) HasMore() bool {
	return p != nil && p.NextToken != ""
}
