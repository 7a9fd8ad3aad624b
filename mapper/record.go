/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapper

import "github.com/suparena/attrdao/storagemodels"

// Record is a schemaless entity holding every attribute of an item.
type Record struct {
	Key        string              `json:"key" yaml:"key"`
	Attributes map[string][]string `json:"attributes" yaml:"attributes"`
}

// FromAttributes implements Mappable.
func (r *Record) FromAttributes(key string, attrs storagemodels.Attributes) error {
	r.Key = key
	r.Attributes = attrs.ToMap()
	return nil
}

// EntityKey implements Keyed.
func (r Record) EntityKey() string {
	return r.Key
}

// First returns the first value of the named attribute.
func (r Record) First(name string) string {
	if values := r.Attributes[name]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// RecordMapper maps any item into a Record.
func RecordMapper() Mapper[Record] {
	return ForMappable[Record]()
}
