/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapper

import (
	"github.com/suparena/attrdao/errors"
	"github.com/suparena/attrdao/registry"
	"github.com/suparena/attrdao/storagemodels"
)

// Mapper converts the raw attributes of an item into an entity of type T.
type Mapper[T any] interface {
	Map(item storagemodels.Item) (T, error)
}

// Func adapts a plain function to the Mapper interface.
type Func[T any] func(item storagemodels.Item) (T, error)

// Map calls f(item).
func (f Func[T]) Map(item storagemodels.Item) (T, error) {
	return f(item)
}

// Keyed is implemented by entities that expose their item key.
type Keyed interface {
	EntityKey() string
}

// Mappable is implemented by entities that can fill themselves from raw attributes.
type Mappable interface {
	FromAttributes(key string, attrs storagemodels.Attributes) error
}

// ForMappable returns a Mapper for any T whose pointer implements Mappable.
func ForMappable[T any, PT interface {
	*T
	Mappable
}]() Mapper[T] {
	return Func[T](func(item storagemodels.Item) (T, error) {
		var entity T
		if err := PT(&entity).FromAttributes(item.Name, item.Attributes); err != nil {
			var zero T
			return zero, err
		}
		return entity, nil
	})
}

// Apply runs m on item and guarantees that any failure is reported as a MappingError.
func Apply[T any](m Mapper[T], item storagemodels.Item) (T, error) {
	entity, err := m.Map(item)
	if err != nil {
		var zero T
		if errors.IsMapping(err) {
			return zero, err
		}
		return zero, errors.NewMappingError(registry.SimpleName[T](), item.Name, err)
	}
	return entity, nil
}

// KeyOf returns the key of entity when it implements Keyed.
func KeyOf(entity any) (string, bool) {
	if k, ok := entity.(Keyed); ok {
		return k.EntityKey(), true
	}
	return "", false
}
