/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"reflect"
	"strings"
	"sync"
)

// domainRegistry associates Go entity types with explicit domain names.
var (
	domainRegistry = make(map[reflect.Type]string)
	mu             sync.RWMutex
)

// RegisterDomain associates entity type T with the domain called name.
// A later registration for the same type replaces the earlier one.
func RegisterDomain[T any](name string) {
	t := typeOf[T]()

	mu.Lock()
	defer mu.Unlock()
	domainRegistry[t] = name
}

// LookupDomain returns the domain registered for T, if any.
func LookupDomain[T any]() (string, bool) {
	t := typeOf[T]()

	mu.RLock()
	defer mu.RUnlock()
	name, ok := domainRegistry[t]
	return name, ok
}

// DomainOf resolves the domain of T: the registered name when there is one,
// otherwise the simple name of the type.
func DomainOf[T any]() string {
	if name, ok := LookupDomain[T](); ok && name != "" {
		return name
	}
	return SimpleName[T]()
}

// SimpleName returns the unqualified name of T with pointers stripped,
// e.g. "RatingSystem" for *testmodels.RatingSystem.
func SimpleName[T any]() string {
	t := typeOf[T]()
	if t == nil {
		return "unknown"
	}
	name := t.Name()
	// Generic instantiations carry their type arguments in brackets.
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		return t.String()
	}
	return name
}

// Reset removes every registration. Intended for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	domainRegistry = make(map[reflect.Type]string)
}

func typeOf[T any]() reflect.Type {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
