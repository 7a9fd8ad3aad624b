/*
Package registry resolves the domain (collection) name bound to an entity type.

By default an entity type reads from the domain named after the type itself:

	type User struct { ... }
	registry.DomainOf[User]()   // "User"
	registry.DomainOf[*User]()  // "User"

An explicit name overrides the default:

	registry.RegisterDomain[User]("users-prod")
	registry.DomainOf[User]()   // "users-prod"

The registry is thread-safe and should be populated during initialization,
typically in init() functions. A facade resolves the name once, when it is
constructed.
*/
package registry
