/*
Package storagemodels defines the data structures shared by attrdao's store clients,
paginator and query executor.

Key Types:

Attributes:
The raw attribute set of an item, a multi-map kept as a flat list of pairs:

	attrs := storagemodels.Attributes{
	    {Name: "name", Value: "Oakville"},
	    {Name: "tags", Value: "club"},
	    {Name: "tags", Value: "ontario"},
	}
	attrs.Values("tags") // ["club", "ontario"]

ItemPage:
One raw batch from the store, with the opaque token for the next batch.

Page:
One batch of mapped entities:

	type Page[T any] struct {
	    Items     []T
	    NextToken string // empty when the enumeration is complete
	}

Tokens are meaningful only to the store that issued them. Callers pass them back
verbatim and never build or edit one.
*/
package storagemodels
