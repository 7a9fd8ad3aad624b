/*
Package datastore defines the contract attrdao expects from the underlying
attribute-value store.

A Connector opens a Client from Credentials, the Client resolves named
collections, and each Collection serves the three read paths used by the
paginator and the query executor:

	type Collection interface {
	    Name() string
	    GetItem(ctx context.Context, key string) (storagemodels.Item, error)
	    ListItemsWithAttributes(ctx context.Context, params *storagemodels.ListParams) (*storagemodels.ItemPage, error)
	    SelectItems(ctx context.Context, params *storagemodels.SelectParams) (*storagemodels.ItemPage, error)
	}

Implementations:
  - ddb: DynamoDB-backed store, one table per collection
  - mock: In-memory scriptable store for testing
*/
package datastore
