/*
Package ddb provides a DynamoDB implementation of the datastore contract.

Each domain is a DynamoDB table with a single hash key; the hash key value is
the item name and every other attribute becomes one or more string values.
Tables with a range key are rejected when the collection is resolved.

Mapping:
  - S, N and BOOL attributes become a single value
  - SS, NS and lists of scalars become multi-valued attributes
  - B, M and NULL attributes are skipped

Pagination:
A listing is one Scan call with Limit set to the requested batch size. The
LastEvaluatedKey is returned as an opaque, URL-safe token and decoded back into
the ExclusiveStartKey of the next call.

Select statements:
"select count(*) from <table>" is answered with a COUNT scan, and with a
"where <predicate>" clause by paging through a PartiQL select of the hash key.
Either way the result is a single item "Domain" with a "Count" attribute.
Any other statement is executed as PartiQL.

Usage:

	client, err := ddb.Connect(ctx, datastore.Credentials{
	    AccessKey: key,
	    SecretKey: secret,
	    Region:    "us-east-1",
	})
	players, err := client.Collection(ctx, "Players")
	page, err := players.ListItemsWithAttributes(ctx, &storagemodels.ListParams{MaxCount: 100})

Throttling and server faults are reported as retryable store access errors.
*/
package ddb
