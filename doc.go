/*
Package attrdao provides a generic, read-only data access layer over a
schemaless attribute-value store.

Items in the store are identified by a string key and carry an unordered set
of named, possibly multi-valued string attributes. A DAO binds one entity type
to one domain (collection) and offers by-key lookup, full enumeration,
token-based pagination, streaming and count queries, mapping every raw item
into the entity type on the way out.

Key Features:
  - Type-safe access using Go generics and pluggable mappers
  - DynamoDB backend, in-memory mock for tests
  - Batch sizes clamped to the store ceiling of 250
  - Opaque continuation tokens passed back verbatim
  - Lazy, once-only handle initialisation shared through a HandleCache
  - Semantic error types (not found, store access, mapping, parse, stale cursor)

Basic Usage:

	type Player struct {
		ID     string `attr:"itemName()"`
		Name   string `attr:"name"`
		Rating int    `attr:"rating"`
	}

	dao, err := attrdao.New[Player](ddb.Connector(), creds,
		mapper.NewStructMapper[Player](),
		attrdao.WithDomain("Players"))
	if err != nil {
		return err
	}

	p, err := dao.GetByID(ctx, "p-42")
	if errors.IsNotFound(err) {
		// no such player
	}

	page, err := dao.GetPortion(ctx, nil, "")
	next, err := dao.GetPortion(ctx, nil, page.NextToken)

	active, err := dao.CountRowsWhere(ctx, "status = 'active'")

The predicate given to CountRowsWhere is inserted into the statement as-is;
never build it from untrusted input.
*/
package attrdao
