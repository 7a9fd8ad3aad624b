/*
Package errors provides semantic error types for attrdao.

Every failure a caller can see belongs to one of these kinds, each checkable with
the standard errors.Is() function or the provided helper functions:

	var (
	    ErrNotFound    = errors.New("entity not found")
	    ErrStoreAccess = errors.New("store access failed")
	    ErrMapping     = errors.New("entity mapping failed")
	    ErrParse       = errors.New("query result parse failed")
	    ErrStaleCursor = errors.New("stale continuation token")
	    ErrInvalidInput = errors.New("invalid input")
	)

Usage:

	user, err := dao.GetByID(ctx, "123")
	if err != nil {
	    if errors.IsNotFound(err) {
	        return nil, fmt.Errorf("user %s does not exist", "123")
	    }
	    return nil, err
	}

StoreAccessError, MappingError and ParseError unwrap to their cause, so the
underlying SDK or strconv error stays reachable through errors.As.
*/
package errors
