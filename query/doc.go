/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package query runs count and select statements against a collection.
//
// Counts are issued as "select count(*) from <domain> [where <predicate>]" and
// the single result value is parsed as a base-10 integer.
package query
