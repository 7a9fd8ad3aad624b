/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"regexp"
	"strings"
)

// countPattern recognizes "select count(*) from <table> [where <predicate>]".
// The predicate is kept verbatim and becomes the WHERE clause of a PartiQL select.
var countPattern = regexp.MustCompile("(?is)^\\s*select\\s+count\\(\\s*\\*\\s*\\)\\s+from\\s+(`[^`]+`|\"[^\"]+\"|[^\\s;]+)(?:\\s+where\\s+(.+?))?\\s*;?\\s*$")

// countStatement is a recognized count query.
type countStatement struct {
	table     string
	predicate string
}

// parseCount reports whether expr is a count query and, if so, its parts.
func parseCount(expr string) (countStatement, bool) {
	m := countPattern.FindStringSubmatch(expr)
	if m == nil {
		return countStatement{}, false
	}
	return countStatement{
		table:     strings.Trim(m[1], "`\""),
		predicate: strings.TrimSpace(m[2]),
	}, true
}

// quoteIdentifier renders name as a PartiQL quoted identifier.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
