/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToItem(t *testing.T) {
	raw := map[string]types.AttributeValue{
		"id":     &types.AttributeValueMemberS{Value: "u1"},
		"age":    &types.AttributeValueMemberN{Value: "42"},
		"active": &types.AttributeValueMemberBOOL{Value: true},
		"tags":   &types.AttributeValueMemberSS{Value: []string{"a", "b"}},
		"scores": &types.AttributeValueMemberL{Value: []types.AttributeValue{
			&types.AttributeValueMemberN{Value: "1"},
			&types.AttributeValueMemberM{},
			&types.AttributeValueMemberS{Value: "2"},
		}},
		"blob": &types.AttributeValueMemberB{Value: []byte{1}},
		"gone": &types.AttributeValueMemberNULL{Value: true},
	}

	item := toItem(raw, "id")

	assert.Equal(t, "u1", item.Name)
	_, hasID := item.Attributes.Get("id")
	assert.False(t, hasID, "hash key must not be repeated among attributes")

	m := item.Attributes.ToMap()
	assert.Equal(t, []string{"42"}, m["age"])
	assert.Equal(t, []string{"true"}, m["active"])
	assert.Equal(t, []string{"a", "b"}, m["tags"])
	assert.Equal(t, []string{"1", "2"}, m["scores"])
	assert.NotContains(t, m, "blob")
	assert.NotContains(t, m, "gone")

	// attribute names come out sorted
	assert.Equal(t, []string{"active", "age", "scores", "tags"}, item.Attributes.Names())
}

func TestKeyFor(t *testing.T) {
	t.Run("string key", func(t *testing.T) {
		key, err := keyFor(keyAttribute{name: "id"}, "u1")
		require.NoError(t, err)
		assert.Equal(t, &types.AttributeValueMemberS{Value: "u1"}, key["id"])
	})

	t.Run("numeric key", func(t *testing.T) {
		key, err := keyFor(keyAttribute{name: "id", numeric: true}, "17")
		require.NoError(t, err)
		assert.Equal(t, &types.AttributeValueMemberN{Value: "17"}, key["id"])
	})
}

func TestTokenRoundTrip(t *testing.T) {
	key := map[string]types.AttributeValue{
		"id":    &types.AttributeValueMemberS{Value: "u#1"},
		"score": &types.AttributeValueMemberN{Value: "12.5"},
		"bin":   &types.AttributeValueMemberB{Value: []byte("xyz")},
	}

	token, err := encodeToken(key)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	decoded, err := decodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, key, decoded)
}

func TestTokenEmpty(t *testing.T) {
	token, err := encodeToken(nil)
	require.NoError(t, err)
	assert.Empty(t, token)

	key, err := decodeToken("")
	require.NoError(t, err)
	assert.Nil(t, key)
}

func TestTokenMalformed(t *testing.T) {
	for _, token := range []string{"!!", "bm90LWpzb24", "e30"} {
		_, err := decodeToken(token)
		assert.Error(t, err, "token %q", token)
	}
}

func TestTokenUnsupportedKeyType(t *testing.T) {
	_, err := encodeToken(map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberBOOL{Value: true},
	})
	assert.Error(t, err)
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		name      string
		expr      string
		ok        bool
		table     string
		predicate string
	}{
		{"count all", "select count(*) from Users", true, "Users", ""},
		{"upper case", "SELECT COUNT(*) FROM Users", true, "Users", ""},
		{"back quoted", "select count(*) from `my-users`", true, "my-users", ""},
		{"with where", "select count(*) from Users where attribute_exists(email)", true, "Users", "attribute_exists(email)"},
		{"multi-line where", "select count(*) from Users\nwhere a = b\n  and c = d", true, "Users", "a = b\n  and c = d"},
		{"trailing semicolon", "select count(*) from Users;", true, "Users", ""},
		{"not a count", "select * from Users", false, "", ""},
		{"count of attribute", "select count(name) from Users", false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, ok := parseCount(tt.expr)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.table, stmt.table)
			assert.Equal(t, tt.predicate, stmt.predicate)
		})
	}
}
