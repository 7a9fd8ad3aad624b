/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// tokenMember is the serialized form of one key attribute.
type tokenMember struct {
	S *string `json:"s,omitempty"`
	N *string `json:"n,omitempty"`
	B []byte  `json:"b,omitempty"`
}

// encodeToken turns a LastEvaluatedKey into an opaque continuation token.
// An empty key means the scan is complete and yields an empty token.
func encodeToken(key map[string]types.AttributeValue) (string, error) {
	if len(key) == 0 {
		return "", nil
	}

	members := make(map[string]tokenMember, len(key))
	for name, av := range key {
		switch tv := av.(type) {
		case *types.AttributeValueMemberS:
			v := tv.Value
			members[name] = tokenMember{S: &v}
		case *types.AttributeValueMemberN:
			v := tv.Value
			members[name] = tokenMember{N: &v}
		case *types.AttributeValueMemberB:
			members[name] = tokenMember{B: tv.Value}
		default:
			return "", fmt.Errorf("unsupported key attribute type %T for %q", av, name)
		}
	}

	b, err := json.Marshal(members)
	if err != nil {
		return "", fmt.Errorf("failed to marshal continuation token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// decodeToken restores the ExclusiveStartKey carried by token.
func decodeToken(token string) (map[string]types.AttributeValue, error) {
	if token == "" {
		return nil, nil
	}

	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("malformed continuation token: %w", err)
	}

	var members map[string]tokenMember
	if err := json.Unmarshal(b, &members); err != nil {
		return nil, fmt.Errorf("malformed continuation token: %w", err)
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("malformed continuation token: no key attributes")
	}

	key := make(map[string]types.AttributeValue, len(members))
	for name, m := range members {
		switch {
		case m.S != nil:
			key[name] = &types.AttributeValueMemberS{Value: *m.S}
		case m.N != nil:
			key[name] = &types.AttributeValueMemberN{Value: *m.N}
		case m.B != nil:
			key[name] = &types.AttributeValueMemberB{Value: m.B}
		default:
			return nil, fmt.Errorf("malformed continuation token: empty value for %q", name)
		}
	}
	return key, nil
}
