/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"sort"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/attrdao/storagemodels"
)

// toItem flattens a DynamoDB item into a named item with string attributes.
// The hash key becomes the item name and is not repeated among the attributes.
func toItem(raw map[string]types.AttributeValue, hashKey string) storagemodels.Item {
	item := storagemodels.Item{}
	if key, ok := raw[hashKey]; ok {
		if values := scalarValues(key); len(values) > 0 {
			item.Name = values[0]
		}
	}

	// Map order is random; sort names so pages are reproducible.
	names := make([]string, 0, len(raw))
	for name := range raw {
		if name == hashKey {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, v := range scalarValues(raw[name]) {
			item.Attributes = append(item.Attributes, storagemodels.Attribute{Name: name, Value: v})
		}
	}
	return item
}

// scalarValues renders an attribute value as zero or more strings.
// Binary, map and null values have no string form and yield nothing.
func scalarValues(av types.AttributeValue) []string {
	switch tv := av.(type) {
	case *types.AttributeValueMemberS:
		return []string{tv.Value}
	case *types.AttributeValueMemberN:
		return []string{tv.Value}
	case *types.AttributeValueMemberBOOL:
		return []string{strconv.FormatBool(tv.Value)}
	case *types.AttributeValueMemberSS:
		return append([]string(nil), tv.Value...)
	case *types.AttributeValueMemberNS:
		return append([]string(nil), tv.Value...)
	case *types.AttributeValueMemberL:
		var values []string
		for _, elem := range tv.Value {
			switch elem.(type) {
			case *types.AttributeValueMemberL, *types.AttributeValueMemberM:
				continue
			}
			values = append(values, scalarValues(elem)...)
		}
		return values
	default:
		return nil
	}
}

// keyFor builds the primary key of the item called name.
func keyFor(hashKey keyAttribute, name string) (map[string]types.AttributeValue, error) {
	if hashKey.numeric {
		return map[string]types.AttributeValue{
			hashKey.name: &types.AttributeValueMemberN{Value: name},
		}, nil
	}
	return attributevalue.MarshalMap(map[string]string{hashKey.name: name})
}

// sortItems orders items by the first value of attr. A missing attribute
// compares as the empty string; ties keep store order.
func sortItems(items []storagemodels.Item, attr string, descending bool) {
	sort.SliceStable(items, func(i, j int) bool {
		a, _ := items[i].Attributes.Get(attr)
		b, _ := items[j].Attributes.Get(attr)
		if descending {
			return a > b
		}
		return a < b
	})
}
