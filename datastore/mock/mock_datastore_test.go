/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/suparena/attrdao/datastore"
	"github.com/suparena/attrdao/datastore/mock"
	"github.com/suparena/attrdao/errors"
	"github.com/suparena/attrdao/storagemodels"
)

func seed(coll *mock.Collection, n int) {
	for i := 0; i < n; i++ {
		coll.Put(storagemodels.Item{
			Name:       fmt.Sprintf("item-%03d", i),
			Attributes: storagemodels.Attributes{{Name: "n", Value: fmt.Sprint(i)}},
		})
	}
}

func TestMockCollection(t *testing.T) {
	ctx := context.Background()

	t.Run("GetItem", func(t *testing.T) {
		coll := mock.NewCollection("Users")
		coll.Put(storagemodels.Item{Name: "u1", Attributes: storagemodels.Attributes{{Name: "name", Value: "Ada"}}})

		item, err := coll.GetItem(ctx, "u1")
		if err != nil {
			t.Fatalf("GetItem failed: %v", err)
		}
		if v, _ := item.Attributes.Get("name"); v != "Ada" {
			t.Fatalf("Retrieved item mismatch: %+v", item)
		}

		_, err = coll.GetItem(ctx, "u2")
		if !errors.IsNotFound(err) {
			t.Fatalf("Expected not found error, got: %v", err)
		}
	})

	t.Run("Paging", func(t *testing.T) {
		coll := mock.NewCollection("Users")
		seed(coll, 5)

		first, err := coll.ListItemsWithAttributes(ctx, &storagemodels.ListParams{MaxCount: 3})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(first.Items) != 3 || first.NextToken == "" {
			t.Fatalf("Expected 3 items and a token, got %d items, token %q", len(first.Items), first.NextToken)
		}

		second, err := coll.ListItemsWithAttributes(ctx, &storagemodels.ListParams{MaxCount: 3, NextToken: first.NextToken})
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(second.Items) != 2 || second.NextToken != "" {
			t.Fatalf("Expected 2 items and no token, got %d items, token %q", len(second.Items), second.NextToken)
		}
		if second.Items[0].Name != "item-003" {
			t.Fatalf("Expected item-003 first, got %s", second.Items[0].Name)
		}
		if coll.ListCalls() != 2 {
			t.Fatalf("Expected 2 list calls, got %d", coll.ListCalls())
		}
	})

	t.Run("MalformedToken", func(t *testing.T) {
		coll := mock.NewCollection("Users")
		_, err := coll.ListItemsWithAttributes(ctx, &storagemodels.ListParams{NextToken: "bogus"})
		if !errors.IsStoreAccess(err) {
			t.Fatalf("Expected store access error, got: %v", err)
		}
	})

	t.Run("Count", func(t *testing.T) {
		coll := mock.NewCollection("Users")
		seed(coll, 4)

		page, err := coll.SelectItems(ctx, &storagemodels.SelectParams{Expression: "select count(*) from Users"})
		if err != nil {
			t.Fatalf("Select failed: %v", err)
		}
		if v, _ := page.Items[0].Attributes.Get("Count"); v != "4" {
			t.Fatalf("Expected count 4, got %q", v)
		}

		coll.WithCountFunc(func(predicate string) (string, error) {
			if predicate != "age > '30'" {
				t.Errorf("unexpected predicate %q", predicate)
			}
			return "2", nil
		})
		page, err = coll.SelectItems(ctx, &storagemodels.SelectParams{Expression: "select count(*) from Users where age > '30'"})
		if err != nil {
			t.Fatalf("Select failed: %v", err)
		}
		if v, _ := page.Items[0].Attributes.Get("Count"); v != "2" {
			t.Fatalf("Expected count 2, got %q", v)
		}
	})

	t.Run("ErrorSimulation", func(t *testing.T) {
		listErr := errors.NewStoreAccessError("ListItemsWithAttributes", "Users", fmt.Errorf("throttled"))
		coll := mock.NewCollection("Users").WithListError(listErr)

		_, err := coll.ListItemsWithAttributes(ctx, nil)
		if err != listErr {
			t.Fatalf("Expected list error, got: %v", err)
		}
	})
}

func TestMockClient(t *testing.T) {
	ctx := context.Background()
	client := mock.New()
	client.AddCollection("Users")

	c, err := client.Connector()(ctx, datastore.Credentials{})
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	if _, err := c.Collection(ctx, "Users"); err != nil {
		t.Fatalf("Collection failed: %v", err)
	}
	if _, err := c.Collection(ctx, "Orders"); !errors.IsStoreAccess(err) {
		t.Fatalf("Expected store access error for unknown domain, got: %v", err)
	}
	if client.Connects() != 1 || client.Resolves() != 2 {
		t.Fatalf("unexpected counters: connects=%d resolves=%d", client.Connects(), client.Resolves())
	}
}
