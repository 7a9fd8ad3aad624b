/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package paging turns the store's bounded listing calls into pages, full
// enumerations and streams of mapped entities.
//
// Batch sizes are clamped to BatchSizeCeiling. Continuation tokens are opaque:
// they are forwarded exactly as the store issued them. An enumeration that
// receives an empty batch with a token, or the token it just sent, stops with
// a StaleCursorError instead of looping.
//
// Example:
//
//	p := paging.New(collection, mapper.NewStructMapper[Player]())
//	first, err := p.FetchPage(ctx, nil, "")
//	if err != nil {
//		return err
//	}
//	next, err := p.FetchPage(ctx, nil, first.NextToken)
//
//	for res := range p.Stream(ctx, paging.WithPageSize(50)) {
//		if res.Error != nil {
//			log.Printf("item %d: %v", res.Meta.Index, res.Error)
//			continue
//		}
//		process(res.Item)
//	}
package paging
