/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mapper converts raw store items into typed entities.
//
// Three styles are supported:
//
//   - StructMapper decodes attributes into tagged struct fields
//   - ForMappable adapts entities implementing Mappable
//   - Func wraps an arbitrary function
//
// Record is a ready-made schemaless entity for callers without a model.
package mapper
