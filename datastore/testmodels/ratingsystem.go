/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package testmodels holds generated-style entities used by the mapper tests.
package testmodels

import "github.com/go-openapi/strfmt"

// RatingSystem is a swagger-generated model stored one item per rating system.
// Its fields are matched by their json tags.
type RatingSystem struct {

	// Timestamp when the rating system was created.
	// Required: true
	// Format: date-time
	CreatedAt *strfmt.DateTime `json:"CreatedAt"`

	// A description of the rating system.
	// Required: true
	Description *string `json:"Description"`

	// Unique identifier for the rating system.
	// Required: true
	ID *string `json:"Id"`

	// Name of the rating system.
	// Required: true
	Name *string `json:"Name"`

	// site Url
	SiteURL string `json:"SiteUrl,omitempty"`

	// Timestamp when the rating system was last updated.
	// Required: true
	// Format: date-time
	UpdatedAt *strfmt.DateTime `json:"UpdatedAt"`
}
