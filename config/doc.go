/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config loads runtime settings with koanf.
//
// Layers are applied in this order, later ones winning:
//
//  1. built-in defaults
//  2. AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY, AWS_SESSION_TOKEN and AWS_REGION
//  3. the TOML file given to Load
//  4. ATTRDAO_ variables, with "__" separating sections (ATTRDAO_STORE__ENDPOINT)
//  5. flags passed by the caller
//
// A .env file in the working directory is loaded into the environment first.
// Example file:
//
//	domain = "Players"
//	page_size = 100
//
//	[store]
//	region = "us-east-1"
//	endpoint = "http://localhost:8000"
//
//	[logging]
//	level = "debug"
//	format = "console"
package config
