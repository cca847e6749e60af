// Package io reads and writes chart data files.
//
// # Overview
//
// A chart renders a flat list of items. This package loads that list from
// JSON, YAML or TOML files so the CLI can render any of them:
//
//	["api", "db", "cache"]
//
//	- api
//	- db
//	- name: cache
//	  port: 6379
//
//	items = ["api", "db", { name = "cache", port = 6379 }]
//
// JSON and YAML files hold a top-level array. TOML files cannot, so the list
// lives under the "items" key.
//
// # Normalization
//
// Decoded items are normalized to the JSON data model: numbers become
// float64 and objects become map[string]any. The same list therefore has the
// same identities no matter which format it was read from.
//
// # Formats
//
// [FormatFromPath] picks a format by extension (.json, .yaml, .yml, .toml).
// [ReadData] and [WriteData] take the format explicitly.
package io
