// Package config loads, validates, and normalizes the periphd TOML
// configuration, and defines the Partial type used for live updates.
//
// Full configs are validated atomically at load; Partial updates are
// validated per field so an invalid value is rejected without blocking the
// other fields in the same update.
package config
