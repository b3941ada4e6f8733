// Package store persists schedule boards. Files ending in .db or .sqlite are
// SQLite databases managed through gorm; anything else is a YAML document.
package store
