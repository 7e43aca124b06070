// Package system answers platform queries: logical processor count,
// directory creation and the per-user data directory.
package system
