// Package files implements handle-based file access over a pluggable
// read backend.
//
// Two backends implement the same contract:
//
//	RawBackend    - direct filesystem access
//	AssetBackend  - read-only streaming out of a packaged Archive
//
// The active backend is chosen once, when the Access is constructed; callers
// never branch on it. Writes always target the raw filesystem because
// archives are immutable.
//
// Recoverable failures (missing file, missing asset) are reported as an
// invalid handle. Fatal failures (out of handles, write-open failure,
// operations on a closed handle) go to the FatalHandler and do not return
// in production.
package files
