// Package core defines the shared, pure-data language of leapmigrate.
//
// This package contains:
//   - Dialect configuration (DialectConfig, IdentifierConfig, ValueConfig)
//   - Compatibility mode (Loose, Strict)
//
// The Golden Rule: pkg/core imports ONLY the standard library.
// All other packages depend on core, not the reverse.
package core
