// Package types defines the small, copyable identifiers and the typed error
// taxonomy shared by every nodetree package.
//
// Design goals:
//   - Small, copyable handles (NodeHandle) instead of pointer graphs.
//   - Generational ids: a handle to a removed node never aliases its successor.
//   - Typed errors with stable categories (argument/index/key/node/stale/...).
//
// This package has no dependencies beyond the standard library.
package types
