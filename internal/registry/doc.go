// Package registry provides the registration ledger a manifest evaluation
// writes into.
//
// The Ledger records, in order, every include and every frozen module the
// evaluator registers. It is the single observable output of an
// evaluation: the lock file exporter reads it, tests assert against it,
// and validation runs over it before anything is written out.
package registry
