// Package manifest implements manifest evaluation: the single synchronous
// pass that turns a manifest file's directives into registrations on a
// ledger.
//
// Evaluation is strictly linear. For each manifest, include directives are
// processed first in document order, then freeze directives in document
// order. Includes register their target path unconditionally and then
// recurse into the nested manifest when one exists; freezes scan exactly
// one directory, non-recursively, and register every match. Any failure
// aborts the evaluation; there is no local recovery.
package manifest
