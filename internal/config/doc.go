// Package config defines the format-agnostic manifest model for the
// application, along with the Loader interface for reading manifests from
// various sources.
//
// The `config.Manifest` is the single source of truth for the `manifest`
// evaluator. Concrete implementations of the Loader interface, such as for
// HCL, are provided in separate packages.
package config
