// Package errors provides the classified error primitives used across postbuilder.
//
// Every failure the build can surface falls into one of a small set of categories
// (configuration, front matter decoding, filesystem, rendering, ...). A category
// decides the process exit code and how the failure is logged by the CLI.
//
// Key features:
//   - ErrorCategory: broad classification (config, decode, filesystem, render, ...)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - ClassifiedError: structured error with category, severity and context
//   - ErrorBuilder: fluent API for creating classified errors
//   - CLIErrorAdapter: exit code mapping and terminal presentation
//
// Example usage:
//
//	err := errors.DecodeError("front matter is missing a required field").
//		WithContext("path", path).
//		WithContext("field", "title").
//		WithCause(parseErr).
//		Build()
package errors
