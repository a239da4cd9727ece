// Package errs provides standardized error types for the application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the codebase.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g. ErrValueIsRequired) for errors.Is classification
//   - A struct type carrying the error details
//   - Constructor functions with and without an underlying cause
//   - Error() for formatting and Unwrap() for error-chain support
//
// Expected business outcomes (a lost claim race, an address outside the delivery
// zone) are modelled as sentinel errors in their own packages; the types here cover
// the generic validation and lookup failures shared by every layer.
package errs
