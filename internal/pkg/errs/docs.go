// Package errs provides the typed errors shared by the domain, application and
// adapter layers of the logistics service.
//
// Every error type follows the same pattern:
//   - a sentinel error variable (e.g. ErrValueIsRequired) that callers match with errors.Is
//   - a struct carrying the details (parameter name, offending value, cause)
//   - constructors with and without a cause
//   - Unwrap returning the sentinel so classification survives wrapping and errors.Join
//
// The sentinels map onto the failure kinds the order core raises:
//   - ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange: invalid construction input
//     (grouped by IsInvalidArgument)
//   - ErrStateTransitionIsInvalid: a lifecycle transition was attempted from a state that forbids it
//   - ErrObjectNotFound: a lookup by identifier found nothing
package errs
