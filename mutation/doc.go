// Package mutation defines the closed set of typed graph-mutation
// operations, validates untrusted decoded payloads into them, and applies
// validated batches to a diagram spec.
//
// Validation is all-or-nothing: a single invalid operation rejects the whole
// batch with an ordered list of path-addressed issues. Application is
// strictly in array order with no implicit rollback; a failure at operation
// k leaves operations 0..k-1 applied and reports the failing index, so a
// caller that needs transactional behavior snapshots the spec beforehand.
package mutation
