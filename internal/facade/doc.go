// Package facade is the boundary UI shells talk to. Every operation wraps an
// application service call in the uniform Result envelope: Success true with
// Data on success, Success false with a user-facing Error message otherwise.
// Panics inside an operation never propagate; they become a generic transient
// failure envelope. An optional simulated latency runs before each call and
// is never cancelled early, so a call that started always completes.
package facade
