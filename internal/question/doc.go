// Package question defines the interview question record and the rules
// every layer applies to it.
//
// A Question is identified by an immutable ID assigned by the record store.
// Titles are required and, at creation time only, unique under a folded
// comparison (see FoldTitle). Tags are an ordered list that can arrive
// either as a comma-joined string or as a list; both normalize to the same
// Tags value.
//
// # Errors
//
// Every failure surfaced by the store, cache and view layers is an *Error
// carrying one of three codes:
//
//   - ErrCodeValidation: empty or duplicate title, unknown difficulty
//   - ErrCodeNotFound: update or lookup of an absent ID
//   - ErrCodeTransport: backend failure (never produced by the memory store)
package question
