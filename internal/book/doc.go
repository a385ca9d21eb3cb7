// Package book defines the catalog record, its editable draft, and the form
// rules a draft must satisfy before it is sent to the remote store.
//
// Validation is a pure function of the draft and the current time:
//
//	errs := book.Validate(draft, time.Now())
//	if len(errs) > 0 {
//		// errs["publishedYear"] == "Year cannot be in the future"
//	}
//
// Field names in FieldErrors use the JSON names of the wire format so the UI
// can attach messages to form inputs without a separate mapping.
package book
