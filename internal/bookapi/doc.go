// Package bookapi provides an HTTP client for the remote book collection.
//
// # Overview
//
// The collection is a crudcrud-style REST resource: a base URL that carries
// the account token, followed by a collection name. The package hides the
// store's wire format from the rest of folio. Records arrive with a native
// "_id" field and leave as book.Book values with an ID.
//
// # Architecture
//
//   - client.go: Client, options, and request handling
//   - types.go: the wire record and timestamp helpers
//   - errors.go: Error, the per-operation sentinels, and StatusOf
//
// # Client Usage
//
//	client, err := bookapi.NewClient("https://crudcrud.com/api/<token>")
//	if err != nil {
//		return err
//	}
//	books, err := client.List(ctx)
//
// # Endpoints
//
//   - GET    {base}/books        list, sorted newest createdAt first
//   - POST   {base}/books        create, body carries createdAt
//   - PUT    {base}/books/{id}   full replacement with createdAt and updatedAt
//   - DELETE {base}/books/{id}   remove
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Set Accept: application/json and User-Agent: folio/0.1
//   - Carry a fresh X-Request-Id so client and server logs can be joined
//   - Wait on the optional rate limiter before dialing
//
// # Error Handling
//
// Every failure is an *Error tagged with the operation. Callers test the
// operation with errors.Is against ErrFetch, ErrCreate, ErrUpdate and
// ErrDelete, and read the HTTP status with StatusOf. Transport and decode
// failures report status 0.
//
// Example messages:
//   - "failed to fetch books: status 500 (Internal Server Error)"
//   - "failed to delete book: execute request: dial tcp: connection refused"
//
// # Timestamps
//
// createdAt and updatedAt travel as ISO-8601 UTC strings with millisecond
// precision. Unparseable or missing values decode to the zero time.
//
// # Thread Safety
//
// Client is safe for concurrent use.
package bookapi
