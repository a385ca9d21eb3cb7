// Package devstore is an in-memory stand-in for the remote book collection.
//
// It serves the same resource layout as crudcrud.com:
//
//	GET    /api/{namespace}/{collection}        list documents
//	POST   /api/{namespace}/{collection}        insert, returns the stored document
//	GET    /api/{namespace}/{collection}/{id}   fetch one document
//	PUT    /api/{namespace}/{collection}/{id}   replace the body, keeps "_id"
//	DELETE /api/{namespace}/{collection}/{id}   remove
//
// Documents are schemaless JSON objects; the store only owns the "_id" key,
// which it fills with a nanoid. Nothing is persisted across restarts.
//
// The folio-devstore binary runs this handler for local development, and the
// client and catalog tests mount it behind httptest.
package devstore
