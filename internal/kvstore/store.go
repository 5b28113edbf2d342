// Package kvstore provides a tenant-scoped JSON blob store shared by the
// gamified app plugins. Each blob is addressed by (app_id, key) and holds an
// arbitrary JSON document.
package kvstore

// Store is the persistence contract the app plugins depend on. Implementations
// must treat missing and unreadable blobs the same way: found=false, nil error.
type Store interface {
	// Get unmarshals the blob at (appID, key) into dest. Returns found=false
	// when no blob exists or the stored payload cannot be decoded.
	Get(appID, key string, dest interface{}) (bool, error)

	// Set marshals value and stores it at (appID, key), replacing any
	// previous blob.
	Set(appID, key string, value interface{}) error

	// Delete removes the blob at (appID, key). Deleting a missing blob is
	// not an error.
	Delete(appID, key string) error
}
