// Package blob provides photo storage behind a small Store interface.
package blob

import "context"

// Store persists binary blobs (photos) addressed by key and returns a
// public URL for each stored blob.
type Store interface {
	// Upload writes the blob under the given key, overwriting any previous
	// content, and returns its public URL.
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// Delete removes the blob. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// UserPhotoKey returns the storage key for a user's profile photo.
func UserPhotoKey(userID string) string {
	return "user_photos/" + userID + ".jpg"
}

// ActivityPhotoKey returns the storage key for an activity photo.
func ActivityPhotoKey(tripID, activityID string) string {
	return "trip_activities/" + tripID + "/" + activityID + ".jpg"
}
