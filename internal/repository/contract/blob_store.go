// FILE: internal/repository/contract/blob_store.go
// Repository interface for the opaque key-value blob store
package contract

import "context"

// BlobStore persists whole serialized values under a key. Get reports a
// missing key with found=false and a nil error.
type BlobStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
