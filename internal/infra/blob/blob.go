// Package blob stores document snapshots as opaque objects behind a
// single interface with filesystem, in-memory and S3 backends.
package blob

import (
	"context"
	"fmt"
	"os"
)

// Driver names a blob backend.
type Driver string

// Supported blob drivers.
const (
	DriverFS     Driver = "fs"
	DriverMemory Driver = "memory"
	DriverS3     Driver = "s3"
)

// Store is the minimal object interface the snapshot archive needs.
type Store interface {
	// Put writes the payload under key, overwriting any existing object.
	Put(ctx context.Context, key string, payload []byte) error
	// Get reads the object stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
	// List returns the keys under the given prefix, sorted ascending.
	List(ctx context.Context, prefix string) ([]string, error)
	// Delete removes the object under key. Deleting a missing key is an
	// error.
	Delete(ctx context.Context, key string) error
	// Driver reports which backend the store uses.
	Driver() Driver
}

// OpenFromEnv constructs a blob store from process environment:
// ARCHCORE_BLOB_DRIVER selects fs (default), memory, or s3. The fs root
// comes from ARCHCORE_BLOB_FS_ROOT, defaulting to ./blobdata.
func OpenFromEnv(ctx context.Context) (Store, error) {
	driver := os.Getenv("ARCHCORE_BLOB_DRIVER")
	if driver == "" {
		driver = string(DriverFS)
	}
	switch Driver(driver) {
	case DriverFS:
		root := os.Getenv("ARCHCORE_BLOB_FS_ROOT")
		if root == "" {
			root = "blobdata"
		}
		return NewFSStore(root)
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverS3:
		return OpenS3FromEnv(ctx)
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}
