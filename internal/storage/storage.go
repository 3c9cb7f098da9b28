// Package storage persists normalized report photos. Two backends are
// provided: local disk (default) and MinIO object storage.
package storage

import (
	"context"
	"crypto/rand"
	"io"
	"math/big"
)

type Storage interface {
	// Save writes the object under name and returns the URL to store
	// on the report row.
	Save(ctx context.Context, name string, r io.Reader, size int64) (string, error)
	// Delete removes a previously saved object. Deleting a missing
	// object is not an error.
	Delete(ctx context.Context, name string) error
}

const filenameCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// RandomFilename returns a random 24-character basename with a .png
// extension, matching the normalized photo format.
func RandomFilename() string {
	b := make([]byte, 24)
	max := big.NewInt(int64(len(filenameCharset)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the OS entropy source is
			// broken; fall back to a fixed character rather than
			// aborting an upload.
			b[i] = filenameCharset[0]
			continue
		}
		b[i] = filenameCharset[n.Int64()]
	}
	return string(b) + ".png"
}
