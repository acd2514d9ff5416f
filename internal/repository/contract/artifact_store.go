package contract

import "context"

// ArtifactStore keeps the exported report files, addressable by name.
type ArtifactStore interface {
	Write(ctx context.Context, name string, data []byte) error
	Read(ctx context.Context, name string) ([]byte, error)
	List(ctx context.Context) ([]string, error)
}
