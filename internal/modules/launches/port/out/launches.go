package out

import (
	"context"

	"launchdash/internal/modules/launches/domain"
)

// TableReader fetches an undecoded dataset from a URL or file path.
type TableReader interface {
	Read(ctx context.Context, location string) (domain.RawTable, error)
}

type SnapshotWriter interface {
	Write(ctx context.Context, dbPath string, snapshot domain.Snapshot) error
}
