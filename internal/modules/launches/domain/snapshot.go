package domain

import (
	"fmt"
	"strings"
	"time"
)

const SnapshotSchemaVersion = 1

// Snapshot is an exported copy of a loaded table.
type Snapshot struct {
	ID       string
	Location string
	TakenAt  time.Time
	Columns  ColumnMap
	Launches []Launch
}

func (s Snapshot) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("snapshot id is required")
	}
	if s.TakenAt.IsZero() {
		return fmt.Errorf("snapshot time is required")
	}
	return nil
}
