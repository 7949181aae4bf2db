package dto

import "time"

type LoadInput struct {
	Location string
}

type SnapshotInput struct {
	DBPath string
}

type ColumnsOutput struct {
	Site    string
	Class   string
	Payload string
	Booster string
}

type RecordOutput struct {
	Site      string
	Class     int
	PayloadKg float64
	Booster   string
}

type DatasetOutput struct {
	Location     string
	LoadedAt     time.Time
	Columns      ColumnsOutput
	HasBooster   bool
	Sites        []string
	PayloadKnown bool
	PayloadMin   float64
	PayloadMax   float64
	Records      []RecordOutput
}

type SiteSummaryOutput struct {
	Site        string
	Launches    int
	Successes   int
	Failures    int
	SuccessRate float64
	PayloadMin  float64
	PayloadMax  float64
}

type SnapshotOutput struct {
	ID      string
	Path    string
	Rows    int
	TakenAt time.Time
}

type ReportOutput struct {
	Location string
	LoadedAt time.Time
	Rows     int
	Markdown string
}
