package engine

// MigrateRequest represents a request to execute (or simulate) the
// actions declared in a review workbook.
type MigrateRequest struct {
	// WorkbookPath is the xlsx workbook holding the action table
	WorkbookPath string

	// SheetName selects a worksheet; empty means the active sheet
	SheetName string

	// DryRun logs intended mutations without touching the filesystem
	DryRun bool
}

// MigrateResult represents the outcome of a migration run.
type MigrateResult struct {
	// Declared is the number of actions read from the workbook
	Declared int

	// Performed is the number of resolved actions that completed
	Performed int

	// Warnings lists paths no declared action governs
	Warnings []string

	// DryRun echoes the request mode
	DryRun bool
}

// SnapshotRequest represents a request to record a directory tree into
// a review workbook.
type SnapshotRequest struct {
	// Directory is the tree to record
	Directory string

	// WorkbookPath is the xlsx file to create
	WorkbookPath string

	// SheetName names the worksheet; empty uses the default
	SheetName string

	// Excludes are glob patterns for paths to leave out (walker only)
	Excludes []string

	// NoTree forces the pure-Go walker even when tree(1) is available
	NoTree bool
}

// SnapshotResult represents the outcome of a snapshot run.
type SnapshotResult struct {
	// Paths is the number of entries recorded
	Paths int

	// WorkbookPath is the workbook that was written
	WorkbookPath string

	// UsedTree reports whether the external tree tool produced the
	// snapshot
	UsedTree bool
}
