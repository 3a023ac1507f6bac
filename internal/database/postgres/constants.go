package postgres

// Error Messages - Snapshot Operations
const (
	ErrMsgQuerySnapshot  = "failed to query snapshot"
	ErrMsgSaveSnapshot   = "failed to save snapshot"
	ErrMsgDeleteSnapshot = "failed to delete snapshot"
	ErrMsgListSnapshots  = "failed to list snapshots"
)
