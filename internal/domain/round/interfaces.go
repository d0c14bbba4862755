package round

// CandidateSource lists the filenames eligible for a project's first round.
// Implementations return an empty sequence for a missing or unreadable
// directory and never fail.
type CandidateSource interface {
	List(dir string) []string
}

// SnapshotWriter persists exported round snapshots.
type SnapshotWriter interface {
	Write(path string, data []byte) error
}
