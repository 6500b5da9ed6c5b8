package models

// NoNewStatus is the candidate message for a cycle without new submissions.
// It is logged, never sent.
const NoNewStatus = "no new homework status"

// NotificationState is the content of the last notification confirmed as
// delivered. Two states are compared with == to decide whether to send.
type NotificationState struct {
	Name    string
	Message string
}

// IsZero reports whether nothing has been delivered yet.
func (s NotificationState) IsZero() bool {
	return s == NotificationState{}
}

// Snapshot is the loop state that survives a restart when a persistent
// store is configured.
type Snapshot struct {
	State      NotificationState
	Checkpoint int64
}
