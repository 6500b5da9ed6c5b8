package models

// Status is the review state code reported by the homework API.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

type HomeworkRecord struct {
	Name   string `json:"homework_name"`
	Status Status `json:"status"`
}

// Answer is a validated response of the homework API. Homeworks is ordered
// newest first.
type Answer struct {
	Homeworks   []HomeworkRecord
	CurrentDate int64
}
