package homework

import "github.com/erkineren/homework-monitor/internal/models"

// Verdict returns the human readable text for a status code. ok is false
// for codes outside the catalog.
func Verdict(status models.Status) (text string, ok bool) {
	switch status {
	case models.StatusApproved:
		return "Work has been reviewed: the reviewer liked everything. Hooray!", true
	case models.StatusReviewing:
		return "Work has been received for review.", true
	case models.StatusRejected:
		return "Work has been reviewed: the reviewer has comments.", true
	default:
		return "", false
	}
}
