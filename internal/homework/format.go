package homework

import (
	"fmt"

	"github.com/erkineren/homework-monitor/internal/apperr"
	"github.com/erkineren/homework-monitor/internal/models"
)

// Format renders the notification text for one homework record.
func Format(record models.HomeworkRecord) (string, error) {
	if record.Name == "" {
		return "", apperr.New(apperr.MissingField, "format", "homework record has no homework_name")
	}

	verdict, ok := Verdict(record.Status)
	if !ok {
		return "", apperr.New(apperr.UnknownStatus, "format", "status %q of %q is not in the catalog", record.Status, record.Name)
	}

	return fmt.Sprintf("Status changed for submission \"%s\". %s", record.Name, verdict), nil
}
