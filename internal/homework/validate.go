package homework

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/erkineren/homework-monitor/internal/apperr"
	"github.com/erkineren/homework-monitor/internal/models"
)

const (
	homeworksField   = "homeworks"
	currentDateField = "current_date"
)

// Validate checks the shape of a raw API answer and extracts the homework
// list and the server timestamp. An absent homeworks field yields EmptyAnswer;
// a present but empty list is a valid answer.
func Validate(body []byte) (*models.Answer, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, apperr.New(apperr.MalformedAnswer, "validate", "answer is not a JSON object")
	}

	rawHomeworks, ok := fields[homeworksField]
	if !ok {
		return nil, apperr.New(apperr.EmptyAnswer, "validate", "answer has no %q field", homeworksField)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(rawHomeworks, &items); err != nil || isNull(rawHomeworks) {
		return nil, apperr.New(apperr.MalformedAnswer, "validate", "%q is not a list", homeworksField)
	}

	homeworks := make([]models.HomeworkRecord, 0, len(items))
	for i, item := range items {
		var record models.HomeworkRecord
		if err := decodeObject(item, &record); err != nil {
			return nil, apperr.New(apperr.MalformedAnswer, "validate", "%s[%d]: %v", homeworksField, i, err)
		}
		homeworks = append(homeworks, record)
	}

	rawDate, ok := fields[currentDateField]
	if !ok {
		return nil, apperr.New(apperr.MalformedAnswer, "validate", "answer has no %q field", currentDateField)
	}
	var currentDate int64
	if err := json.Unmarshal(rawDate, &currentDate); err != nil || isNull(rawDate) {
		return nil, apperr.New(apperr.MalformedAnswer, "validate", "%q is not an integer", currentDateField)
	}

	return &models.Answer{
		Homeworks:   homeworks,
		CurrentDate: currentDate,
	}, nil
}

// decodeObject accepts only JSON objects. Fields with unexpected types are
// reported; absent fields are left for Format to reject.
func decodeObject(raw json.RawMessage, v any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("record is not an object")
	}
	return json.Unmarshal(trimmed, v)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
