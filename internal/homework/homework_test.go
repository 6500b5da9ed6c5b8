package homework

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erkineren/homework-monitor/internal/apperr"
	"github.com/erkineren/homework-monitor/internal/models"
)

func TestVerdict_Catalog(t *testing.T) {
	t.Parallel()

	for _, status := range []models.Status{models.StatusApproved, models.StatusReviewing, models.StatusRejected} {
		text, ok := Verdict(status)
		assert.True(t, ok, status)
		assert.NotEmpty(t, text, status)
	}

	_, ok := Verdict("done")
	assert.False(t, ok)
}

func TestFormat_Reviewing(t *testing.T) {
	t.Parallel()

	msg, err := Format(models.HomeworkRecord{Name: "hw1", Status: models.StatusReviewing})
	require.NoError(t, err)
	assert.Equal(t, `Status changed for submission "hw1". Work has been received for review.`, msg)
}

func TestFormat_UnknownStatus(t *testing.T) {
	t.Parallel()

	_, err := Format(models.HomeworkRecord{Name: "hw1", Status: "done"})
	require.Error(t, err)
	assert.Equal(t, apperr.UnknownStatus, apperr.KindOf(err))
}

func TestFormat_MissingName(t *testing.T) {
	t.Parallel()

	_, err := Format(models.HomeworkRecord{Status: models.StatusApproved})
	require.Error(t, err)
	assert.Equal(t, apperr.MissingField, apperr.KindOf(err))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		kind    apperr.Kind
		records int
		date    int64
	}{
		{name: "list with records", body: `{"homeworks":[{"homework_name":"hw2","status":"approved"},{"homework_name":"hw1","status":"rejected"}],"current_date":1700000000}`, records: 2, date: 1700000000},
		{name: "empty list is valid", body: `{"homeworks":[],"current_date":42}`, records: 0, date: 42},
		{name: "not an object", body: `[1,2,3]`, kind: apperr.MalformedAnswer},
		{name: "not json", body: `<html>`, kind: apperr.MalformedAnswer},
		{name: "null answer", body: `null`, kind: apperr.MalformedAnswer},
		{name: "homeworks absent", body: `{"current_date":42}`, kind: apperr.EmptyAnswer},
		{name: "homeworks not a list", body: `{"homeworks":{"a":1},"current_date":42}`, kind: apperr.MalformedAnswer},
		{name: "homeworks null", body: `{"homeworks":null,"current_date":42}`, kind: apperr.MalformedAnswer},
		{name: "record not an object", body: `{"homeworks":["hw1"],"current_date":42}`, kind: apperr.MalformedAnswer},
		{name: "current_date absent", body: `{"homeworks":[]}`, kind: apperr.MalformedAnswer},
		{name: "current_date not integer", body: `{"homeworks":[],"current_date":"soon"}`, kind: apperr.MalformedAnswer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			answer, err := Validate([]byte(tt.body))
			if tt.kind != apperr.Unknown {
				require.Error(t, err)
				assert.Equal(t, tt.kind, apperr.KindOf(err))
				return
			}

			require.NoError(t, err)
			assert.Len(t, answer.Homeworks, tt.records)
			assert.Equal(t, tt.date, answer.CurrentDate)
		})
	}
}

func TestValidate_KeepsOrderAndMissingName(t *testing.T) {
	t.Parallel()

	answer, err := Validate([]byte(`{"homeworks":[{"status":"approved"},{"homework_name":"hw1","status":"reviewing"}],"current_date":1}`))
	require.NoError(t, err)
	require.Len(t, answer.Homeworks, 2)
	assert.Equal(t, "", answer.Homeworks[0].Name)
	assert.Equal(t, models.StatusApproved, answer.Homeworks[0].Status)
	assert.Equal(t, "hw1", answer.Homeworks[1].Name)
}
