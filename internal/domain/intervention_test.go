package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validIntervention() Intervention {
	start := time.Date(2025, 2, 13, 8, 0, 0, 0, time.UTC)
	return Intervention{
		Title:      "Mise à jour du noyau",
		StartAt:    start,
		EndAt:      start.Add(15 * time.Minute),
		Severity:   SeverityFullOutage,
		ServiceIDs: []string{"framasphere"},
	}
}

func TestInterventionValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		iv := validIntervention()
		assert.NoError(t, iv.Validate())
	})

	t.Run("empty title", func(t *testing.T) {
		iv := validIntervention()
		iv.Title = ""
		var verr *ValidationError
		require.ErrorAs(t, iv.Validate(), &verr)
		assert.Equal(t, "title", verr.Field)
	})

	t.Run("zero duration", func(t *testing.T) {
		iv := validIntervention()
		iv.EndAt = iv.StartAt
		var verr *ValidationError
		require.ErrorAs(t, iv.Validate(), &verr)
		assert.Equal(t, "end_at", verr.Field)
	})

	t.Run("negative duration", func(t *testing.T) {
		iv := validIntervention()
		iv.EndAt = iv.StartAt.Add(-time.Minute)
		var verr *ValidationError
		require.ErrorAs(t, iv.Validate(), &verr)
		assert.Equal(t, "end_at", verr.Field)
	})

	t.Run("unknown severity", func(t *testing.T) {
		iv := validIntervention()
		iv.Severity = "catastrophic"
		var verr *ValidationError
		require.ErrorAs(t, iv.Validate(), &verr)
		assert.Equal(t, "severity", verr.Field)
	})

	t.Run("no affected services", func(t *testing.T) {
		iv := validIntervention()
		iv.ServiceIDs = nil
		var verr *ValidationError
		require.ErrorAs(t, iv.Validate(), &verr)
		assert.Equal(t, "service_ids", verr.Field)
	})
}

func TestServiceValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		svc := Service{Name: "Framasphère", URL: "https://diaspora-fr.org"}
		assert.NoError(t, svc.Validate())
	})

	t.Run("empty name", func(t *testing.T) {
		svc := Service{URL: "https://diaspora-fr.org"}
		var verr *ValidationError
		require.ErrorAs(t, svc.Validate(), &verr)
		assert.Equal(t, "name", verr.Field)
	})

	t.Run("relative url", func(t *testing.T) {
		svc := Service{Name: "Framasphère", URL: "/not/absolute"}
		var verr *ValidationError
		require.ErrorAs(t, svc.Validate(), &verr)
		assert.Equal(t, "url", verr.Field)
	})

	t.Run("empty url allowed", func(t *testing.T) {
		svc := Service{Name: "Framasphère"}
		assert.NoError(t, svc.Validate())
	})
}

func TestInterventionAffects(t *testing.T) {
	iv := validIntervention()
	assert.True(t, iv.Affects("framasphere"))
	assert.False(t, iv.Affects("framathunes"))
}

func TestCommentValidate(t *testing.T) {
	c := Comment{Message: "Reboot in progress"}
	assert.NoError(t, c.Validate())

	c.Message = ""
	var verr *ValidationError
	require.ErrorAs(t, c.Validate(), &verr)
	assert.Equal(t, "message", verr.Field)
}
