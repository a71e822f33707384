//go:build integration

package integration

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vigie-status/vigie/internal/testutil"
)

// createService registers a service through the admin API and returns its ID.
// The client must already be authenticated.
func createService(t *testing.T, client *testutil.Client, name string) string {
	t.Helper()

	resp, err := client.POST("/api/v1/admin/services", map[string]string{
		"name": name,
		"slug": testutil.RandomSlug("svc"),
		"url":  "https://example.org",
	})
	require.NoError(t, err)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create service: status=%d body=%s", resp.StatusCode, testutil.ReadBody(t, resp))
	}

	var result struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	require.NotEmpty(t, result.Data.ID)
	return result.Data.ID
}

// interventionBody builds a request body for the given window and severity.
func interventionBody(title string, start, end time.Time, severity string, serviceIDs ...string) map[string]interface{} {
	return map[string]interface{}{
		"title":       title,
		"description": "scheduled maintenance",
		"start_at":    start.Format(time.RFC3339),
		"end_at":      end.Format(time.RFC3339),
		"severity":    severity,
		"service_ids": serviceIDs,
	}
}

// createIntervention declares an intervention through the admin API and
// returns its ID. The client must already be authenticated.
func createIntervention(t *testing.T, client *testutil.Client, body map[string]interface{}) string {
	t.Helper()

	resp, err := client.POST("/api/v1/admin/interventions", body)
	require.NoError(t, err)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create intervention: status=%d body=%s", resp.StatusCode, testutil.ReadBody(t, resp))
	}

	var result struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	require.NotEmpty(t, result.Data.ID)
	return result.Data.ID
}
