//go:build integration

package integration

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vigie-status/vigie/internal/testutil"
)

type interventionViewResult struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Severity string `json:"severity"`
	Progress struct {
		State string `json:"state"`
	} `json:"progress"`
	Affected []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"affected_services"`
}

type overviewResult struct {
	Data struct {
		Global struct {
			Health   string `json:"health"`
			Severity string `json:"severity"`
		} `json:"global"`
		Services []struct {
			ID     string `json:"id"`
			Status struct {
				Health       string `json:"health"`
				Severity     string `json:"severity"`
				Contributing []struct {
					ID string `json:"id"`
				} `json:"contributing"`
			} `json:"status"`
		} `json:"services"`
		Ongoing     []interventionViewResult `json:"ongoing"`
		Upcoming    []interventionViewResult `json:"upcoming"`
		GeneratedAt time.Time                `json:"generated_at"`
	} `json:"data"`
}

// TestStatusFlow_KernelUpgrade walks the main public scenario: a full outage
// window over two services makes the page degraded while it runs and
// operational again once it ends.
func TestStatusFlow_KernelUpgrade(t *testing.T) {
	admin := newTestClient(t)
	loginAsAdmin(t, admin)

	sphereID := createService(t, admin, "Framasphère")
	thunesID := createService(t, admin, "Framathunes")
	gitID := createService(t, admin, "Framagit")

	now := time.Now().UTC()
	ongoingID := createIntervention(t, admin, interventionBody(
		"Mise à jour du noyau",
		now.Add(-5*time.Minute), now.Add(10*time.Minute),
		"full_outage",
		sphereID, thunesID,
	))
	upcomingID := createIntervention(t, admin, interventionBody(
		"Migration base de données",
		now.Add(24*time.Hour), now.Add(25*time.Hour),
		"partial_outage",
		gitID,
	))
	pastID := createIntervention(t, admin, interventionBody(
		"Maintenance réseau",
		now.Add(-3*time.Hour), now.Add(-2*time.Hour),
		"performance_issue",
		gitID,
	))

	public := newTestClient(t)

	resp, err := public.GET("/api/v1/status")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var overview overviewResult
	testutil.DecodeJSON(t, resp, &overview)

	assert.Equal(t, "degraded", overview.Data.Global.Health)
	assert.Equal(t, "full_outage", overview.Data.Global.Severity)
	assert.False(t, overview.Data.GeneratedAt.IsZero())

	statusByService := make(map[string]string)
	for _, svc := range overview.Data.Services {
		statusByService[svc.ID] = svc.Status.Health
	}
	assert.Equal(t, "degraded", statusByService[sphereID])
	assert.Equal(t, "degraded", statusByService[thunesID])
	assert.Equal(t, "operational", statusByService[gitID], "upcoming and past interventions must not degrade a service")

	require.Len(t, findViews(overview.Data.Ongoing, ongoingID), 1)
	require.Len(t, findViews(overview.Data.Upcoming, upcomingID), 1)
	assert.Empty(t, findViews(overview.Data.Ongoing, upcomingID))
	assert.Empty(t, findViews(overview.Data.Ongoing, pastID))

	ongoing := findViews(overview.Data.Ongoing, ongoingID)[0]
	assert.Equal(t, "ongoing", ongoing.Progress.State)
	require.Len(t, ongoing.Affected, 2)
	names := []string{ongoing.Affected[0].Name, ongoing.Affected[1].Name}
	assert.Contains(t, names, "Framasphère")
	assert.Contains(t, names, "Framathunes")

	// Per-service status carries the contributing interventions.
	resp, err = public.GET("/api/v1/services/" + sphereID + "/status")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var svcStatus struct {
		Data struct {
			Status struct {
				Health       string `json:"health"`
				Severity     string `json:"severity"`
				Contributing []struct {
					ID string `json:"id"`
				} `json:"contributing"`
			} `json:"status"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &svcStatus)
	assert.Equal(t, "degraded", svcStatus.Data.Status.Health)
	assert.Equal(t, "full_outage", svcStatus.Data.Status.Severity)
	require.Len(t, svcStatus.Data.Status.Contributing, 1)
	assert.Equal(t, ongoingID, svcStatus.Data.Status.Contributing[0].ID)

	// Temporal buckets on their dedicated endpoints.
	assertBucketContains(t, public, "ongoing", ongoingID)
	assertBucketContains(t, public, "upcoming", upcomingID)
	assertBucketContains(t, public, "past", pastID)
}

// TestStatusFlow_WorstSeverityWins checks that concurrent interventions on a
// service escalate to the worst level while every contributor stays listed.
func TestStatusFlow_WorstSeverityWins(t *testing.T) {
	admin := newTestClient(t)
	loginAsAdmin(t, admin)

	svcID := createService(t, admin, "Framapad")

	now := time.Now().UTC()
	perfID := createIntervention(t, admin, interventionBody(
		"Lenteurs disque",
		now.Add(-30*time.Minute), now.Add(30*time.Minute),
		"performance_issue",
		svcID,
	))
	outageID := createIntervention(t, admin, interventionBody(
		"Panne partielle",
		now.Add(-10*time.Minute), now.Add(20*time.Minute),
		"partial_outage",
		svcID,
	))

	public := newTestClient(t)
	resp, err := public.GET("/api/v1/services/" + svcID + "/status")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Data struct {
			Status struct {
				Severity     string `json:"severity"`
				Contributing []struct {
					ID string `json:"id"`
				} `json:"contributing"`
			} `json:"status"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)

	assert.Equal(t, "partial_outage", result.Data.Status.Severity)
	require.Len(t, result.Data.Status.Contributing, 2)
	ids := []string{result.Data.Status.Contributing[0].ID, result.Data.Status.Contributing[1].ID}
	assert.Contains(t, ids, perfID)
	assert.Contains(t, ids, outageID)
}

// TestStatusFlow_PublicInterventionDetail checks the public detail view with
// its comment timeline.
func TestStatusFlow_PublicInterventionDetail(t *testing.T) {
	admin := newTestClient(t)
	loginAsAdmin(t, admin)

	svcID := createService(t, admin, "Framadate")
	now := time.Now().UTC()
	ivID := createIntervention(t, admin, interventionBody(
		"Redémarrage des frontaux",
		now.Add(-2*time.Minute), now.Add(13*time.Minute),
		"full_outage",
		svcID,
	))

	resp, err := admin.POST("/api/v1/admin/interventions/"+ivID+"/comments", map[string]string{
		"message": "Les serveurs redémarrent un par un.",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	public := newTestClient(t)
	resp, err = public.GET("/api/v1/interventions/" + ivID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var detail struct {
		Data struct {
			ID       string `json:"id"`
			Comments []struct {
				Message string `json:"message"`
			} `json:"comments"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &detail)
	assert.Equal(t, ivID, detail.Data.ID)
	require.Len(t, detail.Data.Comments, 1)
	assert.Equal(t, "Les serveurs redémarrent un par un.", detail.Data.Comments[0].Message)
}

func TestStatusFlow_UnknownIDsReturn404(t *testing.T) {
	public := newTestClient(t)

	resp, err := public.GET("/api/v1/services/00000000-0000-0000-0000-000000000000/status")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp, err = public.GET("/api/v1/interventions/00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Malformed ids read as absent too, never as server errors.
	resp, err = public.GET("/api/v1/services/not-a-uuid")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp, err = public.GET("/api/v1/interventions/not-a-uuid-either")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func findViews(views []interventionViewResult, id string) []interventionViewResult {
	var out []interventionViewResult
	for _, v := range views {
		if v.ID == id {
			out = append(out, v)
		}
	}
	return out
}

func assertBucketContains(t *testing.T, client *testutil.Client, bucket, id string) {
	t.Helper()

	resp, err := client.GET("/api/v1/interventions/" + bucket)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Data []interventionViewResult `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	assert.Len(t, findViews(result.Data, id), 1, "intervention %s expected in %s bucket", id, bucket)
}
