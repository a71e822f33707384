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

func TestCatalog_ServiceCRUD(t *testing.T) {
	admin := newTestClient(t)
	loginAsAdmin(t, admin)

	slug := testutil.RandomSlug("wiki")
	resp, err := admin.POST("/api/v1/admin/services", map[string]string{
		"name": "Framawiki",
		"slug": slug,
		"url":  "https://wiki.example.org",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Data struct {
			ID   string `json:"id"`
			Name string `json:"name"`
			Slug string `json:"slug"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &created)
	assert.Equal(t, "Framawiki", created.Data.Name)
	assert.Equal(t, slug, created.Data.Slug)

	// Public read
	public := newTestClient(t)
	resp, err = public.GET("/api/v1/services/" + created.Data.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Update
	resp, err = admin.PATCH("/api/v1/admin/services/"+created.Data.ID, map[string]string{
		"name": "Framawiki v2",
		"slug": slug,
		"url":  "https://wiki2.example.org",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated struct {
		Data struct {
			Name string `json:"name"`
			URL  string `json:"url"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &updated)
	assert.Equal(t, "Framawiki v2", updated.Data.Name)
	assert.Equal(t, "https://wiki2.example.org", updated.Data.URL)

	// Delete
	resp, err = admin.DELETE("/api/v1/admin/services/" + created.Data.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp, err = public.WithoutValidation().GET("/api/v1/services/" + created.Data.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCatalog_SlugDerivedFromName(t *testing.T) {
	admin := newTestClient(t)
	loginAsAdmin(t, admin)

	resp, err := admin.POST("/api/v1/admin/services", map[string]string{
		"name": "Framasphère " + testutil.RandomSlug(""),
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Data struct {
			Slug string `json:"slug"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &created)
	assert.Contains(t, created.Data.Slug, "framasphere", "diacritics should be folded")
}

func TestCatalog_RejectsInvalidService(t *testing.T) {
	admin := newTestClient(t)
	loginAsAdmin(t, admin)
	noValidate := admin.WithoutValidation()

	resp, err := noValidate.POST("/api/v1/admin/services", map[string]string{
		"name": "",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp, err = noValidate.POST("/api/v1/admin/services", map[string]string{
		"name": "Bad URL",
		"url":  "not-a-url",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestCatalog_DuplicateSlugConflicts(t *testing.T) {
	admin := newTestClient(t)
	loginAsAdmin(t, admin)

	slug := testutil.RandomSlug("dup")
	resp, err := admin.POST("/api/v1/admin/services", map[string]string{
		"name": "First",
		"slug": slug,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp, err = admin.POST("/api/v1/admin/services", map[string]string{
		"name": "Second",
		"slug": slug,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestCatalog_DeleteBlockedWhileReferenced(t *testing.T) {
	admin := newTestClient(t)
	loginAsAdmin(t, admin)

	svcID := createService(t, admin, "Framacarte")

	now := time.Now().UTC()
	ivID := createIntervention(t, admin, interventionBody(
		"Maintenance stockage",
		now.Add(time.Hour), now.Add(2*time.Hour),
		"partial_outage",
		svcID,
	))

	// The default deletion policy refuses to delete a referenced service.
	resp, err := admin.DELETE("/api/v1/admin/services/" + svcID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Removing the intervention unblocks the deletion.
	resp, err = admin.DELETE("/api/v1/admin/interventions/" + ivID)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp, err = admin.DELETE("/api/v1/admin/services/" + svcID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
}
