package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplaintFlow(t *testing.T) {
	a := newTestAPI(t)

	// Submission needs no account at all
	rec := doJSON(t, a, http.MethodPost, "/api/complaints", "", gin.H{
		"text": "The cafeteria coffee is undrinkable",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decodeBody(t, rec)
	assert.NotEmpty(t, created["ip_address"])

	studentToken, _ := registerStudent(t, a, "Nosy Student", "G1")
	rec = doJSON(t, a, http.MethodGet, "/api/complaints", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminToken := makeAdmin(t, a)
	rec = doJSON(t, a, http.MethodGet, "/api/complaints", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var complaints []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &complaints))
	require.Len(t, complaints, 1)
	assert.Equal(t, "The cafeteria coffee is undrinkable", complaints[0]["complaint_text"])

	rec = doJSON(t, a, http.MethodGet, fmt.Sprintf("/api/complaints/stats?t=%d", registrationSeq), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	stats := decodeBody(t, rec)
	assert.Equal(t, float64(1), stats["total"])
	assert.Equal(t, float64(1), stats["last_7_days"])
}

func TestComplaintValidation(t *testing.T) {
	a := newTestAPI(t)

	rec := doJSON(t, a, http.MethodPost, "/api/complaints", "", gin.H{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFeedbackFlow(t *testing.T) {
	a := newTestAPI(t)

	rec := doJSON(t, a, http.MethodPost, "/api/feedback", "", gin.H{
		"name":    "Anna",
		"email":   "anna@example.com",
		"message": "The new schedule page is great",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	adminToken := makeAdmin(t, a)
	rec = doJSON(t, a, http.MethodGet, "/api/feedback", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var feedback []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feedback))
	require.Len(t, feedback, 1)
	assert.Equal(t, "Anna", feedback[0]["name"])

	rec = doJSON(t, a, http.MethodGet, fmt.Sprintf("/api/feedback/stats?t=%d", registrationSeq), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	stats := decodeBody(t, rec)
	assert.Equal(t, float64(1), stats["total"])
	assert.Equal(t, float64(1), stats["last_7_days"])
}

func TestFeedbackValidation(t *testing.T) {
	a := newTestAPI(t)

	rec := doJSON(t, a, http.MethodPost, "/api/feedback", "", gin.H{
		"name":    "Anna",
		"email":   "not-an-email",
		"message": "hello",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, a, http.MethodPost, "/api/feedback", "", gin.H{
		"name":    "",
		"email":   "anna@example.com",
		"message": "hello",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
