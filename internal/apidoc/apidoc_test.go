package apidoc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	doc, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "FitFlow API", doc.Info.Title)
	for _, path := range []string{
		"/health",
		"/api/v1/profile",
		"/api/v1/reminders/{id}/toggle",
		"/api/v1/reports/{file}",
		"/api/v1/export/backup",
	} {
		assert.NotNil(t, doc.Paths.Find(path), path)
	}

	errSchema := doc.Components.Schemas["ErrorResponse"]
	require.NotNil(t, errSchema)
	assert.ElementsMatch(t, []string{"code", "message"}, errSchema.Value.Required)
}

func TestHandler_GetOpenAPI(t *testing.T) {
	doc, err := Load(context.Background())
	require.NoError(t, err)
	h, err := NewHandler(doc)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/openapi.json", h.GetOpenAPI)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "3.0.3", body["openapi"])
	assert.Contains(t, body["paths"], "/api/v1/dashboard")
}
