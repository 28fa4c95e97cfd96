package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"feature-prioritizer/internal/pkg/logger"
	"feature-prioritizer/internal/repository/memory"
	"feature-prioritizer/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []string        `json:"errors"`
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	log := logger.NewNopLogger()
	storage := service.NewStorageService(memory.NewBlobStore(), service.DefaultStorageKey, log, nil)
	session := service.NewSessionService(storage, nil, nil, log, nil)

	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(log))
	NewFeatureController(session).RegisterRoutes(app.Group("/api"))
	return app
}

func do(t *testing.T, app *fiber.App, method, target, contentType, body string) (*http.Response, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	var env envelope
	if strings.HasPrefix(resp.Header.Get("Content-Type"), fiber.MIMEApplicationJSON) && resp.Header.Get("Content-Disposition") == "" {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp, env
}

type viewData struct {
	Total    int `json:"total"`
	Filtered int `json:"filtered"`
	Features []struct {
		Id        string  `json:"id"`
		Name      string  `json:"name"`
		Rank      int     `json:"rank"`
		Priority  string  `json:"priority"`
		RiceScore float64 `json:"riceScore"`
	} `json:"features"`
}

func TestCreateAndViewRice(t *testing.T) {
	app := newTestApp(t)

	resp, env := do(t, app, "POST", "/api/features/v1/rice", fiber.MIMEApplicationJSON,
		`{"name":"Social login","reach":"1000","impact":2,"confidence":95,"effort":"2"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.True(t, env.Success)

	resp, env = do(t, app, "GET", "/api/features/v1?framework=rice", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var view viewData
	require.NoError(t, json.Unmarshal(env.Data, &view))
	require.Len(t, view.Features, 1)
	assert.Equal(t, 950.0, view.Features[0].RiceScore)
	assert.Equal(t, 1, view.Features[0].Rank)
	assert.Equal(t, "high", view.Features[0].Priority)
}

func TestCreateRiceValidation(t *testing.T) {
	app := newTestApp(t)

	resp, env := do(t, app, "POST", "/api/features/v1/rice", fiber.MIMEApplicationJSON,
		`{"name":"","reach":0,"impact":1.5,"confidence":100,"effort":1}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, []string{"Feature name is required", "Reach must be between 1 and 1000", "Impact must be one of 0.25, 0.5, 1, 2 or 3"}, env.Errors)

	resp, _ = do(t, app, "POST", "/api/features/v1/rice", fiber.MIMEApplicationJSON, `{"name":`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestMoscowFlow(t *testing.T) {
	app := newTestApp(t)

	for _, body := range []string{`{"name":"Zebra","category":"must"}`, `{"name":"Auth","category":"MUST"}`, `{"name":"Voice","category":"wont"}`} {
		resp, _ := do(t, app, "POST", "/api/features/v1/moscow", fiber.MIMEApplicationJSON, body)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp, env := do(t, app, "POST", "/api/features/v1/moscow", fiber.MIMEApplicationJSON, `{"name":"Bad","category":"maybe"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, []string{"Priority category is required"}, env.Errors)

	_, env = do(t, app, "GET", "/api/features/v1?framework=moscow&priority=high", "", "")
	var view viewData
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, 3, view.Total)
	require.Len(t, view.Features, 2)
	assert.Equal(t, "Auth", view.Features[0].Name)
	assert.Equal(t, "Zebra", view.Features[1].Name)
}

func TestDeleteAndClear(t *testing.T) {
	app := newTestApp(t)
	do(t, app, "POST", "/api/features/v1/sample/rice", "", "")

	_, env := do(t, app, "GET", "/api/features/v1", "", "")
	var view viewData
	require.NoError(t, json.Unmarshal(env.Data, &view))
	require.Len(t, view.Features, 8)

	resp, _ := do(t, app, "DELETE", "/api/features/v1/"+view.Features[0].Id, "", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = do(t, app, "DELETE", "/api/features/v1/"+view.Features[0].Id, "", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, app, "DELETE", "/api/features/v1", "", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	_, env = do(t, app, "GET", "/api/features/v1", "", "")
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Zero(t, view.Total)
}

func TestTemplates(t *testing.T) {
	app := newTestApp(t)

	_, env := do(t, app, "GET", "/api/features/v1/templates", "", "")
	var templates []struct {
		Key      string `json:"key"`
		Features int    `json:"features"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &templates))
	assert.Len(t, templates, 3)

	resp, _ := do(t, app, "POST", "/api/features/v1/templates/saas-platform", "", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = do(t, app, "POST", "/api/features/v1/templates/unknown", "", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp, _ = do(t, app, "POST", "/api/features/v1/sample/kano", "", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestImportExportCSV(t *testing.T) {
	app := newTestApp(t)

	resp, env := do(t, app, "POST", "/api/features/v1/import?framework=rice", "text/csv",
		"name,reach,impact,confidence,effort\nSearch,500,2,90,3\nSync,100,1,50,1\n")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"count":2}`, string(env.Data))

	resp, _ = do(t, app, "GET", "/api/features/v1/export?framework=rice", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "feature-prioritization-rice-")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Rank,Feature Name,Reach,Impact,Confidence (%),Effort (months),RICE Score\n"+
		`1,"Search",500,2,90,3,300`+"\n"+
		`2,"Sync",100,1,50,1,50`, string(body))

	resp, _ = do(t, app, "POST", "/api/features/v1/import?framework=rice", "text/csv", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCompareAndAnalytics(t *testing.T) {
	app := newTestApp(t)
	do(t, app, "POST", "/api/features/v1/sample/rice", "", "")
	_, env := do(t, app, "GET", "/api/features/v1", "", "")
	var view viewData
	require.NoError(t, json.Unmarshal(env.Data, &view))

	body := `{"ids":["` + view.Features[0].Id + `","` + view.Features[1].Id + `"]}`
	resp, env := do(t, app, "POST", "/api/features/v1/compare", fiber.MIMEApplicationJSON, body)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var summary struct {
		Count        int     `json:"count"`
		HighestScore float64 `json:"highest_score"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, 1140.0, summary.HighestScore)

	resp, _ = do(t, app, "POST", "/api/features/v1/compare", fiber.MIMEApplicationJSON, `{"ids":["one"]}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, env = do(t, app, "GET", "/api/features/v1/analytics", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var analytics struct {
		Chart []json.RawMessage `json:"chart"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &analytics))
	assert.Len(t, analytics.Chart, 8)
}

func TestBackupRestore(t *testing.T) {
	app := newTestApp(t)
	do(t, app, "POST", "/api/features/v1/templates/mobile-app", "", "")

	resp, _ := do(t, app, "GET", "/api/features/v1/backup", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	backup, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	do(t, app, "DELETE", "/api/features/v1", "", "")

	resp, env := do(t, app, "POST", "/api/features/v1/backup", fiber.MIMEApplicationJSON, string(backup))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"count":4}`, string(env.Data))

	resp, _ = do(t, app, "POST", "/api/features/v1/backup", fiber.MIMEApplicationJSON, "not json")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
