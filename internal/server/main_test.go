package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"trackwerk/internal/ai"
	"trackwerk/internal/config"
	"trackwerk/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// stubGenerator is a canned ai.Generator for handler tests.
type stubGenerator struct {
	generated string
	refined   string
	err       error
}

func (s *stubGenerator) GenerateCoverLetter(_ context.Context, _ ai.CoverLetterInput) (string, error) {
	return s.generated, s.err
}

func (s *stubGenerator) RefineCoverLetter(_ context.Context, _, _ string) (string, error) {
	return s.refined, s.err
}

func testConfig() *config.Config {
	return &config.Config{
		Port:          "8080",
		Env:           "test",
		JWTSecret:     "test-secret-at-least-32-characters-long",
		JWTExpiryDays: 7,
	}
}

// setupTestServer builds a full application on an in-memory database.
// Passing a nil generator leaves AI endpoints unconfigured.
func setupTestServer(t *testing.T, generator ai.Generator) (*fiber.App, *Server) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Job{},
		&models.Application{},
		&models.CV{},
		&models.Anschreiben{},
	))

	cfg := testConfig()
	if generator != nil {
		cfg.AnthropicAPIKey = "test-key"
	}

	srv, err := NewServerWithDeps(cfg, db, nil, generator)
	require.NoError(t, err)
	return srv.App(), srv
}

func jsonRequest(method, path string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func authedRequest(method, path, token string, body any) *http.Request {
	req := jsonRequest(method, path, body)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// decodeBody parses the response envelope.
func decodeBody(t *testing.T, resp *http.Response) models.Response {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope models.Response
	require.NoError(t, json.Unmarshal(raw, &envelope), string(raw))
	return envelope
}

// dataField re-marshals envelope.Data[key] into out.
func dataField(t *testing.T, envelope models.Response, key string, out any) {
	t.Helper()
	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok, "data is not an object: %+v", envelope.Data)

	raw, err := json.Marshal(data[key])
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

// registerUser creates an account and returns its session token.
func registerUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp, err := app.Test(jsonRequest("POST", "/api/auth/register", map[string]string{
		"email":     email,
		"password":  "password123",
		"firstName": "Test",
		"lastName":  "User",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	envelope := decodeBody(t, resp)
	var token string
	dataField(t, envelope, "token", &token)
	require.NotEmpty(t, token)
	return token
}

// createJob persists a job through the API and returns its ID.
func createJob(t *testing.T, app *fiber.App, token, company, position string) uint {
	t.Helper()
	resp, err := app.Test(authedRequest("POST", "/api/jobs/", token, map[string]any{
		"companyName":   company,
		"positionTitle": position,
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var job models.Job
	dataField(t, decodeBody(t, resp), "job", &job)
	return job.ID
}

// createApplication persists an application through the API and returns its ID.
func createApplication(t *testing.T, app *fiber.App, token string, jobID uint) uint {
	t.Helper()
	resp, err := app.Test(authedRequest("POST", "/api/applications/", token, map[string]any{
		"jobId": jobID,
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created models.Application
	dataField(t, decodeBody(t, resp), "application", &created)
	return created.ID
}

func urlWithID(format string, id uint) string {
	return fmt.Sprintf(format, id)
}

var emailSeq int

// uniqueEmail avoids collisions across subtests sharing one database.
func uniqueEmail(prefix string) string {
	emailSeq++
	return fmt.Sprintf("%s%d@example.com", prefix, emailSeq)
}
