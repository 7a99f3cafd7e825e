package routes_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gig-coordinator/config"
	"gig-coordinator/internal/api/routes"
	"gig-coordinator/internal/app"
	"gig-coordinator/internal/docstore/memory"
	"gig-coordinator/internal/identity"
	"gig-coordinator/internal/models"
	"gig-coordinator/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "routes-test-secret"

func generateTestToken(t *testing.T, uid string) string {
	t.Helper()
	tok, err := identity.IssueToken(testSecret, uid, time.Hour, time.Now())
	require.NoError(t, err)
	return tok
}

func setupRouter(t *testing.T, messageLimit int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := memory.New()
	t.Cleanup(func() { _ = store.Close() })

	cfg := &config.Config{
		Auth:          config.AuthConfig{JWTSecret: testSecret},
		Notifications: config.NotificationsConfig{BannerDuration: time.Hour},
		Chat:          config.ChatConfig{MessageLimit: messageLimit, MessageWindow: time.Minute},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	application := app.NewWithStore(cfg, logger, store)

	router := gin.New()
	routes.RegisterRoutes(router, application)
	return router
}

type client struct {
	t      *testing.T
	router http.Handler
}

func (c client) do(method, path, uid string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if uid != "" {
		req.Header.Set("Authorization", "Bearer "+generateTestToken(c.t, uid))
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (c client) createJob(employer string) models.Job {
	c.t.Helper()
	w := c.do(http.MethodPost, "/api/v1/jobs", employer, dto.CreateJobRequest{
		Title: "Warehouse picker", Date: "2024-06-01", StartTime: "07:00", EndTime: "15:00",
		LocationText: "Dock 3", HourlyPay: 19,
	})
	require.Equal(c.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.Job](c.t, w)
}

func TestHireFlowOverHTTP(t *testing.T) {
	c := client{t: t, router: setupRouter(t, 10)}

	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodPost, "/api/v1/jobs", "", nil).Code)

	job := c.createJob("E")
	assert.Equal(t, "E", job.OwnerUID)
	assert.Equal(t, models.JobHireStatusOpen, job.HireStatus)

	w := c.do(http.MethodGet, "/api/v1/jobs/"+job.ID, "W", nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/v1/jobs/"+job.ID+"/apply", "W", nil).Code)
	assert.Equal(t, http.StatusForbidden, c.do(http.MethodPost, "/api/v1/jobs/"+job.ID+"/apply", "E", nil).Code)
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodPost, "/api/v1/jobs/missing/apply", "W", nil).Code)

	w = c.do(http.MethodPost, "/api/v1/jobs/"+job.ID+"/hires", "E", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "WorkerID")

	propose := dto.ProposeHireRequest{WorkerID: "W"}
	assert.Equal(t, http.StatusForbidden, c.do(http.MethodPost, "/api/v1/jobs/"+job.ID+"/hires", "X", propose).Code)

	w = c.do(http.MethodPost, "/api/v1/jobs/"+job.ID+"/hires", "E", propose)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	hire := decode[models.Hire](t, w)
	assert.Equal(t, models.HireStatusProposed, hire.Status)

	w = c.do(http.MethodPost, "/api/v1/jobs/"+job.ID+"/hires", "E", propose)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_state")

	w = c.do(http.MethodGet, "/api/v1/hires/proposals", "W", nil)
	require.Equal(t, http.StatusOK, w.Code)
	proposals := decode[[]models.Hire](t, w)
	require.Len(t, proposals, 1)
	assert.Equal(t, hire.ID, proposals[0].ID)

	assert.Equal(t, http.StatusForbidden, c.do(http.MethodPatch, "/api/v1/hires/"+hire.ID+"/accept", "E", nil).Code)
	w = c.do(http.MethodPatch, "/api/v1/hires/"+hire.ID+"/accept", "W", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.HireStatusConfirmed, decode[models.Hire](t, w).Status)

	assert.Equal(t, http.StatusConflict, c.do(http.MethodPatch, "/api/v1/hires/"+hire.ID+"/reject", "W", nil).Code)
	w = c.do(http.MethodPatch, "/api/v1/hires/"+hire.ID+"/complete", "E", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.HireStatusCompleted, decode[models.Hire](t, w).Status)

	w = c.do(http.MethodGet, "/api/v1/jobs/"+job.ID, "E", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.JobHireStatusCompleted, decode[models.Job](t, w).HireStatus)

	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/api/v1/hires/missing", "W", nil).Code)
	assert.Equal(t, http.StatusForbidden, c.do(http.MethodGet, "/api/v1/hires/"+hire.ID, "X", nil).Code)
}

func TestConversationsOverHTTP(t *testing.T) {
	c := client{t: t, router: setupRouter(t, 2)}

	w := c.do(http.MethodPost, "/api/v1/conversations", "E", dto.EnsureConversationRequest{EmployerUID: "E", WorkerUID: "W"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	summary := decode[dto.ConversationSummary](t, w)
	assert.Equal(t, "E_W", summary.ID)
	assert.Equal(t, "W", summary.CounterpartUID)

	path := "/api/v1/conversations/" + summary.ID
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, path+"/messages", "E", map[string]string{"text": "  "}).Code)
	assert.Equal(t, http.StatusForbidden, c.do(http.MethodPost, path+"/messages", "X", map[string]string{"text": "hi"}).Code)
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, path+"/messages", "E", map[string]string{"text": "Shift starts at 7"}).Code)

	// The limiter counts every attempt by E, including the rejected blank one.
	assert.Equal(t, http.StatusTooManyRequests, c.do(http.MethodPost, path+"/messages", "E", map[string]string{"text": "again"}).Code)

	w = c.do(http.MethodGet, "/api/v1/conversations", "W", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]dto.ConversationSummary](t, w)
	require.Len(t, list, 1)
	assert.True(t, list[0].Unread)
	assert.Equal(t, "Shift starts at 7", list[0].LastMessage)

	assert.Equal(t, http.StatusNoContent, c.do(http.MethodPatch, path+"/opened", "W", nil).Code)
	list = decode[[]dto.ConversationSummary](t, c.do(http.MethodGet, "/api/v1/conversations", "W", nil))
	assert.False(t, list[0].Unread)

	w = c.do(http.MethodGet, path+"/messages", "W", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Message](t, w), 1)

	assert.Equal(t, http.StatusNotFound, c.do(http.MethodPatch, "/api/v1/conversations/missing/opened", "W", nil).Code)
}

func TestHealth(t *testing.T) {
	c := client{t: t, router: setupRouter(t, 1)}
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/health", "", nil).Code)
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/ready", "", nil).Code)
}

func TestSwaggerDocs(t *testing.T) {
	c := client{t: t, router: setupRouter(t, 1)}
	w := c.do(http.MethodGet, "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/hires/{id}/accept")
	assert.Contains(t, w.Body.String(), "BearerAuth")
	assert.Contains(t, w.Body.String(), "/api/v1")
}

func TestNotificationStream(t *testing.T) {
	router := setupRouter(t, 10)
	c := client{t: t, router: router}
	srv := httptest.NewServer(router)
	defer srv.Close()

	job := c.createJob("E")

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/notifications/stream?screen=other", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+generateTestToken(t, "W"))
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	lines := make(chan string, 64)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	waitFor := func(prefix string) string {
		t.Helper()
		timeout := time.After(2 * time.Second)
		for {
			select {
			case line, ok := <-lines:
				require.True(t, ok, "stream closed while waiting for %q", prefix)
				if strings.HasPrefix(line, prefix) {
					return line
				}
			case <-timeout:
				t.Fatalf("timed out waiting for %q", prefix)
			}
		}
	}

	waitFor("event:ready")
	// Let both watchers seed before anything changes.
	time.Sleep(100 * time.Millisecond)

	w := c.do(http.MethodPost, "/api/v1/jobs/"+job.ID+"/hires", "E", dto.ProposeHireRequest{WorkerID: "W"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	hire := decode[models.Hire](t, w)

	waitFor("event:haptic")
	waitFor("event:banner")
	data := waitFor("data:")
	assert.Contains(t, data, hire.ID)
	assert.Contains(t, data, "hireOffer")
}
