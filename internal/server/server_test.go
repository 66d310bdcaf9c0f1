package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tasktracker/internal/config"
	"tasktracker/internal/handler"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestServer runs the whole stack against a throwaway sqlite file.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return newTestServerAt(t, time.Now)
}

func newTestServerAt(t *testing.T, clock handler.Clock) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		DBDriver:    config.DriverSQLite,
		SQLitePath:  filepath.Join(dir, "tasks.db"),
		JWTSecret:   "test-secret",
		SessionTTL:  time.Hour,
		MediaRoot:   filepath.Join(dir, "media"),
		MaxUploadMB: 1,
		GinMode:     gin.TestMode,
	}

	s, err := initWithClock(cfg, zap.NewNop(), clock)
	require.NoError(t, err)

	ts := httptest.NewServer(s.Engine)
	t.Cleanup(func() {
		ts.Close()
		s.close()
	})
	return ts
}

type browser struct {
	t      *testing.T
	base   string
	client *http.Client
}

func newBrowser(t *testing.T, ts *httptest.Server) *browser {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{
		t:    t,
		base: ts.URL,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

type message struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

type page struct {
	Status   int            `json:"-"`
	Location string         `json:"-"`
	Page     string         `json:"page"`
	Context  map[string]any `json:"context"`
	Messages []message      `json:"messages"`
	Raw      map[string]any `json:"-"`
}

func (b *browser) do(method, path string, form url.Values) page {
	b.t.Helper()
	req, err := http.NewRequest(method, b.base+path, strings.NewReader(form.Encode()))
	require.NoError(b.t, err)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := b.client.Do(req)
	require.NoError(b.t, err)
	defer resp.Body.Close()

	p := page{Status: resp.StatusCode, Location: resp.Header.Get("Location")}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		data, err := io.ReadAll(resp.Body)
		require.NoError(b.t, err)
		require.NoError(b.t, json.Unmarshal(data, &p))
		require.NoError(b.t, json.Unmarshal(data, &p.Raw))
	}
	return p
}

func (b *browser) signUp(username string) {
	b.t.Helper()
	p := b.do(http.MethodPost, "/register/", url.Values{
		"username":   {username},
		"first_name": {"Ada"},
		"last_name":  {"Lovelace"},
		"email":      {username + "@example.com"},
		"password1":  {"analytical-engine"},
		"password2":  {"analytical-engine"},
	})
	require.Equal(b.t, http.StatusFound, p.Status)
	require.Equal(b.t, "/login/", p.Location)

	p = b.do(http.MethodGet, "/login/", nil)
	require.Equal(b.t, http.StatusOK, p.Status)
	require.Equal(b.t, []message{{Level: "success", Text: "Account created successfully! Please log in."}}, p.Messages)

	p = b.do(http.MethodPost, "/login/", url.Values{"username": {username}, "password": {"analytical-engine"}})
	require.Equal(b.t, http.StatusFound, p.Status)
	require.Equal(b.t, "/", p.Location)
}

func TestTaskLifecycle(t *testing.T) {
	ts := newTestServer(t)
	ada := newBrowser(t, ts)

	// Anonymous visitors are sent to the login page
	p := ada.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusFound, p.Status)
	assert.Equal(t, "/login/?next=%2F", p.Location)

	ada.signUp("ada")

	p = ada.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, p.Status)
	assert.Equal(t, "tasks/home", p.Page)
	require.Len(t, p.Messages, 1)
	assert.Equal(t, "Welcome back, Ada!", p.Messages[0].Text)
	assert.EqualValues(t, 0, p.Context["total_tasks"])
	assert.EqualValues(t, 0, p.Context["completion_rate"])

	// Signed-in users do not see the login page
	p = ada.do(http.MethodGet, "/login/", nil)
	assert.Equal(t, http.StatusFound, p.Status)
	assert.Equal(t, "/", p.Location)

	p = ada.do(http.MethodPost, "/task/add/", url.Values{"title": {"Buy milk"}, "priority": {"high"}})
	require.Equal(t, http.StatusFound, p.Status)

	p = ada.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, p.Status)
	assert.Equal(t, "Task created successfully!", p.Messages[0].Text)
	assert.EqualValues(t, 1, p.Context["total_tasks"])
	assert.EqualValues(t, 1, p.Context["high_priority_tasks"])
	tasks := p.Context["tasks"].([]any)
	require.Len(t, tasks, 1)
	task := tasks[0].(map[string]any)
	assert.Equal(t, "high", task["priority"])
	assert.Equal(t, "open", task["status"])
	id := task["id"].(string)

	p = ada.do(http.MethodPost, "/task/"+id+"/toggle/", nil)
	require.Equal(t, http.StatusOK, p.Status)
	assert.Equal(t, true, p.Raw["success"])
	assert.Equal(t, true, p.Raw["is_completed"])
	assert.NotNil(t, p.Raw["completed_at"])

	p = ada.do(http.MethodGet, "/", nil)
	assert.EqualValues(t, 1, p.Context["completed_tasks"])
	assert.EqualValues(t, 0, p.Context["high_priority_tasks"])
	assert.EqualValues(t, 100, p.Context["completion_rate"])

	p = ada.do(http.MethodGet, "/profile/", nil)
	require.Equal(t, http.StatusOK, p.Status)
	assert.EqualValues(t, 1, p.Context["completed_tasks_count"])

	// Another account cannot reach Ada's task
	bob := newBrowser(t, ts)
	bob.signUp("bob")
	for _, path := range []string{"/task/" + id + "/edit/", "/task/" + id + "/delete/"} {
		p = bob.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, p.Status, path)
	}
	p = bob.do(http.MethodPost, "/task/"+id+"/toggle/", nil)
	assert.Equal(t, http.StatusNotFound, p.Status)

	p = ada.do(http.MethodPost, "/task/"+id+"/delete/", nil)
	require.Equal(t, http.StatusFound, p.Status)
	p = ada.do(http.MethodGet, "/", nil)
	assert.EqualValues(t, 0, p.Context["total_tasks"])
	p = ada.do(http.MethodGet, "/task/"+id+"/edit/", nil)
	assert.Equal(t, http.StatusNotFound, p.Status)
	p = ada.do(http.MethodPost, "/task/"+id+"/toggle/", nil)
	assert.Equal(t, http.StatusNotFound, p.Status)

	p = ada.do(http.MethodPost, "/logout/", nil)
	assert.Equal(t, http.StatusFound, p.Status)
	assert.Equal(t, "/login/", p.Location)
	p = ada.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusFound, p.Status)
}

func TestHome_DueTodayWindow(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	ts := newTestServerAt(t, func() time.Time { return now })
	ada := newBrowser(t, ts)
	ada.signUp("ada")

	for title, due := range map[string]string{
		"late tonight":  "2024-05-10T23:59",
		"at midnight":   "2024-05-10T00:00",
		"just tomorrow": "2024-05-11T00:01",
		"yesterday":     "2024-05-09T23:59",
	} {
		p := ada.do(http.MethodPost, "/task/add/", url.Values{"title": {title}, "due_date": {due}})
		require.Equal(t, http.StatusFound, p.Status, title)
	}

	p := ada.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, p.Status)
	assert.EqualValues(t, 4, p.Context["total_tasks"])

	var titles []string
	for _, task := range p.Context["due_today"].([]any) {
		titles = append(titles, task.(map[string]any)["title"].(string))
	}
	assert.Equal(t, []string{"at midnight", "late tonight"}, titles)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	ts := newTestServer(t)
	newBrowser(t, ts).signUp("ada")

	p := newBrowser(t, ts).do(http.MethodPost, "/register/", url.Values{
		"username":   {"ada"},
		"first_name": {"Other"},
		"last_name":  {"Person"},
		"email":      {"other@example.com"},
		"password1":  {"difference-engine"},
		"password2":  {"difference-engine"},
	})

	assert.Equal(t, http.StatusOK, p.Status)
	assert.Equal(t, "tasks/register", p.Page)
	errs := p.Context["form"].(map[string]any)["errors"].(map[string]any)
	assert.Equal(t, []any{"A user with that username already exists."}, errs["username"])
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	p := newBrowser(t, ts).do(http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, p.Status)
	assert.Equal(t, "ok", p.Raw["status"])
}
