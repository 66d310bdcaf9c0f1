package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tasktracker/internal/auth"
	"tasktracker/internal/flash"
	"tasktracker/internal/middleware"
	"tasktracker/internal/model"
	"tasktracker/internal/repository"
	"tasktracker/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository mocks the account storage
type MockUserRepository struct {
	mock.Mock
}

var _ repository.UserRepositoryInterface = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) CreateWithProfile(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateAccount(ctx context.Context, user *model.User, profile *model.UserProfile) error {
	return m.Called(ctx, user, profile).Error(0)
}

type MockProfileRepository struct {
	mock.Mock
}

var _ repository.ProfileRepositoryInterface = (*MockProfileRepository)(nil)

func (m *MockProfileRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error) {
	args := m.Called(ctx, userID)
	profile := args.Get(0)
	if profile == nil {
		return nil, args.Error(1)
	}
	return profile.(*model.UserProfile), args.Error(1)
}

type MockTaskRepository struct {
	mock.Mock
}

var _ repository.TaskRepositoryInterface = (*MockTaskRepository)(nil)

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *MockTaskRepository) GetForOwner(ctx context.Context, id, ownerID uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id, ownerID)
	task := args.Get(0)
	if task == nil {
		return nil, args.Error(1)
	}
	return task.(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, ownerID)
	tasks, _ := args.Get(0).([]model.Task)
	return tasks, args.Error(1)
}

func (m *MockTaskRepository) Recent(ctx context.Context, ownerID uuid.UUID, limit int) ([]model.Task, error) {
	args := m.Called(ctx, ownerID, limit)
	tasks, _ := args.Get(0).([]model.Task)
	return tasks, args.Error(1)
}

func (m *MockTaskRepository) Stats(ctx context.Context, ownerID uuid.UUID) (repository.TaskStats, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(repository.TaskStats), args.Error(1)
}

func (m *MockTaskRepository) DueBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]model.Task, error) {
	args := m.Called(ctx, ownerID, from, to)
	tasks, _ := args.Get(0).([]model.Task)
	return tasks, args.Error(1)
}

func (m *MockTaskRepository) CountCompleted(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *model.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *MockTaskRepository) DeleteForOwner(ctx context.Context, id, ownerID uuid.UUID) error {
	return m.Called(ctx, id, ownerID).Error(0)
}

type mockStore struct {
	mock.Mock
}

var _ session.Store = (*mockStore)(nil)

func (m *mockStore) Save(ctx context.Context, sid string, userID uuid.UUID, ttl time.Duration) error {
	return m.Called(ctx, sid, userID, ttl).Error(0)
}

func (m *mockStore) Active(ctx context.Context, sid string) (bool, error) {
	args := m.Called(ctx, sid)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) Revoke(ctx context.Context, sid string) error {
	return m.Called(ctx, sid).Error(0)
}

// fixedNow is "today" for every handler test.
var fixedNow = time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func testUser() *model.User {
	return &model.User{ID: uuid.New(), Username: "ada", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
}

// signedIn stands in for the session middleware.
func signedIn(user *model.User, claims *auth.Claims) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, user.ID)
		c.Set(middleware.UserKey, user)
		if claims != nil {
			c.Set(middleware.ClaimsKey, *claims)
		}
		c.Next()
	}
}

type pageBody struct {
	Page     string          `json:"page"`
	Context  map[string]any  `json:"context"`
	Messages []flash.Message `json:"messages"`
}

func decodePage(t *testing.T, resp *httptest.ResponseRecorder) pageBody {
	t.Helper()
	var body pageBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body
}

// formErrors digs the errors of a FormState out of a rendered context.
func formErrors(t *testing.T, ctx map[string]any, key string) map[string]any {
	t.Helper()
	state, ok := ctx[key].(map[string]any)
	require.True(t, ok, "no form %q in context", key)
	errs, _ := state["errors"].(map[string]any)
	return errs
}

func formValues(t *testing.T, ctx map[string]any, key string) map[string]any {
	t.Helper()
	state, ok := ctx[key].(map[string]any)
	require.True(t, ok, "no form %q in context", key)
	values, _ := state["values"].(map[string]any)
	return values
}

// flashes replays the response cookies into a new request and pops the
// queued notifications.
func flashes(resp *httptest.ResponseRecorder) []flash.Message {
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range resp.Result().Cookies() {
		req.AddCookie(ck)
	}
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return flash.Pop(c)
}

func responseCookie(resp *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range resp.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}
