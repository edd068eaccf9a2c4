package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userhub/internal/app"
	"userhub/internal/model"
	"userhub/internal/query"
	"userhub/internal/transport/http/response"
)

// memoryStore is a minimal in-memory app.UserStore for routing tests.
type memoryStore struct {
	users []*model.User
}

func (m *memoryStore) Find(ctx context.Context, p query.Params) ([]model.User, error) {
	out := []model.User{}
	for _, u := range m.users {
		out = append(out, *u)
	}
	if p.Offset >= len(out) {
		return []model.User{}, nil
	}
	end := p.Offset + p.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[p.Offset:end], nil
}

func (m *memoryStore) Count(ctx context.Context, search string) (int64, error) {
	return int64(len(m.users)), nil
}

func (m *memoryStore) CountByActive(ctx context.Context, active bool) (int64, error) {
	var count int64
	for _, u := range m.users {
		if u.Active() == active {
			count++
		}
	}
	return count, nil
}

func (m *memoryStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memoryStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memoryStore) Create(ctx context.Context, user *model.User) error {
	user.ID = uuid.NewString()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	copied := *user
	m.users = append(m.users, &copied)
	return nil
}

func (m *memoryStore) Update(ctx context.Context, id string, fields map[string]any) (*model.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			if name, ok := fields["name"].(string); ok {
				u.Name = name
			}
			if email, ok := fields["email"].(string); ok {
				u.Email = email
			}
			u.UpdatedAt = time.Now()
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memoryStore) Delete(ctx context.Context, id string) (bool, error) {
	for i, u := range m.users {
		if u.ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func newTestRouter(store app.UserStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	userHandler := NewUserHandler(app.NewUserService(store, nil))

	router := gin.New()
	users := router.Group("/api/users")
	users.GET("/stats", userHandler.Stats)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.GetByID)
	users.POST("", userHandler.Create)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)
	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, 404, "Not Found - "+c.Request.URL.Path)
	})
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, response.Envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

func TestUserRoutes(t *testing.T) {
	router := newTestRouter(&memoryStore{})

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/users",
		`{"name":"Ann Lee","email":"ANN@Example.com","age":30}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, envelope.Success)
	assert.Equal(t, "User created successfully", envelope.Message)

	created, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ann@example.com", created["email"])
	id := created["id"].(string)

	rec, envelope = doJSON(t, router, http.MethodGet, "/api/users/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User fetched successfully", envelope.Message)

	rec, envelope = doJSON(t, router, http.MethodPut, "/api/users/"+id, `{"name":"Ann B Lee"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User updated successfully", envelope.Message)

	rec, envelope = doJSON(t, router, http.MethodGet, "/api/users?page=1&limit=10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, envelope.Success)
	assert.Equal(t, "Users fetched successfully", envelope.Message)
	list := envelope.Data.(map[string]any)
	assert.Equal(t, float64(1), list["totalUsers"])
	assert.Equal(t, float64(1), list["currentPage"])

	rec, envelope = doJSON(t, router, http.MethodDelete, "/api/users/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User deleted successfully", envelope.Message)
	assert.Nil(t, envelope.Data)

	rec, envelope = doJSON(t, router, http.MethodDelete, "/api/users/"+id, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, envelope.Success)
	assert.Equal(t, "User not found", envelope.Message)
}

func TestStatsRouteNotShadowedByID(t *testing.T) {
	store := &memoryStore{}
	router := newTestRouter(store)

	_, _ = doJSON(t, router, http.MethodPost, "/api/users",
		`{"name":"Ann Lee","email":"ann@example.com"}`)

	rec, envelope := doJSON(t, router, http.MethodGet, "/api/users/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, envelope.Success)
	assert.Equal(t, "User statistics fetched successfully", envelope.Message)

	stats := envelope.Data.(map[string]any)
	assert.Equal(t, float64(1), stats["totalUsers"])
	assert.Equal(t, float64(1), stats["activeUsers"])
	assert.Equal(t, float64(0), stats["inactiveUsers"])
}

func TestErrorStatuses(t *testing.T) {
	router := newTestRouter(&memoryStore{})

	t.Run("malformed id", func(t *testing.T) {
		rec, envelope := doJSON(t, router, http.MethodGet, "/api/users/not-a-valid-id-format", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, envelope.Success)
		assert.Equal(t, "Invalid user ID", envelope.Message)
	})

	t.Run("unknown id", func(t *testing.T) {
		rec, envelope := doJSON(t, router, http.MethodGet, "/api/users/"+uuid.NewString(), "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "User not found", envelope.Message)
	})

	t.Run("validation messages joined", func(t *testing.T) {
		rec, envelope := doJSON(t, router, http.MethodPost, "/api/users", `{"age":200}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Name is required, Email is required, Age must be between 1 and 120", envelope.Message)
	})

	t.Run("duplicate email", func(t *testing.T) {
		rec, _ := doJSON(t, router, http.MethodPost, "/api/users",
			`{"name":"Ann Lee","email":"dup@example.com"}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec, envelope := doJSON(t, router, http.MethodPost, "/api/users",
			`{"name":"X Y","email":"DUP@example.com "}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "User with this email already exists", envelope.Message)
	})

	t.Run("unparseable body", func(t *testing.T) {
		rec, envelope := doJSON(t, router, http.MethodPost, "/api/users", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request payload", envelope.Message)
	})

	t.Run("unmatched route", func(t *testing.T) {
		rec, envelope := doJSON(t, router, http.MethodGet, "/api/nope", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.False(t, envelope.Success)
		assert.Equal(t, "Not Found - /api/nope", envelope.Message)
	})
}
