package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"slotpark/internal/db"
	"slotpark/internal/service"
)

type stubUserStore struct {
	users map[int]*db.User
}

func (s *stubUserStore) FindByID(id int) (*db.User, error) {
	if u, ok := s.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (s *stubUserStore) FindByUsername(username string) (*db.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *stubUserStore) Create(u *db.User) error {
	u.ID = len(s.users) + 1
	s.users[u.ID] = u
	return nil
}

func (s *stubUserStore) Update(u *db.User) error {
	s.users[u.ID] = u
	return nil
}

func (s *stubUserStore) DeleteByID(id int) error {
	delete(s.users, id)
	return nil
}

func TestLoginIssuesToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	hash, err := bcrypt.GenerateFromPassword([]byte("p"), bcrypt.MinCost)
	require.NoError(t, err)
	store := &stubUserStore{users: map[int]*db.User{
		1: {ID: 1, Username: "u", PasswordHash: string(hash)},
	}}
	handler := NewUserHandler(service.NewUserService(store))

	req := httptest.NewRequest(http.MethodPost, "/api/users/login",
		strings.NewReader(`{"username":"u","password":"p"}`))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token"`)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestLoginMismatchIs401(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	hash, err := bcrypt.GenerateFromPassword([]byte("p"), bcrypt.MinCost)
	require.NoError(t, err)
	store := &stubUserStore{users: map[int]*db.User{
		1: {ID: 1, Username: "u", PasswordHash: string(hash)},
	}}
	handler := NewUserHandler(service.NewUserService(store))

	req := httptest.NewRequest(http.MethodPost, "/api/users/login",
		strings.NewReader(`{"username":"u","password":"P"}`))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetUnknownUserIs404(t *testing.T) {
	store := &stubUserStore{users: map[int]*db.User{}}
	handler := NewUserHandler(service.NewUserService(store))

	req := httptest.NewRequest(http.MethodGet, "/api/users/9", nil)
	req = mux.SetURLVars(req, map[string]string{"userId": "9"})
	rec := httptest.NewRecorder()
	handler.Get(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateUnknownUserIs404(t *testing.T) {
	store := &stubUserStore{users: map[int]*db.User{}}
	handler := NewUserHandler(service.NewUserService(store))

	req := httptest.NewRequest(http.MethodPut, "/api/users/9",
		strings.NewReader(`{"username":"u","name":"n"}`))
	req = mux.SetURLVars(req, map[string]string{"userId": "9"})
	rec := httptest.NewRecorder()
	handler.Update(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, store.users)
}
