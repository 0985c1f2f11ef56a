package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"notes-backend/application/services"
	"notes-backend/domain/events"
	"notes-backend/domain/identity"
	"notes-backend/domain/notes"
	"notes-backend/pkg/auth"
	pkgerrors "notes-backend/pkg/errors"
)

// In-memory fakes backing the real services, keyed the same way the store is.

type fakeUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*identity.User
	byEmail map[string]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    map[string]*identity.User{},
		byEmail: map[string]string{},
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *identity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[user.Email()]; ok {
		return pkgerrors.NewConflictError("email already registered")
	}
	r.byID[user.ID()] = user
	r.byEmail[user.Email()] = user.ID()
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*identity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("user")
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*identity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("user")
	}
	return r.byID[id], nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, user *identity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[user.ID()]; !ok {
		return pkgerrors.NewNotFoundError("user")
	}
	r.byID[user.ID()] = user
	return nil
}

type fakeNoteRepo struct {
	mu    sync.Mutex
	items map[string]map[string]*notes.Note // userID -> noteID -> note
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{items: map[string]map[string]*notes.Note{}}
}

func (r *fakeNoteRepo) Create(ctx context.Context, note *notes.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.items[note.UserID()] == nil {
		r.items[note.UserID()] = map[string]*notes.Note{}
	}
	r.items[note.UserID()][note.ID()] = note
	return nil
}

func (r *fakeNoteRepo) GetByID(ctx context.Context, userID, noteID string) (*notes.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	note, ok := r.items[userID][noteID]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("note")
	}
	return note, nil
}

func (r *fakeNoteRepo) GetByUserID(ctx context.Context, userID string) ([]*notes.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*notes.Note
	for _, note := range r.items[userID] {
		result = append(result, note)
	}
	return result, nil
}

func (r *fakeNoteRepo) Update(ctx context.Context, note *notes.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[note.UserID()][note.ID()]; !ok {
		return pkgerrors.NewNotFoundError("note")
	}
	r.items[note.UserID()][note.ID()] = note
	return nil
}

func (r *fakeNoteRepo) Delete(ctx context.Context, userID, noteID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[userID][noteID]; !ok {
		return pkgerrors.NewNotFoundError("note")
	}
	delete(r.items[userID], noteID)
	return nil
}

type noopBus struct{}

func (noopBus) Publish(ctx context.Context, evts ...events.DomainEvent) error { return nil }

// Test harness

type harness struct {
	userRepo *fakeUserRepo
	noteRepo *fakeNoteRepo
	auth     *AuthHandler
	notes    *NoteHandler
	stats    *StatsHandler
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	logger := zap.NewNop()
	errorHandler := pkgerrors.NewErrorHandler(logger, false)

	userRepo := newFakeUserRepo()
	noteRepo := newFakeNoteRepo()

	identitySvc := services.NewIdentityService(userRepo, noopBus{}, logger)
	noteSvc := services.NewNoteService(noteRepo, noopBus{}, logger)
	statsSvc := services.NewStatsService(noteRepo, nil, logger)

	generator, err := auth.NewJWTGenerator(auth.JWTGeneratorConfig{
		SecretKey:  "test-secret",
		Issuer:     "notes-backend",
		ExpiryTime: time.Hour,
	})
	require.NoError(t, err)

	return &harness{
		userRepo: userRepo,
		noteRepo: noteRepo,
		auth:     NewAuthHandler(identitySvc, generator, errorHandler, logger),
		notes:    NewNoteHandler(noteSvc, errorHandler, logger),
		stats:    NewStatsHandler(statsSvc, errorHandler, logger),
	}
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func asUser(req *http.Request, userID, email string) *http.Request {
	ctx := auth.SetUserInContext(req.Context(), &auth.UserContext{
		UserID: userID,
		Email:  email,
		Roles:  []string{"user"},
	})
	return req.WithContext(ctx)
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

// Auth handler

func TestRegister(t *testing.T) {
	h := newHarness(t)
	rec := httptest.NewRecorder()

	h.auth.Register(rec, jsonRequest(t, http.MethodPost, "/api/v1/auth/register", RegisterRequest{
		Email:    "alice@example.com",
		Password: "s3cret1",
	}))

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decode[AuthResponse](t, rec)
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.User.ID)
	assert.Equal(t, "alice@example.com", resp.User.Email)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h := newHarness(t)

	first := httptest.NewRecorder()
	h.auth.Register(first, jsonRequest(t, http.MethodPost, "/", RegisterRequest{
		Email: "alice@example.com", Password: "s3cret1",
	}))
	require.Equal(t, http.StatusCreated, first.Code)

	second := httptest.NewRecorder()
	h.auth.Register(second, jsonRequest(t, http.MethodPost, "/", RegisterRequest{
		Email: "alice@example.com", Password: "other-password",
	}))

	assert.Equal(t, http.StatusConflict, second.Code)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"bad email", RegisterRequest{Email: "not-an-email", Password: "s3cret1"}},
		{"short password", RegisterRequest{Email: "alice@example.com", Password: "abc"}},
		{"missing password", RegisterRequest{Email: "alice@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			rec := httptest.NewRecorder()

			h.auth.Register(rec, jsonRequest(t, http.MethodPost, "/", tt.req))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLogin(t *testing.T) {
	h := newHarness(t)

	reg := httptest.NewRecorder()
	h.auth.Register(reg, jsonRequest(t, http.MethodPost, "/", RegisterRequest{
		Email: "alice@example.com", Password: "s3cret1",
	}))
	require.Equal(t, http.StatusCreated, reg.Code)

	rec := httptest.NewRecorder()
	h.auth.Login(rec, jsonRequest(t, http.MethodPost, "/", LoginRequest{
		Email: "alice@example.com", Password: "s3cret1",
	}))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[AuthResponse](t, rec)
	assert.NotEmpty(t, resp.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	h := newHarness(t)

	reg := httptest.NewRecorder()
	h.auth.Register(reg, jsonRequest(t, http.MethodPost, "/", RegisterRequest{
		Email: "alice@example.com", Password: "s3cret1",
	}))
	require.Equal(t, http.StatusCreated, reg.Code)

	rec := httptest.NewRecorder()
	h.auth.Login(rec, jsonRequest(t, http.MethodPost, "/", LoginRequest{
		Email: "alice@example.com", Password: "wrong",
	}))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_UnknownEmail(t *testing.T) {
	h := newHarness(t)
	rec := httptest.NewRecorder()

	h.auth.Login(rec, jsonRequest(t, http.MethodPost, "/", LoginRequest{
		Email: "ghost@example.com", Password: "whatever",
	}))

	// Indistinguishable from a wrong password
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdatePassword(t *testing.T) {
	h := newHarness(t)

	reg := httptest.NewRecorder()
	h.auth.Register(reg, jsonRequest(t, http.MethodPost, "/", RegisterRequest{
		Email: "alice@example.com", Password: "s3cret1",
	}))
	require.Equal(t, http.StatusCreated, reg.Code)
	userID := decode[AuthResponse](t, reg).User.ID

	rec := httptest.NewRecorder()
	req := asUser(jsonRequest(t, http.MethodPut, "/", UpdatePasswordRequest{
		NewPassword: "newpass1",
	}), userID, "alice@example.com")
	h.auth.UpdatePassword(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// Old password no longer works, new one does
	old := httptest.NewRecorder()
	h.auth.Login(old, jsonRequest(t, http.MethodPost, "/", LoginRequest{
		Email: "alice@example.com", Password: "s3cret1",
	}))
	assert.Equal(t, http.StatusUnauthorized, old.Code)

	fresh := httptest.NewRecorder()
	h.auth.Login(fresh, jsonRequest(t, http.MethodPost, "/", LoginRequest{
		Email: "alice@example.com", Password: "newpass1",
	}))
	assert.Equal(t, http.StatusOK, fresh.Code)
}

// Note handler

func createNote(t *testing.T, h *harness, userID string, req CreateNoteRequest) NoteResponse {
	t.Helper()
	rec := httptest.NewRecorder()
	h.notes.CreateNote(rec, asUser(jsonRequest(t, http.MethodPost, "/", req), userID, userID+"@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code)
	return decode[NoteResponse](t, rec)
}

func TestCreateNote_Defaults(t *testing.T) {
	h := newHarness(t)

	note := createNote(t, h, "user123", CreateNoteRequest{
		Title:   "Groceries",
		Content: "milk, eggs",
	})

	assert.NotEmpty(t, note.ID)
	assert.Equal(t, "General", note.Category)
	assert.Equal(t, "Medium", note.Priority)
	assert.Equal(t, note.CreatedAt, note.UpdatedAt)
}

func TestCreateNote_Validation(t *testing.T) {
	h := newHarness(t)
	rec := httptest.NewRecorder()

	h.notes.CreateNote(rec, asUser(jsonRequest(t, http.MethodPost, "/", CreateNoteRequest{
		Title: "no content",
	}), "user123", "u@example.com"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateNote_InvalidPriority(t *testing.T) {
	h := newHarness(t)
	rec := httptest.NewRecorder()

	h.notes.CreateNote(rec, asUser(jsonRequest(t, http.MethodPost, "/", CreateNoteRequest{
		Title: "t", Content: "c", Priority: "Urgent",
	}), "user123", "u@example.com"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetNote_NotFound(t *testing.T) {
	h := newHarness(t)
	rec := httptest.NewRecorder()

	req := asUser(httptest.NewRequest(http.MethodGet, "/", nil), "user123", "u@example.com")
	h.notes.GetNote(rec, withURLParam(req, "noteID", "missing"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateNote_Partial(t *testing.T) {
	h := newHarness(t)
	created := createNote(t, h, "user123", CreateNoteRequest{
		Title: "Original", Content: "original content", Category: "Work", Priority: "Low",
	})

	title := "Renamed"
	rec := httptest.NewRecorder()
	req := asUser(jsonRequest(t, http.MethodPut, "/", UpdateNoteRequest{Title: &title}), "user123", "u@example.com")
	h.notes.UpdateNote(rec, withURLParam(req, "noteID", created.ID))

	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[NoteResponse](t, rec)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "original content", updated.Content)
	assert.Equal(t, "Work", updated.Category)
	assert.Equal(t, "Low", updated.Priority)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdateNote_EmptyTitleRejected(t *testing.T) {
	h := newHarness(t)
	created := createNote(t, h, "user123", CreateNoteRequest{Title: "t", Content: "c"})

	empty := ""
	rec := httptest.NewRecorder()
	req := asUser(jsonRequest(t, http.MethodPut, "/", UpdateNoteRequest{Title: &empty}), "user123", "u@example.com")
	h.notes.UpdateNote(rec, withURLParam(req, "noteID", created.ID))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteNote_ThenGone(t *testing.T) {
	h := newHarness(t)
	created := createNote(t, h, "user123", CreateNoteRequest{Title: "t", Content: "c"})

	del := httptest.NewRecorder()
	delReq := asUser(httptest.NewRequest(http.MethodDelete, "/", nil), "user123", "u@example.com")
	h.notes.DeleteNote(del, withURLParam(delReq, "noteID", created.ID))
	require.Equal(t, http.StatusOK, del.Code)

	get := httptest.NewRecorder()
	getReq := asUser(httptest.NewRequest(http.MethodGet, "/", nil), "user123", "u@example.com")
	h.notes.GetNote(get, withURLParam(getReq, "noteID", created.ID))
	assert.Equal(t, http.StatusNotFound, get.Code)
}

func TestNotes_OwnerIsolation(t *testing.T) {
	h := newHarness(t)
	aliceNote := createNote(t, h, "alice", CreateNoteRequest{Title: "private", Content: "c"})

	// Bob cannot read Alice's note
	rec := httptest.NewRecorder()
	req := asUser(httptest.NewRequest(http.MethodGet, "/", nil), "bob", "bob@example.com")
	h.notes.GetNote(rec, withURLParam(req, "noteID", aliceNote.ID))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Bob's listing is empty
	list := httptest.NewRecorder()
	h.notes.ListNotes(list, asUser(httptest.NewRequest(http.MethodGet, "/", nil), "bob", "bob@example.com"))
	require.Equal(t, http.StatusOK, list.Code)
	assert.Empty(t, decode[[]NoteResponse](t, list))
}

func TestListNotes(t *testing.T) {
	h := newHarness(t)
	createNote(t, h, "user123", CreateNoteRequest{Title: "one", Content: "c"})
	createNote(t, h, "user123", CreateNoteRequest{Title: "two", Content: "c"})

	rec := httptest.NewRecorder()
	h.notes.ListNotes(rec, asUser(httptest.NewRequest(http.MethodGet, "/", nil), "user123", "u@example.com"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]NoteResponse](t, rec), 2)
}

// Stats handler

func TestGetStats(t *testing.T) {
	h := newHarness(t)
	createNote(t, h, "user123", CreateNoteRequest{Title: "urgent", Content: "c", Priority: "High"})
	createNote(t, h, "user123", CreateNoteRequest{Title: "later", Content: "c", Category: "Work", Priority: "Low"})

	rec := httptest.NewRecorder()
	h.stats.GetStats(rec, asUser(httptest.NewRequest(http.MethodGet, "/", nil), "user123", "u@example.com"))

	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[notes.Stats](t, rec)
	assert.Equal(t, 2, stats.TotalNotes)
	assert.Equal(t, 1, stats.HighPriority)
	assert.Equal(t, 2, stats.Categories)
	assert.Equal(t, map[string]int{"High": 1, "Medium": 0, "Low": 1}, stats.ByPriority)
}

func TestHandlers_RequireAuthContext(t *testing.T) {
	h := newHarness(t)

	rec := httptest.NewRecorder()
	h.notes.ListNotes(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	h.stats.GetStats(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	h.auth.Profile(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
