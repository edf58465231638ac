package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"flowrelay/pkg/api"
	"flowrelay/pkg/logger"
	"flowrelay/pkg/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...logger.Field)    {}
func (nopLogger) Error(string, ...logger.Field)   {}
func (nopLogger) Warning(string, ...logger.Field) {}

// memStore is an in-memory ISessionStorage with failure injection and
// a write counter.
type memStore struct {
	recs    map[int64]*models.SessionRecord
	puts    int
	failPut bool
}

func newMemStore() *memStore {
	return &memStore{recs: make(map[int64]*models.SessionRecord)}
}

func (m *memStore) Get(_ context.Context, chatID int64) (*models.SessionRecord, error) {
	rec, ok := m.recs[chatID]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (m *memStore) Put(_ context.Context, rec *models.SessionRecord) error {
	if m.failPut {
		return errors.New("disk on fire")
	}
	m.puts++
	cp := *rec
	m.recs[rec.ChatID] = &cp
	return nil
}

func (m *memStore) Delete(_ context.Context, chatID int64) error {
	delete(m.recs, chatID)
	return nil
}

func (m *memStore) FindChatsByUserID(_ context.Context, userID int64) ([]int64, error) {
	var chats []int64
	for chat, rec := range m.recs {
		if rec.UserID != nil && *rec.UserID == userID {
			chats = append(chats, chat)
		}
	}
	return chats, nil
}

func newManager(stg *memStore, apiClient *api.Client) *Manager {
	return NewManager(stg, apiClient, nopLogger{})
}

func TestSetTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	stg := newMemStore()
	m := newManager(stg, api.New("http://unused", nopLogger{}))

	sess := m.Open(ctx, 42)
	if sess.Token() != "" {
		t.Fatal("fresh session must have no token")
	}
	if err := sess.SetToken(ctx, "tok-1"); err != nil {
		t.Fatal(err)
	}

	again := m.Open(ctx, 42)
	if again.Token() != "tok-1" {
		t.Fatalf("reopened token = %q, want tok-1", again.Token())
	}
}

func TestSetUserRoundTrip(t *testing.T) {
	ctx := context.Background()
	stg := newMemStore()
	m := newManager(stg, api.New("http://unused", nopLogger{}))

	user := &models.User{ID: 7, Email: "c@example.com", Role: models.RoleClient, AccountStatus: models.StatusApproved}
	sess := m.Open(ctx, 42)
	if err := sess.SetUser(ctx, user); err != nil {
		t.Fatal(err)
	}

	got := m.Open(ctx, 42).User()
	if got == nil || got.ID != 7 || got.Email != "c@example.com" || got.Role != models.RoleClient {
		t.Fatalf("reopened user = %+v, want the stored snapshot", got)
	}
}

func TestClearDropsBothSlots(t *testing.T) {
	ctx := context.Background()
	stg := newMemStore()
	m := newManager(stg, api.New("http://unused", nopLogger{}))

	sess := m.Open(ctx, 42)
	sess.SetToken(ctx, "tok")
	sess.SetUser(ctx, &models.User{ID: 1, Email: "x@example.com"})

	if err := sess.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if sess.Token() != "" || sess.User() != nil {
		t.Fatal("clear must wipe both slots in memory")
	}

	again := m.Open(ctx, 42)
	if again.Token() != "" || again.User() != nil {
		t.Fatal("clear must wipe both slots in the store")
	}
}

func TestPersistFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	stg := newMemStore()
	m := newManager(stg, api.New("http://unused", nopLogger{}))

	sess := m.Open(ctx, 42)
	sess.SetToken(ctx, "tok-1")

	stg.failPut = true
	if err := sess.SetToken(ctx, "tok-2"); err == nil {
		t.Fatal("expected persist error")
	}
	if sess.Token() != "tok-1" {
		t.Fatalf("token = %q after failed persist, want the old tok-1", sess.Token())
	}
}

func TestCorruptUserSlotReadsAsAbsent(t *testing.T) {
	ctx := context.Background()
	stg := newMemStore()
	stg.recs[42] = &models.SessionRecord{ChatID: 42, Token: "tok", UserJSON: []byte("{nope")}
	m := newManager(stg, api.New("http://unused", nopLogger{}))

	sess := m.Open(ctx, 42)
	if sess.Token() != "tok" {
		t.Fatal("token slot must survive a corrupt user slot")
	}
	if sess.User() != nil {
		t.Fatal("corrupt user slot must read as absent")
	}
}

func TestLoginCommitsBothSlotsAtOnce(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			if r.FormValue("username") != "c@example.com" {
				t.Errorf("login username = %q", r.FormValue("username"))
			}
			json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-xyz", "token_type": "bearer"})
		case "/me":
			if r.Header.Get("Authorization") != "Bearer tok-xyz" {
				t.Errorf("me auth header = %q", r.Header.Get("Authorization"))
			}
			json.NewEncoder(w).Encode(models.User{ID: 9, Email: "c@example.com", Role: models.RoleClient, AccountStatus: models.StatusApproved})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	stg := newMemStore()
	m := newManager(stg, api.New(srv.URL, nopLogger{}))

	sess := m.Open(ctx, 42)
	user, err := sess.Login(ctx, "c@example.com", "pw")
	if err != nil {
		t.Fatal(err)
	}
	if user.ID != 9 {
		t.Fatalf("login user ID = %d, want 9", user.ID)
	}
	if stg.puts != 1 {
		t.Fatalf("login made %d writes, want exactly one commit", stg.puts)
	}

	again := m.Open(ctx, 42)
	if again.Token() != "tok-xyz" || again.User() == nil || again.User().ID != 9 {
		t.Fatal("both slots must be committed together")
	}
}

func TestLoginPendingApprovalLeavesNoPartialState(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Account pending admin approval. Please wait for approval to access the system."})
	}))
	defer srv.Close()

	stg := newMemStore()
	m := newManager(stg, api.New(srv.URL, nopLogger{}))

	sess := m.Open(ctx, 42)
	if _, err := sess.Login(ctx, "c@example.com", "pw"); err == nil {
		t.Fatal("expected a denial")
	} else if api.Denial(err) != api.ReasonPendingApproval {
		t.Fatalf("denial = %q, want pending approval", api.Denial(err))
	}

	if stg.puts != 0 {
		t.Fatalf("failed login wrote %d records, want none", stg.puts)
	}
	if sess.Token() != "" || sess.User() != nil {
		t.Fatal("failed login must leave the session empty")
	}
}

func TestLoginIdentityFetchFailureCommitsNothing(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/login" {
			json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-xyz"})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "boom"})
	}))
	defer srv.Close()

	stg := newMemStore()
	m := newManager(stg, api.New(srv.URL, nopLogger{}))

	sess := m.Open(ctx, 42)
	if _, err := sess.Login(ctx, "c@example.com", "pw"); err == nil {
		t.Fatal("expected an error from the identity fetch")
	}
	if stg.puts != 0 || sess.Token() != "" {
		t.Fatal("a half-finished login must not commit the token")
	}
}

func TestFindChats(t *testing.T) {
	ctx := context.Background()
	stg := newMemStore()
	m := newManager(stg, api.New("http://unused", nopLogger{}))

	sess := m.Open(ctx, 42)
	sess.SetUser(ctx, &models.User{ID: 7})

	chats, err := m.FindChats(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(chats) != 1 || chats[0] != 42 {
		t.Fatalf("chats = %v, want [42]", chats)
	}
}
