package bot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"flowrelay/pkg/api"
	"flowrelay/pkg/logger"
	"flowrelay/pkg/models"
	"flowrelay/pkg/session"

	tele "gopkg.in/telebot.v3"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...logger.Field)    {}
func (nopLogger) Error(string, ...logger.Field)   {}
func (nopLogger) Warning(string, ...logger.Field) {}

type memSessions struct {
	recs map[int64]*models.SessionRecord
}

func (m *memSessions) Get(_ context.Context, chatID int64) (*models.SessionRecord, error) {
	return m.recs[chatID], nil
}

func (m *memSessions) Put(_ context.Context, rec *models.SessionRecord) error {
	m.recs[rec.ChatID] = rec
	return nil
}

func (m *memSessions) Delete(_ context.Context, chatID int64) error {
	delete(m.recs, chatID)
	return nil
}

func (m *memSessions) FindChatsByUserID(context.Context, int64) ([]int64, error) {
	return nil, nil
}

// stubContext implements the slice of tele.Context the denial path
// touches; anything else panics the test.
type stubContext struct {
	tele.Context

	sender *tele.User
	sent   []interface{}
}

func (s *stubContext) Sender() *tele.User { return s.sender }

func (s *stubContext) Send(what interface{}, _ ...interface{}) error {
	s.sent = append(s.sent, what)
	return nil
}

func (s *stubContext) Respond(...*tele.CallbackResponse) error { return nil }

func newTestBot(backend string) *Bot {
	apiClient := api.New(backend, nopLogger{})
	store := &memSessions{recs: make(map[int64]*models.SessionRecord)}
	return &Bot{
		Type:     BotTypeClient,
		Log:      nopLogger{},
		API:      apiClient,
		Sessions: session.NewManager(store, apiClient, nopLogger{}),
		Convos:   make(map[int64]*Convo),
	}
}

func TestSubmitOfferWithoutSessionNeverReachesBackend(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	b := newTestBot(srv.URL)
	c := &stubContext{sender: &tele.User{ID: 42}}
	b.Convos[42] = &Convo{State: StateIdle, OfferDraft: &models.OfferDraft{Description: "crates"}}

	if err := b.submitOffer(c); err != nil {
		t.Fatal(err)
	}
	if calls != 0 {
		t.Fatalf("backend saw %d calls from an unauthenticated submit, want none", calls)
	}
	if len(c.sent) == 0 {
		t.Fatal("the user must land on the entry screen, not silence")
	}
}
