// Package session is the single source of truth for "who is using this
// chat": the bearer token plus the last-known user snapshot, persisted
// per chat so a session survives restarts the way the web front end's
// survived page reloads.
package session

import (
	"context"
	"encoding/json"

	"flowrelay/pkg/api"
	"flowrelay/pkg/logger"
	"flowrelay/pkg/models"
	"flowrelay/storage"
)

type Manager struct {
	stg storage.ISessionStorage
	api *api.Client
	log logger.ILogger
}

func NewManager(stg storage.ISessionStorage, apiClient *api.Client, log logger.ILogger) *Manager {
	return &Manager{stg: stg, api: apiClient, log: log}
}

// Open reconstructs a chat's session from the persisted store. A missing
// record, a storage failure or a corrupt user slot all come back as an
// empty (or token-only) session, never as an error: every screen must
// still render.
func (m *Manager) Open(ctx context.Context, chatID int64) *Session {
	s := &Session{chatID: chatID, m: m}

	rec, err := m.stg.Get(ctx, chatID)
	if err != nil {
		m.log.Error("failed to load session", logger.Error(err), logger.Int64("chat_id", chatID))
		return s
	}
	if rec == nil {
		return s
	}

	s.token = rec.Token
	if len(rec.UserJSON) > 0 {
		var user models.User
		if err := json.Unmarshal(rec.UserJSON, &user); err != nil {
			m.log.Warning("corrupt user slot, treating as absent", logger.Error(err), logger.Int64("chat_id", chatID))
		} else {
			s.user = &user
		}
	}
	return s
}

// FindChats lists every chat currently holding a session for the given
// account, so account-level events can reach the person behind it.
func (m *Manager) FindChats(ctx context.Context, userID int64) ([]int64, error) {
	return m.stg.FindChatsByUserID(ctx, userID)
}

// Session is one chat's view of the store, opened per update and
// discarded afterwards. It satisfies api.TokenSource.
type Session struct {
	chatID int64
	m      *Manager
	token  string
	user   *models.User
}

func (s *Session) ChatID() int64 { return s.chatID }

func (s *Session) Token() string { return s.token }

func (s *Session) User() *models.User { return s.user }

func (s *Session) SetToken(ctx context.Context, token string) error {
	prev := s.token
	s.token = token
	if err := s.persist(ctx); err != nil {
		s.token = prev
		return err
	}
	return nil
}

func (s *Session) SetUser(ctx context.Context, user *models.User) error {
	prev := s.user
	s.user = user
	if err := s.persist(ctx); err != nil {
		s.user = prev
		return err
	}
	return nil
}

// Clear drops both slots together; there is no state where one survives
// without the other.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.m.stg.Delete(ctx, s.chatID); err != nil {
		return err
	}
	s.token = ""
	s.user = nil
	return nil
}

// Login exchanges credentials for a token, fetches the identity behind
// it, and only then commits both in a single write. A failure at any
// step leaves the stored session exactly as it was.
func (s *Session) Login(ctx context.Context, email, password string) (*models.User, error) {
	token, err := s.m.api.Bind(nil).Auth().Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	user, err := s.m.api.Bind(api.StaticToken(token)).Auth().CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	prevToken, prevUser := s.token, s.user
	s.token = token
	s.user = user
	if err := s.persist(ctx); err != nil {
		s.token, s.user = prevToken, prevUser
		return nil, err
	}
	return user, nil
}

// Logout clears the session; the bot performs the unconditional return
// to the entry screen.
func (s *Session) Logout(ctx context.Context) error {
	return s.Clear(ctx)
}

func (s *Session) persist(ctx context.Context) error {
	rec := &models.SessionRecord{
		ChatID: s.chatID,
		Token:  s.token,
	}
	if s.user != nil {
		data, err := json.Marshal(s.user)
		if err != nil {
			return err
		}
		rec.UserJSON = data
		id := s.user.ID
		rec.UserID = &id
	}
	return s.m.stg.Put(ctx, rec)
}
