package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"flowrelay/pkg/logger"
	"flowrelay/pkg/models"
	"flowrelay/storage"
)

type sessionRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewSessionRepo(db *pgxpool.Pool, log logger.ILogger) storage.ISessionStorage {
	return &sessionRepo{db: db, log: log}
}

func (r *sessionRepo) Get(ctx context.Context, chatID int64) (*models.SessionRecord, error) {
	var rec models.SessionRecord
	query := `SELECT chat_id, token, user_json, user_id, updated_at FROM sessions WHERE chat_id = $1`
	err := r.db.QueryRow(ctx, query, chatID).Scan(
		&rec.ChatID, &rec.Token, &rec.UserJSON, &rec.UserID, &rec.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get session", logger.Error(err))
		return nil, err
	}
	return &rec, nil
}

// Put writes both slots in one statement so a reader never observes a
// token without its matching user snapshot.
func (r *sessionRepo) Put(ctx context.Context, rec *models.SessionRecord) error {
	query := `
		INSERT INTO sessions (chat_id, token, user_json, user_id, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (chat_id) DO UPDATE
		SET token = EXCLUDED.token,
			user_json = EXCLUDED.user_json,
			user_id = EXCLUDED.user_id,
			updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, rec.ChatID, rec.Token, rec.UserJSON, rec.UserID)
	if err != nil {
		r.log.Error("failed to put session", logger.Error(err))
		return err
	}
	return nil
}

func (r *sessionRepo) Delete(ctx context.Context, chatID int64) error {
	_, err := r.db.Exec(ctx, "DELETE FROM sessions WHERE chat_id=$1", chatID)
	if err != nil {
		r.log.Error("failed to delete session", logger.Error(err))
	}
	return err
}

func (r *sessionRepo) FindChatsByUserID(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, "SELECT chat_id FROM sessions WHERE user_id = $1", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		chats = append(chats, id)
	}
	return chats, nil
}
