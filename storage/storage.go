package storage

import (
	"context"

	"flowrelay/pkg/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type IStorage interface {
	Session() ISessionStorage
	Close()
	GetPool() *pgxpool.Pool
}

// ISessionStorage is the persisted key-value store behind the session:
// one record per chat, both slots written and cleared together.
type ISessionStorage interface {
	Get(ctx context.Context, chatID int64) (*models.SessionRecord, error)
	Put(ctx context.Context, rec *models.SessionRecord) error
	Delete(ctx context.Context, chatID int64) error
	FindChatsByUserID(ctx context.Context, userID int64) ([]int64, error)
}
