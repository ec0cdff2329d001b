package postgres

import (
	"database/sql"

	"skillswap-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.SkillRepository
	repository.MessageRepository
	repository.LedgerRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		SkillRepository:        NewSkillRepository(db),
		MessageRepository:      NewMessageRepository(db),
		LedgerRepository:       NewLedgerRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
