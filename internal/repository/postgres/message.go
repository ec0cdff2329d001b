package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/repository"
)

type messageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, m *domain.Message) error {
	var proposal []byte
	if m.Proposal != nil {
		var err error
		proposal, err = json.Marshal(m.Proposal)
		if err != nil {
			return err
		}
	}

	query := `INSERT INTO messages (sender_id, recipient_id, conversation_key, kind, body, proposal, status, is_read, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9) RETURNING id, created_on`
	now := time.Now().UTC()
	var createdOn time.Time
	err := r.db.QueryRowContext(ctx, query,
		m.SenderID, m.RecipientID, m.ConversationKey, m.Kind, m.Body, nullableJSON(proposal), m.Status, m.IsRead, now,
	).Scan(&m.ID, &createdOn)
	if err != nil {
		return err
	}
	m.CreatedOn = createdOn.Format(time.RFC3339)
	m.UpdatedOn = m.CreatedOn
	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, id int32) (*domain.Message, error) {
	query := `SELECT id, sender_id, recipient_id, conversation_key, kind, COALESCE(body, ''), proposal, status, is_read, created_on, updated_on
	          FROM messages WHERE id = $1`
	m, err := scanMessage(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return m, err
}

func (r *messageRepository) TransitionStatus(ctx context.Context, id int32, from, to domain.MessageStatus) (bool, error) {
	query := `UPDATE messages SET status = $1, updated_on = $2 WHERE id = $3 AND status = $4`
	result, err := r.db.ExecContext(ctx, query, to, time.Now().UTC(), id, from)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, id int32) error {
	result, err := r.db.ExecContext(ctx, `UPDATE messages SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *messageRepository) ListByConversation(ctx context.Context, conversationKey string) ([]domain.Message, error) {
	// Ascending by creation time: the thread reads top to bottom.
	query := `SELECT id, sender_id, recipient_id, conversation_key, kind, COALESCE(body, ''), proposal, status, is_read, created_on, updated_on
	          FROM messages WHERE conversation_key = $1 ORDER BY created_on ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, conversationKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []domain.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, *m)
	}
	return msgs, rows.Err()
}

func (r *messageRepository) ListConversations(ctx context.Context, userID int32) ([]domain.Conversation, error) {
	// One row per conversation key: the newest message, the partner's public
	// fields and the unread count for this user.
	query := `
		SELECT DISTINCT ON (m.conversation_key)
		       m.id, m.sender_id, m.recipient_id, m.conversation_key, m.kind, COALESCE(m.body, ''), m.proposal, m.status, m.is_read, m.created_on, m.updated_on,
		       u.id, u.name, COALESCE(u.avatar_url, ''),
		       (SELECT count(*) FROM messages um
		        WHERE um.conversation_key = m.conversation_key AND um.recipient_id = $1 AND NOT um.is_read)
		FROM messages m
		JOIN users u ON u.id = CASE WHEN m.sender_id = $1 THEN m.recipient_id ELSE m.sender_id END
		WHERE m.sender_id = $1 OR m.recipient_id = $1
		ORDER BY m.conversation_key, m.created_on DESC, m.id DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convos []domain.Conversation
	for rows.Next() {
		var m domain.Message
		var proposal []byte
		var createdOn, updatedOn time.Time
		partner := &domain.User{}
		var unread int32
		if err := rows.Scan(
			&m.ID, &m.SenderID, &m.RecipientID, &m.ConversationKey, &m.Kind, &m.Body, &proposal, &m.Status, &m.IsRead, &createdOn, &updatedOn,
			&partner.ID, &partner.Name, &partner.AvatarURL, &unread,
		); err != nil {
			return nil, err
		}
		m.CreatedOn = createdOn.Format(time.RFC3339)
		m.UpdatedOn = updatedOn.Format(time.RFC3339)
		if len(proposal) > 0 {
			m.Proposal = &domain.ExchangeProposal{}
			if err := json.Unmarshal(proposal, m.Proposal); err != nil {
				return nil, err
			}
		}
		convos = append(convos, domain.Conversation{
			Partner:     partner,
			LastMessage: &m,
			UnreadCount: unread,
		})
	}
	return convos, rows.Err()
}

func (r *messageRepository) UnreadCount(ctx context.Context, userID int32) (int32, error) {
	var count int32
	query := `SELECT count(*) FROM messages WHERE recipient_id = $1 AND NOT is_read`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&count)
	return count, err
}

func (r *messageRepository) ListStalePending(ctx context.Context, olderThan time.Time) ([]domain.Message, error) {
	query := `SELECT id, sender_id, recipient_id, conversation_key, kind, COALESCE(body, ''), proposal, status, is_read, created_on, updated_on
	          FROM messages
	          WHERE kind = $1 AND status = $2 AND created_on < $3
	          ORDER BY created_on ASC`
	rows, err := r.db.QueryContext(ctx, query, domain.MessageKindExchange, domain.MessageStatusPending, olderThan)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []domain.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, *m)
	}
	return msgs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMessage(row rowScanner) (*domain.Message, error) {
	m := &domain.Message{}
	var proposal []byte
	var createdOn, updatedOn time.Time
	err := row.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.ConversationKey, &m.Kind, &m.Body, &proposal, &m.Status, &m.IsRead, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	m.CreatedOn = createdOn.Format(time.RFC3339)
	m.UpdatedOn = updatedOn.Format(time.RFC3339)
	if len(proposal) > 0 {
		m.Proposal = &domain.ExchangeProposal{}
		if err := json.Unmarshal(proposal, m.Proposal); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func nullableJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}
