package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/repository"
)

type skillRepository struct {
	db *sql.DB
}

func NewSkillRepository(db *sql.DB) repository.SkillRepository {
	return &skillRepository{db: db}
}

func (r *skillRepository) Create(ctx context.Context, s *domain.Skill) error {
	query := `INSERT INTO user_skills (user_id, kind, name, category, description, rate, level, position, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7,
	                  (SELECT COALESCE(MAX(position), 0) + 1 FROM user_skills WHERE user_id = $1 AND kind = $2),
	                  $8)
	          RETURNING id, position`
	now := time.Now().Format("2006-01-02")
	s.CreatedOn = now
	return r.db.QueryRowContext(ctx, query, s.UserID, s.Kind, s.Name, s.Category, s.Description, s.Rate, s.Level, s.CreatedOn).Scan(&s.ID, &s.Position)
}

func (r *skillRepository) GetByID(ctx context.Context, id int32) (*domain.Skill, error) {
	s := &domain.Skill{}
	query := `SELECT id, user_id, kind, name, COALESCE(category, ''), COALESCE(description, ''), rate, level, position, created_on
	          FROM user_skills WHERE id = $1`
	var createdOn time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.UserID, &s.Kind, &s.Name, &s.Category, &s.Description, &s.Rate, &s.Level, &s.Position, &createdOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	s.CreatedOn = createdOn.Format("2006-01-02")
	return s, nil
}

func (r *skillRepository) ListByUser(ctx context.Context, userID int32, kind domain.SkillKind) ([]domain.Skill, error) {
	query := `SELECT id, user_id, kind, name, COALESCE(category, ''), COALESCE(description, ''), rate, level, position, created_on
	          FROM user_skills WHERE user_id = $1 AND kind = $2 ORDER BY position ASC`
	rows, err := r.db.QueryContext(ctx, query, userID, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var skills []domain.Skill
	for rows.Next() {
		var s domain.Skill
		var createdOn time.Time
		if err := rows.Scan(&s.ID, &s.UserID, &s.Kind, &s.Name, &s.Category, &s.Description, &s.Rate, &s.Level, &s.Position, &createdOn); err != nil {
			return nil, err
		}
		s.CreatedOn = createdOn.Format("2006-01-02")
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

func (r *skillRepository) Delete(ctx context.Context, id, userID int32) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM user_skills WHERE id = $1 AND user_id = $2`, id, userID)
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

func (r *skillRepository) ListMarketplace(ctx context.Context, excludeUserID int32, page, pageSize int32) ([]domain.MarketplaceSkill, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT s.id, s.user_id, s.kind, s.name, COALESCE(s.category, ''), COALESCE(s.description, ''), s.rate, s.level, s.position, s.created_on,
	                 u.name, COALESCE(u.avatar_url, '')
	          FROM user_skills s JOIN users u ON u.id = s.user_id
	          WHERE s.kind = 'OFFERED' AND s.user_id <> $1
	          ORDER BY s.created_on DESC, s.id DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, excludeUserID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var count int32
	countQuery := `SELECT count(*) FROM user_skills WHERE kind = 'OFFERED' AND user_id <> $1`
	if err := r.db.QueryRowContext(ctx, countQuery, excludeUserID).Scan(&count); err != nil {
		return nil, 0, err
	}

	var skills []domain.MarketplaceSkill
	for rows.Next() {
		var s domain.MarketplaceSkill
		var createdOn time.Time
		if err := rows.Scan(&s.ID, &s.UserID, &s.Kind, &s.Name, &s.Category, &s.Description, &s.Rate, &s.Level, &s.Position, &createdOn, &s.UserName, &s.UserAvatar); err != nil {
			return nil, 0, err
		}
		s.CreatedOn = createdOn.Format("2006-01-02")
		skills = append(skills, s)
	}
	return skills, count, rows.Err()
}
