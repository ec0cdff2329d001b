package service

import (
	"context"
	"fmt"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/repository"
)

type skillService struct {
	skillRepo repository.SkillRepository
}

func NewSkillService(skillRepo repository.SkillRepository) SkillService {
	return &skillService{skillRepo: skillRepo}
}

func (s *skillService) AddSkill(ctx context.Context, userID int32, skill *domain.Skill) error {
	if skill.Name == "" {
		return fmt.Errorf("skill name is required")
	}
	if skill.Rate < 1 {
		return fmt.Errorf("skill rate must be at least 1")
	}
	if skill.Level == "" {
		skill.Level = domain.SkillLevelBeginner
	}
	if !domain.ValidSkillLevel(skill.Level) {
		return fmt.Errorf("invalid skill level %q", skill.Level)
	}
	if skill.Kind != domain.SkillKindOffered && skill.Kind != domain.SkillKindWanted {
		return fmt.Errorf("invalid skill kind %q", skill.Kind)
	}

	skill.UserID = userID
	return s.skillRepo.Create(ctx, skill)
}

func (s *skillService) RemoveSkill(ctx context.Context, userID, skillID int32) error {
	// The user_id predicate in the repo enforces owner-only removal.
	return s.skillRepo.Delete(ctx, skillID, userID)
}

func (s *skillService) ListSkills(ctx context.Context, userID int32, kind domain.SkillKind) ([]domain.Skill, error) {
	return s.skillRepo.ListByUser(ctx, userID, kind)
}

func (s *skillService) BrowseMarketplace(ctx context.Context, userID int32, page, pageSize int32) ([]domain.MarketplaceSkill, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.skillRepo.ListMarketplace(ctx, userID, page, pageSize)
}
