package service

import (
	"context"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/repository"
)

type userService struct {
	userRepo  repository.UserRepository
	skillRepo repository.SkillRepository
}

func NewUserService(userRepo repository.UserRepository, skillRepo repository.SkillRepository) UserService {
	return &userService{userRepo: userRepo, skillRepo: skillRepo}
}

func (s *userService) GetProfile(ctx context.Context, userID int32) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	offered, err := s.skillRepo.ListByUser(ctx, userID, domain.SkillKindOffered)
	if err != nil {
		return nil, err
	}
	wanted, err := s.skillRepo.ListByUser(ctx, userID, domain.SkillKindWanted)
	if err != nil {
		return nil, err
	}
	user.Skills = append(offered, wanted...)
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int32, name, bio, avatarURL string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	user.Bio = bio
	if avatarURL != "" {
		user.AvatarURL = avatarURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
