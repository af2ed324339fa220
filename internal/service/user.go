package service

import (
	"context"
	"fmt"

	"prizedraw-api/internal/domain"
	"prizedraw-api/internal/repository"
)

var ErrUserNotFound = repository.ErrUserNotFound

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	UpdateFlags(ctx context.Context, id uint, isAdmin, isPremium bool) error
	CreditWallet(ctx context.Context, id uint, amount int64) error
	List(ctx context.Context) ([]domain.User, error)
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

// UpdateProfile applies the self-service profile fields. Empty values
// leave the current ones in place.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, mascot, email string) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if mascot != "" {
		user.Mascot = mascot
	}
	if email != "" {
		user.Email = email
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// SetFlags is the admin write path for the isAdmin/isPremium toggles.
func (s *UserService) SetFlags(ctx context.Context, userID uint, isAdmin, isPremium bool) (domain.User, error) {
	if err := s.repo.UpdateFlags(ctx, userID, isAdmin, isPremium); err != nil {
		return domain.User{}, fmt.Errorf("s.repo.UpdateFlags -> %w", err)
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) SetPremium(ctx context.Context, userID uint) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if user.IsPremium {
		return nil
	}

	if err = s.repo.UpdateFlags(ctx, userID, user.IsAdmin, true); err != nil {
		return fmt.Errorf("s.repo.UpdateFlags -> %w", err)
	}

	return nil
}

func (s *UserService) CreditWallet(ctx context.Context, userID uint, amount int64) error {
	if err := s.repo.CreditWallet(ctx, userID, amount); err != nil {
		return fmt.Errorf("s.repo.CreditWallet -> %w", err)
	}

	return nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return users, nil
}
