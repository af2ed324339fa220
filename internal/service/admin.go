package service

import (
	"context"

	"go.uber.org/zap"

	"prizedraw-api/internal/domain"
)

type AdminUserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

// AdminGate decides whether the current session has administrative
// capability. The session token carries an optimistic hint so a freshly
// logged-in admin is treated as one straight away; the database check is
// authoritative and always overrides the hint once it resolves.
type AdminGate struct {
	repo AdminUserRepository
}

func NewAdminGate(repo AdminUserRepository) *AdminGate {
	return &AdminGate{
		repo: repo,
	}
}

// Check resolves admin status for one user. No user means no database
// call and an immediate non-admin answer. A failed lookup confirms
// non-admin rather than surfacing the error: granting admin access by
// accident is the worse failure mode.
func (g *AdminGate) Check(ctx context.Context, userID uint, optimistic bool) domain.AdminStatus {
	if userID == 0 {
		return domain.AdminStatus{}
	}

	status := domain.AdminStatus{Optimistic: optimistic}

	user, err := g.repo.FindByID(ctx, userID)
	if err != nil {
		zap.L().Warn("admin check failed closed",
			zap.Uint("user_id", userID), zap.Error(err))
		confirmed := false
		status.Confirmed = &confirmed

		return status
	}

	status.Confirmed = &user.IsAdmin

	return status
}

// IsAdmin is the resolved answer for callers that do not care about the
// two phases.
func (g *AdminGate) IsAdmin(ctx context.Context, userID uint, optimistic bool) bool {
	return g.Check(ctx, userID, optimistic).Resolve()
}
