package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prizedraw-api/internal/domain"
)

func TestUserService_UpdateProfile(t *testing.T) {
	repo := newFakeUserRepo()
	alice := repo.add(domain.User{Username: "alice", Email: "alice@example.com", Mascot: "fox"})
	svc := NewUserService(repo)

	updated, err := svc.UpdateProfile(context.Background(), alice.ID, "owl", "")
	require.NoError(t, err)
	assert.Equal(t, "owl", updated.Mascot)
	assert.Equal(t, "alice@example.com", updated.Email)

	updated, err = svc.UpdateProfile(context.Background(), alice.ID, "", "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "owl", updated.Mascot)
	assert.Equal(t, "new@example.com", updated.Email)
}

func TestUserService_SetPremium(t *testing.T) {
	repo := newFakeUserRepo()
	alice := repo.add(domain.User{Username: "alice"})
	svc := NewUserService(repo)

	require.NoError(t, svc.SetPremium(context.Background(), alice.ID))
	assert.True(t, repo.users[alice.ID].IsPremium)

	// Upgrading twice is a no-op.
	require.NoError(t, svc.SetPremium(context.Background(), alice.ID))
	assert.True(t, repo.users[alice.ID].IsPremium)
}

func TestUserService_SetFlags(t *testing.T) {
	repo := newFakeUserRepo()
	alice := repo.add(domain.User{Username: "alice"})
	svc := NewUserService(repo)

	updated, err := svc.SetFlags(context.Background(), alice.ID, true, false)
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin)
	assert.False(t, updated.IsPremium)

	_, err = svc.SetFlags(context.Background(), 999, true, false)
	assert.Error(t, err)
}

func TestUserService_CreditWallet(t *testing.T) {
	repo := newFakeUserRepo()
	alice := repo.add(domain.User{Username: "alice"})
	svc := NewUserService(repo)

	require.NoError(t, svc.CreditWallet(context.Background(), alice.ID, 500))
	require.NoError(t, svc.CreditWallet(context.Background(), alice.ID, 250))
	assert.Equal(t, int64(750), repo.users[alice.ID].WalletBalance)
}
