package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prizedraw-api/internal/domain"
)

func TestAdminGate_Check(t *testing.T) {
	repo := newFakeUserRepo()
	admin := repo.add(domain.User{Username: "root", IsAdmin: true})
	regular := repo.add(domain.User{Username: "alice"})

	gate := NewAdminGate(repo)

	t.Run("no user short-circuits", func(t *testing.T) {
		status := gate.Check(context.Background(), 0, true)
		assert.False(t, status.Optimistic)
		assert.Nil(t, status.Confirmed)
		assert.False(t, status.Resolve())
	})

	t.Run("confirms an admin", func(t *testing.T) {
		status := gate.Check(context.Background(), admin.ID, true)
		assert.True(t, status.Optimistic)
		require.NotNil(t, status.Confirmed)
		assert.True(t, *status.Confirmed)
		assert.True(t, status.Resolve())
	})

	t.Run("confirmed answer overrides a stale hint", func(t *testing.T) {
		// Token still says admin but the flag was revoked since login.
		status := gate.Check(context.Background(), regular.ID, true)
		assert.True(t, status.Optimistic)
		require.NotNil(t, status.Confirmed)
		assert.False(t, *status.Confirmed)
		assert.False(t, status.Resolve())
	})

	t.Run("lookup failure fails closed", func(t *testing.T) {
		repo.err = errors.New("db down")
		defer func() { repo.err = nil }()

		status := gate.Check(context.Background(), admin.ID, true)
		require.NotNil(t, status.Confirmed)
		assert.False(t, *status.Confirmed)
		assert.False(t, status.Resolve())
	})
}

func TestAdminStatus_Resolve(t *testing.T) {
	confirmed := true
	denied := false

	assert.True(t, domain.AdminStatus{Optimistic: true}.Resolve())
	assert.False(t, domain.AdminStatus{Optimistic: true, Confirmed: &denied}.Resolve())
	assert.True(t, domain.AdminStatus{Confirmed: &confirmed}.Resolve())
	assert.False(t, domain.AdminStatus{}.Resolve())
}
