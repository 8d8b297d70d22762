package service

import (
	"testing"

	"jeeprep_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDelta(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db), db)

	user := createTestUser(t, db, "Ledger", 10, 100)

	fresh, err := svc.ApplyDelta(user.ID, 15, 2)
	require.NoError(t, err)
	assert.Equal(t, 25, fresh.XP)
	assert.Equal(t, 102, fresh.Coins)

	// Negative balances are allowed.
	fresh, err = svc.ApplyDelta(user.ID, -100, -200)
	require.NoError(t, err)
	assert.Equal(t, -75, fresh.XP)
	assert.Equal(t, -98, fresh.Coins)
}

func TestUpdateName(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db), db)

	user := createTestUser(t, db, "Before", 0, 100)

	fresh, err := svc.UpdateName(user.ID, "After")
	require.NoError(t, err)
	assert.Equal(t, "After", fresh.Name)
	assert.Equal(t, user.Email, fresh.Email)
}
