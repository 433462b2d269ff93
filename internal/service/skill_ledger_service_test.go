package service

import (
	"testing"

	"github.com/skilltrek/backend/internal/model"
	"github.com/skilltrek/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertVerifiedCreatesRecord(t *testing.T) {
	db := newTestDB(t)
	ledger := NewSkillLedgerService(repository.NewUserSkillRepository(db))

	require.NoError(t, ledger.UpsertVerified(nil, 1, "Python", 80.0, model.LevelAdvanced))

	skills, err := ledger.ListForUser(1)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "Python", skills[0].SkillName)
	assert.Equal(t, model.LevelAdvanced, skills[0].SelfReportedLevel)
	assert.True(t, skills[0].IsVerified)
	require.NotNil(t, skills[0].VerifiedScore)
	assert.Equal(t, 80.0, *skills[0].VerifiedScore)
}

func TestUpsertVerifiedCreateDefaultsLevelToBeginner(t *testing.T) {
	db := newTestDB(t)
	ledger := NewSkillLedgerService(repository.NewUserSkillRepository(db))

	// Interview upserts pass no level.
	require.NoError(t, ledger.UpsertVerified(nil, 1, "go", 75.0, ""))

	skills, err := ledger.ListForUser(1)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, model.LevelBeginner, skills[0].SelfReportedLevel)
	assert.True(t, skills[0].IsVerified)
}

func TestUpsertVerifiedMatchesCaseInsensitively(t *testing.T) {
	db := newTestDB(t)
	ledger := NewSkillLedgerService(repository.NewUserSkillRepository(db))

	require.NoError(t, ledger.UpsertVerified(nil, 1, "Python", 50.0, model.LevelIntermediate))
	require.NoError(t, ledger.UpsertVerified(nil, 1, "python", 90.0, model.LevelAdvanced))

	skills, err := ledger.ListForUser(1)
	require.NoError(t, err)
	require.Len(t, skills, 1, "case variants must collapse onto one record")
	assert.Equal(t, 90.0, *skills[0].VerifiedScore)
	assert.Equal(t, model.LevelAdvanced, skills[0].SelfReportedLevel)
}

func TestUpsertVerifiedEmptyLevelKeepsExisting(t *testing.T) {
	db := newTestDB(t)
	ledger := NewSkillLedgerService(repository.NewUserSkillRepository(db))

	require.NoError(t, ledger.UpsertVerified(nil, 1, "react", 72.0, model.LevelAdvanced))
	require.NoError(t, ledger.UpsertVerified(nil, 1, "react", 65.0, ""))

	skills, err := ledger.ListForUser(1)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, model.LevelAdvanced, skills[0].SelfReportedLevel)
	assert.Equal(t, 65.0, *skills[0].VerifiedScore)
}

func TestUpsertVerifiedIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	ledger := NewSkillLedgerService(repository.NewUserSkillRepository(db))

	for i := 0; i < 3; i++ {
		require.NoError(t, ledger.UpsertVerified(nil, 1, "sql", 70.0, model.LevelIntermediate))
	}

	skills, err := ledger.ListForUser(1)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, 70.0, *skills[0].VerifiedScore)
}

func TestListForUserScopedByUser(t *testing.T) {
	db := newTestDB(t)
	ledger := NewSkillLedgerService(repository.NewUserSkillRepository(db))

	require.NoError(t, ledger.UpsertVerified(nil, 1, "go", 70.0, model.LevelIntermediate))
	require.NoError(t, ledger.UpsertVerified(nil, 2, "go", 90.0, model.LevelAdvanced))

	skills, err := ledger.ListForUser(1)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, 70.0, *skills[0].VerifiedScore)
}
