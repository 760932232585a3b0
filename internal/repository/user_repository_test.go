package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xwingdb/squad-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Squad{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func TestUserRepository_GetOrCreate(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewUserRepository(db)

	user, err := repo.GetOrCreate("google", "12345", Profile{Name: "Wedge Antilles", Email: "wedge@example.com"})
	require.NoError(t, err)
	require.Equal(t, "user-google-12345", user.ID)
	require.Equal(t, models.TypeUser, user.Type)
	require.Equal(t, "google", user.Provider)
	require.Equal(t, "12345", user.ExternalID)
	require.Equal(t, "Wedge Antilles", user.Name)
}

func TestUserRepository_GetOrCreate_Idempotent(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewUserRepository(db)

	first, err := repo.GetOrCreate("google", "12345", Profile{Name: "Wedge Antilles"})
	require.NoError(t, err)

	// Second call with a different profile returns the existing record
	// unchanged.
	second, err := repo.GetOrCreate("google", "12345", Profile{Name: "Someone Else"})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "Wedge Antilles", second.Name)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestUserRepository_GetOrCreate_ProviderIsPartOfKey(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewUserRepository(db)

	google, err := repo.GetOrCreate("google", "12345", Profile{})
	require.NoError(t, err)
	facebook, err := repo.GetOrCreate("facebook", "12345", Profile{})
	require.NoError(t, err)

	require.NotEqual(t, google.ID, facebook.ID)
}

func TestUserRepository_GetOrCreate_SurvivesLostInsertRace(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewUserRepository(db)

	// Simulate the loser of an insert race: the record appears between the
	// lookup and the insert. ON CONFLICT DO NOTHING plus the re-fetch must
	// still hand back the winner's record.
	winner := &models.User{
		ID:         models.UserID("google", "12345"),
		Type:       models.TypeUser,
		Provider:   "google",
		ExternalID: "12345",
		Name:       "Winner",
	}
	require.NoError(t, db.Create(winner).Error)

	user, err := repo.GetOrCreate("google", "12345", Profile{Name: "Loser"})
	require.NoError(t, err)
	require.Equal(t, winner.ID, user.ID)
	require.Equal(t, "Winner", user.Name)
}

func TestUserRepository_FindByID_NotFound(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.FindByID("user-google-missing")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
