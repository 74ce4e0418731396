package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/Jepersonsam/my-finance-app/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type RepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo *Repository[models.Transaction]
}

func (s *RepositoryTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err, "open test database")

	sqlDB, err := db.DB()
	require.NoError(s.T(), err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(s.T(), db.AutoMigrate(&models.User{}, &models.Transaction{}))

	s.db = db
	s.repo = NewRepository[models.Transaction](db)
}

func (s *RepositoryTestSuite) seedUsers() (uint, uint) {
	userA := models.User{Email: "a@example.com", Name: "A", PasswordHash: "x"}
	userB := models.User{Email: "b@example.com", Name: "B", PasswordHash: "x"}
	require.NoError(s.T(), s.db.Create(&userA).Error)
	require.NoError(s.T(), s.db.Create(&userB).Error)
	return userA.ID, userB.ID
}

func (s *RepositoryTestSuite) newTransaction(userID uint, amount float64) models.Transaction {
	return models.Transaction{
		UserID:   userID,
		Type:     "expense",
		Category: "Makanan",
		Amount:   amount,
		Date:     time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	}
}

func (s *RepositoryTestSuite) TestListNewestCreatedFirst() {
	userA, _ := s.seedUsers()

	for i := 1; i <= 3; i++ {
		tx := s.newTransaction(userA, float64(i))
		// spread created_at so ordering is observable
		tx.CreatedAt = time.Date(2024, 1, i, 0, 0, 0, 0, time.UTC)
		require.NoError(s.T(), s.repo.Create(&tx))
	}

	records, err := s.repo.List(userA)
	require.NoError(s.T(), err)
	require.Len(s.T(), records, 3)
	assert.Equal(s.T(), float64(3), records[0].Amount)
	assert.Equal(s.T(), float64(1), records[2].Amount)
}

func (s *RepositoryTestSuite) TestListScopedToOwner() {
	userA, userB := s.seedUsers()

	txA := s.newTransaction(userA, 100)
	txB := s.newTransaction(userB, 200)
	require.NoError(s.T(), s.repo.Create(&txA))
	require.NoError(s.T(), s.repo.Create(&txB))

	records, err := s.repo.List(userA)
	require.NoError(s.T(), err)
	require.Len(s.T(), records, 1)
	assert.Equal(s.T(), float64(100), records[0].Amount)
}

func (s *RepositoryTestSuite) TestGetForeignRecordIsNotFound() {
	userA, userB := s.seedUsers()

	tx := s.newTransaction(userB, 100)
	require.NoError(s.T(), s.repo.Create(&tx))

	_, err := s.repo.Get(userA, tx.ID)
	assert.ErrorIs(s.T(), err, ErrNotFound)

	got, err := s.repo.Get(userB, tx.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), tx.ID, got.ID)
}

func (s *RepositoryTestSuite) TestGetMissingRecordIsNotFound() {
	userA, _ := s.seedUsers()
	_, err := s.repo.Get(userA, 9999)
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *RepositoryTestSuite) TestDeleteForeignRecordIsNotFound() {
	userA, userB := s.seedUsers()

	tx := s.newTransaction(userB, 100)
	require.NoError(s.T(), s.repo.Create(&tx))

	assert.ErrorIs(s.T(), s.repo.Delete(userA, tx.ID), ErrNotFound)

	// still there for its owner
	_, err := s.repo.Get(userB, tx.ID)
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.repo.Delete(userB, tx.ID))
	_, err = s.repo.Get(userB, tx.ID)
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *RepositoryTestSuite) TestSaveRoundTrip() {
	userA, _ := s.seedUsers()

	tx := s.newTransaction(userA, 100)
	require.NoError(s.T(), s.repo.Create(&tx))

	got, err := s.repo.Get(userA, tx.ID)
	require.NoError(s.T(), err)

	got.Amount = 250
	require.NoError(s.T(), s.repo.Save(got))

	again, err := s.repo.Get(userA, tx.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), float64(250), again.Amount)
}

func (s *RepositoryTestSuite) TestListScopeFilter() {
	userA, _ := s.seedUsers()

	for day := 1; day <= 5; day++ {
		tx := s.newTransaction(userA, float64(day))
		tx.Date = time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)
		require.NoError(s.T(), s.repo.Create(&tx))
	}

	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)
	records, err := s.repo.List(userA, func(q *gorm.DB) *gorm.DB {
		return q.Where("date >= ? AND date <= ?", start, end)
	})
	require.NoError(s.T(), err)
	assert.Len(s.T(), records, 3, fmt.Sprintf("records: %+v", records))
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
