package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stemkits/backend/internal/domain/account"
	"github.com/stemkits/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newMockDB opens a GORM connection backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormCustomerRepository_FindByID(t *testing.T) {
	t.Run("finds existing customer", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(db)

		customerID := uuid.New()
		userID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "user_id", "email", "first_name", "last_name", "lifetime_spend", "loyalty_points", "status"}).
			AddRow(customerID, userID, "ada@example.com", "Ada", "Lovelace", decimal.NewFromInt(250), 120, "active")

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(customerID, 1).
			WillReturnRows(rows)

		customer, err := repo.FindByID(context.Background(), customerID)

		require.NoError(t, err)
		assert.Equal(t, customerID, customer.ID)
		assert.Equal(t, "ada@example.com", customer.Email)
		assert.Equal(t, 120, customer.LoyaltyPoints)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to not found", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(db)

		customerID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(customerID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		customer, err := repo.FindByID(context.Background(), customerID)

		assert.Nil(t, customer)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository_FindByEmail(t *testing.T) {
	t.Run("lowercases email before querying", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(db)

		customerID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "email", "first_name", "last_name", "status"}).
			AddRow(customerID, "ada@example.com", "Ada", "Lovelace", "active")

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE email = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("ada@example.com", 1).
			WillReturnRows(rows)

		customer, err := repo.FindByEmail(context.Background(), "Ada@Example.COM")

		require.NoError(t, err)
		assert.Equal(t, customerID, customer.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository_SaveWithLock(t *testing.T) {
	t.Run("returns conflict when version does not match", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(db)

		customer, err := account.NewCustomer(uuid.New(), "ada@example.com", "Ada", "Lovelace")
		require.NoError(t, err)
		customer.IncrementVersion()

		mock.ExpectExec(`UPDATE "customers" SET .* WHERE \(id = \$\d+ AND version = \$\d+\).*`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.SaveWithLock(context.Background(), customer)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository_ExistsByEmail(t *testing.T) {
	t.Run("reports existing email", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(db)

		rows := sqlmock.NewRows([]string{"count"}).AddRow(1)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "customers" WHERE email = \$1`).
			WithArgs("ada@example.com").
			WillReturnRows(rows)

		exists, err := repo.ExistsByEmail(context.Background(), "ada@example.com")

		require.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerRepository_SaveWithLock_Sqlite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&account.Customer{}))
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()

	t.Run("persists marketing opt-out", func(t *testing.T) {
		customer, err := account.NewCustomer(uuid.New(), "grace@example.com", "Grace", "Hopper")
		require.NoError(t, err)
		customer.SetMarketingOptIn(true)
		require.NoError(t, repo.Save(ctx, customer))

		customer.SetMarketingOptIn(false)
		require.NoError(t, repo.SaveWithLock(ctx, customer))

		found, err := repo.FindByID(ctx, customer.ID)
		require.NoError(t, err)
		assert.False(t, found.MarketingOptIn)
	})

	t.Run("persists points spent down to zero", func(t *testing.T) {
		customer, err := account.NewCustomer(uuid.New(), "alan@example.com", "Alan", "Turing")
		require.NoError(t, err)
		require.NoError(t, customer.RecordOrderSpend(decimal.NewFromInt(40)))
		require.NoError(t, repo.Save(ctx, customer))

		customer.LoyaltyPoints = 0
		customer.IncrementVersion()
		require.NoError(t, repo.SaveWithLock(ctx, customer))

		found, err := repo.FindByID(ctx, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, found.LoyaltyPoints)
	})
}
