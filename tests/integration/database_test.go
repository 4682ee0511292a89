package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/seu-repo/tradeinsight/internal/adapter/storage/postgres"
	"github.com/seu-repo/tradeinsight/internal/domain"
)

func newUser(email string) *domain.User {
	return &domain.User{
		ID:       uuid.New().String(),
		Name:     "Test User",
		Email:    email,
		Password: "hashed_password",
	}
}

func newDataset(userID, name string, records int) *domain.Dataset {
	ds := &domain.Dataset{
		ID:     uuid.New().String(),
		UserID: userID,
		Name:   name,
	}
	for i := 0; i < records; i++ {
		ds.Records = append(ds.Records, domain.DatasetRecord{
			ID:         uuid.New().String(),
			Position:   i,
			Product:    fmt.Sprintf("Product %d", i),
			Quantity:   float64(i + 1),
			TotalValue: float64(100 * (i + 1)),
			RawData:    datatypes.JSON(fmt.Sprintf(`{"Product":"Product %d"}`, i)),
		})
	}
	return ds
}

// TestDatabase_UserRepository tests user persistence through GORM
func TestDatabase_UserRepository(t *testing.T) {
	env := SetupTestEnvironment(t)
	CleanDatabase(t, env.DB)

	ctx := context.Background()
	repo := postgres.NewUserRepository(env.Gorm, env.Logger)
	user := newUser("test@example.com")

	t.Run("Save", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, user))
	})

	t.Run("FindByEmail", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "test@example.com")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("FindByID missing returns nil", func(t *testing.T) {
		found, err := repo.FindByID(ctx, uuid.New().String())
		assert.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("Email is unique", func(t *testing.T) {
		err := repo.Save(ctx, newUser("test@example.com"))
		assert.Error(t, err)
	})
}

// TestDatabase_DatasetRepository tests dataset persistence and record cascade
func TestDatabase_DatasetRepository(t *testing.T) {
	env := SetupTestEnvironment(t)
	CleanDatabase(t, env.DB)

	ctx := context.Background()
	users := postgres.NewUserRepository(env.Gorm, env.Logger)
	repo := postgres.NewDatasetRepository(env.Gorm, env.Logger)

	owner := newUser("owner@example.com")
	require.NoError(t, users.Save(ctx, owner))

	older := newDataset(owner.ID, "Q1", 3)
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := newDataset(owner.ID, "Q2", 5)

	t.Run("Create", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, older))
		require.NoError(t, repo.Create(ctx, newer))
		assert.Equal(t, 5, newer.RecordCount)
	})

	t.Run("FindByID preloads records", func(t *testing.T) {
		found, err := repo.FindByID(ctx, older.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Len(t, found.Records, 3)
		assert.Equal(t, 3, found.RecordCount)
		assert.JSONEq(t, `{"Product":"Product 0"}`, string(findRecord(found.Records, "Product 0").RawData))
	})

	t.Run("FindByID returns records in upload order", func(t *testing.T) {
		shuffled := newDataset(owner.ID, "shuffled", 4)
		for i := range shuffled.Records {
			shuffled.Records[i].Position = len(shuffled.Records) - 1 - i
		}
		require.NoError(t, repo.Create(ctx, shuffled))

		found, err := repo.FindByID(ctx, shuffled.ID)
		require.NoError(t, err)
		require.Len(t, found.Records, 4)
		for i, rec := range found.Records {
			assert.Equal(t, i, rec.Position)
			assert.Equal(t, fmt.Sprintf("Product %d", 3-i), rec.Product)
		}

		require.NoError(t, repo.Delete(ctx, shuffled.ID))
	})

	t.Run("ListByUser newest first with counts", func(t *testing.T) {
		list, err := repo.ListByUser(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Q2", list[0].Name)
		assert.Equal(t, 5, list[0].RecordCount)
		assert.Equal(t, 3, list[1].RecordCount)
		assert.Empty(t, list[0].Records)
	})

	t.Run("CountByUser", func(t *testing.T) {
		n, err := repo.CountByUser(ctx, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("Delete removes records", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, older.ID))

		found, err := repo.FindByID(ctx, older.ID)
		require.NoError(t, err)
		assert.Nil(t, found)

		// Check with raw SQL that no orphan rows remain
		var orphans int
		err = env.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM dataset_records WHERE dataset_id = $1`, older.ID).Scan(&orphans)
		require.NoError(t, err)
		assert.Equal(t, 0, orphans)
	})
}

func findRecord(records []domain.DatasetRecord, product string) domain.DatasetRecord {
	for _, r := range records {
		if r.Product == product {
			return r
		}
	}
	return domain.DatasetRecord{}
}
