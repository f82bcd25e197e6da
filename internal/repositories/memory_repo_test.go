package repositories_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gudang/internal/apperrors"
	"gudang/internal/models"
	"gudang/internal/repositories"
)

func TestMockUserRepository_UniqueUsername(t *testing.T) {
	repo := repositories.NewMockUserRepository()

	first := &models.User{Username: "testuser", PasswordHash: "hash-1"}
	assert.NoError(t, repo.Create(first))
	assert.NotEmpty(t, first.ID)

	second := &models.User{Username: "testuser", PasswordHash: "hash-2"}
	err := repo.Create(second)
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	found, err := repo.FindByUsername("testuser")
	assert.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)
}

func TestMockUserRepository_FindAbsent(t *testing.T) {
	repo := repositories.NewMockUserRepository()

	user, err := repo.FindByUsername("nobody")
	assert.NoError(t, err)
	assert.Nil(t, user)

	user, err = repo.FindByID("missing-id")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestMockUserRepository_Delete(t *testing.T) {
	repo := repositories.NewMockUserRepository()

	user := &models.User{Username: "testuser", PasswordHash: "hash"}
	assert.NoError(t, repo.Create(user))
	assert.NoError(t, repo.Delete(user.ID))

	found, err := repo.FindByUsername("testuser")
	assert.NoError(t, err)
	assert.Nil(t, found)

	err = repo.Delete(user.ID)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func seedProducts(t *testing.T, repo *repositories.MockProductRepository, n int) []string {
	t.Helper()
	base := time.Now().Add(-time.Duration(n) * time.Minute)
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		p := &models.Product{
			Name:       fmt.Sprintf("Product %02d", i),
			Type:       "electronics",
			SKU:        fmt.Sprintf("SKU-%03d", i),
			Quantity:   i,
			PriceCents: int64(i) * 100,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
			UpdatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		assert.NoError(t, repo.Create(p))
		ids = append(ids, p.ID)
	}
	return ids
}

func TestMockProductRepository_FindAllNewestFirst(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	seedProducts(t, repo, 15)

	firstPage, err := repo.FindAll(10, 0)
	assert.NoError(t, err)
	assert.Len(t, firstPage, 10)
	// Newest first: the last seeded product leads the first page.
	assert.Equal(t, "SKU-014", firstPage[0].SKU)
	for i := 1; i < len(firstPage); i++ {
		assert.False(t, firstPage[i].CreatedAt.After(firstPage[i-1].CreatedAt))
	}

	secondPage, err := repo.FindAll(10, 10)
	assert.NoError(t, err)
	assert.Len(t, secondPage, 5)
	assert.Equal(t, "SKU-004", secondPage[0].SKU)

	beyond, err := repo.FindAll(10, 20)
	assert.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestMockProductRepository_Count(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	seedProducts(t, repo, 15)

	count, err := repo.Count()
	assert.NoError(t, err)
	assert.Equal(t, int64(15), count)
}

func TestMockProductRepository_UniqueSKU(t *testing.T) {
	repo := repositories.NewMockProductRepository()

	first := &models.Product{Name: "Laptop", Type: "electronics", SKU: "LAP-001"}
	assert.NoError(t, repo.Create(first))

	second := &models.Product{Name: "Another Laptop", Type: "electronics", SKU: "LAP-001"}
	err := repo.Create(second)
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	count, err := repo.Count()
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMockProductRepository_UpdateAndDelete(t *testing.T) {
	repo := repositories.NewMockProductRepository()

	product := &models.Product{Name: "Laptop", Type: "electronics", SKU: "LAP-001", Quantity: 5}
	assert.NoError(t, repo.Create(product))

	product.Quantity = 3
	assert.NoError(t, repo.Update(product))

	found, err := repo.FindByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, 3, found.Quantity)

	missing := &models.Product{ID: "missing-id", SKU: "XYZ-999"}
	err = repo.Update(missing)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	assert.NoError(t, repo.Delete(product.ID))
	found, err = repo.FindBySKU("LAP-001")
	assert.NoError(t, err)
	assert.Nil(t, found)
}
