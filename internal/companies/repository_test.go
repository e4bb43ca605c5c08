package companies

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstReturnsOldestCompany(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	oldest, err := repo.Create(ctx, &CreateCompanyRequest{Name: "Lava Master Centro"})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = repo.Create(ctx, &CreateCompanyRequest{Name: "Lava Master Zona Sul"})
	require.NoError(t, err)

	first, err := repo.First(ctx)
	require.NoError(t, err)
	assert.Equal(t, oldest.ID, first.ID)
}

func TestFirstWithoutCompanies(t *testing.T) {
	repo := NewInMemoryRepository()

	_, err := repo.First(context.Background())
	assert.ErrorIs(t, err, ErrNoCompanies)
}

func TestGetByIDNotFound(t *testing.T) {
	repo := NewInMemoryRepository()

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestCreateRequiresName(t *testing.T) {
	repo := NewInMemoryRepository()

	_, err := repo.Create(context.Background(), &CreateCompanyRequest{})
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestListOrderedByCreation(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	for _, name := range []string{"primeira", "segunda", "terceira"} {
		_, err := repo.Create(ctx, &CreateCompanyRequest{Name: name})
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "primeira", list[0].Name)
	assert.Equal(t, "terceira", list[2].Name)
}
