package forms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remodelsite/internal/database"
)

func newLocalStore(t *testing.T) *LocalStore {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	store, err := NewLocalStore(db)
	require.NoError(t, err)
	return store
}

func TestLocalStore_Lifecycle(t *testing.T) {
	store := newLocalStore(t)
	ctx := context.Background()

	id, err := store.Create(ctx, &Lead{Name: "Jane", Email: "jane@example.com", Phone: "(657) 888-0026", Source: "hero"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	lead, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Jane", lead.Name)
	assert.Empty(t, lead.Project)

	require.NoError(t, store.UpdateDetails(ctx, id, Details{Project: ProjectKitchen, Budget: Budget25to50k, Financing: FinancingNo}))
	require.NoError(t, store.SaveNotes(ctx, id, "white oak cabinets"))

	lead, err = store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Kitchen", lead.Project)
	assert.Equal(t, "$25k - $50k", lead.Budget)
	assert.Equal(t, "No", lead.Financing)
	assert.Equal(t, "white oak cabinets", lead.Notes)
}

func TestLocalStore_UnknownID(t *testing.T) {
	store := newLocalStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrSubmissionNotFound)
	assert.ErrorIs(t, store.SaveNotes(ctx, "missing", "x"), ErrSubmissionNotFound)
	assert.ErrorIs(t, store.UpdateDetails(ctx, "missing", Details{}), ErrSubmissionNotFound)
}

func TestOptionValidity(t *testing.T) {
	assert.True(t, ProjectKitchenBath.Valid())
	assert.False(t, Project("Garage").Valid())
	assert.True(t, BudgetOver100k.Valid())
	assert.False(t, Budget("").Valid())
	assert.True(t, FinancingYes.Valid())
	assert.False(t, Financing("Maybe").Valid())
}
