package inventoryservice_test

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goestoque/internal/domain"
	apperror "goestoque/internal/errors"
	"goestoque/internal/pkg/idgen"
	"goestoque/internal/pkg/logger"
	"goestoque/internal/repository/itemrepo"
	"goestoque/internal/service/inventoryservice"
)

var (
	createdAt = time.Date(2024, 3, 16, 9, 0, 0, 0, time.UTC)
	rate      = domain.DefaultCurrencyRate()
)

type fixture struct {
	svc   *inventoryservice.Service
	repo  *itemrepo.ItemRepository
	clock *time.Time
}

func newFixture(items ...domain.Item) fixture {
	now := createdAt
	repo := itemrepo.NewItemRepository(items)
	svc := inventoryservice.NewService(repo, logger.New(io.Discard, "debug"),
		inventoryservice.WithIDGenerator(idgen.NewSequence("id-")),
		inventoryservice.WithClock(func() time.Time { return now }),
	)
	return fixture{svc: svc, repo: repo, clock: &now}
}

func teeDraft() domain.ItemDraft {
	return domain.ItemDraft{
		Name: "Tee", SKU: "TEE-1", Category: "Apparel",
		PurchasePrice: 20, SellingPrice: 39.99,
		Variations: []domain.VariationInput{
			{Color: "Red", Size: "M", Quantity: 3},
			{Color: "Blue", Size: "L", Quantity: 4},
		},
	}
}

// TestCreate_DerivesIDRAndQuantity: preços em SGD geram o lado IDR e a quantidade é a soma das variações.
func TestCreate_DerivesIDRAndQuantity(t *testing.T) {
	f := newFixture()

	item, err := f.svc.Create(teeDraft(), rate)

	require.NoError(t, err)
	assert.Equal(t, "id-1", item.ID)
	assert.Equal(t, float64(235294), item.PurchasePriceIDR)
	assert.Equal(t, float64(470471), item.SellingPriceIDR)
	assert.Equal(t, 7, item.Quantity)
	assert.Equal(t, "id-2", item.Variations[0].ID)
	assert.Equal(t, "id-3", item.Variations[1].ID)
	assert.Equal(t, createdAt, item.CreatedAt)
	assert.Equal(t, createdAt, item.LastUpdated)

	stored, err := f.repo.FindByID(item.ID)
	require.NoError(t, err)
	assert.Equal(t, item, stored)
}

func TestCreate_IDRAuthoritative(t *testing.T) {
	f := newFixture()
	draft := teeDraft()
	draft.PriceCurrency = domain.CurrencyIDR
	draft.PurchasePriceIDR = 234000
	draft.SellingPriceIDR = 468000

	item, err := f.svc.Create(draft, rate)

	require.NoError(t, err)
	assert.Equal(t, 19.89, item.PurchasePrice)
	assert.Equal(t, 39.78, item.SellingPrice)
	assert.Equal(t, float64(234000), item.PurchasePriceIDR)
}

func TestCreate_ValidationErrors(t *testing.T) {
	f := newFixture()

	draft := teeDraft()
	draft.Name = ""
	_, err := f.svc.Create(draft, rate)
	assert.IsType(t, &apperror.ValidationError{}, err)

	draft = teeDraft()
	draft.Variations[0].Quantity = -1
	_, err = f.svc.Create(draft, rate)
	assert.IsType(t, &apperror.ValidationError{}, err)

	_, err = f.svc.Create(teeDraft(), domain.CurrencyRate{IDRToSGD: 0})
	assert.IsType(t, &apperror.ValidationError{}, err)

	assert.Equal(t, 0, f.repo.Len())
}

// TestUpdate_KeepsIdentityAndVariationIDs: o ID, createdAt e IDs de variação informados sobrevivem.
func TestUpdate_KeepsIdentityAndVariationIDs(t *testing.T) {
	f := newFixture()
	item, err := f.svc.Create(teeDraft(), rate)
	require.NoError(t, err)

	*f.clock = createdAt.Add(time.Hour)
	draft := teeDraft()
	draft.Name = "Tee v2"
	draft.Variations = []domain.VariationInput{
		{ID: item.Variations[0].ID, Color: "Red", Size: "M", Quantity: 10},
		{Color: "Green", Size: "S", Quantity: 1},
	}

	updated, err := f.svc.Update(item.ID, draft, rate)

	require.NoError(t, err)
	assert.Equal(t, item.ID, updated.ID)
	assert.Equal(t, createdAt, updated.CreatedAt)
	assert.Equal(t, createdAt.Add(time.Hour), updated.LastUpdated)
	assert.Equal(t, "Tee v2", updated.Name)
	assert.Equal(t, item.Variations[0].ID, updated.Variations[0].ID)
	assert.Equal(t, 11, updated.Quantity)
}

func TestUpdate_DuplicateVariationIDsAndMissingItem(t *testing.T) {
	f := newFixture(domain.SeedItems(createdAt)...)

	draft := teeDraft()
	draft.Variations = []domain.VariationInput{
		{ID: "1-1", Color: "Black", Size: "Standard", Quantity: 1},
		{ID: "1-1", Color: "White", Size: "Standard", Quantity: 1},
	}
	_, err := f.svc.Update("1", draft, rate)
	assert.IsType(t, &apperror.ValidationError{}, err)

	stored, _ := f.repo.FindByID("1")
	assert.Equal(t, "Wireless Mouse", stored.Name)

	_, err = f.svc.Update("missing", teeDraft(), rate)
	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestAddAndRemoveVariation(t *testing.T) {
	f := newFixture(domain.SeedItems(createdAt)...)
	*f.clock = createdAt.Add(time.Minute)

	item, v, err := f.svc.AddVariation("1", domain.VariationInput{Color: "Black", Size: "Standard", Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, "id-1", v.ID)
	assert.Equal(t, 55, item.Quantity)
	assert.Len(t, item.Variations, 3)
	assert.Equal(t, createdAt.Add(time.Minute), item.LastUpdated)

	_, _, err = f.svc.AddVariation("1", domain.VariationInput{Color: "Black", Size: "Standard", Quantity: 0})
	assert.IsType(t, &apperror.ValidationError{}, err)

	item, removed, err := f.svc.RemoveVariation("1", "1-2")
	require.NoError(t, err)
	assert.Equal(t, 20, removed.Quantity)
	assert.Equal(t, 35, item.Quantity)

	_, _, err = f.svc.RemoveVariation("1", "1-2")
	assert.IsType(t, &apperror.NotFoundError{}, err)

	stored, _ := f.repo.FindByID("1")
	assert.Equal(t, stored.TotalQuantity(), stored.Quantity)
}

func TestDeleteAndList(t *testing.T) {
	f := newFixture(domain.SeedItems(createdAt)...)
	_, err := f.svc.Create(teeDraft(), rate)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete("1"))
	assert.IsType(t, &apperror.NotFoundError{}, f.svc.Delete("1"))

	items := f.svc.List()
	require.Len(t, items, 1)
	assert.Equal(t, "Tee", items[0].Name)

	_, err = f.svc.Get("1")
	assert.IsType(t, &apperror.NotFoundError{}, err)
}
