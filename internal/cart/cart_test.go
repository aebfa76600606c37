package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"seftali/internal/upstream"
)

type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) StartWorkingCopy(ctx context.Context) (*upstream.WorkingCopy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*upstream.WorkingCopy), args.Error(1)
}

func (m *MockSubmitter) ReplaceWorkingCopyQuantities(ctx context.Context, id int64, items []upstream.QuantityPatch) (*upstream.WorkingCopy, error) {
	args := m.Called(ctx, id, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*upstream.WorkingCopy), args.Error(1)
}

func (m *MockSubmitter) SubmitWorkingCopy(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func seeded() *Cart {
	c := New()
	c.Seed([]upstream.DraftSuggestion{
		{ProductID: 1, ProductName: "Şeftali Suyu", SuggestedQty: 3},
		{ProductID: 2, ProductName: "Kayısı Suyu", SuggestedQty: 5},
		{ProductID: 3, ProductName: "Vişne Suyu", SuggestedQty: 0},
	})
	return c
}

func TestSeed_SkipsZeroSuggestions(t *testing.T) {
	c := seeded()

	assert.Equal(t, 2, c.Count())
	assert.Equal(t, 8, c.TotalQuantity())

	items := c.Items()
	assert.Equal(t, int64(1), items[0].ProductID)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAdjust_ToZeroRemovesEntry(t *testing.T) {
	c := seeded()

	c.Adjust(1, -3)

	assert.Equal(t, 1, c.Count())
	for _, item := range c.Items() {
		assert.NotEqual(t, int64(1), item.ProductID)
	}
}

func TestAdjust_AbsentProductIsNoOp(t *testing.T) {
	c := seeded()

	c.Adjust(99, -5)
	c.Adjust(99, 2)

	assert.Equal(t, 2, c.Count())
	assert.Equal(t, 8, c.TotalQuantity())
}

func TestAdjust_NeverNegative(t *testing.T) {
	c := seeded()

	c.Adjust(2, -100)

	assert.Equal(t, 1, c.Count())
	for _, item := range c.Items() {
		assert.GreaterOrEqual(t, item.Quantity, 1)
	}
}

func TestSetQuantity(t *testing.T) {
	c := seeded()

	c.SetQuantity(1, "7")
	assert.Equal(t, 7, c.Items()[0].Quantity)

	// non-numeric removes
	c.SetQuantity(1, "abc")
	assert.Equal(t, 1, c.Count())

	// zero and negative remove too
	c.SetQuantity(2, "0")
	assert.Equal(t, 0, c.Count())
}

func TestAdd_DefaultsToSuggestion(t *testing.T) {
	c := seeded()
	c.Remove(1)

	err := c.Add(upstream.Product{ID: 1, Name: "Şeftali Suyu"}, nil, nil)

	assert.NoError(t, err)
	items := c.Items()
	assert.Equal(t, 3, items[len(items)-1].Quantity)
}

func TestAdd_DefaultsToOneWithoutSuggestion(t *testing.T) {
	c := New()

	err := c.Add(upstream.Product{ID: 42, Name: "Nar Suyu"}, nil, nil)

	assert.NoError(t, err)
	assert.Equal(t, 1, c.Items()[0].Quantity)
}

func TestAdd_RejectsNonPositive(t *testing.T) {
	c := seeded()
	zero := 0

	err := c.Add(upstream.Product{ID: 42, Name: "Nar Suyu"}, &zero, nil)

	assert.ErrorIs(t, err, ErrNotPositive)
	assert.Equal(t, 2, c.Count())
}

func TestTotals(t *testing.T) {
	c := New()
	price := decimal.NewFromFloat(12.5)
	c.Seed([]upstream.DraftSuggestion{
		{ProductID: 1, ProductName: "Şeftali Suyu", SuggestedQty: 2, Price: &price},
		{ProductID: 2, ProductName: "Kayısı Suyu", SuggestedQty: 4}, // price not yet available
	})

	assert.Equal(t, 2, c.Count())
	assert.Equal(t, 6, c.TotalQuantity())
	assert.True(t, c.TotalPrice().Equal(decimal.NewFromFloat(25.0)))
}

func TestSubmit_EmptyCartNeverHitsNetwork(t *testing.T) {
	mockSvc := new(MockSubmitter)
	c := New()

	err := c.Submit(context.Background(), mockSvc)

	assert.ErrorIs(t, err, ErrEmpty)
	mockSvc.AssertNotCalled(t, "StartWorkingCopy", mock.Anything)
}

func TestSubmit_SuccessClearsCart(t *testing.T) {
	mockSvc := new(MockSubmitter)
	c := seeded()

	wc := &upstream.WorkingCopy{ID: 77, Status: upstream.WorkingCopyActive}
	mockSvc.On("StartWorkingCopy", mock.Anything).Return(wc, nil)
	mockSvc.On("ReplaceWorkingCopyQuantities", mock.Anything, int64(77), []upstream.QuantityPatch{
		{ProductID: 1, Quantity: 3},
		{ProductID: 2, Quantity: 5},
	}).Return(wc, nil)
	mockSvc.On("SubmitWorkingCopy", mock.Anything, int64(77)).Return(nil)

	err := c.Submit(context.Background(), mockSvc)

	assert.NoError(t, err)
	assert.Equal(t, 0, c.Count())
	mockSvc.AssertExpectations(t)
}

func TestSubmit_FailureLeavesCartIntact(t *testing.T) {
	mockSvc := new(MockSubmitter)
	c := seeded()

	wc := &upstream.WorkingCopy{ID: 77}
	mockSvc.On("StartWorkingCopy", mock.Anything).Return(wc, nil)
	mockSvc.On("ReplaceWorkingCopyQuantities", mock.Anything, int64(77), mock.Anything).
		Return(nil, &upstream.Error{Status: 502, Detail: "sunucu hatası"})

	err := c.Submit(context.Background(), mockSvc)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sunucu hatası")
	assert.Equal(t, 2, c.Count())
	mockSvc.AssertNotCalled(t, "SubmitWorkingCopy", mock.Anything, mock.Anything)
}
