package workingcopy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"seftali/internal/upstream"
)

type MockPersister struct {
	mock.Mock
}

func (m *MockPersister) ReplaceWorkingCopyItems(ctx context.Context, id int64, items []upstream.ItemPatch) (*upstream.WorkingCopy, error) {
	args := m.Called(ctx, id, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*upstream.WorkingCopy), args.Error(1)
}

func (m *MockPersister) AddWorkingCopyItem(ctx context.Context, id, productID int64, qty int) (*upstream.WorkingCopy, error) {
	args := m.Called(ctx, id, productID, qty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*upstream.WorkingCopy), args.Error(1)
}

func (m *MockPersister) SubmitWorkingCopy(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func intPtr(v int) *int { return &v }

func testEditor() *Editor {
	return NewEditor(&upstream.WorkingCopy{
		ID:     10,
		Status: upstream.WorkingCopyActive,
		Items: []upstream.WorkingCopyItem{
			{ProductID: 1, ProductName: "Şeftali Suyu", UserQty: intPtr(5), Source: upstream.ItemSourceDraft},
			{ProductID: 2, ProductName: "Kayısı Suyu", UserQty: intPtr(2), Source: upstream.ItemSourceDraft},
		},
	})
}

func TestChangeQuantity_ZeroRejectedWithoutNetwork(t *testing.T) {
	mockSvc := new(MockPersister)
	e := testEditor()

	err := e.ChangeQuantity(context.Background(), mockSvc, 1, "0")

	assert.ErrorIs(t, err, ErrZeroQuantity)
	assert.Equal(t, 5, *e.Items()[0].UserQty)
	mockSvc.AssertNotCalled(t, "ReplaceWorkingCopyItems", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeQuantity_EmptyClearsQuantity(t *testing.T) {
	mockSvc := new(MockPersister)
	e := testEditor()

	mockSvc.On("ReplaceWorkingCopyItems", mock.Anything, int64(10), mock.MatchedBy(func(items []upstream.ItemPatch) bool {
		return items[0].UserQty == nil && *items[1].UserQty == 2
	})).Return(&upstream.WorkingCopy{ID: 10}, nil)

	err := e.ChangeQuantity(context.Background(), mockSvc, 1, "")

	assert.NoError(t, err)
	assert.Nil(t, e.Items()[0].UserQty)
	mockSvc.AssertExpectations(t)
}

func TestChangeQuantity_PersistsFullList(t *testing.T) {
	mockSvc := new(MockPersister)
	e := testEditor()

	mockSvc.On("ReplaceWorkingCopyItems", mock.Anything, int64(10), mock.MatchedBy(func(items []upstream.ItemPatch) bool {
		return len(items) == 2 && *items[0].UserQty == 9
	})).Return(&upstream.WorkingCopy{ID: 10}, nil)

	err := e.ChangeQuantity(context.Background(), mockSvc, 1, "9")

	assert.NoError(t, err)
	assert.Equal(t, 9, *e.Items()[0].UserQty)
}

func TestChangeQuantity_FailureRevertsToCommitted(t *testing.T) {
	mockSvc := new(MockPersister)
	e := testEditor()

	mockSvc.On("ReplaceWorkingCopyItems", mock.Anything, int64(10), mock.Anything).
		Return(nil, &upstream.Error{Status: 502, Detail: "bağlantı hatası"})

	err := e.ChangeQuantity(context.Background(), mockSvc, 1, "9")

	assert.Error(t, err)
	// optimistic edit rolled back
	assert.Equal(t, 5, *e.Items()[0].UserQty)
}

func TestChangeQuantity_UnknownProduct(t *testing.T) {
	mockSvc := new(MockPersister)
	e := testEditor()

	err := e.ChangeQuantity(context.Background(), mockSvc, 99, "3")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleRemoved_PreservesQuantity(t *testing.T) {
	mockSvc := new(MockPersister)
	e := testEditor()

	mockSvc.On("ReplaceWorkingCopyItems", mock.Anything, int64(10), mock.Anything).
		Return(&upstream.WorkingCopy{ID: 10}, nil)

	assert.NoError(t, e.ToggleRemoved(context.Background(), mockSvc, 1))
	assert.True(t, e.Items()[0].Removed)
	assert.Equal(t, 5, *e.Items()[0].UserQty)

	assert.NoError(t, e.ToggleRemoved(context.Background(), mockSvc, 1))
	assert.False(t, e.Items()[0].Removed)
	assert.Equal(t, 5, *e.Items()[0].UserQty)
}

func TestAddProduct_DuplicateRejectedWithoutNetwork(t *testing.T) {
	mockSvc := new(MockPersister)
	e := testEditor()

	err := e.AddProduct(context.Background(), mockSvc, 1)

	assert.ErrorIs(t, err, ErrAlreadyPresent)
	mockSvc.AssertNotCalled(t, "AddWorkingCopyItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddProduct_AdoptsServerCopy(t *testing.T) {
	mockSvc := new(MockPersister)
	e := testEditor()

	serverCopy := &upstream.WorkingCopy{
		ID: 10,
		Items: []upstream.WorkingCopyItem{
			{ProductID: 1, UserQty: intPtr(5), Source: upstream.ItemSourceDraft},
			{ProductID: 2, UserQty: intPtr(2), Source: upstream.ItemSourceDraft},
			{ProductID: 3, UserQty: intPtr(1), Source: upstream.ItemSourceManualAdd},
		},
	}
	mockSvc.On("AddWorkingCopyItem", mock.Anything, int64(10), int64(3), 1).Return(serverCopy, nil)

	err := e.AddProduct(context.Background(), mockSvc, 3)

	assert.NoError(t, err)
	items := e.Items()
	assert.Len(t, items, 3)
	assert.Equal(t, upstream.ItemSourceManualAdd, items[2].Source)
	mockSvc.AssertExpectations(t)
}

func TestSubmit_RemovedItemExcludedFromEffectiveSet(t *testing.T) {
	mockSvc := new(MockPersister)
	e := testEditor()

	mockSvc.On("ReplaceWorkingCopyItems", mock.Anything, int64(10), mock.Anything).
		Return(&upstream.WorkingCopy{ID: 10}, nil)
	mockSvc.On("SubmitWorkingCopy", mock.Anything, int64(10)).Return(nil)

	assert.NoError(t, e.ToggleRemoved(context.Background(), mockSvc, 1))

	effective := e.Effective()
	assert.Len(t, effective, 1)
	assert.Equal(t, int64(2), effective[0].ProductID)

	assert.NoError(t, e.Submit(context.Background(), mockSvc))
	assert.True(t, e.Submitted())
}

func TestSubmit_EmptyEffectiveSetNeverHitsNetwork(t *testing.T) {
	mockSvc := new(MockPersister)
	e := NewEditor(&upstream.WorkingCopy{
		ID: 10,
		Items: []upstream.WorkingCopyItem{
			{ProductID: 1, UserQty: nil},
			{ProductID: 2, UserQty: intPtr(4), Removed: true},
		},
	})

	err := e.Submit(context.Background(), mockSvc)

	assert.ErrorIs(t, err, ErrNothingSelected)
	mockSvc.AssertNotCalled(t, "SubmitWorkingCopy", mock.Anything, mock.Anything)
}

func TestSubmit_IsTerminal(t *testing.T) {
	mockSvc := new(MockPersister)
	e := testEditor()

	mockSvc.On("SubmitWorkingCopy", mock.Anything, int64(10)).Return(nil)

	assert.NoError(t, e.Submit(context.Background(), mockSvc))
	assert.ErrorIs(t, e.Submit(context.Background(), mockSvc), ErrSubmitted)
	assert.ErrorIs(t, e.ChangeQuantity(context.Background(), mockSvc, 1, "3"), ErrSubmitted)
}

func TestDeletedByDelivery(t *testing.T) {
	e := NewEditor(&upstream.WorkingCopy{ID: 11, Status: upstream.WorkingCopyDeletedByDelivery})
	assert.True(t, e.DeletedByDelivery())

	e = testEditor()
	assert.False(t, e.DeletedByDelivery())
}
