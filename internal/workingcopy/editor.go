package workingcopy

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"seftali/internal/upstream"
)

var (
	ErrZeroQuantity    = errors.New("zero quantity not allowed, remove the item instead")
	ErrNotFound        = errors.New("item not found in working copy")
	ErrAlreadyPresent  = errors.New("product already in working copy")
	ErrNothingSelected = errors.New("select at least one item")
	ErrSubmitted       = errors.New("working copy already submitted")
)

// Persister is the slice of the order service the editor needs. Every edit
// persists the full current item list, not a delta, so out-of-order network
// completions converge to last-write-wins on the whole list. Two sessions
// editing the same working copy are not merged safely; there is exactly one
// editor per session.
type Persister interface {
	ReplaceWorkingCopyItems(ctx context.Context, id int64, items []upstream.ItemPatch) (*upstream.WorkingCopy, error)
	AddWorkingCopyItem(ctx context.Context, id, productID int64, qty int) (*upstream.WorkingCopy, error)
	SubmitWorkingCopy(ctx context.Context, id int64) error
}

// Editor manages one mutable working copy. Local edits apply optimistically;
// when persistence fails the editor reverts to the last server-confirmed
// list and returns the error.
type Editor struct {
	id        int64
	status    string
	items     []upstream.WorkingCopyItem
	committed []upstream.WorkingCopyItem
	submitted bool
}

// NewEditor wraps a working copy freshly loaded from the server.
func NewEditor(wc *upstream.WorkingCopy) *Editor {
	e := &Editor{
		id:     wc.ID,
		status: wc.Status,
		items:  cloneItems(wc.Items),
	}
	e.committed = cloneItems(e.items)
	return e
}

func (e *Editor) ID() int64 { return e.id }

// DeletedByDelivery reports whether the server invalidated the previous copy
// because a delivery arrived mid-edit. Informational only; the reloaded copy
// stays editable.
func (e *Editor) DeletedByDelivery() bool {
	return e.status == upstream.WorkingCopyDeletedByDelivery
}

// ChangeQuantity updates one item's quantity. Empty input clears the
// quantity (not yet decided); exactly zero is rejected so the user removes
// the item instead; anything else must parse as an integer.
func (e *Editor) ChangeQuantity(ctx context.Context, svc Persister, productID int64, raw string) error {
	if e.submitted {
		return ErrSubmitted
	}
	item := e.find(productID)
	if item == nil {
		return ErrNotFound
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		item.UserQty = nil
		return e.persist(ctx, svc)
	}

	qty, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("parse quantity %q: %w", raw, err)
	}
	if qty == 0 {
		return ErrZeroQuantity
	}

	item.UserQty = &qty
	return e.persist(ctx, svc)
}

// ToggleRemoved flips the removed flag; toggling back restores the item with
// its quantity untouched.
func (e *Editor) ToggleRemoved(ctx context.Context, svc Persister, productID int64) error {
	if e.submitted {
		return ErrSubmitted
	}
	item := e.find(productID)
	if item == nil {
		return ErrNotFound
	}
	item.Removed = !item.Removed
	return e.persist(ctx, svc)
}

// AddProduct appends a manually added item. A duplicate id is rejected before
// any network call; on success the server's returned copy replaces local
// state, since the server owns the new item's identity and ordering.
func (e *Editor) AddProduct(ctx context.Context, svc Persister, productID int64) error {
	if e.submitted {
		return ErrSubmitted
	}
	if e.find(productID) != nil {
		return ErrAlreadyPresent
	}

	wc, err := svc.AddWorkingCopyItem(ctx, e.id, productID, 1)
	if err != nil {
		return err
	}
	e.items = cloneItems(wc.Items)
	e.committed = cloneItems(wc.Items)
	return nil
}

// Submit sends the working copy off as an order. The effective set is every
// item that is not removed and has a positive quantity; an empty effective
// set never reaches the network. Submission is terminal.
func (e *Editor) Submit(ctx context.Context, svc Persister) error {
	if e.submitted {
		return ErrSubmitted
	}
	if len(e.Effective()) == 0 {
		return ErrNothingSelected
	}
	if err := svc.SubmitWorkingCopy(ctx, e.id); err != nil {
		return err
	}
	e.submitted = true
	return nil
}

// Effective returns the items that would make it into the order.
func (e *Editor) Effective() []upstream.WorkingCopyItem {
	var out []upstream.WorkingCopyItem
	for _, item := range e.items {
		if item.Removed {
			continue
		}
		if item.UserQty == nil || *item.UserQty <= 0 {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (e *Editor) Items() []upstream.WorkingCopyItem {
	return cloneItems(e.items)
}

func (e *Editor) Submitted() bool { return e.submitted }

func (e *Editor) persist(ctx context.Context, svc Persister) error {
	patches := make([]upstream.ItemPatch, 0, len(e.items))
	for _, item := range e.items {
		patches = append(patches, upstream.ItemPatch{
			ProductID: item.ProductID,
			UserQty:   item.UserQty,
			Removed:   item.Removed,
		})
	}

	if _, err := svc.ReplaceWorkingCopyItems(ctx, e.id, patches); err != nil {
		e.items = cloneItems(e.committed)
		return err
	}
	e.committed = cloneItems(e.items)
	return nil
}

func (e *Editor) find(productID int64) *upstream.WorkingCopyItem {
	for i := range e.items {
		if e.items[i].ProductID == productID {
			return &e.items[i]
		}
	}
	return nil
}

func cloneItems(items []upstream.WorkingCopyItem) []upstream.WorkingCopyItem {
	out := make([]upstream.WorkingCopyItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].UserQty != nil {
			q := *out[i].UserQty
			out[i].UserQty = &q
		}
	}
	return out
}
