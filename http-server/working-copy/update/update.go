package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"seftali/internal/session"
	"seftali/internal/upstream"
	"seftali/internal/workingcopy"
)

type Response struct {
	Items  []upstream.WorkingCopyItem `json:"items"`
	Status string                     `json:"status"`
	Error  string                     `json:"error,omitempty"`
}

type QuantityRequest struct {
	ProductID int64  `json:"product_id"`
	Value     string `json:"value"`
}

// ChangeQuantity edits one item's quantity. Empty input clears the quantity;
// exactly zero is rejected (the item should be removed instead); a failed
// upstream persist reverts the edit and surfaces the error.
func ChangeQuantity(log *slog.Logger, svc workingcopy.Persister, store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.workingcopy.ChangeQuantity"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		sess, editor, done := resolve(w, r, store)
		if done {
			return
		}
		defer sess.Unlock()

		var req QuantityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid json", slog.String("error", err.Error()))
			http.Error(w, "Geçersiz istek", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := editor.ChangeQuantity(ctx, svc, req.ProductID, req.Value); err != nil {
			writeEditorError(w, r, log, err, "Miktar sıfır olamaz, ürünü kaldırın")
			return
		}

		render.JSON(w, r, Response{Items: editor.Items(), Status: "ok"})
	}
}

type ToggleRequest struct {
	ProductID int64 `json:"product_id"`
}

// ToggleRemoved flips an item's removed flag.
func ToggleRemoved(log *slog.Logger, svc workingcopy.Persister, store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.workingcopy.ToggleRemoved"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		sess, editor, done := resolve(w, r, store)
		if done {
			return
		}
		defer sess.Unlock()

		var req ToggleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid json", slog.String("error", err.Error()))
			http.Error(w, "Geçersiz istek", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := editor.ToggleRemoved(ctx, svc, req.ProductID); err != nil {
			writeEditorError(w, r, log, err, "")
			return
		}

		render.JSON(w, r, Response{Items: editor.Items(), Status: "ok"})
	}
}

type AddProductRequest struct {
	ProductID int64 `json:"product_id"`
}

// AddProduct appends a manually added item; a duplicate product id is
// rejected without touching the network.
func AddProduct(log *slog.Logger, svc workingcopy.Persister, store *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.workingcopy.AddProduct"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		sess, editor, done := resolve(w, r, store)
		if done {
			return
		}
		defer sess.Unlock()

		var req AddProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("invalid json", slog.String("error", err.Error()))
			http.Error(w, "Geçersiz istek", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := editor.AddProduct(ctx, svc, req.ProductID); err != nil {
			if errors.Is(err, workingcopy.ErrAlreadyPresent) {
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, Response{Error: "Ürün zaten listede"})
				return
			}
			writeEditorError(w, r, log, err, "")
			return
		}

		render.JSON(w, r, Response{Items: editor.Items(), Status: "ok"})
	}
}

// resolve locks the session and fetches the active editor. On failure the
// response is already written and the session is unlocked.
func resolve(w http.ResponseWriter, r *http.Request, store *session.Store) (*session.Session, *workingcopy.Editor, bool) {
	sess, ok := store.FromRequest(r)
	if !ok {
		http.Error(w, "Oturum bulunamadı", http.StatusUnauthorized)
		return nil, nil, true
	}

	sess.Lock()
	if sess.Editor == nil {
		sess.Unlock()
		http.Error(w, "Çalışma kopyası yok", http.StatusNotFound)
		return nil, nil, true
	}
	return sess, sess.Editor, false
}

func writeEditorError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error, zeroMsg string) {
	switch {
	case errors.Is(err, workingcopy.ErrZeroQuantity):
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, Response{Error: zeroMsg})
	case errors.Is(err, workingcopy.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, Response{Error: "Ürün listede yok"})
	case errors.Is(err, workingcopy.ErrSubmitted):
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, Response{Error: "Sipariş zaten gönderildi"})
	default:
		log.Error("working copy persist failed", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusBadGateway)
		render.JSON(w, r, Response{Error: err.Error()})
	}
}
