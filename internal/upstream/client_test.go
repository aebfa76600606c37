package upstream

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClient_AttachesBearerTokenAndRequestID(t *testing.T) {
	var gotAuth, gotReqID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{"data":{"customer_id":1,"name":"Şeftali Bakkal"}}`))
	}))
	defer server.Close()

	client := New(server.URL, "secret-token", 5*time.Second)
	profile, err := client.GetProfile(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.NotEmpty(t, gotReqID)
	assert.Equal(t, int64(1), profile.CustomerID)
}

func TestClient_DecodesEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/draft", r.URL.Path)
		w.Write([]byte(`{"data":[{"product_id":1,"product_name":"Şeftali Suyu","suggested_qty":3,"effective_stock_used":2}]}`))
	}))
	defer server.Close()

	client := New(server.URL, "", 5*time.Second)
	suggestions, err := client.GetDraft(context.Background())

	assert.NoError(t, err)
	assert.Len(t, suggestions, 1)
	assert.Equal(t, 3, suggestions[0].SuggestedQty)
	assert.Equal(t, 2, suggestions[0].EffectiveStock)
	assert.Nil(t, suggestions[0].Price)
}

func TestClient_AbsentDataIsEmptyNotError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := New(server.URL, "", 5*time.Second)

	suggestions, err := client.GetDraft(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, suggestions)

	deliveries, err := client.PendingDeliveries(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, deliveries)
}

func TestClient_NullDataIsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":null}`))
	}))
	defer server.Close()

	client := New(server.URL, "", 5*time.Second)
	events, err := client.PendingVariance(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, events)
}

func TestClient_ErrorDetailExtracted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"detail":"çalışma kopyası teslimatla silindi"}`))
	}))
	defer server.Close()

	client := New(server.URL, "", 5*time.Second)
	_, err := client.StartWorkingCopy(context.Background())

	assert.Error(t, err)
	upErr, ok := err.(*Error)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, upErr.Status)
	assert.Equal(t, "çalışma kopyası teslimatla silindi", upErr.Error())
}

func TestClient_ErrorWithoutDetailFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL, "", 5*time.Second)
	err := client.SubmitWorkingCopy(context.Background(), 5)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestClient_PatchSendsFullItemList(t *testing.T) {
	var gotMethod, gotPath, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.Write([]byte(`{"data":{"id":7,"status":"active"}}`))
	}))
	defer server.Close()

	client := New(server.URL, "", 5*time.Second)
	qty := 4
	wc, err := client.ReplaceWorkingCopyItems(context.Background(), 7, []ItemPatch{
		{ProductID: 1, UserQty: &qty, Removed: false},
		{ProductID: 2, UserQty: nil, Removed: true},
	})

	assert.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/working-copy/7", gotPath)
	assert.JSONEq(t, `[{"product_id":1,"user_qty":4,"removed":false},{"product_id":2,"user_qty":null,"removed":true}]`, gotBody)
	assert.Equal(t, int64(7), wc.ID)
}

func TestClient_DateFromQuery(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	client := New(server.URL, "", 5*time.Second)
	_, err := client.DailyConsumption(context.Background(), "2024-01-01")

	assert.NoError(t, err)
	assert.Equal(t, "date_from=2024-01-01", gotQuery)
}

func TestClient_StockDeclarationResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"declaration_id":3,"spikes_detected":2}}`))
	}))
	defer server.Close()

	client := New(server.URL, "", 5*time.Second)
	result, err := client.DeclareStock(context.Background(), []StockDeclarationItem{{ProductID: 1, Qty: 10}})

	assert.NoError(t, err)
	assert.Equal(t, 2, result.SpikesDetected)
}
