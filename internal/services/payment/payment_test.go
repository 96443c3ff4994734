package payment_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/payment-dashboard/internal/apiclient"
	"github.com/magabrotheeeer/payment-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/payment-dashboard/internal/models"
	"github.com/magabrotheeeer/payment-dashboard/internal/services/payment"
)

const listBody = `{
  "meta": {
    "total": 25, "total_pages": 3, "page": 2, "size": 10,
    "data": [
      {"id": "p1", "merchant_name": "Merchant A", "date": "2025-01-02T03:04:05Z", "amount": 100.5, "status": "completed", "reviewed": false},
      {"id": "p2", "merchant_name": "Merchant B", "date": "2025-01-01T00:00:00Z", "amount": 50, "status": "failed", "reviewed": true}
    ]
  },
  "summary": {"total": 25, "completed": 10, "processing": 8, "failed": 7}
}`

func newService(t *testing.T, h http.HandlerFunc) *payment.Service {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	client, err := apiclient.New(srv.URL)
	require.NoError(t, err)
	return payment.New(client, sl.Discard())
}

func TestService_List_PassThrough(t *testing.T) {
	var gotQuery, gotMethod, gotPath string
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotMethod = r.Method
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(listBody))
	})

	list, err := svc.List(context.Background(), models.NewListParams().Page(2).Size(10))
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "/payments", gotPath)
	assert.Equal(t, "page=2&size=10", gotQuery)

	var want models.PaymentList
	require.NoError(t, json.Unmarshal([]byte(listBody), &want))
	assert.Equal(t, want, *list)

	assert.Equal(t, 25, list.Meta.Total)
	assert.Equal(t, 3, list.Meta.TotalPages)
	require.Len(t, list.Meta.Data, 2)
	assert.Equal(t, "Merchant A", list.Meta.Data[0].MerchantName)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), list.Meta.Data[0].Date)
	assert.Equal(t, models.StatusFailed, list.Meta.Data[1].Status)
	assert.True(t, list.Meta.Data[1].Reviewed)
	assert.Equal(t, models.PaymentSummary{Total: 25, Completed: 10, Processing: 8, Failed: 7}, list.Summary)
}

func TestService_List_ArbitraryParams(t *testing.T) {
	var gotQuery string
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"meta":{"data":[]},"summary":{}}`))
	})

	params := models.NewListParams().Page(-1).Set("unknown", "x y")
	_, err := svc.List(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, "page=-1&unknown=x+y", gotQuery)
}

func TestService_List_NilParams(t *testing.T) {
	var gotQuery string
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"meta":{"data":[]},"summary":{}}`))
	})

	_, err := svc.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, gotQuery)
}

func TestService_List_Error(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Invalid token"}`))
	})

	list, err := svc.List(context.Background(), models.NewListParams())
	assert.Nil(t, list)
	assert.True(t, apiclient.IsStatus(err, http.StatusUnauthorized))
}

func TestService_Review(t *testing.T) {
	var gotMethod, gotPath string
	var gotBodyLen int64
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.EscapedPath()
		gotBodyLen = r.ContentLength
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, svc.Review(context.Background(), "abc/1"))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/payments/abc%2F1/review", gotPath)
	assert.Zero(t, gotBodyLen)
}

func TestService_Review_Errors(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Payment not found"}`))
	})

	err := svc.Review(context.Background(), "missing")
	assert.True(t, apiclient.IsStatus(err, http.StatusNotFound))

	err = svc.Review(context.Background(), "")
	assert.ErrorIs(t, err, payment.ErrEmptyID)
}
