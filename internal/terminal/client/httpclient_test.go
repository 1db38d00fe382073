package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/hammampos/internal/api"
	"github.com/dmitrijs2005/hammampos/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkInsertTickets_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/tickets/bulk", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var req api.BulkTicketsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Tickets, 1)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(api.BulkResponse{
			Outcomes:    []api.Outcome{{ID: req.Tickets[0].ID, Status: common.OutcomeAccepted}},
			ConfirmedAt: time.Now().UTC(),
		})
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPClient(srv.URL, time.Second)
	resp, err := c.BulkInsertTickets(context.Background(), "tok", []api.Ticket{{ID: "t1"}})
	require.NoError(t, err)
	require.Len(t, resp.Outcomes, 1)
	assert.Equal(t, common.OutcomeAccepted, resp.Outcomes[0].Status)
}

func TestDo_ConnectionRefusedIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse all connections

	c := NewHTTPClient(srv.URL, time.Second)
	err := c.Ping(context.Background())
	assert.ErrorIs(t, err, common.ErrTransport)
}

func TestDo_ServerErrorIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPClient(srv.URL, time.Second)
	_, err := c.BulkInsertTickets(context.Background(), "tok", nil)
	assert.ErrorIs(t, err, common.ErrTransport)
}

func TestDo_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "unauthorized"})
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPClient(srv.URL, time.Second)
	_, err := c.Login(context.Background(), "aicha", "wrong")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestDo_TokenExpiredDistinguished(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: common.ErrTokenExpired.Error()})
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPClient(srv.URL, time.Second)
	_, err := c.FetchCatalog(context.Background(), "stale")
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestDownloadImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte{0x89, 0x50, 0x4e, 0x47})
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPClient(srv.URL, time.Second)
	data, err := c.DownloadImage(context.Background(), srv.URL+"/img.png")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, data)
}
