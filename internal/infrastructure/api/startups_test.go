package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"startupconnect/internal/domain/value"
)

func TestStartupsClient_Offers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/startups/3/offers", r.URL.Path)

		_, _ = w.Write([]byte(`[
			{"id":1,"startupId":3,"amount":500000,"equityPercentage":10,"status":"ACTIVE"},
			{"id":2,"startupId":3,"amount":250000,"equityPercentage":5,"status":"NEGOTIATING"}
		]`))
	}))
	defer srv.Close()

	base := NewClient(srv.URL, loggedInStore(), srv.Client())

	offers, err := NewStartupsClient(base).Offers(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, offers, 2)
	require.Equal(t, value.OfferStatusActive, offers[0].Status)
	require.True(t, offers[0].Actionable())
	require.Equal(t, value.OfferStatusNegotiating, offers[1].Status)
}

func TestStartupsClient_UpdateOfferStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/startups/3/offers/1/status", r.URL.Path)
		require.Equal(t, "CLOSED", r.URL.Query().Get("status"))

		_, _ = w.Write([]byte(`{"id":1,"startupId":3,"amount":500000,"status":"CLOSED"}`))
	}))
	defer srv.Close()

	base := NewClient(srv.URL, loggedInStore(), srv.Client())

	offer, err := NewStartupsClient(base).UpdateOfferStatus(context.Background(), 3, 1, value.OfferStatusClosed)
	require.NoError(t, err)
	require.Equal(t, value.OfferStatusClosed, offer.Status)
	require.False(t, offer.Actionable())
}

func TestStartupsClient_InvalidIDs(t *testing.T) {
	base := NewClient("http://unused", loggedInStore(), nil)
	client := NewStartupsClient(base)

	_, err := client.Offers(context.Background(), 0)
	require.Error(t, err)

	_, err = client.Get(context.Background(), -4)
	require.Error(t, err)
}
