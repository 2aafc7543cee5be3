package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPitchDecksClient_Upload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/pitchdecks/upload/5", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		require.Equal(t, "Seed deck", r.FormValue("title"))
		require.Equal(t, "true", r.FormValue("isPublic"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "deck.pdf", header.Filename)

		_, _ = w.Write([]byte(`{"id":9,"startupId":5,"title":"Seed deck","fileName":"deck.pdf","isPublic":true}`))
	}))
	defer srv.Close()

	base := NewClient(srv.URL, loggedInStore(), srv.Client())

	deck, err := NewPitchDecksClient(base).Upload(context.Background(), 5, PitchDeckUpload{
		FileName: "deck.pdf",
		Content:  []byte("%PDF-1.4 fake"),
		Title:    "Seed deck",
		Public:   true,
	})
	require.NoError(t, err)
	require.EqualValues(t, 9, deck.ID)
	require.True(t, deck.Public)
}

func TestPitchDecksClient_UploadEmptyFile(t *testing.T) {
	base := NewClient("http://unused", loggedInStore(), nil)

	_, err := NewPitchDecksClient(base).Upload(context.Background(), 5, PitchDeckUpload{
		FileName: "deck.pdf",
		Title:    "Seed deck",
	})
	require.Error(t, err)
}

func TestPitchDecksClient_DownloadSniffsContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte("%PDF-1.4\n%fake content"))
	}))
	defer srv.Close()

	base := NewClient(srv.URL, loggedInStore(), srv.Client())

	content, contentType, err := NewPitchDecksClient(base).Download(context.Background(), 9)
	require.NoError(t, err)
	require.NotEmpty(t, content)
	require.Contains(t, contentType, "application/pdf")
}

func TestPitchDecksClient_PublicByStartupNeedsNoSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/pitchdecks/startup/5/public", r.URL.Path)
		require.Empty(t, r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`[{"id":9,"startupId":5,"title":"Seed deck","fileName":"deck.pdf","isPublic":true}]`))
	}))
	defer srv.Close()

	base := NewClient(srv.URL, &stubStore{}, srv.Client())

	decks, err := NewPitchDecksClient(base).PublicByStartup(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, decks, 1)
	require.True(t, decks[0].Public)
}
