package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchAudio(t *testing.T) {
	var requested string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		w.Write([]byte("mp3-bytes"))
	}))
	defer srv.Close()

	c := NewClient(zerolog.Nop(), srv.URL, srv.URL, time.Second)

	data, err := c.FetchAudio(context.Background(), "Alafasy_64kbps", 112, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3-bytes"), data)
	assert.Equal(t, "/Alafasy_64kbps/112001.mp3", requested)
}

func TestFetchAudioHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(zerolog.Nop(), srv.URL, srv.URL, time.Second)

	_, err := c.FetchAudio(context.Background(), "Alafasy_64kbps", 1, 1)
	require.Error(t, err)

	var fetchErr *Error
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "audio", fetchErr.Resource)
}

func TestFetchText(t *testing.T) {
	var requested string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		w.Write([]byte(`{"code":200,"data":{"text":"بِسْمِ ٱللَّهِ"}}`))
	}))
	defer srv.Close()

	c := NewClient(zerolog.Nop(), srv.URL, srv.URL, time.Second)

	text, err := c.FetchText(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "بِسْمِ ٱللَّهِ", text)
	assert.Equal(t, "/ayah/1:1/quran-uthmani", requested)
}

func TestFetchTextMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewClient(zerolog.Nop(), srv.URL, srv.URL, time.Second)

	_, err := c.FetchText(context.Background(), 1, 1)
	var fetchErr *Error
	require.True(t, errors.As(err, &fetchErr))
}

func TestFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(zerolog.Nop(), srv.URL, srv.URL, 20*time.Millisecond)

	_, err := c.FetchAudio(context.Background(), "x", 1, 1)
	require.Error(t, err)
}

func TestFetchContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(zerolog.Nop(), srv.URL, srv.URL, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchText(ctx, 1, 1)
	require.Error(t, err)
}
