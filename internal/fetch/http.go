package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Client fetches audio from the everyayah.com archive and Uthmani
// verse text from the alquran.cloud API. Every request carries the
// configured timeout so a stalled upstream cannot hold the pipeline
// past a cancellation request.
type Client struct {
	logger       zerolog.Logger
	http         *http.Client
	audioBaseURL string
	textBaseURL  string
}

// NewClient builds a fetcher client. A zero timeout falls back to 30s.
func NewClient(logger zerolog.Logger, audioBaseURL, textBaseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		logger:       logger.With().Str("component", "fetch").Logger(),
		http:         &http.Client{Timeout: timeout},
		audioBaseURL: audioBaseURL,
		textBaseURL:  textBaseURL,
	}
}

// FetchAudio downloads the MP3 for one verse. The archive names files
// SSSAAA.mp3 under each reciter's folder.
func (c *Client) FetchAudio(ctx context.Context, reciterID string, surah, ayah int) ([]byte, error) {
	url := fmt.Sprintf("%s/%s/%03d%03d.mp3", c.audioBaseURL, reciterID, surah, ayah)

	c.logger.Debug().Str("url", url).Msg("downloading audio")

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, &Error{Resource: "audio", URL: url, Err: err}
	}
	return body, nil
}

// ayahResponse matches the alquran.cloud envelope.
type ayahResponse struct {
	Data struct {
		Text string `json:"text"`
	} `json:"data"`
}

// FetchText retrieves the Uthmani text of one verse.
func (c *Client) FetchText(ctx context.Context, surah, ayah int) (string, error) {
	url := fmt.Sprintf("%s/ayah/%d:%d/quran-uthmani", c.textBaseURL, surah, ayah)

	c.logger.Debug().Str("url", url).Msg("fetching verse text")

	body, err := c.get(ctx, url)
	if err != nil {
		return "", &Error{Resource: "text", URL: url, Err: err}
	}

	var resp ayahResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &Error{Resource: "text", URL: url, Err: fmt.Errorf("decode response: %w", err)}
	}
	if resp.Data.Text == "" {
		return "", &Error{Resource: "text", URL: url, Err: fmt.Errorf("empty verse text in response")}
	}
	return resp.Data.Text, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}
