// Package insights calls an external text-generation API to produce a
// short health note from a patient's latest vitals. The collaborator is
// opaque and unreliable by assumption: every failure path degrades to a
// canned message, never to an error.
package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/healthwallet/healthwallet/internal/model"
)

const (
	// FallbackNormal is returned when the API responds with empty text.
	FallbackNormal = "Vitals look within normal range. Keep it up!"
	// FallbackError is returned when the API call fails or times out.
	FallbackError = "Health tracking is a great habit for longevity!"
	// FallbackNoReports is returned when the viewer has no vitals yet.
	FallbackNoReports = "No reports yet. Upload your first medical report to get personalized insights!"
)

// Client talks to the text-generation API.
type Client struct {
	httpClient *http.Client
	url        string
	apiKey     string
}

// New creates a Client. url may be empty, in which case Generate always
// returns a fallback without any network call.
func New(url, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		url:    url,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
				MaxIdleConns:          10,
			},
		},
	}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// Generate asks the API for a two-sentence insight on the given vitals.
// It always returns usable text.
func (c *Client) Generate(ctx context.Context, vitals model.Vitals) string {
	if c.url == "" {
		return FallbackError
	}

	body, err := json.Marshal(generateRequest{Prompt: buildPrompt(vitals)})
	if err != nil {
		return FallbackError
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return FallbackError
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return FallbackError
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return FallbackError
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return FallbackError
	}

	text := strings.TrimSpace(out.Text)
	if text == "" {
		return FallbackNormal
	}
	return text
}

// buildPrompt renders the vitals into the request prompt. Missing fields
// show as N/A rather than being omitted.
func buildPrompt(vitals model.Vitals) string {
	bp := vitals.BloodPressure
	if bp == "" {
		bp = "N/A"
	}
	sugar := "N/A"
	if vitals.SugarLevel != nil {
		sugar = fmt.Sprintf("%g", *vitals.SugarLevel)
	}
	hr := "N/A"
	if vitals.HeartRate != nil {
		hr = fmt.Sprintf("%g", *vitals.HeartRate)
	}

	return fmt.Sprintf("Analyze these vitals and provide a brief (2 sentence) friendly health insight or advice for a patient:\n"+
		"- Blood Pressure: %s\n- Sugar Level: %s mg/dL\n- Heart Rate: %s BPM", bp, sugar, hr)
}
