// Package sync imports league results from the external results API
// and reconciles them into local games.
package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client reads the external results API. The remote exposes teams and
// matches as plain JSON, either as bare arrays or wrapped in an object.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

type remoteTeam struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
}

// RemoteMatch is a match row as the external API returns it.
type RemoteMatch struct {
	MatchDate  string `json:"match_date"`
	HomeTeamID int64  `json:"home_team_id"`
	AwayTeamID int64  `json:"away_team_id"`
	HomeScore  int64  `json:"home_score"`
	AwayScore  int64  `json:"away_score"`
	Venue      string `json:"venue"`
}

// FetchTeams returns a map of external team id to name.
func (c *Client) FetchTeams(ctx context.Context) (map[int64]string, error) {
	var payload struct {
		Teams []remoteTeam `json:"teams"`
	}
	var bare []remoteTeam

	if err := c.getJSON(ctx, "/teams", &bare, &payload); err != nil {
		return nil, err
	}
	items := bare
	if len(items) == 0 {
		items = payload.Teams
	}

	teams := make(map[int64]string, len(items))
	for _, t := range items {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			name = strings.TrimSpace(t.Title)
		}
		if name == "" {
			name = fmt.Sprintf("Team #%d", t.ID)
		}
		teams[t.ID] = name
	}
	return teams, nil
}

// FetchMatches returns the raw match list.
func (c *Client) FetchMatches(ctx context.Context) ([]RemoteMatch, error) {
	var payload struct {
		Matches []RemoteMatch `json:"matches"`
	}
	var bare []RemoteMatch

	if err := c.getJSON(ctx, "/matches", &bare, &payload); err != nil {
		return nil, err
	}
	if len(bare) > 0 {
		return bare, nil
	}
	return payload.Matches, nil
}

// getJSON decodes the response into the array target first and falls
// back to the wrapped object form.
func (c *Client) getJSON(ctx context.Context, path string, arrayTarget, objectTarget interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: unexpected status %d", path, resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, arrayTarget); err == nil {
		return nil
	}
	if err := json.Unmarshal(raw, objectTarget); err != nil {
		return fmt.Errorf("decode %s payload: %w", path, err)
	}
	return nil
}

// parseMatchDate converts an ISO timestamp (optionally Z-suffixed) to
// UTC.
func parseMatchDate(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
