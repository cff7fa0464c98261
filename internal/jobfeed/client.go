package jobfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client pulls job postings from the aggregation feed. The feed serves two
// endpoints, one per posting kind, each returning a JSON array.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// FeedPosting is the wire shape of one posting in the feed. Kind-specific
// fields are simply absent for the other kind.
type FeedPosting struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Location     string `json:"location"`
	Salary       string `json:"salary"`
	Description  string `json:"description"`
	PostedDate   string `json:"postedDate"`

	Department          string `json:"department,omitempty"`
	ApplicationDeadline string `json:"applicationDeadline,omitempty"`
	Qualifications      string `json:"qualifications,omitempty"`
	AgeLimit            string `json:"ageLimit,omitempty"`
	TotalVacancies      string `json:"totalVacancies,omitempty"`
	ApplicationFee      string `json:"applicationFee,omitempty"`
	SelectionProcess    string `json:"selectionProcess,omitempty"`
	OfficialWebsite     string `json:"officialWebsite,omitempty"`

	JobType            string   `json:"jobType,omitempty"`
	ExperienceRequired string   `json:"experienceRequired,omitempty"`
	Requirements       string   `json:"requirements,omitempty"`
	Benefits           string   `json:"benefits,omitempty"`
	Skills             []string `json:"skills,omitempty"`
	Remote             bool     `json:"remote,omitempty"`
	ApplicationEmail   string   `json:"applicationEmail,omitempty"`
}

// PostedAt parses the feed's posted date, falling back to now on bad input.
func (p *FeedPosting) PostedAt() time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, p.PostedDate); err == nil {
			return t
		}
	}
	return time.Now()
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// FetchGovernmentJobs returns the current government postings from the feed.
func (c *Client) FetchGovernmentJobs(ctx context.Context) ([]FeedPosting, error) {
	return c.fetch(ctx, "/v1/jobs/government")
}

// FetchPrivateJobs returns the current private postings from the feed.
func (c *Client) FetchPrivateJobs(ctx context.Context) ([]FeedPosting, error) {
	return c.fetch(ctx, "/v1/jobs/private")
}

func (c *Client) fetch(ctx context.Context, path string) ([]FeedPosting, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("feed returned status %d: %s", resp.StatusCode, string(body))
	}

	var postings []FeedPosting
	if err := json.NewDecoder(resp.Body).Decode(&postings); err != nil {
		return nil, fmt.Errorf("failed to decode feed response: %w", err)
	}
	return postings, nil
}
