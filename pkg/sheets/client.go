package sheets

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/models"
)

// Client fetches the membership roster from a published spreadsheet CSV
// export. The spreadsheet is the data of record; the client returns an
// immutable snapshot per fetch and never writes back.
type Client struct {
	csvURL     string
	httpClient *http.Client
}

// NewClient creates a new roster client
func NewClient(csvURL string) *Client {
	return &Client{
		csvURL: csvURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchMembers downloads and parses the roster export. The published export
// is cached aggressively by the host, so a cache-busting parameter forces
// fresh data on every call.
func (c *Client) FetchMembers(ctx context.Context) ([]models.Member, error) {
	reqURL, err := c.bustCache()
	if err != nil {
		return nil, fmt.Errorf("invalid sheet url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build roster request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("roster export returned status %d", resp.StatusCode)
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster csv: %w", err)
	}

	return parseRoster(rows), nil
}

func (c *Client) bustCache() (string, error) {
	u, err := url.Parse(c.csvURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("t", strconv.FormatInt(time.Now().UnixMilli(), 10))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
