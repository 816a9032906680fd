package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// ClientRecord represents a full client record as exchanged with the API
type ClientRecord struct {
	ID              string    `json:"id,omitempty"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Identification  string    `json:"identification"`
	Cellphone       string    `json:"cellphone"`
	OtherPhone      string    `json:"otherPhone"`
	Address         string    `json:"address"`
	BirthDate       time.Time `json:"birthDate"`
	AffiliationDate time.Time `json:"affiliationDate"`
	Gender          string    `json:"gender"`
	PersonalNote    string    `json:"personalNote"`
	Photo           string    `json:"photo"`
	InterestID      string    `json:"interestId"`
	UserID          string    `json:"userId,omitempty"`
}

// ClientSummary is the abbreviated shape returned by search
type ClientSummary struct {
	ID             string `json:"id"`
	Identification string `json:"identification"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
}

// Interest is an entry of the server's interest catalog
type Interest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Client calls the client-records API. All its requests go through the
// authorizing HTTP client, so call sites never deal with tokens.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a records API client. The HTTP client should come from
// NewHTTPClient so requests are authorized.
func NewClient(baseURL string, httpClient *http.Client, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		log:        log,
	}
}

// Search lists the caller's clients whose name or identification matches
// the term. An empty term lists everything.
func (c *Client) Search(ctx context.Context, term string) ([]ClientSummary, error) {
	endpoint := fmt.Sprintf("%s/api/clients", c.baseURL)
	if term != "" {
		endpoint += "?search=" + url.QueryEscape(term)
	}

	body, err := doRequest(ctx, c.httpClient, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var summaries []ClientSummary
	if err := json.Unmarshal(body, &summaries); err != nil {
		return nil, invalidResponseError("client list is not valid JSON")
	}

	return summaries, nil
}

// Get fetches a single client record by ID
func (c *Client) Get(ctx context.Context, id string) (*ClientRecord, error) {
	body, err := doRequest(ctx, c.httpClient, http.MethodGet, fmt.Sprintf("%s/api/clients/%s", c.baseURL, id), nil)
	if err != nil {
		return nil, err
	}

	var record ClientRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, invalidResponseError("client record is not valid JSON")
	}

	return &record, nil
}

// Create stores a new client record and returns it with its assigned ID
func (c *Client) Create(ctx context.Context, record ClientRecord) (*ClientRecord, error) {
	body, err := doRequest(ctx, c.httpClient, http.MethodPost, fmt.Sprintf("%s/api/clients", c.baseURL), record)
	if err != nil {
		return nil, err
	}

	var created ClientRecord
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, invalidResponseError("created client record is not valid JSON")
	}

	return &created, nil
}

// Update replaces an existing client record
func (c *Client) Update(ctx context.Context, record ClientRecord) (*ClientRecord, error) {
	if record.ID == "" {
		return nil, fmt.Errorf("client record has no ID")
	}

	body, err := doRequest(ctx, c.httpClient, http.MethodPut, fmt.Sprintf("%s/api/clients/%s", c.baseURL, record.ID), record)
	if err != nil {
		return nil, err
	}

	var updated ClientRecord
	if err := json.Unmarshal(body, &updated); err != nil {
		return nil, invalidResponseError("updated client record is not valid JSON")
	}

	return &updated, nil
}

// Delete removes a client record by ID
func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := doRequest(ctx, c.httpClient, http.MethodDelete, fmt.Sprintf("%s/api/clients/%s", c.baseURL, id), nil)
	return err
}

// Interests lists the server's interest catalog
func (c *Client) Interests(ctx context.Context) ([]Interest, error) {
	body, err := doRequest(ctx, c.httpClient, http.MethodGet, fmt.Sprintf("%s/api/interests", c.baseURL), nil)
	if err != nil {
		return nil, err
	}

	var interests []Interest
	if err := json.Unmarshal(body, &interests); err != nil {
		return nil, invalidResponseError("interest list is not valid JSON")
	}

	return interests, nil
}
