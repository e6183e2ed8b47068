package clients

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// AddressHit is one suggestion from the Kartverket address API.
type AddressHit struct {
	Text         string  `json:"adressetekst"`
	Municipality string  `json:"kommunenavn"`
	PostalCode   string  `json:"postnummer"`
	PostalPlace  string  `json:"poststed"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
}

type addressAPIResponse struct {
	Addresses []struct {
		Adressetekst string `json:"adressetekst"`
		Kommunenavn  string `json:"kommunenavn"`
		Postnummer   string `json:"postnummer"`
		Poststed     string `json:"poststed"`
		Punkt        struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"representasjonspunkt"`
	} `json:"adresser"`
}

type cacheEntry struct {
	hits      []AddressHit
	expiresAt time.Time
}

// AddressClient proxies the Kartverket address search with a small TTL cache,
// so repeated autocomplete keystrokes don't hammer the upstream API.
type AddressClient struct {
	httpClient *http.Client
	baseURL    string
	mu         sync.RWMutex
	cache      map[string]cacheEntry
	ttl        time.Duration
}

func NewAddressClient(baseURL string) *AddressClient {
	return &AddressClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		cache:      make(map[string]cacheEntry),
		ttl:        10 * time.Minute,
	}
}

// Search returns up to 10 address suggestions for the query.
func (c *AddressClient) Search(query string) ([]AddressHit, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return []AddressHit{}, nil
	}

	key := strings.ToLower(query)
	c.mu.RLock()
	if entry, ok := c.cache[key]; ok && time.Now().Before(entry.expiresAt) {
		hits := entry.hits
		c.mu.RUnlock()
		return hits, nil
	}
	c.mu.RUnlock()

	reqURL := c.baseURL + "?sok=" + url.QueryEscape(query) + "&treffPerSide=10"
	resp, err := c.httpClient.Get(reqURL)
	if err != nil {
		return nil, fmt.Errorf("address lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("address API returned status %d", resp.StatusCode)
	}

	var apiResp addressAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode address response: %w", err)
	}

	hits := make([]AddressHit, 0, len(apiResp.Addresses))
	for _, a := range apiResp.Addresses {
		hits = append(hits, AddressHit{
			Text:         a.Adressetekst,
			Municipality: a.Kommunenavn,
			PostalCode:   a.Postnummer,
			PostalPlace:  a.Poststed,
			Lat:          a.Punkt.Lat,
			Lon:          a.Punkt.Lon,
		})
	}

	c.mu.Lock()
	c.cache[key] = cacheEntry{hits: hits, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()

	return hits, nil
}
