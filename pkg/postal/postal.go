// Package postal looks up postal codes with the Zippopotam API.
package postal

import (
	"context"
	"fmt"
	"net/url"

	"github.com/spencer-p/goldenhour/pkg/cache"
	"github.com/spencer-p/goldenhour/pkg/fetch"
)

const ZIPPOPOTAM_URL = "https://api.zippopotam.us"

// Place is the town a postal code belongs to.
type Place struct {
	Name  string `json:"place name"`
	State string `json:"state"`
	// StateAbbreviation is e.g. "KS"; not every country has one.
	StateAbbreviation string `json:"state abbreviation"`
	Latitude          string `json:"latitude"`
	Longitude         string `json:"longitude"`
}

type lookupResult struct {
	PostCode string  `json:"post code"`
	Country  string  `json:"country"`
	Places   []Place `json:"places"`
}

// Client looks up postal codes of a single country.
type Client struct {
	BaseURL string
	// Country is the lower case country code used in the request path.
	Country string

	http *fetch.Client
}

// NewClient returns a client for the country's postal codes.
func NewClient(country string, c cache.Cache) *Client {
	return &Client{
		BaseURL: ZIPPOPOTAM_URL,
		Country: country,
		http:    fetch.New("zippopotam", c),
	}
}

// Lookup returns the first place for code. Unknown codes are an error; the API
// answers them with a 404.
func (c *Client) Lookup(ctx context.Context, code string) (Place, error) {
	addr, err := url.Parse(c.BaseURL)
	if err != nil {
		return Place{}, err
	}
	addr = addr.JoinPath(c.Country, code)

	var result lookupResult
	if err := c.http.GetJSON(ctx, addr, &result); err != nil {
		return Place{}, fmt.Errorf("postal code %q: %w", code, err)
	}
	if len(result.Places) == 0 {
		return Place{}, fmt.Errorf("postal code %q: no places", code)
	}
	return result.Places[0], nil
}
