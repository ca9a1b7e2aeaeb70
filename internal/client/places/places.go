package places

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const baseURL = "https://maps.googleapis.com"

// Client 地点详情查询（Google Places Details API 的薄封装）
type Client struct {
	http   *resty.Client
	apiKey string
}

func New(apiKey string) *Client {
	return &Client{
		http:   resty.New().SetBaseURL(baseURL).SetTimeout(10 * time.Second),
		apiKey: apiKey,
	}
}

func (c *Client) Configured() bool { return c.apiKey != "" }

type Details struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Phone   string  `json:"phone,omitempty"`
	Website string  `json:"website,omitempty"`
	MapsURL string  `json:"mapsUrl,omitempty"`
}

func (c *Client) Details(ctx context.Context, placeID string) (*Details, error) {
	var out struct {
		Status string `json:"status"`
		Result struct {
			Name             string `json:"name"`
			FormattedAddress string `json:"formatted_address"`
			FormattedPhone   string `json:"formatted_phone_number"`
			Website          string `json:"website"`
			URL              string `json:"url"`
			Geometry         struct {
				Location struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"location"`
			} `json:"geometry"`
		} `json:"result"`
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"place_id": placeID,
			"key":      c.apiKey,
			"fields":   "name,formatted_address,geometry,formatted_phone_number,website,url",
		}).
		SetResult(&out).
		Get("/maps/api/place/details/json")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("places api: http %d", resp.StatusCode())
	}
	if out.Status != "OK" {
		return nil, fmt.Errorf("places api: %s", out.Status)
	}
	return &Details{
		Name:    out.Result.Name,
		Address: out.Result.FormattedAddress,
		Lat:     out.Result.Geometry.Location.Lat,
		Lng:     out.Result.Geometry.Location.Lng,
		Phone:   out.Result.FormattedPhone,
		Website: out.Result.Website,
		MapsURL: out.Result.URL,
	}, nil
}
