package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
)

// Upstream defaults for the external lookup proxies.
const (
	defaultGeocodeBaseURL = "https://nominatim.openstreetmap.org"
	defaultWeatherBaseURL = "https://api.open-meteo.com"
)

// ExternalHandler proxies the geocoding and weather lookups used to enrich
// hive records. Base URLs and the HTTP client are injectable so tests can
// point the handler at a local server.
type ExternalHandler struct {
	Client         *http.Client
	GeocodeBaseURL string
	WeatherBaseURL string
}

func NewExternalHandler() *ExternalHandler {
	return &ExternalHandler{
		Client:         &http.Client{Timeout: 10 * time.Second},
		GeocodeBaseURL: defaultGeocodeBaseURL,
		WeatherBaseURL: defaultWeatherBaseURL,
	}
}

// Geocode handles GET /v1/external/geocode?q=... and returns the first
// match from the upstream search, or null when nothing matched.
func (h *ExternalHandler) Geocode(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing query param: q"})
	}

	u := h.GeocodeBaseURL + "/search?format=json&limit=1&q=" + url.QueryEscape(q)
	req, err := http.NewRequestWithContext(c.Request().Context(), http.MethodGet, u, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}
	// Nominatim's usage policy requires an identifying agent.
	req.Header.Set("User-Agent", "HoneyFlow/1.0")

	res, err := h.Client.Do(req)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "Geocoding failed"})
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "Geocoding failed"})
	}

	var matches []json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&matches); err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "Geocoding failed"})
	}
	if len(matches) == 0 {
		return c.JSON(http.StatusOK, nil)
	}
	return c.JSONBlob(http.StatusOK, matches[0])
}

// weatherUpstream mirrors the fields of the upstream forecast response this
// proxy passes through.
type weatherUpstream struct {
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
	Timezone  string          `json:"timezone"`
	Current   json.RawMessage `json:"current"`
}

// Weather handles GET /v1/external/weather?lat=...&lon=... and returns the
// current conditions at the given coordinates, trimmed to what clients use.
func (h *ExternalHandler) Weather(c echo.Context) error {
	lat := c.QueryParam("lat")
	lon := c.QueryParam("lon")
	if lat == "" || lon == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing query params: lat, lon"})
	}

	u := h.WeatherBaseURL + "/v1/forecast?latitude=" + url.QueryEscape(lat) +
		"&longitude=" + url.QueryEscape(lon) +
		"&current=temperature_2m,relative_humidity_2m,wind_speed_10m&timezone=auto"
	req, err := http.NewRequestWithContext(c.Request().Context(), http.MethodGet, u, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}

	res, err := h.Client.Do(req)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "Weather API failed"})
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "Weather API failed"})
	}

	var data weatherUpstream
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "Weather API failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"lat":      data.Latitude,
		"lon":      data.Longitude,
		"timezone": data.Timezone,
		"current":  data.Current,
	})
}
