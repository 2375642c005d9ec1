package environment

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"guesthouse_backend/internal/assessment/domain"
	"guesthouse_backend/platform/logger"
)

// amenityKinds maps OpenStreetMap amenity tags to facility kinds.
var amenityKinds = map[string]domain.FacilityKind{
	"hospital":     domain.FacilityHospital,
	"pharmacy":     domain.FacilityPharmacy,
	"fire_station": domain.FacilityFireStation,
}

// FacilitiesClient queries the Overpass API for emergency facilities around
// a coordinate.
type FacilitiesClient struct {
	baseURL string
	client  *http.Client
	log     *logger.Logger
}

func NewFacilitiesClient(baseURL string, log *logger.Logger) *FacilitiesClient {
	return &FacilitiesClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type   string  `json:"type"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Center *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"center,omitempty"`
	Tags map[string]string `json:"tags"`
}

// Nearby returns the facilities within radiusKM of the coordinate, each
// with its great-circle distance. Ways report their geometric center.
func (c *FacilitiesClient) Nearby(ctx context.Context, lat, lon, radiusKM float64) ([]domain.Facility, error) {
	radiusM := int(radiusKM * 1000)

	var query strings.Builder
	query.WriteString("[out:json];(")
	for _, amenity := range []string{"hospital", "pharmacy", "fire_station"} {
		fmt.Fprintf(&query, `node["amenity"=%q](around:%d,%f,%f);`, amenity, radiusM, lat, lon)
		fmt.Fprintf(&query, `way["amenity"=%q](around:%d,%f,%f);`, amenity, radiusM, lat, lon)
	}
	query.WriteString(");out center;")

	form := url.Values{}
	form.Set("data", query.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("facilities upstream error: %d", resp.StatusCode)
	}

	var raw overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}

	facilities := make([]domain.Facility, 0, len(raw.Elements))
	for _, elem := range raw.Elements {
		kind, ok := amenityKinds[elem.Tags["amenity"]]
		if !ok {
			continue
		}
		elemLat, elemLon := elem.Lat, elem.Lon
		if elem.Center != nil {
			elemLat, elemLon = elem.Center.Lat, elem.Center.Lon
		}
		if elemLat == 0 && elemLon == 0 {
			continue
		}
		facilities = append(facilities, domain.Facility{
			Kind:       kind,
			Name:       elem.Tags["name"],
			DistanceKM: haversineKM(lat, lon, elemLat, elemLon),
		})
	}
	return facilities, nil
}

const earthRadiusKM = 6371.0

// haversineKM is the great-circle distance between two coordinates.
func haversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKM * math.Asin(math.Sqrt(a))
}
