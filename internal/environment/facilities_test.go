package environment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"guesthouse_backend/internal/assessment/domain"
)

func TestFacilitiesClient_Nearby(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		query := r.PostFormValue("data")
		for _, amenity := range []string{"hospital", "pharmacy", "fire_station"} {
			if !strings.Contains(query, amenity) {
				t.Errorf("query missing amenity %s", amenity)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"elements": [
				{"type": "node", "lat": 36.8155, "lon": 10.1815, "tags": {"amenity": "hospital", "name": "Hopital Charles Nicolle"}},
				{"type": "way", "center": {"lat": 36.8065, "lon": 10.1915}, "tags": {"amenity": "pharmacy"}},
				{"type": "node", "lat": 36.8065, "lon": 10.1815, "tags": {"amenity": "cafe", "name": "not a facility"}}
			]
		}`))
	}))
	defer server.Close()

	client := NewFacilitiesClient(server.URL, testLogger())
	facilities, err := client.Nearby(context.Background(), 36.8065, 10.1815, 5)
	if err != nil {
		t.Fatalf("Nearby: %v", err)
	}

	if len(facilities) != 2 {
		t.Fatalf("expected 2 facilities, got %d", len(facilities))
	}

	var hospital, pharmacy *domain.Facility
	for i := range facilities {
		switch facilities[i].Kind {
		case domain.FacilityHospital:
			hospital = &facilities[i]
		case domain.FacilityPharmacy:
			pharmacy = &facilities[i]
		}
	}
	if hospital == nil || pharmacy == nil {
		t.Fatalf("missing facility kinds in %v", facilities)
	}

	// 0.009 degrees of latitude is almost exactly one kilometer.
	if hospital.DistanceKM < 0.9 || hospital.DistanceKM > 1.1 {
		t.Fatalf("expected hospital around 1 km away, got %f", hospital.DistanceKM)
	}
	if hospital.Name != "Hopital Charles Nicolle" {
		t.Fatalf("unexpected hospital name %q", hospital.Name)
	}
	// The way center is about 0.89 km east.
	if pharmacy.DistanceKM < 0.8 || pharmacy.DistanceKM > 1.0 {
		t.Fatalf("expected pharmacy under 1 km away, got %f", pharmacy.DistanceKM)
	}
}

func TestFacilitiesClient_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewFacilitiesClient(server.URL, testLogger())
	if _, err := client.Nearby(context.Background(), 36.8, 10.2, 5); err == nil {
		t.Fatal("expected error on upstream failure")
	}
}

func TestHaversine_KnownDistance(t *testing.T) {
	// Tunis to Sousse, roughly 116 km.
	got := haversineKM(36.8065, 10.1815, 35.8256, 10.6369)
	if got < 115 || got > 118 {
		t.Fatalf("expected roughly 116 km, got %f", got)
	}
}

func TestHaversine_ZeroForSamePoint(t *testing.T) {
	if got := haversineKM(36.8, 10.2, 36.8, 10.2); got != 0 {
		t.Fatalf("expected zero distance, got %f", got)
	}
}
