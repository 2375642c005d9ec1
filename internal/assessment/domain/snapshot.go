package domain

import "time"

// FacilityKind identifies a type of nearby emergency facility.
type FacilityKind string

const (
	FacilityHospital    FacilityKind = "hospital"
	FacilityPharmacy    FacilityKind = "pharmacy"
	FacilityFireStation FacilityKind = "fire_station"
)

// WeatherObservation is a single current-conditions reading.
type WeatherObservation struct {
	TemperatureC    float64   `json:"temperatureC"`
	PrecipitationMM float64   `json:"precipitationMm"`
	RainMM          float64   `json:"rainMm"`
	WindSpeedKMH    float64   `json:"windSpeedKmh"`
	ObservedAt      time.Time `json:"observedAt"`
}

// Facility is a nearby emergency facility with its distance from the
// guesthouse.
type Facility struct {
	Kind       FacilityKind `json:"kind"`
	Name       string       `json:"name,omitempty"`
	DistanceKM float64      `json:"distanceKm"`
}

// EnvironmentalSnapshot is the transient environmental input of an
// assessment. It is re-fetched for each call, never persisted by the engine,
// and either source may be absent when the corresponding provider failed.
type EnvironmentalSnapshot struct {
	Weather    *WeatherObservation `json:"weather,omitempty"`
	Facilities []Facility          `json:"facilities,omitempty"`

	// FacilitiesFetched distinguishes "provider answered with zero
	// facilities" from "provider unreachable". Zero facilities is a real
	// signal; unreachable is a degradation.
	FacilitiesFetched bool      `json:"facilitiesFetched"`
	FetchedAt         time.Time `json:"fetchedAt"`
}

// Complete reports whether both environmental sources were available.
func (s *EnvironmentalSnapshot) Complete() bool {
	return s != nil && s.Weather != nil && s.FacilitiesFetched
}

// NearestKM returns the distance to the nearest facility of the given kind,
// or false when none is known.
func (s *EnvironmentalSnapshot) NearestKM(kind FacilityKind) (float64, bool) {
	if s == nil {
		return 0, false
	}
	found := false
	nearest := 0.0
	for _, f := range s.Facilities {
		if f.Kind != kind {
			continue
		}
		if !found || f.DistanceKM < nearest {
			nearest = f.DistanceKM
			found = true
		}
	}
	return nearest, found
}
