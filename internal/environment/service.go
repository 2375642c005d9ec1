package environment

import (
	"context"
	"time"

	"guesthouse_backend/internal/assessment/domain"
	"guesthouse_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

// Service assembles environmental snapshots from both providers. A nil
// cache disables caching.
type Service struct {
	weather    *WeatherClient
	facilities *FacilitiesClient
	cache      *SnapshotCache
	radiusKM   float64
	log        *logger.Logger
}

func NewService(weather *WeatherClient, facilities *FacilitiesClient, cache *SnapshotCache, radiusKM float64, log *logger.Logger) *Service {
	return &Service{
		weather:    weather,
		facilities: facilities,
		cache:      cache,
		radiusKM:   radiusKM,
		log:        log,
	}
}

// Snapshot fetches weather and facilities concurrently. It never returns an
// error: a failed source is simply absent from the snapshot and the caller
// sees the degradation through the snapshot flags. Only complete snapshots
// are cached, so a provider outage is retried on the next call.
func (s *Service) Snapshot(ctx context.Context, lat, lon float64) *domain.EnvironmentalSnapshot {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, lat, lon); ok {
			return cached
		}
	}

	snapshot := &domain.EnvironmentalSnapshot{FetchedAt: time.Now().UTC()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		obs, err := s.weather.Current(gctx, lat, lon)
		if err != nil {
			s.log.ExternalAPIError("open-meteo", err)
			return nil
		}
		snapshot.Weather = obs
		return nil
	})
	g.Go(func() error {
		facilities, err := s.facilities.Nearby(gctx, lat, lon, s.radiusKM)
		if err != nil {
			s.log.ExternalAPIError("overpass", err)
			return nil
		}
		snapshot.Facilities = facilities
		snapshot.FacilitiesFetched = true
		return nil
	})
	_ = g.Wait()

	if s.cache != nil && snapshot.Complete() {
		s.cache.Set(ctx, lat, lon, snapshot)
	}
	return snapshot
}
