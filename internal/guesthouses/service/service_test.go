package service

import (
	"context"
	"testing"

	"guesthouse_backend/internal/guesthouses/repository"
	"guesthouse_backend/internal/guesthouses/transport"
	"guesthouse_backend/platform/apperr"
	"guesthouse_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeRepo struct {
	records map[uuid.UUID]repository.Guesthouse
	deleted []uuid.UUID
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[uuid.UUID]repository.Guesthouse)}
}

func (f *fakeRepo) Create(ctx context.Context, params repository.CreateParams) (repository.Guesthouse, error) {
	g := repository.Guesthouse{
		ID:                uuid.New(),
		OwnerID:           params.OwnerID,
		Name:              params.Name,
		Address:           params.Address,
		City:              params.City,
		ContactPhone:      params.ContactPhone,
		Latitude:          params.Latitude,
		Longitude:         params.Longitude,
		Floors:            params.Floors,
		Rooms:             params.Rooms,
		ConstructionYear:  params.ConstructionYear,
		BuildingType:      params.BuildingType,
		StairSafety:       params.StairSafety,
		FireExtinguishers: params.FireExtinguishers,
		SmokeDetectors:    params.SmokeDetectors,
		EmergencyExits:    params.EmergencyExits,
		HasFirstAidKit:    params.HasFirstAidKit,
	}
	f.records[g.ID] = g
	return g, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (repository.Guesthouse, error) {
	g, ok := f.records[id]
	if !ok {
		return repository.Guesthouse{}, apperr.NotFound("guesthouse not found")
	}
	return g, nil
}

func (f *fakeRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]repository.Guesthouse, error) {
	out := make([]repository.Guesthouse, 0)
	for _, g := range f.records {
		if g.OwnerID == ownerID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAll(ctx context.Context) ([]repository.Guesthouse, error) {
	out := make([]repository.Guesthouse, 0, len(f.records))
	for _, g := range f.records {
		out = append(out, g)
	}
	return out, nil
}

func (f *fakeRepo) Update(ctx context.Context, params repository.UpdateParams) (repository.Guesthouse, error) {
	g, ok := f.records[params.ID]
	if !ok {
		return repository.Guesthouse{}, apperr.NotFound("guesthouse not found")
	}
	if params.Name != nil {
		g.Name = *params.Name
	}
	if params.ConstructionYear != nil {
		g.ConstructionYear = *params.ConstructionYear
	}
	if params.SmokeDetectors != nil {
		g.SmokeDetectors = *params.SmokeDetectors
	}
	f.records[params.ID] = g
	return g, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.records[id]; !ok {
		return apperr.NotFound("guesthouse not found")
	}
	delete(f.records, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return New(repo, logger.New("development")), repo
}

func validCreateRequest() transport.CreateGuesthouseRequest {
	return transport.CreateGuesthouseRequest{
		Name:              "Dar Sidi Bou",
		Address:           "12 Rue des Jasmins",
		City:              "Sidi Bou Said",
		Latitude:          36.8708,
		Longitude:         10.3470,
		Floors:            2,
		Rooms:             8,
		ConstructionYear:  2015,
		BuildingType:      "traditional",
		StairSafety:       "handrails",
		FireExtinguishers: 2,
		SmokeDetectors:    4,
		EmergencyExits:    2,
		HasFirstAidKit:    true,
	}
}

func TestCreate_PersistsAndEchoesRecord(t *testing.T) {
	svc, repo := newTestService()
	ownerID := uuid.New()

	resp, err := svc.Create(context.Background(), ownerID, validCreateRequest())
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}
	if resp.Name != "Dar Sidi Bou" {
		t.Fatalf("expected name Dar Sidi Bou, got %s", resp.Name)
	}
	if len(repo.records) != 1 {
		t.Fatalf("expected 1 stored record, got %d", len(repo.records))
	}
	stored := repo.records[resp.ID]
	if stored.OwnerID != ownerID {
		t.Fatalf("expected record owned by %s, got %s", ownerID, stored.OwnerID)
	}
}

func TestCreate_NormalizesContactPhone(t *testing.T) {
	svc, _ := newTestService()

	req := validCreateRequest()
	raw := "+216 71 234 567"
	req.ContactPhone = &raw

	resp, err := svc.Create(context.Background(), uuid.New(), req)
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}
	if resp.ContactPhone == nil || *resp.ContactPhone != "+21671234567" {
		t.Fatalf("expected normalized phone +21671234567, got %v", resp.ContactPhone)
	}
}

func TestCreate_RejectsImplausibleConstructionYear(t *testing.T) {
	svc, repo := newTestService()

	for _, year := range []int{1799, 3000} {
		req := validCreateRequest()
		req.ConstructionYear = year

		_, err := svc.Create(context.Background(), uuid.New(), req)
		if apperr.GetKind(err) != apperr.KindValidation {
			t.Fatalf("expected validation error for year %d, got %v", year, err)
		}
	}
	if len(repo.records) != 0 {
		t.Fatalf("expected no stored records, got %d", len(repo.records))
	}
}

func TestGet_MissingGuesthouseIsNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Get(context.Background(), uuid.New(), uuid.New())
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGet_ForeignGuesthouseIsForbidden(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Create(context.Background(), uuid.New(), validCreateRequest())
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}

	_, err = svc.Get(context.Background(), uuid.New(), resp.ID)
	if apperr.GetKind(err) != apperr.KindForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestList_ReturnsOnlyOwnRecords(t *testing.T) {
	svc, _ := newTestService()
	owner := uuid.New()

	if _, err := svc.Create(context.Background(), owner, validCreateRequest()); err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}
	if _, err := svc.Create(context.Background(), uuid.New(), validCreateRequest()); err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}

	resp, err := svc.List(context.Background(), owner)
	if err != nil {
		t.Fatalf("expected list to succeed, got %v", err)
	}
	if resp.Count != 1 || len(resp.Guesthouses) != 1 {
		t.Fatalf("expected 1 guesthouse, got count %d len %d", resp.Count, len(resp.Guesthouses))
	}
}

func TestUpdate_ForeignGuesthouseIsForbidden(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Create(context.Background(), uuid.New(), validCreateRequest())
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}

	name := "Penthouse Takeover"
	_, err = svc.Update(context.Background(), uuid.New(), resp.ID, transport.UpdateGuesthouseRequest{Name: &name})
	if apperr.GetKind(err) != apperr.KindForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestUpdate_RejectsImplausibleConstructionYear(t *testing.T) {
	svc, _ := newTestService()
	owner := uuid.New()

	resp, err := svc.Create(context.Background(), owner, validCreateRequest())
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}

	year := 1650
	_, err = svc.Update(context.Background(), owner, resp.ID, transport.UpdateGuesthouseRequest{ConstructionYear: &year})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdate_AppliesPartialChanges(t *testing.T) {
	svc, _ := newTestService()
	owner := uuid.New()

	created, err := svc.Create(context.Background(), owner, validCreateRequest())
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}

	detectors := 6
	updated, err := svc.Update(context.Background(), owner, created.ID, transport.UpdateGuesthouseRequest{SmokeDetectors: &detectors})
	if err != nil {
		t.Fatalf("expected update to succeed, got %v", err)
	}
	if updated.SmokeDetectors != 6 {
		t.Fatalf("expected 6 smoke detectors, got %d", updated.SmokeDetectors)
	}
	if updated.Name != created.Name {
		t.Fatalf("expected untouched name %s, got %s", created.Name, updated.Name)
	}
}

func TestDelete_RemovesOwnedRecord(t *testing.T) {
	svc, repo := newTestService()
	owner := uuid.New()

	created, err := svc.Create(context.Background(), owner, validCreateRequest())
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}

	if err := svc.Delete(context.Background(), owner, created.ID); err != nil {
		t.Fatalf("expected delete to succeed, got %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != created.ID {
		t.Fatalf("expected delete of %s, got %v", created.ID, repo.deleted)
	}
}

func TestDelete_ForeignGuesthouseIsForbidden(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.Create(context.Background(), uuid.New(), validCreateRequest())
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}

	err = svc.Delete(context.Background(), uuid.New(), created.ID)
	if apperr.GetKind(err) != apperr.KindForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if len(repo.deleted) != 0 {
		t.Fatalf("expected no deletions, got %v", repo.deleted)
	}
}
