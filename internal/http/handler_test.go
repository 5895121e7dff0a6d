package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"vehicle-service/internal/model"
	"vehicle-service/internal/repository"
	"vehicle-service/internal/service"
)

type memStore struct {
	vehicles map[uuid.UUID]*model.Vehicle
}

func (s *memStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	v, ok := s.vehicles[id]
	if !ok {
		return nil, nil
	}
	return v.Clone(), nil
}

func (s *memStore) GetByPlate(ctx context.Context, plate string) (*model.Vehicle, error) {
	for _, v := range s.vehicles {
		if v.LicensePlate == plate {
			return v.Clone(), nil
		}
	}
	return nil, nil
}

func (s *memStore) Save(ctx context.Context, v *model.Vehicle) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	s.vehicles[v.ID] = v.Clone()
	return nil
}

func (s *memStore) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.vehicles, id)
	return nil
}

func (s *memStore) List(ctx context.Context, filter repository.VehicleListFilter, offset, limit int) ([]model.Vehicle, int64, error) {
	var out []model.Vehicle
	for _, v := range s.vehicles {
		out = append(out, *v.Clone())
	}
	return out, int64(len(out)), nil
}

type memResolver struct {
	routes map[string]bool
	err    error
}

func (r *memResolver) Resolve(ctx context.Context, routeID string) (*model.RouteRef, error) {
	if r.err != nil {
		return nil, r.err
	}
	if !r.routes[routeID] {
		return nil, nil
	}
	return &model.RouteRef{ID: routeID}, nil
}

type memPublisher struct {
	err   error
	count int
}

func (p *memPublisher) VehicleCreated(ctx context.Context, v *model.Vehicle) error {
	if p.err != nil {
		return p.err
	}
	p.count++
	return nil
}

func (p *memPublisher) VehicleUpdated(ctx context.Context, v *model.Vehicle) error {
	if p.err != nil {
		return p.err
	}
	p.count++
	return nil
}

func (p *memPublisher) VehicleDeleted(ctx context.Context, id uuid.UUID) error {
	if p.err != nil {
		return p.err
	}
	p.count++
	return nil
}

func newTestRouter() (*memStore, *memPublisher, http.Handler) {
	store, _, publisher, router := newTestRouterWithResolver()
	return store, publisher, router
}

func newTestRouterWithResolver() (*memStore, *memResolver, *memPublisher, http.Handler) {
	store := &memStore{vehicles: make(map[uuid.UUID]*model.Vehicle)}
	resolver := &memResolver{routes: map[string]bool{"R1": true, "R2": true}}
	publisher := &memPublisher{}
	svc := service.NewVehicleService(store, resolver, publisher)
	handler := NewHandler(svc, zerolog.Nop())
	return store, resolver, publisher, NewRouter(handler, "test")
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const createBody = `{"license_plate":"XYZ123","capacity":50,"status":"IN_SERVICE","type":"BUS","route_id":"R1"}`

func TestCreateVehicleEndpoint(t *testing.T) {
	_, publisher, router := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/vehicles", createBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"license_plate":"XYZ123"`) {
		t.Fatalf("expected created vehicle in body, got %s", w.Body.String())
	}
	if publisher.count != 1 {
		t.Fatalf("expected one published event, got %d", publisher.count)
	}
}

func TestCreateVehicleUnknownRoute(t *testing.T) {
	store, _, router := newTestRouter()

	body := strings.Replace(createBody, `"R1"`, `"R404"`, 1)
	w := doJSON(t, router, http.MethodPost, "/vehicles", body)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
	if len(store.vehicles) != 0 {
		t.Fatalf("nothing should be persisted")
	}
}

func TestCreateVehicleValidationViolations(t *testing.T) {
	_, _, router := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/vehicles",
		`{"license_plate":"","capacity":-1,"status":"IN_SERVICE","type":"BUS","route_id":"R1"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "violations") {
		t.Fatalf("expected violations list, got %s", w.Body.String())
	}
}

func TestCreateVehicleDuplicatePlateReturns409(t *testing.T) {
	store, _, router := newTestRouter()

	if w := doJSON(t, router, http.MethodPost, "/vehicles", createBody); w.Code != http.StatusCreated {
		t.Fatalf("create: %d", w.Code)
	}

	w := doJSON(t, router, http.MethodPost, "/vehicles", createBody)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	if len(store.vehicles) != 1 {
		t.Fatalf("duplicate must not be persisted")
	}
}

func TestCreateVehicleResolverOutageReturns503(t *testing.T) {
	store, resolver, _, router := newTestRouterWithResolver()
	resolver.err = fmt.Errorf("connection refused")

	w := doJSON(t, router, http.MethodPost, "/vehicles", createBody)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", w.Code, w.Body.String())
	}
	if len(store.vehicles) != 0 {
		t.Fatalf("nothing should be persisted during an outage")
	}
}

func TestCreateVehiclePublishFailureReturns502WithEntity(t *testing.T) {
	store, publisher, router := newTestRouter()
	publisher.err = fmt.Errorf("broker gone")

	w := doJSON(t, router, http.MethodPost, "/vehicles", createBody)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"license_plate":"XYZ123"`) {
		t.Fatalf("persisted entity must be in the response, got %s", w.Body.String())
	}
	if len(store.vehicles) != 1 {
		t.Fatalf("vehicle must remain persisted")
	}
}

func TestUpdateVehicleEndpoint(t *testing.T) {
	store, _, router := newTestRouter()

	created := doJSON(t, router, http.MethodPost, "/vehicles", createBody)
	if created.Code != http.StatusCreated {
		t.Fatalf("create: %d", created.Code)
	}
	var id uuid.UUID
	for k := range store.vehicles {
		id = k
	}

	w := doJSON(t, router, http.MethodPut, "/vehicles/"+id.String(), `{"capacity":60}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if store.vehicles[id].Capacity != 60 {
		t.Fatalf("expected capacity 60, got %d", store.vehicles[id].Capacity)
	}
	if store.vehicles[id].LicensePlate != "XYZ123" {
		t.Fatalf("other fields must be unchanged")
	}
}

func TestUpdateVehicleNotFound(t *testing.T) {
	_, publisher, router := newTestRouter()

	w := doJSON(t, router, http.MethodPut, "/vehicles/"+uuid.New().String(), `{"capacity":60}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
	if publisher.count != 0 {
		t.Fatalf("no event expected")
	}
}

func TestDeleteVehicleEndpoint(t *testing.T) {
	store, _, router := newTestRouter()

	doJSON(t, router, http.MethodPost, "/vehicles", createBody)
	var id uuid.UUID
	for k := range store.vehicles {
		id = k
	}

	w := doJSON(t, router, http.MethodDelete, "/vehicles/"+id.String(), "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
	}
	if len(store.vehicles) != 0 {
		t.Fatalf("expected vehicle removed")
	}
}

func TestDeleteVehicleNotFound(t *testing.T) {
	_, publisher, router := newTestRouter()

	w := doJSON(t, router, http.MethodDelete, "/vehicles/"+uuid.New().String(), "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
	if publisher.count != 0 {
		t.Fatalf("no event expected")
	}
}

func TestVehicleIDValidation(t *testing.T) {
	_, _, router := newTestRouter()

	w := doJSON(t, router, http.MethodDelete, "/vehicles/not-a-uuid", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetVehicleEndpoint(t *testing.T) {
	store, _, router := newTestRouter()

	doJSON(t, router, http.MethodPost, "/vehicles", createBody)
	var id uuid.UUID
	for k := range store.vehicles {
		id = k
	}

	w := doJSON(t, router, http.MethodGet, "/vehicles/"+id.String(), "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/vehicles/"+uuid.New().String(), "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestHealthz(t *testing.T) {
	_, _, router := newTestRouter()

	w := doJSON(t, router, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
