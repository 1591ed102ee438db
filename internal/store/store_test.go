package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ssegura/abasto/internal/alerts"
	"github.com/ssegura/abasto/internal/api"
	"github.com/ssegura/abasto/internal/loading"
	"github.com/ssegura/abasto/internal/models"
)

type fakeBackend struct {
	list   func(ctx context.Context, token string) ([]models.Product, error)
	shared func(ctx context.Context) ([]models.Product, error)
	get    func(ctx context.Context, token string, id int) (models.Product, error)
	create func(ctx context.Context, token string, payload any) (models.Product, error)
	update func(ctx context.Context, token string, id int, patch any) (models.Product, error)
	remove func(ctx context.Context, token string, id int) error
}

func (f *fakeBackend) List(ctx context.Context, token string) ([]models.Product, error) {
	return f.list(ctx, token)
}
func (f *fakeBackend) ListShared(ctx context.Context) ([]models.Product, error) {
	return f.shared(ctx)
}
func (f *fakeBackend) Get(ctx context.Context, token string, id int) (models.Product, error) {
	return f.get(ctx, token, id)
}
func (f *fakeBackend) Create(ctx context.Context, token string, payload any) (models.Product, error) {
	return f.create(ctx, token, payload)
}
func (f *fakeBackend) Update(ctx context.Context, token string, id int, patch any) (models.Product, error) {
	return f.update(ctx, token, id, patch)
}
func (f *fakeBackend) Delete(ctx context.Context, token string, id int) error {
	return f.remove(ctx, token, id)
}

type fakeCreds struct {
	token      string
	err        error
	authFailed atomic.Bool
}

func (f *fakeCreds) BearerToken() (string, error) { return f.token, f.err }
func (f *fakeCreds) AuthFailed()                  { f.authFailed.Store(true) }

type harness struct {
	store  *Store[models.Product]
	track  *loading.Tracker
	alerts *alerts.Center
	creds  *fakeCreds
}

func newHarness(backend *fakeBackend) harness {
	track := &loading.Tracker{}
	center := alerts.NewCenter()
	creds := &fakeCreds{token: "tok"}
	return harness{
		store:  New[models.Product]("products", backend, creds, track, center, nil),
		track:  track,
		alerts: center,
		creds:  creds,
	}
}

func TestFetchAll_SuccessReplacesWholesale(t *testing.T) {
	backend := &fakeBackend{
		list: func(context.Context, string) ([]models.Product, error) {
			return []models.Product{{ID: 1, Name: "Yerba mate"}, {ID: 2, Name: "Harina 000"}}, nil
		},
	}
	h := newHarness(backend)
	h.store.Hydrate([]models.Product{{ID: 9, Name: "viejo"}})

	if err := h.store.FetchAll(context.Background()); err != nil {
		t.Fatalf("FetchAll returned error: %v", err)
	}

	snap := h.store.Snapshot()
	if len(snap.Items) != 2 || snap.Items[0].ID != 1 || snap.Items[1].ID != 2 {
		t.Fatalf("items = %+v, want server list verbatim", snap.Items)
	}
	if snap.Status != StatusSucceeded || snap.Failure != nil || snap.Op != OpNone {
		t.Fatalf("envelope = status %v failure %v op %q, want succeeded/nil/none", snap.Status, snap.Failure, snap.Op)
	}
	if h.track.Active() {
		t.Fatal("tracker still active after completion")
	}
}

func TestFetchAll_FailureLeavesItemsVisible(t *testing.T) {
	backend := &fakeBackend{
		list: func(context.Context, string) ([]models.Product, error) {
			return nil, &api.TransportError{Op: "GET /products", Err: errors.New("conn refused")}
		},
	}
	h := newHarness(backend)
	h.store.Hydrate([]models.Product{{ID: 1, Name: "Yerba mate"}})

	if err := h.store.FetchAll(context.Background()); err == nil {
		t.Fatal("FetchAll should propagate the failure")
	}

	snap := h.store.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].ID != 1 {
		t.Fatalf("items = %+v, want stale data preserved", snap.Items)
	}
	if snap.Status != StatusFailed || snap.Failure == nil || snap.Failure.Kind != KindTransport {
		t.Fatalf("envelope = status %v failure %+v, want failed transport", snap.Status, snap.Failure)
	}
	if snap.Op != OpNone {
		t.Fatalf("op = %q, want cleared on completion", snap.Op)
	}
	if h.alerts.Len() != 0 {
		t.Fatal("transport failures must not reach the alert center")
	}
}

func TestFetchAll_RefusedLocallyWithoutSession(t *testing.T) {
	called := false
	backend := &fakeBackend{
		list: func(context.Context, string) ([]models.Product, error) {
			called = true
			return nil, nil
		},
	}
	h := newHarness(backend)
	h.creds.err = api.ErrAuthRequired

	err := h.store.FetchAll(context.Background())
	if !errors.Is(err, api.ErrAuthRequired) {
		t.Fatalf("error = %v, want ErrAuthRequired", err)
	}
	if called {
		t.Fatal("backend must not be called without a valid session")
	}
	snap := h.store.Snapshot()
	if snap.Failure == nil || snap.Failure.Kind != KindAuth {
		t.Fatalf("failure = %+v, want KindAuth", snap.Failure)
	}
	if h.alerts.Len() != 0 {
		t.Fatal("local auth refusals are not user-facing alerts")
	}
}

func TestAPIErrorPushesOneAlertWithTranslation(t *testing.T) {
	backend := &fakeBackend{
		list: func(context.Context, string) ([]models.Product, error) {
			return nil, &api.APIError{Entries: []api.ErrorEntry{
				{Code: 2000, Message: "not found", Translated: api.Translate(2000)},
			}}
		},
	}
	h := newHarness(backend)

	_ = h.store.FetchAll(context.Background())

	list := h.alerts.List()
	if len(list) != 1 {
		t.Fatalf("alerts = %d, want exactly one per rejection", len(list))
	}
	if len(list[0].Messages) != 1 || list[0].Messages[0] != "Recurso no encontrado" {
		t.Fatalf("messages = %v, want translated text", list[0].Messages)
	}
	if h.creds.authFailed.Load() {
		t.Fatal("non-auth code must not invalidate the session")
	}
}

func TestAuthClassCodeInvalidatesSession(t *testing.T) {
	backend := &fakeBackend{
		list: func(context.Context, string) ([]models.Product, error) {
			return nil, &api.APIError{Entries: []api.ErrorEntry{
				{Code: 1002, Message: "expired", Translated: api.Translate(1002)},
			}}
		},
	}
	h := newHarness(backend)

	_ = h.store.FetchAll(context.Background())

	if !h.creds.authFailed.Load() {
		t.Fatal("auth-class API error must invalidate the session")
	}
}

func TestCreate_AppendsServerRecord(t *testing.T) {
	backend := &fakeBackend{
		create: func(_ context.Context, _ string, payload any) (models.Product, error) {
			p := payload.(models.CreateProduct)
			return models.Product{ID: 42, Name: p.Name, Price: p.Price, Measure: p.Measure, Quantity: p.Quantity}, nil
		},
	}
	h := newHarness(backend)
	h.store.Hydrate([]models.Product{{ID: 1}})

	created, err := h.store.Create(context.Background(), models.CreateProduct{
		Name: "Azúcar", Price: 1100, Measure: "kg", Quantity: 80,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID != 42 {
		t.Fatalf("created id = %d, want server-assigned 42", created.ID)
	}

	items := h.store.Snapshot().Items
	if len(items) != 2 || items[1].ID != 42 {
		t.Fatalf("items = %+v, want original plus appended record", items)
	}
}

func TestCreate_ValidationNeverReachesBackend(t *testing.T) {
	called := false
	backend := &fakeBackend{
		create: func(context.Context, string, any) (models.Product, error) {
			called = true
			return models.Product{}, nil
		},
	}
	h := newHarness(backend)

	_, err := h.store.Create(context.Background(), models.CreateProduct{Name: "", Price: -1})
	if err == nil {
		t.Fatal("Create should reject an invalid payload")
	}
	if called {
		t.Fatal("invalid payload must not reach the network")
	}
	if h.store.Snapshot().Failure == nil {
		t.Fatal("validation failure should be recorded on the store")
	}
}

func TestUpdate_ReplacesInPlaceAndDropsUnknownIds(t *testing.T) {
	backend := &fakeBackend{
		update: func(_ context.Context, _ string, id int, _ any) (models.Product, error) {
			return models.Product{ID: id, Name: "renombrado", Price: 99, Brand: "marca"}, nil
		},
	}
	h := newHarness(backend)
	h.store.Hydrate([]models.Product{{ID: 1, Name: "uno"}, {ID: 2, Name: "dos"}})

	if _, err := h.store.Update(context.Background(), 2, map[string]any{"name": "renombrado"}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	items := h.store.Snapshot().Items
	if len(items) != 2 || items[1].Name != "renombrado" || items[0].Name != "uno" {
		t.Fatalf("items = %+v, want id 2 replaced in place", items)
	}

	// An update for an id the list no longer holds is dropped, not inserted.
	if _, err := h.store.Update(context.Background(), 77, map[string]any{}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	items = h.store.Snapshot().Items
	if len(items) != 2 {
		t.Fatalf("items = %+v, orphan update must not grow the list", items)
	}
}

func TestDelete_RemovesExactlyOne(t *testing.T) {
	backend := &fakeBackend{
		remove: func(context.Context, string, int) error { return nil },
	}
	h := newHarness(backend)
	h.store.Hydrate([]models.Product{{ID: 1}, {ID: 2}, {ID: 3}})

	if err := h.store.Delete(context.Background(), 2); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	items := h.store.Snapshot().Items
	if len(items) != 2 || items[0].ID != 1 || items[1].ID != 3 {
		t.Fatalf("items = %+v, want ids 1 and 3", items)
	}
}

func TestFetchByID_UpsertsIndexOnly(t *testing.T) {
	backend := &fakeBackend{
		get: func(_ context.Context, _ string, id int) (models.Product, error) {
			if id != 5 {
				return models.Product{}, &api.APIError{Entries: []api.ErrorEntry{
					{Code: 2000, Message: "not found", Translated: api.Translate(2000)},
				}}
			}
			return models.Product{ID: 5, Name: "Aceite"}, nil
		},
	}
	h := newHarness(backend)
	h.store.Hydrate([]models.Product{{ID: 1}})

	item, err := h.store.FetchByID(context.Background(), 5)
	if err != nil {
		t.Fatalf("FetchByID returned error: %v", err)
	}
	if item.Name != "Aceite" {
		t.Fatalf("item = %+v, want Aceite", item)
	}
	if got, ok := h.store.ByID(5); !ok || got.Name != "Aceite" {
		t.Fatalf("ByID(5) = %+v %v, want indexed record", got, ok)
	}
	if items := h.store.Snapshot().Items; len(items) != 1 || items[0].ID != 1 {
		t.Fatalf("items = %+v, main list must not change", items)
	}

	if _, err := h.store.FetchByID(context.Background(), 99); err == nil {
		t.Fatal("FetchByID(99) should surface the server's not-found error")
	}
	if h.alerts.Len() != 1 {
		t.Fatalf("alerts = %d, want the not-found rejection surfaced", h.alerts.Len())
	}
}

func TestFetch_StaleCompletionDiscarded(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	backend := &fakeBackend{
		list: func(context.Context, string) ([]models.Product, error) {
			if calls.Add(1) == 1 {
				<-release
				return []models.Product{{ID: 1, Name: "respuesta vieja"}}, nil
			}
			return []models.Product{{ID: 2, Name: "respuesta nueva"}}, nil
		},
	}
	h := newHarness(backend)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = h.store.FetchAll(context.Background())
	}()

	// Wait until the first fetch has drawn its sequence number and is
	// blocked inside the backend.
	deadline := time.Now().Add(2 * time.Second)
	for calls.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("first fetch never reached the backend")
		}
		time.Sleep(time.Millisecond)
	}

	if err := h.store.FetchAll(context.Background()); err != nil {
		t.Fatalf("second FetchAll returned error: %v", err)
	}
	close(release)
	wg.Wait()

	items := h.store.Snapshot().Items
	if len(items) != 1 || items[0].Name != "respuesta nueva" {
		t.Fatalf("items = %+v, the older completion must be discarded", items)
	}
	if h.track.Active() {
		t.Fatal("tracker should be idle after both fetches settle")
	}
}

func TestFetch_CancelledContextNotApplied(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	backend := &fakeBackend{
		list: func(context.Context, string) ([]models.Product, error) {
			cancel() // cancelled while the response is in flight
			return []models.Product{{ID: 1}}, nil
		},
	}
	h := newHarness(backend)
	h.store.Hydrate([]models.Product{{ID: 9}})

	if err := h.store.FetchAll(ctx); err == nil {
		t.Fatal("FetchAll should report the cancellation")
	}
	items := h.store.Snapshot().Items
	if len(items) != 1 || items[0].ID != 9 {
		t.Fatalf("items = %+v, cancelled result must not be applied", items)
	}
	if h.track.Active() {
		t.Fatal("tracker must unregister on cancellation")
	}
}

func TestOperationRegistersWithTracker(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	backend := &fakeBackend{
		shared: func(context.Context) ([]models.Product, error) {
			close(entered)
			<-release
			return nil, nil
		},
	}
	h := newHarness(backend)

	done := make(chan struct{})
	go func() {
		_ = h.store.FetchShared(context.Background())
		close(done)
	}()

	<-entered
	if !h.track.Active() {
		t.Fatal("tracker should be active while the operation is in flight")
	}
	snap := h.store.Snapshot()
	if snap.Status != StatusLoading || snap.Op != OpFetchShared {
		t.Fatalf("envelope = status %v op %q, want loading/fetch-shared", snap.Status, snap.Op)
	}

	close(release)
	<-done
	if h.track.Active() {
		t.Fatal("tracker should be idle after completion")
	}
}
