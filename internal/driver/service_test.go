package driver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/ralt/drivermgr/internal/models"
	"github.com/ralt/drivermgr/internal/query"
)

const successBody = `{"msg":"success","data":{"list":[
  {"packages":"nvidia-driver","deb_version":"470.1","level":1,"size":1048576}
]}}`

// fakeTransport returns canned bodies keyed by a substring of the URL
type fakeTransport struct {
	mu       sync.Mutex
	bodies   map[string]string
	err      error
	requests []string
	inFlight atomic.Int32
	maxSeen  atomic.Int32
	delay    time.Duration

	// onGet runs at the start of every request
	onGet func()
}

func (f *fakeTransport) Get(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	if f.onGet != nil {
		f.onGet()
	}
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		seen := f.maxSeen.Load()
		if n <= seen || f.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	f.requests = append(f.requests, url)
	f.mu.Unlock()

	if timeout != 10*time.Second {
		return nil, fmt.Errorf("unexpected timeout %s", timeout)
	}
	if f.err != nil {
		return nil, f.err
	}
	for key, body := range f.bodies {
		if strings.Contains(url, key) {
			return []byte(body), nil
		}
	}
	return []byte(`{"msg":"success","data":{"list":[]}}`), nil
}

func newTestService(tr *fakeTransport, o *fakeOracle) *Service {
	host := models.Host{Arch: "amd64", OSBuild: "11018", MajorVersion: "20", MinorVersion: "1060"}
	return NewService(query.NewBuilder("https://drivers.example.com/search", host), tr, o, 0)
}

func TestLookupSelected(t *testing.T) {
	tr := &fakeTransport{bodies: map[string]string{"product=1f82": successBody}}
	o := &fakeOracle{answers: map[string]models.InstallStatus{"nvidia-driver": models.VersionMismatch}}
	svc := newTestService(tr, o)

	before := testutil.ToFloat64(lookupCounter.WithLabelValues(string(models.OutcomeSelected)))

	res, err := svc.Lookup(context.Background(), models.Device{Class: models.ClassGPU, VendorID: "10de", ModelID: "1f82"})
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if res == nil {
		t.Fatal("expected a selection")
	}
	if res.Packages != "nvidia-driver" || res.Size != "1.00MB" || res.Status != models.StatusCanUpdate {
		t.Errorf("unexpected result: %+v", res)
	}

	after := testutil.ToFloat64(lookupCounter.WithLabelValues(string(models.OutcomeSelected)))
	if after != before+1 {
		t.Errorf("selected counter moved from %v to %v", before, after)
	}
}

func TestLookupEmptyQuery(t *testing.T) {
	tr := &fakeTransport{}
	svc := newTestService(tr, &fakeOracle{})

	res, err := svc.Lookup(context.Background(), models.Device{Class: models.ClassGPU})
	if res != nil {
		t.Errorf("expected no result, got %+v", res)
	}
	if !models.IsErrorType(err, models.ErrEmptyQuery) || !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("expected empty query error, got %v", err)
	}
	if len(tr.requests) != 0 {
		t.Errorf("no request should be issued, got %v", tr.requests)
	}
}

func TestLookupNetworkError(t *testing.T) {
	tr := &fakeTransport{err: errors.New("connection refused")}
	o := &fakeOracle{}
	svc := newTestService(tr, o)

	res, err := svc.Lookup(context.Background(), models.Device{Class: models.ClassGPU, VendorID: "10de"})
	if res != nil {
		t.Errorf("expected no result, got %+v", res)
	}
	if !models.IsErrorType(err, models.ErrNetwork) {
		t.Errorf("expected network error, got %v", err)
	}
	if len(o.probes) != 0 {
		t.Errorf("oracle must not run after a network error")
	}
}

func TestLookupDecodeFailureIsNoUpdate(t *testing.T) {
	for _, body := range []string{`garbage`, `{"msg":"fail"}`, `{"msg":"success","data":{"list":[]}}`} {
		tr := &fakeTransport{bodies: map[string]string{"10de": body}}
		svc := newTestService(tr, &fakeOracle{})

		res, err := svc.Lookup(context.Background(), models.Device{Class: models.ClassGPU, VendorID: "10de"})
		if res != nil || err != nil {
			t.Errorf("%s: expected (nil, nil), got (%+v, %v)", body, res, err)
		}
	}
}

func TestScan(t *testing.T) {
	tr := &fakeTransport{
		bodies: map[string]string{"product=1f82": successBody},
		delay:  10 * time.Millisecond,
	}
	o := &fakeOracle{answers: map[string]models.InstallStatus{}}
	svc := newTestService(tr, o)

	devices := []models.Device{
		{Name: "gpu", Class: models.ClassGPU, VendorID: "10de", ModelID: "1f82"},
		{Name: "blank", Class: models.ClassSound},
		{Name: "nic", Class: models.ClassNetwork, VendorID: "10ec", ModelID: "8168"},
		{Name: "gpu2", Class: models.ClassGPU, VendorID: "10de", ModelID: "1f82"},
		{Name: "mystery", Class: models.ClassUnknown, VendorID: "1"},
	}

	reports, err := svc.Scan(context.Background(), devices, 2)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	want := []models.Outcome{
		models.OutcomeSelected,
		models.OutcomeEmptyQuery,
		models.OutcomeNoCandidates,
		models.OutcomeSelected,
		models.OutcomeEmptyQuery,
	}
	if len(reports) != len(want) {
		t.Fatalf("expected %d reports, got %d", len(want), len(reports))
	}
	for i, r := range reports {
		if r.Device.Name != devices[i].Name {
			t.Errorf("report %d out of order: %s", i, r.Device.Name)
		}
		if r.Outcome != want[i] {
			t.Errorf("%s: outcome %s, want %s", r.Device.Name, r.Outcome, want[i])
		}
	}
	if reports[0].Result == nil || reports[0].Result.Status != models.StatusNotInstalled {
		t.Errorf("unexpected gpu result: %+v", reports[0].Result)
	}
	if reports[1].Error == "" {
		t.Error("empty query should carry an error message")
	}

	if got := tr.maxSeen.Load(); got > 2 {
		t.Errorf("job limit exceeded: %d requests in flight", got)
	}
}

func TestScanNetworkErrorDoesNotAbort(t *testing.T) {
	tr := &fakeTransport{err: errors.New("timeout")}
	svc := newTestService(tr, &fakeOracle{})

	devices := []models.Device{
		{Name: "a", Class: models.ClassGPU, VendorID: "1"},
		{Name: "b", Class: models.ClassGPU, VendorID: "2"},
	}

	reports, err := svc.Scan(context.Background(), devices, 4)
	if err != nil {
		t.Fatalf("Scan should not fail on device errors: %v", err)
	}
	for _, r := range reports {
		if r.Outcome != models.OutcomeNetworkError || r.Result != nil {
			t.Errorf("%s: unexpected report %+v", r.Device.Name, r)
		}
	}
}

func TestScanCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := newTestService(&fakeTransport{}, &fakeOracle{})
	_, err := svc.Scan(ctx, []models.Device{{Class: models.ClassGPU, VendorID: "1"}}, 1)
	if err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestScanCancelledWaitsForStartedLookups(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var once sync.Once
	tr := &fakeTransport{
		delay: 20 * time.Millisecond,
		onGet: func() { once.Do(cancel) },
	}
	svc := newTestService(tr, &fakeOracle{})

	devices := make([]models.Device, 32)
	for i := range devices {
		devices[i] = models.Device{Name: fmt.Sprintf("gpu%d", i), Class: models.ClassGPU, VendorID: "10de"}
	}

	_, err := svc.Scan(ctx, devices, 4)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if n := tr.inFlight.Load(); n != 0 {
		t.Errorf("%d lookups still running after Scan returned", n)
	}

	tr.mu.Lock()
	done := len(tr.requests)
	tr.mu.Unlock()

	time.Sleep(50 * time.Millisecond)

	tr.mu.Lock()
	defer tr.mu.Unlock()
	if len(tr.requests) != done {
		t.Errorf("requests finished after Scan returned: %d -> %d", done, len(tr.requests))
	}
	if done == len(devices) {
		t.Errorf("cancellation should stop the scan early")
	}
}
