package state

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vfpar/registro/internal/registry"
)

type sourceFunc func(ctx context.Context) ([]registry.Company, error)

func (f sourceFunc) Fetch(ctx context.Context) ([]registry.Company, error) { return f(ctx) }

func staticSource(companies ...registry.Company) sourceFunc {
	return func(context.Context) ([]registry.Company, error) { return companies, nil }
}

func failingSource(err error) sourceFunc {
	return func(context.Context) ([]registry.Company, error) { return nil, err }
}

func TestLoader_LoadSuccess(t *testing.T) {
	store := &Store{}
	l := NewLoader(store, staticSource(registry.Company{ID: 1, Name: "Acme"}), nil)

	if err := l.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	snap := store.Snapshot()
	if snap.Status != StatusReady {
		t.Fatalf("Status = %v, want ready", snap.Status)
	}
	if len(snap.Companies) != 1 || !snap.HasData() {
		t.Fatalf("snapshot = %#v, want one committed record", snap)
	}
}

func TestLoader_NetworkFailureOnFirstLoad(t *testing.T) {
	store := &Store{}
	l := NewLoader(store, failingSource(errors.New("dial tcp: connection refused")), nil)

	err := l.Load(context.Background())
	if err == nil {
		t.Fatalf("Load returned nil error, want failure")
	}
	snap := store.Snapshot()
	if snap.Status != StatusFailed {
		t.Fatalf("Status = %v, want failed", snap.Status)
	}
	if snap.Message == "" || !strings.HasPrefix(snap.Message, FailurePrefix) {
		t.Fatalf("Message = %q, want prefix %q", snap.Message, FailurePrefix)
	}
	if !strings.Contains(snap.Message, "connection refused") {
		t.Fatalf("Message = %q, want underlying error details", snap.Message)
	}
	if len(snap.Companies) != 0 {
		t.Fatalf("Companies = %#v, want empty after failed first load", snap.Companies)
	}
}

func TestLoader_FailureKeepsPreviousCollection(t *testing.T) {
	store := &Store{}
	ok := NewLoader(store, staticSource(registry.Company{ID: 1}, registry.Company{ID: 2}), nil)
	if err := ok.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	bad := NewLoader(store, failingSource(errors.New("api returned status 500")), nil)
	if err := bad.Load(context.Background()); err == nil {
		t.Fatalf("Load returned nil error, want failure")
	}
	if got := store.Snapshot().Companies; len(got) != 2 {
		t.Fatalf("Companies = %d records, want 2 preserved", len(got))
	}

	if err := ok.Load(context.Background()); err != nil {
		t.Fatalf("retry Load returned error: %v", err)
	}
	if snap := store.Snapshot(); snap.Status != StatusReady || snap.Message != "" {
		t.Fatalf("after retry status=%v message=%q, want ready and empty", snap.Status, snap.Message)
	}
}

func TestLoader_OnlyLatestRequestCommits(t *testing.T) {
	store := &Store{}
	calls := 0
	src := sourceFunc(func(context.Context) ([]registry.Company, error) {
		calls++
		return []registry.Company{{ID: int64(calls)}}, nil
	})
	l := NewLoader(store, src, nil)

	first := l.Begin()
	second := l.Begin()

	// The second request resolves first; the late first result must be dropped.
	newer := l.Fetch(context.Background(), second)
	older := l.Fetch(context.Background(), first)

	if !l.Apply(newer) {
		t.Fatalf("Apply(newer) = false, want true")
	}
	if l.Apply(older) {
		t.Fatalf("Apply(older) = true, want false")
	}
	snap := store.Snapshot()
	if len(snap.Companies) != 1 || snap.Companies[0].ID != 1 {
		t.Fatalf("Companies = %#v, want the newer result", snap.Companies)
	}
}

func TestLoader_StaleFailureDoesNotOverwriteReady(t *testing.T) {
	store := &Store{}
	l := NewLoader(store, staticSource(registry.Company{ID: 1}), nil)

	stale := l.Begin()
	latest := l.Begin()
	if !l.Apply(l.Fetch(context.Background(), latest)) {
		t.Fatalf("Apply(latest) = false")
	}
	if l.Apply(Result{Request: stale, Err: errors.New("timeout")}) {
		t.Fatalf("Apply(stale failure) = true, want false")
	}
	if snap := store.Snapshot(); snap.Status != StatusReady {
		t.Fatalf("Status = %v, want ready", snap.Status)
	}
}

func TestLoader_LoadReportsSuperseded(t *testing.T) {
	store := &Store{}
	var l *Loader
	src := sourceFunc(func(context.Context) ([]registry.Company, error) {
		l.Begin() // a newer request starts while this one is in flight
		return []registry.Company{{ID: 1}}, nil
	})
	l = NewLoader(store, src, nil)

	if err := l.Load(context.Background()); !errors.Is(err, ErrSuperseded) {
		t.Fatalf("Load error = %v, want ErrSuperseded", err)
	}
	if snap := store.Snapshot(); snap.Status != StatusLoading || len(snap.Companies) != 0 {
		t.Fatalf("snapshot = %#v, want untouched loading state", snap)
	}
}

func TestLoader_BeginClearsPriorError(t *testing.T) {
	store := &Store{}
	l := NewLoader(store, failingSource(errors.New("boom")), nil)
	_ = l.Load(context.Background())

	l.Begin()
	if snap := store.Snapshot(); snap.Status != StatusLoading || snap.Message != "" {
		t.Fatalf("after Begin status=%v message=%q, want loading and empty", snap.Status, snap.Message)
	}
}

func TestFailureMessage(t *testing.T) {
	if got := FailureMessage(nil); got != "" {
		t.Fatalf("FailureMessage(nil) = %q, want empty", got)
	}
	want := FailurePrefix + " Detalhes: boom"
	if got := FailureMessage(errors.New("boom")); got != want {
		t.Fatalf("FailureMessage = %q, want %q", got, want)
	}
}
