package repocache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// fakeClone writes the given payload into dest and counts invocations.
type fakeClone struct {
	calls   int
	payload []byte
	err     error
}

func (f *fakeClone) fn(_ context.Context, _, _, _, dest string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dest, "main.py"), f.payload, 0o600)
}

func TestKeyStableAndRefSensitive(t *testing.T) {
	a := Key("https://github.com/acme/api", "main")
	b := Key("https://github.com/acme/api", "main")
	if a != b {
		t.Error("same url+ref produced different keys")
	}
	if Key("https://github.com/acme/api", "dev") == a {
		t.Error("different refs produced the same key")
	}
	if Key("https://github.com/acme/api", "") == a {
		t.Error("empty ref should map to a distinct default key")
	}
}

func TestResolveClonesOnceThenHits(t *testing.T) {
	clone := &fakeClone{payload: []byte("def foo(): pass\n")}
	c := New(t.TempDir(), time.Hour, 100, 0, clone.fn)

	first, err := c.Resolve(context.Background(), "https://github.com/acme/api", "main", "")
	if err != nil {
		t.Fatalf("first Resolve: %v", err)
	}
	second, err := c.Resolve(context.Background(), "https://github.com/acme/api", "main", "")
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}

	if first != second {
		t.Errorf("paths differ: %q vs %q", first, second)
	}
	if clone.calls != 1 {
		t.Errorf("expected 1 clone, got %d", clone.calls)
	}
	if _, err := os.Stat(filepath.Join(first, "main.py")); err != nil {
		t.Errorf("cloned file missing: %v", err)
	}
}

func TestResolveReclonesExpiredEntry(t *testing.T) {
	clone := &fakeClone{payload: []byte("x = 1\n")}
	c := New(t.TempDir(), time.Hour, 100, 0, clone.fn)

	path, err := c.Resolve(context.Background(), "https://github.com/acme/api", "", "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	// Age the entry past the TTL.
	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatal(err)
	}

	if _, err := c.Resolve(context.Background(), "https://github.com/acme/api", "", ""); err != nil {
		t.Fatalf("Resolve after expiry: %v", err)
	}
	if clone.calls != 2 {
		t.Errorf("expected re-clone after expiry, got %d clones", clone.calls)
	}
}

func TestResolveHitDoesNotExtendTTL(t *testing.T) {
	clone := &fakeClone{payload: []byte("x = 1\n")}
	c := New(t.TempDir(), time.Hour, 100, 0, clone.fn)

	path, err := c.Resolve(context.Background(), "https://github.com/acme/api", "", "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	old := time.Now().Add(-45 * time.Minute)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatal(err)
	}

	if _, err := c.Resolve(context.Background(), "https://github.com/acme/api", "", ""); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if clone.calls != 1 {
		t.Fatalf("hit within TTL triggered a clone, got %d clones", clone.calls)
	}

	// Age is measured from clone time: a hit must not push the entry's
	// expiry out, otherwise steady traffic would pin a stale clone forever.
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.ModTime().After(old.Add(time.Minute)) {
		t.Errorf("cache hit refreshed the entry mod time: %v", info.ModTime())
	}

	expired := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(path, expired, expired); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Resolve(context.Background(), "https://github.com/acme/api", "", ""); err != nil {
		t.Fatalf("Resolve after expiry: %v", err)
	}
	if clone.calls != 2 {
		t.Errorf("expected re-clone once the entry aged out, got %d clones", clone.calls)
	}
}

func TestResolveFailedCloneLeavesNothing(t *testing.T) {
	clone := &fakeClone{err: errors.New("network down")}
	dir := t.TempDir()
	c := New(dir, time.Hour, 100, 0, clone.fn)

	if _, err := c.Resolve(context.Background(), "https://github.com/acme/api", "", ""); err == nil {
		t.Fatal("expected clone error")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("failed clone left %d entries behind", len(entries))
	}
}

func TestEvictionRemovesOldestFirst(t *testing.T) {
	dir := t.TempDir()
	// 1 MiB ceiling, each clone writes ~600 KiB: the second clone pushes
	// the total over the limit and the first entry must go.
	clone := &fakeClone{payload: make([]byte, 600*1024)}
	c := New(dir, time.Hour, 1, 0, clone.fn)

	first, err := c.Resolve(context.Background(), "https://github.com/acme/one", "", "")
	if err != nil {
		t.Fatalf("Resolve one: %v", err)
	}
	old := time.Now().Add(-10 * time.Minute)
	if err := os.Chtimes(first, old, old); err != nil {
		t.Fatal(err)
	}

	second, err := c.Resolve(context.Background(), "https://github.com/acme/two", "", "")
	if err != nil {
		t.Fatalf("Resolve two: %v", err)
	}

	if _, err := os.Stat(first); !os.IsNotExist(err) {
		t.Error("oldest entry not evicted")
	}
	if _, err := os.Stat(second); err != nil {
		t.Errorf("newest entry evicted: %v", err)
	}
}

func TestInvalidate(t *testing.T) {
	clone := &fakeClone{payload: []byte("x = 1\n")}
	c := New(t.TempDir(), time.Hour, 100, 0, clone.fn)

	path, err := c.Resolve(context.Background(), "https://github.com/acme/api", "main", "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if err := c.Invalidate("https://github.com/acme/api", "main"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("entry still present after Invalidate")
	}
}

func TestInvalidateAll(t *testing.T) {
	clone := &fakeClone{payload: []byte("x = 1\n")}
	dir := t.TempDir()
	c := New(dir, time.Hour, 100, 0, clone.fn)

	for _, url := range []string{"https://github.com/acme/one", "https://github.com/acme/two"} {
		if _, err := c.Resolve(context.Background(), url, "", ""); err != nil {
			t.Fatalf("Resolve %s: %v", url, err)
		}
	}
	if err := c.InvalidateAll(); err != nil {
		t.Fatalf("InvalidateAll: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty cache, found %d entries", len(entries))
	}
}

func TestInfo(t *testing.T) {
	clone := &fakeClone{payload: []byte("x = 1\n")}
	dir := t.TempDir()
	c := New(dir, time.Hour, 100, 0, clone.fn)

	if _, err := c.Resolve(context.Background(), "https://github.com/acme/api", "", ""); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	info, err := c.Info()
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info.Dir != dir {
		t.Errorf("Dir = %q, want %q", info.Dir, dir)
	}
	if len(info.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(info.Entries))
	}
	if info.Entries[0].SizeBytes == 0 || info.TotalSizeBytes != info.Entries[0].SizeBytes {
		t.Errorf("size accounting wrong: %+v", info)
	}
}

func TestInfoEmptyCache(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "never-created"), time.Hour, 100, 0, nil)
	info, err := c.Info()
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if len(info.Entries) != 0 || info.TotalSizeBytes != 0 {
		t.Errorf("expected empty info, got %+v", info)
	}
}
