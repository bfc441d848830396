package hoststore

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenAt(filepath.Join(t.TempDir(), "hosts.db"))
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddAndGet(t *testing.T) {
	s := openTestStore(t)
	added, err := s.Add(Profile{Name: "box1", Hostname: "box1.example.com", Port: 22, AuthKind: AuthPassword})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if added.ID == "" {
		t.Fatalf("expected generated id")
	}
	got, ok, err := s.Get(added.ID)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.Hostname != "box1.example.com" {
		t.Fatalf("got hostname %q", got.Hostname)
	}
}

func TestUpdateAndRemove(t *testing.T) {
	s := openTestStore(t)
	p, _ := s.Add(Profile{Name: "box1", Hostname: "1.2.3.4", Port: 22})
	p.Port = 2222
	if err := s.Update(p); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _, _ := s.Get(p.ID)
	if got.Port != 2222 {
		t.Fatalf("port not updated, got %d", got.Port)
	}
	if err := s.Remove(p.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok, _ := s.Get(p.ID); ok {
		t.Fatalf("expected profile removed")
	}
}

func TestListOrdersByName(t *testing.T) {
	s := openTestStore(t)
	s.Add(Profile{Name: "zeta", Hostname: "z"})
	s.Add(Profile{Name: "alpha", Hostname: "a"})
	list, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].Name != "alpha" || list[1].Name != "zeta" {
		t.Fatalf("got %+v", list)
	}
}
