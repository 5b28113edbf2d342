package kvstore

import "testing"

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory()

	if err := m.Set("app1", "k", payload{Name: "zyro", Count: 3}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got payload
	found, err := m.Get("app1", "k", &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found {
		t.Fatal("expected blob to be found")
	}
	if got.Name != "zyro" || got.Count != 3 {
		t.Errorf("got %+v", got)
	}
}

func TestMemoryMissingKey(t *testing.T) {
	m := NewMemory()

	var got payload
	found, err := m.Get("app1", "nope", &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Error("expected found=false for missing key")
	}
}

func TestMemoryTenantIsolation(t *testing.T) {
	m := NewMemory()

	if err := m.Set("app1", "k", payload{Name: "one"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got payload
	found, err := m.Get("app2", "k", &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Error("blob leaked across tenants")
	}
}

func TestMemoryDelete(t *testing.T) {
	m := NewMemory()

	if err := m.Set("app1", "k", payload{Name: "zyro"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := m.Delete("app1", "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var got payload
	found, _ := m.Get("app1", "k", &got)
	if found {
		t.Error("expected blob gone after delete")
	}
}
