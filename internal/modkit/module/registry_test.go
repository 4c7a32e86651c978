package module

import (
	"sort"
	"sync"
	"testing"
)

type portSet struct {
	Name string
	ID   int
}

func TestRegistry_RegisterAndPortsAs(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Register("periods", portSet{Name: "a", ID: 1})
	Register("periods", portSet{Name: "b", ID: 2})

	got, ok := PortsAs[portSet]("periods")
	if !ok || got.Name != "b" {
		t.Fatalf("got %+v ok=%v, want overwritten value", got, ok)
	}
	if _, ok := PortsAs[int]("periods"); ok {
		t.Fatal("type mismatch should report false")
	}
	if got, ok := PortsAs[portSet]("missing"); ok || got != (portSet{}) {
		t.Fatalf("missing = %+v ok=%v", got, ok)
	}
}

func TestRegistry_NamesAndReset(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Register("meta", nil)
	Register("dashboard", nil)
	names := Names()
	sort.Strings(names)
	if len(names) != 2 || names[0] != "dashboard" || names[1] != "meta" {
		t.Fatalf("names = %v", names)
	}
	Reset()
	if len(Names()) != 0 {
		t.Fatal("reset should clear the registry")
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			Register("c", portSet{Name: "k", ID: i})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_, _ = PortsAs[portSet]("c")
		}
	}()
	wg.Wait()

	if got, ok := PortsAs[portSet]("c"); !ok || got.Name != "k" {
		t.Fatalf("got %+v ok=%v", got, ok)
	}
}
