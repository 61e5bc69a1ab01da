package topology

import (
	"errors"
	"reflect"
	"testing"

	"bpauto/internal/domain"
)

func newTestRegistry(t *testing.T, objs ...domain.Object) *Registry {
	t.Helper()
	r := NewRegistry()
	for _, obj := range objs {
		if _, err := r.Register(obj); err != nil {
			t.Fatalf("Register(%s): %v", obj.Name, err)
		}
	}
	return r
}

func obj(name string, class domain.Class) domain.Object {
	return domain.Object{Name: name, Class: class, Container: domain.NoObject}
}

func TestRegisterAssignsIDs(t *testing.T) {
	r := newTestRegistry(t,
		obj("eth1", domain.ClassInterface),
		obj("eth2", domain.ClassInterface),
	)

	got, ok := r.Lookup("eth2")
	if !ok {
		t.Fatal("eth2 not found")
	}
	if got.ID != 1 {
		t.Errorf("ID = %d, want 1", got.ID)
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestRegisterResolvesContainerName(t *testing.T) {
	r := newTestRegistry(t, obj("eth1", domain.ClassInterface))

	vlan := obj("vlan100", domain.ClassVLAN)
	vlan.Container = 0
	id, err := r.Register(vlan)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	got, _ := r.Object(id)
	if got.ContainerName != "eth1" {
		t.Errorf("ContainerName = %q, want eth1", got.ContainerName)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r := newTestRegistry(t, obj("eth1", domain.ClassInterface))

	_, err := r.Register(obj("eth1", domain.ClassVLAN))
	var dup *domain.DuplicateNameError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateNameError, got %v", err)
	}
	if dup.Name != "eth1" {
		t.Errorf("Name = %q, want eth1", dup.Name)
	}
	if r.Len() != 1 {
		t.Errorf("duplicate should not be stored, Len() = %d", r.Len())
	}
}

func TestObjectsWithPrefix(t *testing.T) {
	r := newTestRegistry(t,
		obj("eth1", domain.ClassInterface),
		obj("eth2", domain.ClassInterface),
		obj("ethv100", domain.ClassVLAN),
		obj("rtr1", domain.ClassIPRouter),
		obj("eth-host1", domain.ClassIPStaticHosts),
		obj("client1", domain.ClassIPStaticHosts),
		obj("client10", domain.ClassIPStaticHosts),
	)

	tests := []struct {
		name   string
		filter Filter
		prefix string
		want   []string
	}{
		{"containers by prefix", ContainerEligible, "eth", []string{"eth1", "eth2", "ethv100"}},
		{"custom filter", func(c domain.Class) bool { return c == domain.ClassInterface }, "eth", []string{"eth1", "eth2"}},
		{"routers are containers", ContainerEligible, "rtr", []string{"rtr1"}},
		{"host pool", HostPool, "client", []string{"client1", "client10"}},
		{"prefix is not exact match", HostPool, "client1", []string{"client1", "client10"}},
		{"nil filter means any", nil, "eth", []string{"eth1", "eth2", "ethv100", "eth-host1"}},
		{"no match", ContainerEligible, "bond", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Names(r.ObjectsWithPrefix(tt.filter, tt.prefix))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPaths(t *testing.T) {
	r := NewRegistry()

	if r.PathExists("a1", "b1") {
		t.Fatal("empty registry should have no paths")
	}
	if err := r.AddPath("a1", "b1"); err != nil {
		t.Fatalf("AddPath: %v", err)
	}

	t.Run("unordered lookup", func(t *testing.T) {
		if !r.PathExists("a1", "b1") || !r.PathExists("b1", "a1") {
			t.Error("path should exist in both directions")
		}
	})

	t.Run("duplicate add rejected", func(t *testing.T) {
		err := r.AddPath("b1", "a1")
		var exists *domain.PathExistsError
		if !errors.As(err, &exists) {
			t.Fatalf("expected PathExistsError, got %v", err)
		}
		if len(r.Paths()) != 1 {
			t.Errorf("Paths() has %d entries, want 1", len(r.Paths()))
		}
	})
}

func TestFinalize(t *testing.T) {
	r := newTestRegistry(t, obj("eth1", domain.ClassInterface))
	r.Finalize()

	if !r.Finalized() {
		t.Fatal("expected finalized registry")
	}
	if _, err := r.Register(obj("eth2", domain.ClassInterface)); !errors.Is(err, domain.ErrFinalized) {
		t.Errorf("Register after finalize: got %v, want ErrFinalized", err)
	}
	if err := r.AddPath("a", "b"); !errors.Is(err, domain.ErrFinalized) {
		t.Errorf("AddPath after finalize: got %v, want ErrFinalized", err)
	}
	if _, ok := r.Lookup("eth1"); !ok {
		t.Error("reads should still work after finalize")
	}
}
