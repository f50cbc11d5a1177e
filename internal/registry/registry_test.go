package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/hamed0406/healthagg/internal/probe"
)

func noop(ctx context.Context) probe.Outcome { return probe.OK("ok") }

func TestRegistry_PreservesRegistrationOrder(t *testing.T) {
	r := New()
	names := []string{"n8n", "waha", "postgres", "disk"}
	for _, n := range names {
		if err := r.Register(Definition{Name: n, Kind: KindLiveness, Checker: probe.CheckerFunc(noop)}); err != nil {
			t.Fatalf("register %s: %v", n, err)
		}
	}

	defs := r.All()
	if len(defs) != len(names) {
		t.Fatalf("want %d defs, got %d", len(names), len(defs))
	}
	for i, n := range names {
		if defs[i].Name != n {
			t.Fatalf("position %d: want %q, got %q", i, n, defs[i].Name)
		}
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	r := New()
	def := Definition{Name: "disk", Kind: KindResource, Checker: probe.CheckerFunc(noop)}
	if err := r.Register(def); err != nil {
		t.Fatalf("first register: %v", err)
	}
	err := r.Register(def)
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("want ErrDuplicateName, got %v", err)
	}
	if r.Len() != 1 {
		t.Fatalf("failed register must not grow the registry: %d", r.Len())
	}
}

func TestRegistry_RejectsEmptyNameAndNilChecker(t *testing.T) {
	r := New()
	if err := r.Register(Definition{Name: "", Checker: probe.CheckerFunc(noop)}); err == nil {
		t.Fatal("want error for empty name")
	}
	if err := r.Register(Definition{Name: "x"}); err == nil {
		t.Fatal("want error for nil checker")
	}
}

func TestRegistry_AllReturnsCopy(t *testing.T) {
	r := New()
	_ = r.Register(Definition{Name: "a", Checker: probe.CheckerFunc(noop)})
	defs := r.All()
	defs[0].Name = "mutated"
	if r.All()[0].Name != "a" {
		t.Fatal("All must return a copy")
	}
}
