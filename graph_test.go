package supply

import (
	"errors"
	"testing"
)

type (
	dsn        string
	connection struct{}
	repository struct{}
	service    struct{}
)

func TestDependencyGraphTraversal(t *testing.T) {
	g := NewDependencyGraph()

	// service -> repository -> connection -> dsn
	g.Add(Fixed(dsn("postgres://")))
	g.Add(Derive1(Fixed(dsn("")), func(dsn) (connection, error) { return connection{}, nil }))
	g.Add(Derive1(Fixed(connection{}), func(connection) (repository, error) { return repository{}, nil }))
	g.Add(Derive1(Fixed(repository{}), func(repository) (service, error) { return service{}, nil }))

	direct := g.GetDirectDependents(TypeOf[connection]())
	if len(direct) != 1 || direct[0] != TypeOf[repository]() {
		t.Errorf("expected repository as direct dependent of connection, got %v", direct)
	}

	all := g.FindDependents(TypeOf[dsn]())
	if len(all) != 3 {
		t.Fatalf("expected 3 transitive dependents of dsn, got %v", all)
	}

	order, err := g.Order()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []string{"supply.dsn", "supply.connection", "supply.repository", "supply.service"}
	for i, typ := range order {
		if TypeName(typ) != want[i] {
			t.Errorf("order[%d]: expected %s, got %s", i, want[i], TypeName(typ))
		}
	}

	if missing := g.Missing(); len(missing) != 0 {
		t.Errorf("expected nothing missing, got %v", missing)
	}
}

func TestDependencyGraphMissing(t *testing.T) {
	g := NewDependencyGraph()
	g.Register(TypeOf[service](), TypeOf[repository]())

	missing := g.Missing()
	if len(missing) != 1 || missing[0] != TypeOf[repository]() {
		t.Errorf("expected repository to be missing, got %v", missing)
	}
}

func TestDependencyGraphCycle(t *testing.T) {
	g := NewDependencyGraph()
	g.Register(TypeOf[service](), TypeOf[repository]())
	g.Register(TypeOf[repository](), TypeOf[service]())
	g.Register(TypeOf[dsn]())

	order, err := g.Order()
	if !errors.Is(err, ErrDependencyCycle) {
		t.Fatalf("expected cycle error, got %v", err)
	}
	if len(order) != 1 || order[0] != TypeOf[dsn]() {
		t.Errorf("expected the acyclic part to be ordered, got %v", order)
	}

	g.RemoveDependency(TypeOf[repository](), TypeOf[service]())
	if _, err := g.Order(); err != nil {
		t.Errorf("expected no cycle after removal, got %v", err)
	}
}
