package layout

import (
	"math"
	"strings"
	"testing"

	"github.com/lewisviz/lewis/pkg/errors"
	"github.com/lewisviz/lewis/pkg/graph"
	"github.com/lewisviz/lewis/pkg/molecule"
)

const eps = 1e-9

func mustParse(t *testing.T, notation string) *molecule.Molecule {
	t.Helper()
	m, err := molecule.Parse(notation)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", notation, err)
	}
	return m
}

func cycleOf(t *testing.T, m *molecule.Molecule) []string {
	t.Helper()
	return graph.FindCycle(graph.BuildAdjacency(m))
}

func near(a, b Position) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func TestBuildLinearChain(t *testing.T) {
	m := mustParse(t, "C1[right:-:C2];C2[right:-:C3];C3[above::]")
	positions, err := Build(m, nil, Options{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := map[string]Position{
		"C1": {X: 0, Y: 0},
		"C2": {X: 1, Y: 0},
		"C3": {X: 2, Y: 0},
	}
	for label, wantPos := range want {
		if got := positions[label]; !near(got, wantPos) {
			t.Errorf("position[%s] = %+v, want %+v", label, got, wantPos)
		}
	}
}

func TestBuildAllDirections(t *testing.T) {
	m := mustParse(t, "C[left:-:A,right:-:B,above:-:D,below:-:E];A[];B[];D[];E[]")
	positions, err := Build(m, nil, Options{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := map[string]Position{
		"C": {X: 0, Y: 0},
		"A": {X: -1, Y: 0},
		"B": {X: 1, Y: 0},
		"D": {X: 0, Y: 1},
		"E": {X: 0, Y: -1},
	}
	for label, wantPos := range want {
		if got := positions[label]; !near(got, wantPos) {
			t.Errorf("position[%s] = %+v, want %+v", label, got, wantPos)
		}
	}
}

func TestBuildFirstAssignmentWins(t *testing.T) {
	// O is reachable from C both directly and through N; the first placement
	// sticks and the later conflicting direction is ignored.
	m := mustParse(t, "C[right:-:O,above:-:N];N[right:-:O];O[]")
	positions, err := Build(m, nil, Options{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if got := positions["O"]; !near(got, Position{X: 1, Y: 0}) {
		t.Errorf("position[O] = %+v, want first assignment (1, 0)", got)
	}
}

func TestBuildRingPlacement(t *testing.T) {
	m := mustParse(t,
		"C1[right:-:C2];C2[right:-:C3];C3[right:-:C4];C4[right:-:C1]")
	cycle := cycleOf(t, m)
	if len(cycle) != 4 {
		t.Fatalf("cycle = %v, want 4 atoms", cycle)
	}

	positions, err := Build(m, cycle, Options{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// Atom i sits at angle 2πi/4 on the unit circle.
	want := []Position{
		{X: 1, Y: 0},
		{X: 0, Y: 1},
		{X: -1, Y: 0},
		{X: 0, Y: -1},
	}
	for i, label := range cycle {
		if got := positions[label]; !near(got, want[i]) {
			t.Errorf("position[%s] = %+v, want %+v", label, got, want[i])
		}
	}
}

func TestBuildRingAngles(t *testing.T) {
	m := mustParse(t,
		"C1[right:-:C2];C2[right:-:C3];C3[right:-:C4];C4[right:-:C5];C5[right:-:C6];C6[right:-:C1]")
	cycle := cycleOf(t, m)

	positions, err := Build(m, cycle, Options{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	n := float64(len(cycle))
	for i, label := range cycle {
		angle := 2 * math.Pi * float64(i) / n
		want := Position{X: math.Cos(angle), Y: math.Sin(angle)}
		got := positions[label]
		if !near(got, want) {
			t.Errorf("position[%s] = %+v, want %+v", label, got, want)
		}
		if r := math.Hypot(got.X, got.Y); math.Abs(r-RingRadius) > eps {
			t.Errorf("position[%s] radius = %v, want %v", label, r, RingRadius)
		}
	}
}

func TestBuildRingSubstituentRadial(t *testing.T) {
	// An `above` bond leaving a ring atom extends radially outward, so each
	// substituent lands at twice the ring atom's radius along the same ray.
	m := mustParse(t,
		"C1[right:-:C2,above:-:H1];C2[right:-:C3,above:-:H2];C3[right:-:C1,above:-:H3];H1[];H2[];H3[]")
	cycle := cycleOf(t, m)
	if len(cycle) != 3 {
		t.Fatalf("cycle = %v, want 3 atoms", cycle)
	}

	positions, err := Build(m, cycle, Options{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	pairs := map[string]string{"C1": "H1", "C2": "H2", "C3": "H3"}
	for ringAtom, sub := range pairs {
		rp := positions[ringAtom]
		sp := positions[sub]
		want := Position{X: 2 * rp.X, Y: 2 * rp.Y}
		if !near(sp, want) {
			t.Errorf("position[%s] = %+v, want radial %+v from %s at %+v", sub, sp, want, ringAtom, rp)
		}
	}
}

func TestBuildNonRingAboveIsVertical(t *testing.T) {
	// Off the ring, `above` stays a plain vertical offset.
	m := mustParse(t, "C[above:-:H];H[]")
	positions, err := Build(m, nil, Options{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := positions["H"]; !near(got, Position{X: 0, Y: 1}) {
		t.Errorf("position[H] = %+v, want (0, 1)", got)
	}
}

func TestBuildLonePairOnlyMolecule(t *testing.T) {
	m := mustParse(t, "O[above::,below::]")

	cycle := cycleOf(t, m)
	if cycle != nil {
		t.Fatalf("FindCycle() = %v, want nil", cycle)
	}

	positions, err := Build(m, cycle, Options{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := positions["O"]; !near(got, Position{X: 0, Y: 0}) {
		t.Errorf("position[O] = %+v, want origin", got)
	}
}

func TestBuildSeed(t *testing.T) {
	m := mustParse(t, "C1[right:-:C2];C2[right:-:C3,left:-:C1];C3[left:-:C2]")

	positions, err := Build(m, nil, Options{Seed: "C2"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := map[string]Position{
		"C2": {X: 0, Y: 0},
		"C3": {X: 1, Y: 0},
		"C1": {X: -1, Y: 0},
	}
	for label, wantPos := range want {
		if got := positions[label]; !near(got, wantPos) {
			t.Errorf("position[%s] = %+v, want %+v", label, got, wantPos)
		}
	}
}

func TestBuildSeedErrors(t *testing.T) {
	m := mustParse(t, "C[above::]")

	_, err := Build(m, nil, Options{Seed: "X"})
	if err == nil {
		t.Fatal("Build() expected error for unknown seed, got nil")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeInvalidSeed {
		t.Errorf("Build() code = %s, want %s", got, errors.ErrCodeInvalidSeed)
	}
}

func TestBuildEmptyMolecule(t *testing.T) {
	_, err := Build(molecule.New(), nil, Options{})
	if err == nil {
		t.Fatal("Build() expected error for empty molecule, got nil")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeEmptyMolecule {
		t.Errorf("Build() code = %s, want %s", got, errors.ErrCodeEmptyMolecule)
	}
}

func TestBuildUnplacedAtoms(t *testing.T) {
	// B and Z declare no bonds and nothing bonds to them from the placed
	// side, so they are unreachable. The error lists them sorted.
	m := mustParse(t, "Z[];A[right:-:C];B[];C[left:-:A]")

	_, err := Build(m, nil, Options{Seed: "A"})
	if err == nil {
		t.Fatal("Build() expected error for unreachable atoms, got nil")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeUnplacedAtom {
		t.Errorf("Build() code = %s, want %s", got, errors.ErrCodeUnplacedAtom)
	}
	if msg := err.Error(); !strings.Contains(msg, "B, Z") {
		t.Errorf("Build() error = %q, want sorted missing atoms %q", msg, "B, Z")
	}
}

func TestBuildOneSidedDeclarationUnreachable(t *testing.T) {
	// Placement follows the declared connections of placed atoms only. A bond
	// declared on the far side does not pull B in from A.
	m := mustParse(t, "A[];B[left:-:A]")

	_, err := Build(m, nil, Options{})
	if err == nil {
		t.Fatal("Build() expected error, got nil")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeUnplacedAtom {
		t.Errorf("Build() code = %s, want %s", got, errors.ErrCodeUnplacedAtom)
	}
}

func TestBuildDeterministic(t *testing.T) {
	notation := "N{+}[left:-:H1,above:-:H2,right:-:H3,below:-:H4];H1[right:-:N];H2[below:-:N];H3[left:-:N];H4[above:-:N]"
	m := mustParse(t, notation)

	first, err := Build(m, nil, Options{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		got, err := Build(mustParse(t, notation), nil, Options{})
		if err != nil {
			t.Fatalf("Build() run %d error = %v", i, err)
		}
		for label, pos := range first {
			if !near(got[label], pos) {
				t.Fatalf("Build() run %d position[%s] = %+v, want %+v", i, label, got[label], pos)
			}
		}
	}
}
