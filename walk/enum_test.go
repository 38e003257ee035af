package walk

import (
	"testing"

	"cfgs/ast"
	"cfgs/logging"
)

func intPtr(n int) *int {
	return &n
}

func TestNewEnumDef(t *testing.T) {
	ed, err := NewEnumDef("Level", []ast.EnumMember{
		{Name: "Low"},
		{Name: "Mid", Value: intPtr(10)},
		{Name: "High"},
		{Name: "Off", Value: intPtr(-5)},
		{Name: "Auto"},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []struct {
		name  string
		value int
	}{
		{"Low", 0},
		{"Mid", 10},
		{"High", 11},
		{"Off", -5},
		{"Auto", -4},
	}

	members := ed.Members()
	if len(members) != len(want) {
		t.Fatalf("expected %d members, got %d", len(want), len(members))
	}

	for i, w := range want {
		if members[i].Name != w.name || members[i].Value != w.value {
			t.Errorf("member %d: want %s = %d, got %s = %d", i, w.name, w.value, members[i].Name, members[i].Value)
		}

		if members[i].Enum != ed {
			t.Errorf("member %s does not refer back to its enum", w.name)
		}
	}

	if _, ok := ed.Member("Missing"); ok {
		t.Error("found a member that was never declared")
	}
}

func TestNewEnumDefDuplicates(t *testing.T) {
	tests := []struct {
		name    string
		members []ast.EnumMember
	}{
		{"duplicate name", []ast.EnumMember{{Name: "A"}, {Name: "A"}}},
		{"duplicate explicit value", []ast.EnumMember{{Name: "A", Value: intPtr(2)}, {Name: "B", Value: intPtr(2)}}},
		{"implicit collides", []ast.EnumMember{{Name: "A", Value: intPtr(1)}, {Name: "B", Value: intPtr(0)}, {Name: "C"}}},
	}

	for _, test := range tests {
		_, err := NewEnumDef("E", test.members)
		f, ok := err.(*logging.Fault)
		if !ok || f.Kind != logging.LMKDef {
			t.Errorf("%s: expected a definition fault, got %v", test.name, err)
		}
	}
}

func TestEnumMemberEquality(t *testing.T) {
	a, _ := NewEnumDef("A", []ast.EnumMember{{Name: "X"}})
	b, _ := NewEnumDef("B", []ast.EnumMember{{Name: "X"}})

	ax, _ := a.Member("X")
	bx, _ := b.Member("X")

	if !Equal(ax, ax) {
		t.Error("a member should equal itself")
	}

	if !Equal(ax, bx) || !Equal(bx, ax) {
		t.Error("members of different enums holding the same value should be equal")
	}

	if Equal(ax, Number(1)) {
		t.Error("members holding different values should not be equal")
	}

	if !Equal(ax, Number(0)) || !Equal(Number(0), ax) {
		t.Error("a member should equal a number holding its value")
	}
}
