package walk

import (
	"cfgs/ast"
	"cfgs/logging"
)

// EnumDef is a named, ordered set of members each with a unique integer value.
type EnumDef struct {
	Name string

	// names is the list of member names in declaration order
	names []string

	// values maps member names to their resolved values
	values map[string]int
}

// EnumMember is a single member of an enum.  Enum members are values: two
// members are equal if they belong to the same enum and have the same value.
type EnumMember struct {
	Enum  *EnumDef
	Name  string
	Value int
}

// NewEnumDef resolves the values of a list of enum members.  Members without an
// explicit value receive the previous member's value plus one; the first
// implicit value is zero.  Duplicate names and values are definition errors.
func NewEnumDef(name string, members []ast.EnumMember) (*EnumDef, error) {
	ed := &EnumDef{Name: name, values: make(map[string]int)}
	owners := make(map[int]string)

	next := 0
	for _, member := range members {
		if _, ok := ed.values[member.Name]; ok {
			return nil, logging.NewFault(
				logging.LMKDef,
				nil,
				"enum `%s` has multiple members named `%s`",
				name,
				member.Name,
			)
		}

		value := next
		if member.Value != nil {
			value = *member.Value
		}

		if owner, ok := owners[value]; ok {
			return nil, logging.NewFault(
				logging.LMKDef,
				nil,
				"enum `%s` assigns the value %d to both `%s` and `%s`",
				name,
				value,
				owner,
				member.Name,
			)
		}

		owners[value] = member.Name
		ed.names = append(ed.names, member.Name)
		ed.values[member.Name] = value
		next = value + 1
	}

	return ed, nil
}

// Member looks up a member of the enum by name.
func (ed *EnumDef) Member(name string) (EnumMember, bool) {
	value, ok := ed.values[name]
	if !ok {
		return EnumMember{}, false
	}

	return EnumMember{Enum: ed, Name: name, Value: value}, true
}

// Members returns the members of the enum in declaration order.
func (ed *EnumDef) Members() []EnumMember {
	members := make([]EnumMember, len(ed.names))
	for i, name := range ed.names {
		members[i] = EnumMember{Enum: ed, Name: name, Value: ed.values[name]}
	}

	return members
}
