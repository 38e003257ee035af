package walk

import (
	"cfgs/ast"
)

// StructInstance is an instance of a user-defined struct.  Struct instances are
// reference values: each construction allocates a distinct instance.
type StructInstance struct {
	Name string

	// fields is the list of field names in declaration order
	fields []string

	values map[string]Value
}

// newStructInstance creates a struct instance initializing fields positionally
// from `args`.  Extra arguments are ignored and missing ones are null.
func newStructInstance(sdef *ast.StructDef, args []Value) *StructInstance {
	inst := &StructInstance{
		Name:   sdef.Name,
		fields: sdef.Fields,
		values: make(map[string]Value, len(sdef.Fields)),
	}

	for i, field := range sdef.Fields {
		if i < len(args) {
			inst.values[field] = args[i]
		} else {
			inst.values[field] = Null{}
		}
	}

	return inst
}

// Field returns the value of a field.
func (si *StructInstance) Field(name string) (Value, bool) {
	v, ok := si.values[name]
	return v, ok
}

// SetField sets the value of an existing field.  It returns false if the
// struct has no such field.
func (si *StructInstance) SetField(name string, v Value) bool {
	if _, ok := si.values[name]; !ok {
		return false
	}

	si.values[name] = v
	return true
}

// Fields returns the field names of the struct in declaration order.
func (si *StructInstance) Fields() []string {
	return si.fields
}
