package ast

import "fmt"

// Check validates a declaration tree without modifying it.
type Check interface {
	Name() string
	Check(mod *Mod) error
}

// CheckFunc adapts a named function to the Check interface.
type CheckFunc struct {
	N string
	F func(*Mod) error
}

func (c CheckFunc) Name() string         { return c.N }
func (c CheckFunc) Check(mod *Mod) error { return c.F(mod) }

// CheckChain runs checks in order, stopping at the first error.
type CheckChain []Check

// Run executes each check in sequence. Returns nil if all pass.
func (cc CheckChain) Run(mod *Mod) error {
	for _, c := range cc {
		if err := c.Check(mod); err != nil {
			return fmt.Errorf("%s: %w", c.Name(), err)
		}
	}
	return nil
}

// LoadChecks are run on every tree the loader produces.
var LoadChecks = CheckChain{
	CheckFunc{N: "names", F: checkNames},
	CheckFunc{N: "fields", F: checkFields},
}

// walkItems calls fn for every item below mod, depth first.
func walkItems(mod *Mod, fn func(Item) error) error {
	for _, item := range mod.Items {
		if err := fn(item); err != nil {
			return err
		}
		if child, ok := item.(*Mod); ok {
			if err := walkItems(child, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkNames rejects declarations without an identifier.
func checkNames(mod *Mod) error {
	return walkItems(mod, func(item Item) error {
		var kind, name string
		switch it := item.(type) {
		case *Mod:
			kind, name = "mod", it.Name
		case *Struct:
			kind, name = "struct", it.Name
		case *Enum:
			kind, name = "enum", it.Name
		case *Const:
			kind, name = "const", it.Name
		case *TypeAlias:
			kind, name = "type", it.Name
		case *ForeignMod:
			for _, fi := range it.Items {
				if fn, ok := fi.(*ForeignFn); ok && fn.Name == "" {
					return fmt.Errorf("fn without a name")
				}
			}
			return nil
		default:
			return nil
		}
		if name == "" {
			return fmt.Errorf("%s without a name", kind)
		}
		return nil
	})
}

// checkFields rejects structs declaring the same field twice.
func checkFields(mod *Mod) error {
	return walkItems(mod, func(item Item) error {
		s, ok := item.(*Struct)
		if !ok {
			return nil
		}
		seen := make(map[string]bool, len(s.Fields))
		for _, f := range s.Fields {
			if seen[f.Name] {
				return fmt.Errorf("struct %s declares field %s twice", s.Name, f.Name)
			}
			seen[f.Name] = true
		}
		return nil
	})
}
