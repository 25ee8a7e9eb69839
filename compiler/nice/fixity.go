package nice

import (
	"sort"

	"github.com/hashicorp/go-multierror"

	"github.com/fernlang/fern/compiler/ast"
)

// A fixityEntry is one name's fixity together with the occurrence that
// declared it, kept for error reporting.
type fixityEntry struct {
	fix ast.Fixity
	at  *ast.Name
}

// A fixityMap gives the fixity in force for each name of one block.
// Maps are never mutated once built; merging produces a fresh map.
type fixityMap map[string]fixityEntry

// collectFixities gathers the fixity declarations appearing directly in
// ds.  It does not look inside nested blocks: a fixity declaration scopes
// over exactly the block it appears in.  A name declared twice is an
// error, even at the same fixity, and all such names are reported
// together.
func collectFixities(ds []ast.Decl) (fixityMap, error) {
	m := fixityMap{}
	var dups map[string]*DuplicateFixityError
	for _, d := range ds {
		inf, ok := d.(*ast.Infix)
		if !ok {
			continue
		}
		for _, name := range inf.Names {
			if dup, ok := dups[name.Text]; ok {
				dup.Decls = append(dup.Decls, name)
				dup.Fixities = append(dup.Fixities, inf.Fixity)
				continue
			}
			old, ok := m[name.Text]
			if !ok {
				m[name.Text] = fixityEntry{fix: inf.Fixity, at: name}
				continue
			}
			if dups == nil {
				dups = map[string]*DuplicateFixityError{}
			}
			dups[name.Text] = &DuplicateFixityError{
				Loc:      name.Loc,
				Name:     name.Text,
				Decls:    []*ast.Name{old.at, name},
				Fixities: []ast.Fixity{old.fix, inf.Fixity},
			}
		}
	}
	if len(dups) > 0 {
		return nil, dupError(dups)
	}
	return m, nil
}

// plusFixities merges two fixity maps that must not share names.  Every
// shared name is a collision; all collisions are gathered before
// reporting so one bad merge surfaces each offending name exactly once.
// Neither argument is modified and on disjoint maps the merge is the
// union, whichever order the arguments come in.
func plusFixities(m1, m2 fixityMap) (fixityMap, error) {
	var dups map[string]*DuplicateFixityError
	for name, e2 := range m2 {
		e1, ok := m1[name]
		if !ok {
			continue
		}
		if dups == nil {
			dups = map[string]*DuplicateFixityError{}
		}
		dups[name] = &DuplicateFixityError{
			Loc:      e2.at.Loc,
			Name:     name,
			Decls:    []*ast.Name{e1.at, e2.at},
			Fixities: []ast.Fixity{e1.fix, e2.fix},
		}
	}
	if len(dups) > 0 {
		return nil, dupError(dups)
	}
	merged := make(fixityMap, len(m1)+len(m2))
	for name, e := range m1 {
		merged[name] = e
	}
	for name, e := range m2 {
		merged[name] = e
	}
	return merged, nil
}

func dupError(dups map[string]*DuplicateFixityError) error {
	names := make([]string, 0, len(dups))
	for name := range dups {
		names = append(names, name)
	}
	sort.Strings(names)
	var err *multierror.Error
	for _, name := range names {
		err = multierror.Append(err, dups[name])
	}
	return err.ErrorOrNil()
}

// fixity looks a name up in m, falling back to the configured default
// for names with no declaration in scope.
func (n *niceifier) fixity(m fixityMap, name string) ast.Fixity {
	if e, ok := m[name]; ok {
		return e.fix
	}
	return n.cfg.DefaultFixity
}
