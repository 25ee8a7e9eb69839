package ast

import (
	"encoding/json"
	"fmt"
)

// Assoc is the associativity of an operator name.
type Assoc int

const (
	NonAssoc Assoc = iota
	LeftAssoc
	RightAssoc
)

func ParseAssoc(s string) (Assoc, error) {
	switch s {
	case "infix":
		return NonAssoc, nil
	case "infixl":
		return LeftAssoc, nil
	case "infixr":
		return RightAssoc, nil
	default:
		return NonAssoc, fmt.Errorf("unknown associativity: %s", s)
	}
}

func (a Assoc) String() string {
	switch a {
	case LeftAssoc:
		return "infixl"
	case RightAssoc:
		return "infixr"
	default:
		return "infix"
	}
}

func (a Assoc) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Assoc) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	assoc, err := ParseAssoc(s)
	if err != nil {
		return err
	}
	*a = assoc
	return nil
}

// A Fixity gives an operator name its associativity and binding strength.
// Higher precedence binds tighter.
type Fixity struct {
	Assoc Assoc `json:"assoc"`
	Prec  int   `json:"prec"`
}

// DefaultFixity applies to any name with no fixity declaration in scope:
// non-associative at precedence 20.
var DefaultFixity = Fixity{Assoc: NonAssoc, Prec: 20}

func (f Fixity) String() string {
	return fmt.Sprintf("%s %d", f.Assoc, f.Prec)
}
