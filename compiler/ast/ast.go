// Package ast declares the types used to represent the surface syntax of
// Fern source text as produced by the parser, before declarations have been
// grouped and before operator fixity has been interpreted.
package ast

// This module is derived from the GO AST design pattern in
// https://golang.org/pkg/go/ast/
//
// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

type Node interface {
	Pos() int // Position of first character belonging to the node.
	End() int // Position of first character immediately after the node.
}

type Loc struct {
	First int `json:"first"`
	Last  int `json:"last"`
}

func NewLoc(pos, end int) Loc {
	return Loc{pos, end}
}

func (l Loc) Pos() int { return l.First }
func (l Loc) End() int { return l.Last }

func (l Loc) IsValid() bool { return l.First >= 0 && l.Last >= 0 }

// Fuse returns the smallest range covering both l and other.  Fusing is
// associative and fusing a range with one it contains returns the container.
func (l Loc) Fuse(other Loc) Loc {
	if !l.IsValid() {
		return other
	}
	if !other.IsValid() {
		return l
	}
	return Loc{min(l.First, other.First), max(l.Last, other.Last)}
}

// NoLoc is the invalid range carried by nodes that have no source text.
var NoLoc = Loc{-1, -1}

// LocOf returns the range of any node.
func LocOf(n Node) Loc {
	if n == nil {
		return NoLoc
	}
	return NewLoc(n.Pos(), n.End())
}

// A Name is a binding occurrence of an identifier: the name declared by a
// type signature, data declaration, module, or fixity declaration.  The
// text "_" stands for a name the source did not bind.
type Name struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
	Loc  `json:"loc"`
}

func NewName(text string, loc Loc) *Name {
	return &Name{Kind: "Name", Text: text, Loc: loc}
}

// NoName returns a placeholder for a binding the source left anonymous.
func NoName(loc Loc) *Name {
	return &Name{Kind: "Name", Text: "_", Loc: loc}
}

func (n *Name) IsPlaceholder() bool { return n.Text == "_" }
