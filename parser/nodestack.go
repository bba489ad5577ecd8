// Copyright 2015 The Serulian Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Stack copied from https://gist.github.com/bemasher/1777766

package parser

import "strings"

// construct describes a declaration the parser is inside of, e.g.
// "interface Node".
type construct struct {
	what string
	name string
}

func (c construct) String() string {
	if c.name == "" {
		return c.what
	}
	return c.what + " " + c.name
}

type nodeStack struct {
	top  *element
	size int
}

type element struct {
	value *construct
	next  *element
}

func (s *nodeStack) topValue() *construct {
	if s.size == 0 {
		return nil
	}

	return s.top.value
}

// Push pushes a construct onto the stack.
func (s *nodeStack) push(value *construct) {
	s.top = &element{value, s.top}
	s.size++
}

// Pop removes the construct from the stack and returns it.
func (s *nodeStack) pop() (value *construct) {
	if s.size > 0 {
		value, s.top = s.top.value, s.top.next
		s.size--
		return
	}
	return nil
}

// path renders the open constructs outermost first, e.g.
// "interface Node > operation appendChild".
func (s *nodeStack) path() string {
	parts := make([]string, s.size)
	i := s.size - 1
	for e := s.top; e != nil; e = e.next {
		parts[i] = e.value.String()
		i--
	}
	return strings.Join(parts, " > ")
}
