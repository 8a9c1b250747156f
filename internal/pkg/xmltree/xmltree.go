// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package xmltree parses an XML document into a read-only tree of elements.
//
// Only elements and their attributes are retained. Character data, comments,
// processing instructions and directives are discarded, since the documents
// this package is used for carry all of their data in attributes.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"slices"
)

// Element is a single XML element.
//
// Elements are immutable after parsing and safe for concurrent reads.
type Element struct {
	name     string
	attrs    []xml.Attr
	children []*Element
}

// Parse parses the XML document in data and returns its root element.
func Parse(data []byte) (*Element, error) {
	return ParseReader(bytes.NewReader(data))
}

// ParseReader parses the XML document read from reader and returns its root element.
func ParseReader(reader io.Reader) (*Element, error) {
	decoder := xml.NewDecoder(reader)
	var root *Element
	var stack []*Element
	for {
		token, err := decoder.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		switch token := token.(type) {
		case xml.StartElement:
			element := &Element{
				name:  token.Name.Local,
				attrs: token.Copy().Attr,
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("multiple root elements: %q and %q", root.name, element.name)
				}
				root = element
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, element)
			}
			stack = append(stack, element)
		case xml.EndElement:
			// The decoder verifies that end elements match start elements.
			stack = stack[:len(stack)-1]
		}
	}
	if root == nil {
		return nil, errors.New("no root element")
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("unclosed element %q", stack[len(stack)-1].name)
	}
	return root, nil
}

// Name returns the local name of the element.
func (e *Element) Name() string {
	return e.name
}

// Attr returns the value of the attribute with the given local name.
//
// The lookup is case-sensitive. The second return value is false if the
// attribute is absent, and true with an empty value if it is present but blank.
func (e *Element) Attr(name string) (string, bool) {
	for _, attr := range e.attrs {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Children returns a copy of the direct child elements in document order.
func (e *Element) Children() []*Element {
	return slices.Clone(e.children)
}

// Descendants returns all descendant elements with the given local name in
// document order. The receiver itself is not included.
func (e *Element) Descendants(name string) []*Element {
	var descendants []*Element
	e.walk(func(element *Element) {
		if element.name == name {
			descendants = append(descendants, element)
		}
	})
	return descendants
}

// *** PRIVATE ***

func (e *Element) walk(f func(*Element)) {
	for _, child := range e.children {
		f(child)
		child.walk(f)
	}
}
