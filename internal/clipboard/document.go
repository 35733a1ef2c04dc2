package clipboard

import (
	"strings"
	"sync"
)

// Element is a node in a Document: a toast, a button label host or the
// scratch textarea used by the fallback copy path.
type Element struct {
	ID   string
	Tag  string
	Text string

	mu      sync.Mutex
	classes []string
}

// NewElement creates an element with the given tag, text and classes.
func NewElement(tag, text string, classes ...string) *Element {
	return &Element{Tag: tag, Text: text, classes: classes}
}

// AddClass adds class if it is not already present.
func (e *Element) AddClass(class string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, c := range e.classes {
		if c == class {
			return
		}
	}
	e.classes = append(e.classes, class)
}

// RemoveClass removes class if present.
func (e *Element) RemoveClass(class string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, c := range e.classes {
		if c == class {
			e.classes = append(e.classes[:i], e.classes[i+1:]...)
			return
		}
	}
}

// HasClass reports whether the element carries class.
func (e *Element) HasClass(class string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, c := range e.classes {
		if c == class {
			return true
		}
	}
	return false
}

// ClassName returns the space-separated class list.
func (e *Element) ClassName() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return strings.Join(e.classes, " ")
}

// Document is an ordered container of elements.
type Document struct {
	mu       sync.Mutex
	elements []*Element
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{}
}

// Append adds e at the end of the document.
func (d *Document) Append(e *Element) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.elements = append(d.elements, e)
}

// Remove detaches e. It reports whether e was present.
func (d *Document) Remove(e *Element) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, el := range d.elements {
		if el == e {
			d.elements = append(d.elements[:i], d.elements[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether e is attached.
func (d *Document) Contains(e *Element) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, el := range d.elements {
		if el == e {
			return true
		}
	}
	return false
}

// Elements returns a snapshot of the attached elements.
func (d *Document) Elements() []*Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*Element, len(d.elements))
	copy(out, d.elements)
	return out
}

// Find returns the attached elements with the given tag.
func (d *Document) Find(tag string) []*Element {
	var out []*Element
	for _, el := range d.Elements() {
		if el.Tag == tag {
			out = append(out, el)
		}
	}
	return out
}
