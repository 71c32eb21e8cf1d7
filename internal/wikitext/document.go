// Package wikitext builds the structured template documents the wiki
// pages are made of. A document is an ordered sequence of key/value
// fields; order and presence are part of the contract the site's
// rendering templates depend on, so documents are built once and
// serialized in a single pass, never mutated in place afterwards.
package wikitext

import "strings"

// Document is one wiki template invocation with ordered fields.
type Document struct {
	Name   string
	Fields []Field
}

// Field is one template parameter. An empty Key renders the value as a
// positional parameter.
type Field struct {
	Key   string
	Value Value
}

// Value is the content of a field: plain text or nested sub-templates.
type Value interface {
	appendTo(b *strings.Builder)
}

// Text is a plain scalar field value.
type Text string

func (t Text) appendTo(b *strings.Builder) { b.WriteString(string(t)) }

// Sub is a nested template plus optional literal text reattached after
// the template markup (an item's upgrade suffix, for example).
type Sub struct {
	Doc    Document
	Suffix string
}

// Subs renders a sequence of nested templates separated by spaces.
type Subs []Sub

func (s Subs) appendTo(b *strings.Builder) {
	for i, sub := range s {
		if i > 0 {
			b.WriteByte(' ')
		}
		sub.Doc.appendInline(b)
		b.WriteString(sub.Suffix)
	}
}

// Append adds a field at the end of the document.
func (d *Document) Append(key string, value Value) {
	d.Fields = append(d.Fields, Field{Key: key, Value: value})
}

// InsertBefore places a field immediately before the first field whose
// key is anchor, or at the end when the anchor is absent.
func (d *Document) InsertBefore(anchor, key string, value Value) {
	d.insertAt(d.indexOf(anchor), key, value)
}

// InsertAfter places a field immediately after the first field whose
// key is anchor, or at the end when the anchor is absent.
func (d *Document) InsertAfter(anchor, key string, value Value) {
	if i := d.indexOf(anchor); i < len(d.Fields) {
		d.insertAt(i+1, key, value)
		return
	}
	d.Append(key, value)
}

// InsertFront places a field at the top of the document.
func (d *Document) InsertFront(key string, value Value) {
	d.insertAt(0, key, value)
}

func (d *Document) indexOf(key string) int {
	for i, f := range d.Fields {
		if f.Key == key {
			return i
		}
	}
	return len(d.Fields)
}

func (d *Document) insertAt(i int, key string, value Value) {
	d.Fields = append(d.Fields, Field{})
	copy(d.Fields[i+1:], d.Fields[i:])
	d.Fields[i] = Field{Key: key, Value: value}
}

// Keys returns the field keys in document order.
func (d Document) Keys() []string {
	keys := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		keys[i] = f.Key
	}
	return keys
}

// Get returns the value of the first field with the given key.
func (d Document) Get(key string) (Value, bool) {
	for _, f := range d.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// String serializes the document as a block template, one field per
// line, the form used for page infoboxes.
func (d Document) String() string {
	var b strings.Builder
	b.WriteString("{{")
	b.WriteString(d.Name)
	for _, f := range d.Fields {
		b.WriteString("\n|")
		if f.Key != "" {
			b.WriteString(f.Key)
			b.WriteString(" = ")
		}
		f.Value.appendTo(&b)
	}
	b.WriteString("\n}}")
	return b.String()
}

// appendInline serializes a nested template on a single line.
func (d Document) appendInline(b *strings.Builder) {
	b.WriteString("{{")
	b.WriteString(d.Name)
	for _, f := range d.Fields {
		b.WriteByte('|')
		if f.Key != "" {
			b.WriteString(f.Key)
			b.WriteByte('=')
		}
		f.Value.appendTo(b)
	}
	b.WriteString("}}")
}
