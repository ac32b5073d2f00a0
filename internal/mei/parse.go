package mei

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"sort"
	"strings"
)

// Document is the parsed view of one MEI file.
type Document struct {
	Path string

	// Zones holds every <zone> element, in document order.
	Zones []Zone

	// Refs maps each referenced identifier (leading '#' stripped) to the
	// number of times it appears in reference-bearing attributes.
	Refs map[string]int

	// Elements holds every non-zone element that carries at least one
	// reference-bearing attribute, in document order.
	Elements []ElementRef
}

// ElementRef is an element that references other elements by identifier,
// typically a neume or syllable pointing at its zone via facs.
type ElementRef struct {
	Name    string
	Targets []string          // referenced identifiers, '#' stripped
	Attrs   map[string]string // all attributes, keyed by attrKey
	Text    string            // direct character data
	Line    int
	Start   int64
	End     int64
}

// ID returns the element's xml:id, if any.
func (e ElementRef) ID() string {
	return e.Attrs["xml:id"]
}

// ParseFile reads and parses the MEI file at path. Unreadable files and
// malformed XML both surface as *ParseError.
func ParseFile(path string, refAttrs []string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return Parse(path, data, refAttrs)
}

// Parse parses one MEI document. refAttrs names the attributes whose values
// count as references; DefaultReferenceAttributes is the usual choice.
func Parse(path string, data []byte, refAttrs []string) (*Document, error) {
	refSet := make(map[string]struct{}, len(refAttrs))
	for _, a := range refAttrs {
		refSet[a] = struct{}{}
	}

	doc := &Document{Path: path, Refs: make(map[string]int)}
	lines := newLineIndex(data)
	dec := xml.NewDecoder(bytes.NewReader(data))

	// One frame per open element; zones and reference-bearing elements get
	// their byte ranges finalized when the matching end tag arrives. The
	// decoder synthesizes an EndElement for self-closing tags, so both
	// forms take the same path.
	type frame struct {
		zone *Zone
		ref  *ElementRef
	}
	var stack []frame

	for {
		offset := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			perr := &ParseError{Path: path, Err: err}
			var syn *xml.SyntaxError
			if errors.As(err, &syn) {
				perr.Line = syn.Line
			}
			return nil, perr
		}

		switch t := tok.(type) {
		case xml.StartElement:
			start := tagStart(data, offset)
			f := frame{}
			if isZoneName(t.Name) {
				z := parseZone(t)
				z.Start = start
				z.Line, z.Column = lines.locate(start)
				f.zone = &z
			} else if ref := parseElementRef(t, refSet); ref != nil {
				ref.Start = start
				ref.Line, _ = lines.locate(start)
				for _, id := range ref.Targets {
					doc.Refs[id]++
				}
				f.ref = ref
			}
			stack = append(stack, f)
		case xml.EndElement:
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			end := dec.InputOffset()
			if f.zone != nil {
				f.zone.End = end
				doc.Zones = append(doc.Zones, *f.zone)
			}
			if f.ref != nil {
				f.ref.End = end
				doc.Elements = append(doc.Elements, *f.ref)
			}
		case xml.CharData:
			if len(stack) > 0 && stack[len(stack)-1].ref != nil {
				stack[len(stack)-1].ref.Text += string(t)
			}
		}
	}

	return doc, nil
}

// parseElementRef returns an ElementRef when the element carries at least
// one reference-bearing attribute, nil otherwise. Attribute values are URI
// lists: whitespace-separated fragments like "#z1 #z2".
func parseElementRef(el xml.StartElement, refSet map[string]struct{}) *ElementRef {
	var ref *ElementRef
	for _, attr := range el.Attr {
		if _, ok := refSet[attr.Name.Local]; !ok {
			continue
		}
		if ref == nil {
			ref = &ElementRef{Name: el.Name.Local, Attrs: make(map[string]string, len(el.Attr))}
		}
		for _, target := range strings.Fields(attr.Value) {
			ref.Targets = append(ref.Targets, strings.TrimPrefix(target, "#"))
		}
	}
	if ref == nil {
		return nil
	}
	for _, attr := range el.Attr {
		ref.Attrs[attrKey(attr.Name)] = attr.Value
	}
	return ref
}

// tagStart skips the whitespace between the previous token's end and the
// element's '<'. The decoder only reports offsets between tokens, and the
// gap belongs to the preceding line.
func tagStart(data []byte, offset int64) int64 {
	i := offset
	for i < int64(len(data)) {
		switch data[i] {
		case ' ', '\t', '\r', '\n':
			i++
		default:
			return i
		}
	}
	return i
}

// lineIndex maps byte offsets to 1-based line/column positions.
type lineIndex []int64

func newLineIndex(data []byte) lineIndex {
	idx := lineIndex{0}
	for i, b := range data {
		if b == '\n' {
			idx = append(idx, int64(i+1))
		}
	}
	return idx
}

func (ix lineIndex) locate(offset int64) (line, column int) {
	i := sort.Search(len(ix), func(i int) bool { return ix[i] > offset }) - 1
	return i + 1, int(offset-ix[i]) + 1
}
