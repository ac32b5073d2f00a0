// Package mei parses MEI documents into the minimal shape the lint checks
// and the cleaner need: the zones declared in the facsimile section and the
// identifiers referenced from the rest of the document.
//
// Parsing is a single streaming pass over the file with encoding/xml. Byte
// offsets for zones and reference-bearing elements are recorded so the
// cleaner can splice elements out of the original bytes without
// re-serializing the document (re-encoding would rewrite namespace prefixes
// and the XML declaration, which the archive files must keep).
package mei

import "encoding/xml"

const (
	// Namespace is the MEI namespace URI.
	Namespace = "http://www.music-encoding.org/ns/mei"
	// XMLNamespace is the xml: namespace, home of xml:id.
	XMLNamespace = "http://www.w3.org/XML/1998/namespace"
)

// DefaultReferenceAttributes lists the MEI attributes whose values point at
// other elements by identifier. facs carries zone references; the rest are
// the common linking attributes, which take URI lists and may target any
// xml:id. Which attributes a given archive uses depends on the schema
// customization, so the set is configurable and this is only the default.
func DefaultReferenceAttributes() []string {
	return []string{
		"facs",
		"startid",
		"endid",
		"sameas",
		"copyof",
		"corresp",
		"synch",
		"next",
		"prev",
		"precedes",
		"follows",
		"plist",
		"target",
		"origin.startid",
		"origin.endid",
	}
}

// isZoneName reports whether name denotes an MEI zone element. Documents in
// the archive always declare the MEI namespace, but test fixtures and
// hand-edited fragments often omit it, so the empty namespace is accepted
// too.
func isZoneName(name xml.Name) bool {
	return name.Local == "zone" && (name.Space == "" || name.Space == Namespace)
}

// isXMLID reports whether name is xml:id. encoding/xml surfaces the
// predeclared xml prefix as the literal string "xml" rather than the
// namespace URI, so both spellings are checked.
func isXMLID(name xml.Name) bool {
	return name.Local == "id" && (name.Space == "xml" || name.Space == XMLNamespace)
}

// attrKey canonicalizes an attribute name for element identity comparison.
func attrKey(name xml.Name) string {
	if name.Space == "xml" || name.Space == XMLNamespace {
		return "xml:" + name.Local
	}
	return name.Local
}
