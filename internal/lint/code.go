// Package lint implements the referential-integrity checks for MEI archive
// files and the report they aggregate into.
package lint

// Code identifies a class of lint finding.
type Code string

const (
	// CodeParse marks a file that could not be read or parsed as XML.
	CodeParse Code = "xml-parse-error"
	// CodeUnreferencedZone marks a zone whose xml:id is never referenced
	// anywhere else in the document.
	CodeUnreferencedZone Code = "zone-unreferenced"
	// CodeMissingZoneID marks a zone declared without an xml:id.
	CodeMissingZoneID Code = "zone-missing-id"
	// CodeDuplicateZoneID marks an xml:id shared by more than one zone.
	CodeDuplicateZoneID Code = "zone-duplicate-id"
	// CodeDuplicateZoneCoords marks two zones covering the identical image
	// region.
	CodeDuplicateZoneCoords Code = "zone-duplicate-coords"
	// CodeFileNaming marks a file that breaks the <siglum>_<folio>
	// naming convention of the archive.
	CodeFileNaming Code = "file-naming"
)

// Severity ranks findings. Only Error findings fail a run; warnings are
// reported but keep the exit code at zero.
type Severity int

const (
	// Warning findings are advisory.
	Warning Severity = iota
	// Error findings fail the run.
	Error
)

// Severity returns the severity of the finding class. Duplicate regions and
// naming drift are real in reviewed files and need a human decision, so they
// only warn; broken references and unparseable files always fail.
func (c Code) Severity() Severity {
	switch c {
	case CodeDuplicateZoneCoords, CodeFileNaming:
		return Warning
	default:
		return Error
	}
}
