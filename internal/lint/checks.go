package lint

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mei-archive/meilint/internal/mei"
)

// Options control which checks run and how documents are interpreted.
type Options struct {
	// ReferenceAttributes names the attributes whose values count as zone
	// references. Empty means mei.DefaultReferenceAttributes.
	ReferenceAttributes []string

	// Root is the directory the scan started from; the naming check skips
	// the siglum-folder comparison for files sitting directly in it.
	Root string

	// CheckNaming enables the <siglum>_<folio> filename convention check.
	CheckNaming bool

	// CheckDuplicates enables detection of zones covering identical
	// image regions.
	CheckDuplicates bool
}

func (o Options) referenceAttributes() []string {
	if len(o.ReferenceAttributes) == 0 {
		return mei.DefaultReferenceAttributes()
	}
	return o.ReferenceAttributes
}

// File parses and checks a single archive file. Parse failures become a
// finding rather than an error: one broken file must never stop the scan.
func File(path string, opts Options) []Finding {
	doc, err := mei.ParseFile(path, opts.referenceAttributes())
	if err != nil {
		var perr *mei.ParseError
		if errors.As(err, &perr) {
			return []Finding{{
				Path:   path,
				Code:   CodeParse,
				Detail: perr.Err.Error(),
				Line:   perr.Line,
			}}
		}
		return []Finding{{Path: path, Code: CodeParse, Detail: err.Error()}}
	}

	findings := Document(doc, opts)
	if opts.CheckNaming {
		if f := checkNaming(path, opts.Root); f != nil {
			findings = append(findings, *f)
		}
	}
	return findings
}

// Document applies the zone checks to an already parsed document.
//
// A document with no zones is trivially valid, and falls out of the loops
// below without a special case.
func Document(doc *mei.Document, opts Options) []Finding {
	var findings []Finding

	seen := make(map[string]int, len(doc.Zones))
	for _, z := range doc.Zones {
		if z.ID == "" {
			findings = append(findings, Finding{
				Path: doc.Path,
				Code: CodeMissingZoneID,
				Line: z.Line,
			})
			continue
		}
		seen[z.ID]++
		if seen[z.ID] == 2 {
			findings = append(findings, Finding{
				Path:   doc.Path,
				Code:   CodeDuplicateZoneID,
				ZoneID: z.ID,
				Line:   z.Line,
			})
		}
		if doc.Refs[z.ID] == 0 {
			findings = append(findings, Finding{
				Path:   doc.Path,
				Code:   CodeUnreferencedZone,
				ZoneID: z.ID,
				Line:   z.Line,
				Column: z.Column,
			})
		}
	}

	if opts.CheckDuplicates {
		findings = append(findings, duplicateRegions(doc)...)
	}

	return findings
}

// duplicateRegions flags each zone that repeats an earlier zone's region,
// once, against the first zone that claimed the region.
func duplicateRegions(doc *mei.Document) []Finding {
	var findings []Finding
	for i, z2 := range doc.Zones {
		for _, z1 := range doc.Zones[:i] {
			if !z1.SameRegion(z2) {
				continue
			}
			findings = append(findings, Finding{
				Path:   doc.Path,
				Code:   CodeDuplicateZoneCoords,
				ZoneID: z2.ID,
				Detail: fmt.Sprintf("covers the same region as zone %s", z1.ID),
				Line:   z2.Line,
			})
			break
		}
	}
	return findings
}

// checkNaming verifies the archive convention: files are named
// <siglum>_<folio> and live in a folder named after their siglum.
func checkNaming(path, root string) *Finding {
	name := filepath.Base(path)
	base := strings.TrimSuffix(name, filepath.Ext(name))

	siglum, folio, ok := strings.Cut(base, "_")
	if !ok || siglum == "" || folio == "" {
		return &Finding{
			Path:   path,
			Code:   CodeFileNaming,
			Detail: "file name does not follow the <siglum>_<folio> convention",
		}
	}

	dir := filepath.Dir(path)
	if root != "" && filepath.Clean(dir) == filepath.Clean(root) {
		return nil
	}
	if filepath.Base(dir) != siglum {
		return &Finding{
			Path:   path,
			Code:   CodeFileNaming,
			Detail: fmt.Sprintf("folder %q does not match siglum %q", filepath.Base(dir), siglum),
		}
	}
	return nil
}
