// Package clean rewrites archive files in place: it drops unreferenced zones
// and collapses identical duplicate zone/element pairs. It is the repair
// counterpart to the lint checks.
//
// Edits are byte-range splices on the original file rather than a decode and
// re-encode. encoding/xml's encoder rewrites namespace prefixes and drops
// the XML declaration, and the archive files must round-trip untouched
// outside the removed elements.
package clean

import (
	"context"
	"fmt"
	"maps"
	"os"
	"sort"
	"strings"

	"github.com/mei-archive/meilint/internal/ctxlog"
	"github.com/mei-archive/meilint/internal/lint"
	"github.com/mei-archive/meilint/internal/mei"
)

// Cleaner removes defective zones from MEI files.
type Cleaner struct {
	// RemoveUnreferenced drops zones whose xml:id is never referenced.
	RemoveUnreferenced bool

	// RemoveIdenticalDuplicates drops a zone covering the same region as an
	// earlier zone, together with its referencing element, when that element
	// is identical to the earlier zone's apart from xml:id and facs.
	RemoveIdenticalDuplicates bool

	refAttrs []string
}

// New returns a Cleaner performing both kinds of removal.
func New(refAttrs []string) *Cleaner {
	if len(refAttrs) == 0 {
		refAttrs = mei.DefaultReferenceAttributes()
	}
	return &Cleaner{
		RemoveUnreferenced:        true,
		RemoveIdenticalDuplicates: true,
		refAttrs:                  refAttrs,
	}
}

// Change records what CleanFile removed from one file.
type Change struct {
	Path            string
	RemovedZones    []string
	RemovedElements []string
}

// Changed reports whether the file was rewritten.
func (c *Change) Changed() bool {
	return len(c.RemovedZones) > 0
}

// CleanFile rewrites the file at path. Duplicate zones whose referencing
// elements differ are never touched; they come back as warning findings for
// a human to resolve.
func (c *Cleaner) CleanFile(ctx context.Context, path string) (*Change, []lint.Finding, error) {
	logger := ctxlog.FromContext(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &mei.ParseError{Path: path, Err: err}
	}
	doc, err := mei.Parse(path, data, c.refAttrs)
	if err != nil {
		return nil, nil, err
	}

	change := &Change{Path: path}
	var cuts []span

	if c.RemoveUnreferenced {
		for _, z := range doc.Zones {
			if z.ID == "" || doc.Refs[z.ID] > 0 {
				continue
			}
			cuts = append(cuts, span{z.Start, z.End})
			change.RemovedZones = append(change.RemovedZones, z.ID)
			logger.Info("Unreferenced zone removed.", "path", path, "zone", z.ID)
		}
	}

	dupCuts, findings := c.resolveDuplicates(ctx, doc, change)
	cuts = append(cuts, dupCuts...)

	if len(cuts) == 0 {
		return change, findings, nil
	}

	out := splice(data, cuts)
	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.WriteFile(path, out, perm); err != nil {
		return nil, nil, fmt.Errorf("failed to write cleaned file %s: %w", path, err)
	}
	return change, findings, nil
}

// resolveDuplicates handles zones covering identical regions, mirroring the
// manual review workflow: identical pairs are safe to collapse, differing
// pairs are raised for a human.
func (c *Cleaner) resolveDuplicates(ctx context.Context, doc *mei.Document, change *Change) ([]span, []lint.Finding) {
	logger := ctxlog.FromContext(ctx)

	var cuts []span
	var findings []lint.Finding
	removed := make(map[string]bool)

	for i, z1 := range doc.Zones {
		for _, z2 := range doc.Zones[i+1:] {
			if !z1.SameRegion(z2) || removed[z2.ID] {
				continue
			}
			e1 := elementByFacs(doc, z1.ID)
			e2 := elementByFacs(doc, z2.ID)
			if e1 == nil || e2 == nil {
				// An unreferenced duplicate is already handled above.
				continue
			}
			if !identicalApartFromIDs(e1, e2) {
				findings = append(findings, lint.Finding{
					Path:   doc.Path,
					Code:   lint.CodeDuplicateZoneCoords,
					ZoneID: z2.ID,
					Detail: fmt.Sprintf("covers the same region as zone %s but their referencing elements differ", z1.ID),
					Line:   z2.Line,
				})
				continue
			}
			if !c.RemoveIdenticalDuplicates {
				continue
			}
			cuts = append(cuts, span{z2.Start, z2.End}, span{e2.Start, e2.End})
			removed[z2.ID] = true
			change.RemovedZones = append(change.RemovedZones, z2.ID)
			change.RemovedElements = append(change.RemovedElements, e2.ID())
			logger.Info("Identical duplicate zone and element removed.", "path", doc.Path, "zone", z2.ID, "element", e2.ID())
		}
	}
	return cuts, findings
}

// elementByFacs returns the first element whose facs attribute targets id.
func elementByFacs(doc *mei.Document, id string) *mei.ElementRef {
	for i := range doc.Elements {
		facs := doc.Elements[i].Attrs["facs"]
		if facs == "#"+id || facs == id {
			return &doc.Elements[i]
		}
	}
	return nil
}

// identicalApartFromIDs compares two elements ignoring xml:id and facs,
// which necessarily differ between a zone's original and its duplicate.
func identicalApartFromIDs(e1, e2 *mei.ElementRef) bool {
	if e1.Name != e2.Name {
		return false
	}
	a1 := maps.Clone(e1.Attrs)
	a2 := maps.Clone(e2.Attrs)
	for _, k := range []string{"xml:id", "facs"} {
		delete(a1, k)
		delete(a2, k)
	}
	return maps.Equal(a1, a2) && strings.TrimSpace(e1.Text) == strings.TrimSpace(e2.Text)
}

// span is a half-open byte range to cut from the file.
type span struct {
	start, end int64
}

// splice removes the spans from data. Each cut absorbs the indentation and
// the newline preceding the element, so removing an element removes its
// whole line.
func splice(data []byte, cuts []span) []byte {
	sort.Slice(cuts, func(i, j int) bool { return cuts[i].start > cuts[j].start })

	out := data
	var prev span
	for i, cut := range cuts {
		if i > 0 && cut == prev {
			continue
		}
		prev = cut

		s, e := cut.start, cut.end
		for s > 0 && (out[s-1] == ' ' || out[s-1] == '\t') {
			s--
		}
		if s > 0 && out[s-1] == '\n' {
			s--
			if s > 0 && out[s-1] == '\r' {
				s--
			}
		}
		out = append(out[:s], out[e:]...)
	}
	return out
}
