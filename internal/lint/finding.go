package lint

import "fmt"

// Finding is one violation in one file.
type Finding struct {
	Path   string `json:"path"`
	Code   Code   `json:"code"`
	ZoneID string `json:"zone_id,omitempty"`
	Detail string `json:"detail,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// String renders the finding as a single report line.
func (f Finding) String() string {
	switch f.Code {
	case CodeUnreferencedZone:
		return fmt.Sprintf("%s: unreferenced zone %s", f.Path, f.ZoneID)
	case CodeMissingZoneID:
		return fmt.Sprintf("%s: zone without xml:id (line %d)", f.Path, f.Line)
	case CodeDuplicateZoneID:
		return fmt.Sprintf("%s: duplicate zone id %s", f.Path, f.ZoneID)
	case CodeDuplicateZoneCoords:
		return fmt.Sprintf("%s: zone %s %s", f.Path, f.ZoneID, f.Detail)
	case CodeFileNaming:
		return fmt.Sprintf("%s: %s", f.Path, f.Detail)
	case CodeParse:
		return fmt.Sprintf("%s: %s", f.Path, f.Detail)
	default:
		return fmt.Sprintf("%s: %s %s", f.Path, f.Code, f.Detail)
	}
}
