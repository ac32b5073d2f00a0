package mei

import (
	"encoding/xml"
	"strconv"
)

// Zone is a <zone> element from the facsimile section: a rectangular region
// of a manuscript image, optionally rotated. Coordinates follow the OMR
// output convention of the archive: a missing coordinate parses as -1 and a
// missing rotation as 0.
type Zone struct {
	ID     string
	ULX    int
	ULY    int
	LRX    int
	LRY    int
	Rotate float64

	// Line and Column locate the opening tag in the source file.
	Line   int
	Column int

	// Start and End delimit the element's bytes in the source file,
	// including the closing tag.
	Start int64
	End   int64
}

// SameRegion reports whether two zones describe the identical image region.
func (z Zone) SameRegion(other Zone) bool {
	return z.ULX == other.ULX &&
		z.ULY == other.ULY &&
		z.LRX == other.LRX &&
		z.LRY == other.LRY &&
		z.Rotate == other.Rotate
}

func parseZone(el xml.StartElement) Zone {
	z := Zone{ULX: -1, ULY: -1, LRX: -1, LRY: -1}
	for _, attr := range el.Attr {
		switch {
		case isXMLID(attr.Name):
			z.ID = attr.Value
		case attr.Name.Local == "ulx":
			z.ULX = atoiOr(attr.Value, -1)
		case attr.Name.Local == "uly":
			z.ULY = atoiOr(attr.Value, -1)
		case attr.Name.Local == "lrx":
			z.LRX = atoiOr(attr.Value, -1)
		case attr.Name.Local == "lry":
			z.LRY = atoiOr(attr.Value, -1)
		case attr.Name.Local == "rotate":
			z.Rotate = atofOr(attr.Value, 0)
		}
	}
	return z
}

func atoiOr(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

func atofOr(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}
