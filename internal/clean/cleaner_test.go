package clean

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mei-archive/meilint/internal/lint"
	"github.com/mei-archive/meilint/internal/mei"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.mei")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readBack(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestCleanFile_RemovesUnreferencedZone(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	input := `<?xml version="1.0" encoding="UTF-8"?>
<mei xmlns="http://www.music-encoding.org/ns/mei">
  <music>
    <facsimile>
      <surface>
        <zone xml:id="z1" ulx="1" uly="2" lrx="3" lry="4"/>
        <zone xml:id="z2" ulx="5" uly="6" lrx="7" lry="8"/>
      </surface>
    </facsimile>
    <body>
      <neume xml:id="n1" facs="#z1"/>
    </body>
  </music>
</mei>
`
	path := writeFixture(t, input)

	// --- Act ---
	change, findings, err := New(nil).CleanFile(context.Background(), path)

	// --- Assert ---
	require.NoError(t, err)
	assert.Empty(t, findings)
	assert.Equal(t, []string{"z2"}, change.RemovedZones)
	assert.True(t, change.Changed())

	// The z2 line disappears entirely; everything else, including the XML
	// declaration, survives byte for byte.
	want := strings.Replace(input, "\n        <zone xml:id=\"z2\" ulx=\"5\" uly=\"6\" lrx=\"7\" lry=\"8\"/>", "", 1)
	assert.Equal(t, want, readBack(t, path))
}

func TestCleanFile_RemovesIdenticalDuplicates(t *testing.T) {
	t.Parallel()

	input := `<mei xmlns="http://www.music-encoding.org/ns/mei">
  <surface>
    <zone xml:id="z1" ulx="1" uly="2" lrx="3" lry="4"/>
    <zone xml:id="z2" ulx="1" uly="2" lrx="3" lry="4"/>
  </surface>
  <body>
    <nc xml:id="n1" oct="3" pname="c" facs="#z1"/>
    <nc xml:id="n2" oct="3" pname="c" facs="#z2"/>
  </body>
</mei>
`
	path := writeFixture(t, input)

	change, findings, err := New(nil).CleanFile(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, findings)
	assert.Equal(t, []string{"z2"}, change.RemovedZones)
	assert.Equal(t, []string{"n2"}, change.RemovedElements)

	want := strings.Replace(input, "\n    <zone xml:id=\"z2\" ulx=\"1\" uly=\"2\" lrx=\"3\" lry=\"4\"/>", "", 1)
	want = strings.Replace(want, "\n    <nc xml:id=\"n2\" oct=\"3\" pname=\"c\" facs=\"#z2\"/>", "", 1)
	assert.Equal(t, want, readBack(t, path))
}

func TestCleanFile_RaisesNonIdenticalDuplicates(t *testing.T) {
	t.Parallel()

	// Same region, but the referencing elements differ in pitch: not safe
	// to collapse automatically.
	input := `<mei xmlns="http://www.music-encoding.org/ns/mei">
  <surface>
    <zone xml:id="z1" ulx="1" uly="2" lrx="3" lry="4"/>
    <zone xml:id="z2" ulx="1" uly="2" lrx="3" lry="4"/>
  </surface>
  <body>
    <nc xml:id="n1" pname="c" facs="#z1"/>
    <nc xml:id="n2" pname="d" facs="#z2"/>
  </body>
</mei>
`
	path := writeFixture(t, input)

	change, findings, err := New(nil).CleanFile(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, findings, 1)
	assert.Equal(t, lint.CodeDuplicateZoneCoords, findings[0].Code)
	assert.Equal(t, "z2", findings[0].ZoneID)
	assert.Contains(t, findings[0].Detail, "differ")

	assert.False(t, change.Changed())
	assert.Equal(t, input, readBack(t, path), "differing duplicates must never be touched")
}

func TestCleanFile_CleanFileIsStable(t *testing.T) {
	t.Parallel()

	// A file with nothing to fix comes back byte-identical.
	input := `<mei xmlns="http://www.music-encoding.org/ns/mei">
  <surface>
    <zone xml:id="z1" ulx="1" uly="2" lrx="3" lry="4"/>
  </surface>
  <body>
    <neume facs="#z1"/>
  </body>
</mei>
`
	path := writeFixture(t, input)

	change, findings, err := New(nil).CleanFile(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, findings)
	assert.False(t, change.Changed())
	assert.Equal(t, input, readBack(t, path))
}

func TestCleanFile_ThenLintPasses(t *testing.T) {
	t.Parallel()

	input := `<mei xmlns="http://www.music-encoding.org/ns/mei">
  <surface>
    <zone xml:id="z1"/>
    <zone xml:id="z2"/>
    <zone xml:id="z3"/>
  </surface>
  <body>
    <neume facs="#z2"/>
  </body>
</mei>
`
	path := writeFixture(t, input)

	_, _, err := New(nil).CleanFile(context.Background(), path)
	require.NoError(t, err)

	findings := lint.File(path, lint.Options{})
	assert.Empty(t, findings, "cleaning must leave no unreferenced zones behind")
}

func TestCleanFile_ParseErrorPropagates(t *testing.T) {
	t.Parallel()

	path := writeFixture(t, "<mei><zone")

	_, _, err := New(nil).CleanFile(context.Background(), path)
	require.Error(t, err)

	var perr *mei.ParseError
	assert.ErrorAs(t, err, &perr)
}
