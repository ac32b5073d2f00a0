package integration_tests

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mei-archive/meilint/internal/app"
	"github.com/mei-archive/meilint/internal/lint"
	"github.com/mei-archive/meilint/internal/testutil"
)

const validFile = `<?xml version="1.0" encoding="UTF-8"?>
<mei xmlns="http://www.music-encoding.org/ns/mei">
  <music>
    <facsimile>
      <surface>
        <zone xml:id="z1" ulx="1" uly="2" lrx="3" lry="4"/>
      </surface>
    </facsimile>
    <body>
      <neume facs="#z1"/>
    </body>
  </music>
</mei>
`

const unreferencedFile = `<?xml version="1.0" encoding="UTF-8"?>
<mei xmlns="http://www.music-encoding.org/ns/mei">
  <music>
    <facsimile>
      <surface>
        <zone xml:id="z1" ulx="1" uly="2" lrx="3" lry="4"/>
        <zone xml:id="z2" ulx="5" uly="6" lrx="7" lry="8"/>
      </surface>
    </facsimile>
    <body>
      <neume facs="#z1"/>
    </body>
  </music>
</mei>
`

const duplicateIDFile = `<?xml version="1.0" encoding="UTF-8"?>
<mei xmlns="http://www.music-encoding.org/ns/mei">
  <music>
    <facsimile>
      <surface>
        <zone xml:id="z1" ulx="1" uly="2" lrx="3" lry="4"/>
        <zone xml:id="z1" ulx="5" uly="6" lrx="7" lry="8"/>
      </surface>
    </facsimile>
    <body>
      <neume facs="#z1"/>
    </body>
  </music>
</mei>
`

func TestLint_ValidArchive(t *testing.T) {
	t.Parallel()

	result := testutil.RunLint(t, map[string]string{
		"CDN-Hsmu/CDN-Hsmu_003r.mei": validFile,
		"CDN-Hsmu/CDN-Hsmu_003v.mei": validFile,
	})

	require.NoError(t, result.Err)
	assert.Empty(t, result.Output, "a clean text report prints nothing")
	assert.Contains(t, result.LogOutput, "All files valid.")
}

func TestLint_UnreferencedZoneFailsTheRun(t *testing.T) {
	t.Parallel()

	result := testutil.RunLint(t, map[string]string{
		"CDN-Hsmu/CDN-Hsmu_003r.mei": validFile,
		"CDN-Hsmu/CDN-Hsmu_003v.mei": unreferencedFile,
	})

	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "1 of 2 files failed validation")
	assert.Contains(t, result.Output, "unreferenced zone z2")
	assert.NotContains(t, result.Output, "zone z1", "referenced zones must not be reported")
}

func TestLint_MalformedFileIsRecordedAndScanContinues(t *testing.T) {
	t.Parallel()

	result := testutil.RunLint(t, map[string]string{
		"CDN-Hsmu/CDN-Hsmu_003r.mei": "<mei><surface>",
		"CDN-Hsmu/CDN-Hsmu_003v.mei": unreferencedFile,
	})

	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "2 of 2 files failed validation")
	assert.Contains(t, result.Output, "CDN-Hsmu_003r.mei")
	assert.Contains(t, result.Output, "unreferenced zone z2")
}

func TestLint_JSONReport(t *testing.T) {
	t.Parallel()

	result := testutil.RunLint(t, map[string]string{
		"CDN-Hsmu/CDN-Hsmu_003v.mei": unreferencedFile,
	}, func(cfg *app.Config) {
		cfg.ReportFormat = "json"
	})

	require.Error(t, result.Err)

	var report lint.Report
	require.NoError(t, json.Unmarshal([]byte(result.Output), &report))
	require.Len(t, report.Findings, 1)
	assert.Equal(t, lint.CodeUnreferencedZone, report.Findings[0].Code)
	assert.Equal(t, "z2", report.Findings[0].ZoneID)
}

func TestLint_NamingWarningsKeepTheRunGreen(t *testing.T) {
	t.Parallel()

	enabled := true
	result := testutil.RunLint(t, map[string]string{
		"CDN-Hsmu/oddly-named.mei": validFile,
	}, func(cfg *app.Config) {
		cfg.CheckNaming = &enabled
	})

	require.NoError(t, result.Err, "naming drift warns but must not fail the run")
	assert.Contains(t, result.Output, "convention")
}

func TestLint_ConfigFileDrivesTheRun(t *testing.T) {
	t.Parallel()

	// The config file narrows the scan to .xml and enables the naming
	// check; the CLI provides nothing but the config file's location.
	root := testutil.WriteTree(t, map[string]string{
		"archive/CDN-Hsmu/CDN-Hsmu_003r.xml": validFile,
		"archive/CDN-Hsmu/CDN-Hsmu_003v.mei": unreferencedFile,
	})
	configPath := filepath.Join(root, "meilint.hcl")
	configContent := `
path         = "` + filepath.Join(root, "archive") + `"
extensions   = ["xml"]
check_naming = true
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	result := testutil.RunLint(t, nil, func(cfg *app.Config) {
		cfg.Path = ""
		cfg.ConfigFile = configPath
	})

	require.NoError(t, result.Err, "the broken .mei file is outside the configured extensions")
	assert.NotContains(t, result.Output, "unreferenced")
}

func TestFix_RewritesAndSubsequentLintPasses(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"CDN-Hsmu/CDN-Hsmu_003v.mei": unreferencedFile,
	}

	fixed := testutil.RunLint(t, files, func(cfg *app.Config) {
		cfg.Fix = true
	})
	require.NoError(t, fixed.Err)
	assert.Contains(t, fixed.LogOutput, "Unreferenced zone removed.")

	// The rewritten file now passes a plain lint run.
	path := filepath.Join(fixed.Root, "CDN-Hsmu/CDN-Hsmu_003v.mei")
	findings := lint.File(path, lint.Options{})
	assert.Empty(t, findings)
}

func TestFix_UnrepairableErrorsStillFailTheRun(t *testing.T) {
	t.Parallel()

	// The cleaner cannot repair a duplicate xml:id, so a fix run must
	// still report it and exit non-zero.
	result := testutil.RunLint(t, map[string]string{
		"CDN-Hsmu/CDN-Hsmu_003v.mei": duplicateIDFile,
	}, func(cfg *app.Config) {
		cfg.Fix = true
	})

	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "1 of 1 files failed validation")
	assert.Contains(t, result.Output, "duplicate zone id z1")
}

func TestFix_HonorsNamingCheck(t *testing.T) {
	t.Parallel()

	enabled := true
	result := testutil.RunLint(t, map[string]string{
		"CDN-Hsmu/oddly-named.mei": validFile,
	}, func(cfg *app.Config) {
		cfg.Fix = true
		cfg.CheckNaming = &enabled
	})

	require.NoError(t, result.Err, "naming drift stays a warning in fix mode")
	assert.Contains(t, result.Output, "convention")
}

func TestLint_FlagsOverrideConfigFile(t *testing.T) {
	t.Parallel()

	// The config file enables the naming check; the CLI switches it back
	// off and the flag must win.
	root := testutil.WriteTree(t, map[string]string{
		"archive/CDN-Hsmu/oddly-named.mei": validFile,
	})
	configPath := filepath.Join(root, "meilint.hcl")
	configContent := `
path         = "` + filepath.Join(root, "archive") + `"
check_naming = true
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	disabled := false
	result := testutil.RunLint(t, nil, func(cfg *app.Config) {
		cfg.Path = ""
		cfg.ConfigFile = configPath
		cfg.CheckNaming = &disabled
	})

	require.NoError(t, result.Err)
	assert.NotContains(t, result.Output, "convention", "the explicit flag wins over the config file")
}

func TestLint_ReportFile(t *testing.T) {
	t.Parallel()

	reportPath := filepath.Join(t.TempDir(), "report.txt")
	result := testutil.RunLint(t, map[string]string{
		"CDN-Hsmu/CDN-Hsmu_003v.mei": unreferencedFile,
	}, func(cfg *app.Config) {
		cfg.ReportFile = reportPath
	})

	require.Error(t, result.Err)
	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "unreferenced zone z2")
	assert.Equal(t, result.Output, string(data), "stdout and the report file must agree")
}
