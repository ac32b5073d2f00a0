// Package hclcfg loads meilint configuration files written in HCL.
//
// A config file is a flat set of attributes:
//
//	path                 = "manuscripts"
//	extensions           = ["mei", "xml"]
//	reference_attributes = ["facs", "startid", "endid"]
//	workers              = 8
//	check_naming         = true
//	check_duplicates     = true
//
// Every attribute is optional; anything absent keeps its built-in default.
package hclcfg

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/mei-archive/meilint/internal/config"
	"github.com/mei-archive/meilint/internal/ctxlog"
)

// Loader implements config.Loader for HCL files.
type Loader struct{}

// NewLoader returns an HCL config loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the HCL file at path and overlays its attributes on the
// default model. Unknown attributes are an error: a typo in a config file
// silently reverting a check to its default is worse than a failed run.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading config file.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, diags)
	}

	model := config.Default()
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to evaluate %q in %s: %w", name, path, diags)
		}

		var err error
		switch name {
		case "path":
			model.Path, err = stringValue(val)
		case "extensions":
			var exts []string
			if exts, err = stringListValue(val); err == nil {
				model.Extensions = config.NormalizeExtensions(exts)
			}
		case "reference_attributes":
			model.ReferenceAttributes, err = stringListValue(val)
		case "workers":
			model.Workers, err = intValue(val)
		case "check_naming":
			model.CheckNaming, err = boolValue(val)
		case "check_duplicates":
			model.CheckDuplicates, err = boolValue(val)
		default:
			return nil, fmt.Errorf("unsupported attribute %q at %s", name, attr.Range.String())
		}
		if err != nil {
			return nil, fmt.Errorf("invalid value for %q at %s: %w", name, attr.Range.String(), err)
		}
	}

	logger.Debug("Config file loaded.", "path", path)
	return model, nil
}

func stringValue(val cty.Value) (string, error) {
	val, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", err
	}
	var s string
	if err := gocty.FromCtyValue(val, &s); err != nil {
		return "", err
	}
	return s, nil
}

func stringListValue(val cty.Value) ([]string, error) {
	val, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, err
	}
	var out []string
	for it := val.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		if elem.IsNull() {
			return nil, fmt.Errorf("list must not contain null")
		}
		out = append(out, elem.AsString())
	}
	return out, nil
}

func intValue(val cty.Value) (int, error) {
	val, err := convert.Convert(val, cty.Number)
	if err != nil {
		return 0, err
	}
	var n int
	if err := gocty.FromCtyValue(val, &n); err != nil {
		return 0, err
	}
	return n, nil
}

func boolValue(val cty.Value) (bool, error) {
	val, err := convert.Convert(val, cty.Bool)
	if err != nil {
		return false, err
	}
	return val.True(), nil
}
