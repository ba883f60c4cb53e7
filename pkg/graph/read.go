package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/packforce/pkg/errors"
)

// Format is a chart file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatDOT  Format = "dot"
)

// DetectFormat maps a file extension to a chart format.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".dot", ".gv":
		return FormatDOT, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat,
		"unsupported chart file %q (expected .json, .yaml, .yml, .dot or .gv)", filepath.Base(path))
}

// ReadChartFile reads and decodes a chart, choosing the decoder from the
// file extension.
func ReadChartFile(path string) (*Chart, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "chart %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalChart(data, format)
}

// ReadChart decodes a chart in the given format from r.
func ReadChart(r io.Reader, format Format) (*Chart, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read chart: %w", err)
	}
	return UnmarshalChart(data, format)
}

// UnmarshalChart decodes chart bytes in the given format.
func UnmarshalChart(data []byte, format Format) (*Chart, error) {
	var c Chart
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&c); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json chart")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&c); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml chart")
		}
	case FormatDOT:
		parsed, err := parseDOT(data)
		if err != nil {
			return nil, err
		}
		c = *parsed
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown chart format %q", format)
	}
	return &c, nil
}

// MarshalChart encodes a chart as indented JSON.
func MarshalChart(c *Chart) ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}
