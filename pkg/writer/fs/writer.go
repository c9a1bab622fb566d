// Package fs provides a report.Writer that lays artifacts out as a results
// directory readable by the report viewer.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/specvital/reporter/pkg/report"
)

var _ report.Writer = (*Writer)(nil)

const DefaultDir = "allure-results"

var ErrInvalidDocument = errors.New("document does not match schema")

type Config struct {
	Dir string
	// Validate checks every JSON document against the embedded schemas
	// before it is written.
	Validate bool
}

// Writer writes one file per artifact into a single directory. Documents
// are written to a temporary file and renamed into place, so readers never
// observe a partial file.
type Writer struct {
	dir              string
	resultSchema     *jsonschema.Schema
	containerSchema  *jsonschema.Schema
	categoriesSchema *jsonschema.Schema
}

func NewWriter(cfg Config) (*Writer, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create results directory: %w", err)
	}

	w := &Writer{dir: dir}
	if cfg.Validate {
		s, err := compileSchemas()
		if err != nil {
			return nil, err
		}
		w.resultSchema = s.result
		w.containerSchema = s.container
		w.categoriesSchema = s.categories
	}
	return w, nil
}

func (w *Writer) Dir() string { return w.dir }

func (w *Writer) WriteResult(_ context.Context, result *report.TestResult) error {
	if err := checkFileName(result.UUID); err != nil {
		return err
	}
	return w.writeJSON(report.ResultFileName(result.UUID), result, w.resultSchema)
}

func (w *Writer) WriteGroup(_ context.Context, container *report.TestResultContainer) error {
	if err := checkFileName(container.UUID); err != nil {
		return err
	}
	return w.writeJSON(report.ContainerFileName(container.UUID), container, w.containerSchema)
}

// WriteAttachment writes content verbatim under name.
func (w *Writer) WriteAttachment(_ context.Context, name string, content []byte) error {
	if err := checkFileName(name); err != nil {
		return err
	}
	return w.writeFile(name, content)
}

func (w *Writer) WriteEnvironmentInfo(_ context.Context, info map[string]string) error {
	return w.writeFile(report.EnvironmentFileName, report.FormatEnvironmentProperties(info))
}

func (w *Writer) WriteCategoriesDefinitions(_ context.Context, categories []report.CategoryDefinition) error {
	if categories == nil {
		categories = []report.CategoryDefinition{}
	}
	return w.writeJSON(report.CategoriesFileName, categories, w.categoriesSchema)
}

func (w *Writer) writeJSON(name string, v any, schema *jsonschema.Schema) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	if schema != nil {
		if err := validateAgainstSchema(schema, b); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidDocument, name, err)
		}
	}
	return w.writeFile(name, b)
}

func (w *Writer) writeFile(name string, content []byte) error {
	tmp, err := os.CreateTemp(w.dir, ".tmp-"+name+"-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", name, err)
	}
	if err = os.Rename(tmpName, filepath.Join(w.dir, name)); err != nil {
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}

func checkFileName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w: unsafe file name %q", report.ErrInvalidInput, name)
	}
	return nil
}
