// Package config reads YAML job files describing regions to decode.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ukaji3/parselo-go/pkg/parselo/convert"
	"github.com/ukaji3/parselo-go/pkg/parselo/models"
)

// Shape selects whether a job produces a list or a matrix.
type Shape string

const (
	ShapeList   Shape = "list"
	ShapeMatrix Shape = "matrix"
)

// File is the top-level document of a job file.
//
//	jobs:
//	  - name: years
//	    sheet: Cars
//	    range: D3:D5
//	    kind: int
//	  - name: cars
//	    defined: CarTable
//	    shape: matrix
type File struct {
	// Password opens encrypted workbooks.
	Password string `yaml:"password,omitempty"`
	Jobs     []Job  `yaml:"jobs"`
}

// Job decodes one region of a workbook.
type Job struct {
	Name string `yaml:"name"`
	// Sheet and Range locate the region, or Defined names it.
	Sheet   string        `yaml:"sheet,omitempty"`
	Range   models.Region `yaml:"range,omitempty"`
	Defined string        `yaml:"defined,omitempty"`
	// Kind is a converter kind name; text when empty.
	Kind  string `yaml:"kind,omitempty"`
	Shape Shape  `yaml:"shape,omitempty"`
}

// Load reads and validates the job file at path.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var file File
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := file.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &file, nil
}

// Validate checks every job and fills defaults.
func (f *File) Validate() error {
	if len(f.Jobs) == 0 {
		return errors.New("no jobs")
	}
	seen := make(map[string]bool, len(f.Jobs))
	for i := range f.Jobs {
		j := &f.Jobs[i]
		if err := j.validate(); err != nil {
			return fmt.Errorf("job %d (%s): %w", i+1, j.Name, err)
		}
		if seen[j.Name] {
			return fmt.Errorf("job %d: duplicate name %q", i+1, j.Name)
		}
		seen[j.Name] = true
	}
	return nil
}

func (j *Job) validate() error {
	if j.Name == "" {
		return errors.New("name is required")
	}

	switch {
	case j.Defined != "" && (j.Sheet != "" || !j.Range.IsZero()):
		return errors.New("defined excludes sheet and range")
	case j.Defined == "" && (j.Sheet == "" || j.Range.IsZero()):
		return errors.New("sheet and range are required without defined")
	}

	if j.Kind == "" {
		j.Kind = convert.Text.String()
	}
	if _, ok := convert.ParseKind(j.Kind); !ok {
		return fmt.Errorf("unknown kind %q", j.Kind)
	}

	switch j.Shape {
	case "":
		j.Shape = ShapeList
	case ShapeList, ShapeMatrix:
	default:
		return fmt.Errorf("unknown shape %q", j.Shape)
	}
	return nil
}

// ConverterKind returns the parsed Kind of a validated job.
func (j Job) ConverterKind() convert.Kind {
	k, _ := convert.ParseKind(j.Kind)
	return k
}
