// Package category maps category labels to destination directories and
// exposes them as an ordered list of routing rules.
//
// Building a Table is pure: no directory is touched. Callers create the
// destination directories themselves before moving anything.
package category

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Labels with special meaning to the classifier fallback.
const (
	LabelImage       = "image"
	LabelVideo       = "video"
	LabelApplication = "application"
	LabelWebP        = "image/webp"
)

// ErrInvalidLabel marks labels that cannot be turned into a destination
// below the source directory.
var ErrInvalidLabel = errors.New("invalid category label")

// defaults pairs each built-in label with its directory name below the
// source directory. WebP images share the video directory.
var defaults = []struct {
	label string
	dir   string
}{
	{LabelImage, "image"},
	{LabelVideo, "video"},
	{LabelApplication, "documents"},
	{LabelWebP, "video"},
}

// Category is a label with its destination directory.
type Category struct {
	Label       string `json:"label"`
	Destination string `json:"destination"`
	// Requested reports whether the caller asked for this label, as opposed
	// to it being present only through the built-in table.
	Requested bool `json:"requested"`
}

// Table is the destination mapping of one run. It is immutable once built.
type Table struct {
	source     string
	categories []Category
	index      map[string]int
}

// Build produces the destination mapping for source and the requested
// labels. Built-in labels always take part; labels absent from the
// built-in table map to <source>/<label>. A repeated label replaces the
// earlier entry.
func Build(source string, labels []string) (Table, error) {
	t := Table{
		source: filepath.Clean(source),
		index:  make(map[string]int, len(defaults)+len(labels)),
	}
	for _, d := range defaults {
		t.put(Category{Label: d.label, Destination: filepath.Join(t.source, d.dir)})
	}
	for _, raw := range labels {
		label := strings.TrimSpace(raw)
		if err := ValidateLabel(label); err != nil {
			return Table{}, err
		}
		if i, ok := t.index[label]; ok {
			t.categories[i].Requested = true
			continue
		}
		t.put(Category{Label: label, Destination: t.destinationFor(label), Requested: true})
	}
	return t, nil
}

// ValidateLabel rejects labels that are empty or would escape the source
// directory.
func ValidateLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return fmt.Errorf("%w: empty label", ErrInvalidLabel)
	}
	if filepath.IsAbs(label) || strings.HasPrefix(label, "/") || strings.Contains(label, `\`) {
		return fmt.Errorf("%w: %q must be relative", ErrInvalidLabel, label)
	}
	for _, part := range strings.Split(label, "/") {
		if part == "" || part == "." || part == ".." {
			return fmt.Errorf("%w: %q contains an empty, '.' or '..' segment", ErrInvalidLabel, label)
		}
	}
	return nil
}

func (t *Table) put(c Category) {
	if i, ok := t.index[c.Label]; ok {
		t.categories[i] = c
		return
	}
	t.index[c.Label] = len(t.categories)
	t.categories = append(t.categories, c)
}

func (t Table) destinationFor(label string) string {
	return filepath.Join(t.source, filepath.FromSlash(label))
}

// Source returns the directory the table was built for.
func (t Table) Source() string {
	return t.source
}

// Destination returns the directory mapped for label.
func (t Table) Destination(label string) (string, bool) {
	i, ok := t.index[label]
	if !ok {
		return "", false
	}
	return t.categories[i].Destination, true
}

// DestinationOrDefault returns the directory mapped for label, or
// <source>/<label> when the label is not part of the table.
func (t Table) DestinationOrDefault(label string) string {
	if dst, ok := t.Destination(label); ok {
		return dst
	}
	return t.destinationFor(label)
}

// Categories returns the entries in declaration order.
func (t Table) Categories() []Category {
	return append([]Category(nil), t.categories...)
}

// Requested returns the destinations the caller explicitly asked for, in
// declaration order and without duplicates.
func (t Table) Requested() []string {
	seen := make(map[string]struct{}, len(t.categories))
	var dirs []string
	for _, c := range t.categories {
		if !c.Requested {
			continue
		}
		if _, ok := seen[c.Destination]; ok {
			continue
		}
		seen[c.Destination] = struct{}{}
		dirs = append(dirs, c.Destination)
	}
	return dirs
}
