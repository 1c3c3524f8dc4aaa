// Package ini implements the profile file format: a line-oriented INI
// dialect with whitespace-separated multi-value keys. Comments and
// blank lines are kept so a loaded file can be saved back without
// losing user annotations.
package ini

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/open-sd/opensd/errs"
)

// ReservedSection is the name of the implicit first section which holds
// comments appearing before any [Section] header. It cannot be used as
// a real section name.
const ReservedSection = "NONE"

// Key is a single line inside a section: either a comment (Name holds
// the verbatim line, empty for blank lines) or an assignment with one
// or more whitespace-separated values.
type Key struct {
	Name    string
	Comment bool
	Values  []string
}

// Section is a named block of keys.
type Section struct {
	Name string
	Keys []Key
}

// File is a parsed INI document.
type File struct {
	sections []Section
}

// Clear drops all parsed data.
func (f *File) Clear() {
	f.sections = nil
}

// LoadFile reads and parses an INI file from disk.
func (f *File) LoadFile(path string) error {
	fd, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", errs.ErrFileNotFound, path)
		}
		return fmt.Errorf("%w: %s: %v", errs.ErrCannotOpen, path, err)
	}
	defer fd.Close()
	return f.Load(fd)
}

// Load parses an INI document from a reader, replacing any previously
// loaded data. A malformed section header aborts the parse; malformed
// key lines are logged and skipped.
func (f *File) Load(r io.Reader) error {
	f.sections = []Section{{Name: ReservedSection}}

	var lineCount, sectionCount, keyCount, valueCount int
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		lineCount++
		fields := strings.Fields(line)

		if len(fields) == 0 {
			// Blank line, keep it as an empty comment.
			f.appendKey(Key{Comment: true})
			continue
		}

		first := fields[0]
		if strings.HasPrefix(first, "[") {
			if !strings.HasSuffix(first, "]") || len(first) < 3 {
				slog.Debug("ini: unclosed section name, aborting", "line", lineCount)
				return fmt.Errorf("%w: unclosed section name on line %d", errs.ErrInvalidFormat, lineCount)
			}
			name := first[1 : len(first)-1]
			if name == ReservedSection {
				slog.Debug("ini: section name is reserved, aborting", "line", lineCount)
				return fmt.Errorf("%w: section name %q is reserved", errs.ErrInvalidFormat, ReservedSection)
			}
			if !isAlnum(name) {
				slog.Debug("ini: section name contains invalid characters, aborting", "line", lineCount)
				return fmt.Errorf("%w: invalid section name on line %d", errs.ErrInvalidFormat, lineCount)
			}
			f.sections = append(f.sections, Section{Name: name})
			sectionCount++
			continue
		}

		if strings.HasPrefix(first, "#") {
			f.appendKey(Key{Name: line, Comment: true})
			continue
		}

		// Assignments need at least "Key = value".
		if len(fields) < 3 {
			slog.Debug("ini: key assignment needs at least one value, ignoring line", "line", lineCount)
			continue
		}
		if fields[1] != "=" {
			slog.Debug("ini: expected key assignment, missing '=', ignoring line", "line", lineCount)
			continue
		}
		if !isKeyName(first) {
			slog.Debug("ini: key name contains invalid characters, ignoring line", "line", lineCount)
			continue
		}
		vals := append([]string(nil), fields[2:]...)
		f.appendKey(Key{Name: first, Values: vals})
		keyCount++
		valueCount += len(vals)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrReadFailed, err)
	}

	slog.Debug("ini: parsed file",
		"lines", lineCount, "sections", sectionCount, "keys", keyCount, "values", valueCount)
	return nil
}

func (f *File) appendKey(k Key) {
	last := len(f.sections) - 1
	f.sections[last].Keys = append(f.sections[last].Keys, k)
}

// SaveFile writes the document to disk, creating the parent directory
// if needed.
func (f *File) SaveFile(path string) error {
	if len(f.sections) == 0 {
		return errs.ErrEmpty
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %s: %v", errs.ErrCannotCreate, dir, err)
		}
	}
	fd, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", errs.ErrCannotOpen, path, err)
	}
	defer fd.Close()
	return f.Save(fd)
}

// Save serializes the document. Comments and blank lines are written
// back verbatim; keys without values are dropped. Each section is
// terminated by a blank line unless it already ends on one.
func (f *File) Save(w io.Writer) error {
	if len(f.sections) == 0 {
		return errs.ErrEmpty
	}
	bw := bufio.NewWriter(w)
	for _, s := range f.sections {
		if s.Name != ReservedSection {
			fmt.Fprintf(bw, "[%s]\n", s.Name)
		}
		for _, k := range s.Keys {
			if k.Comment {
				name := k.Name
				if name != "" && !strings.HasPrefix(strings.TrimSpace(name), "#") {
					name = "# " + name
				}
				fmt.Fprintln(bw, name)
				continue
			}
			if len(k.Values) == 0 {
				continue
			}
			fmt.Fprintf(bw, "%s = %s\n", k.Name, strings.Join(k.Values, " "))
		}
		if n := len(s.Keys); n == 0 || !(s.Keys[n-1].Comment && s.Keys[n-1].Name == "") {
			fmt.Fprintln(bw)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrWriteFailed, err)
	}
	return nil
}

// SectionList returns the named sections in order.
func (f *File) SectionList() []string {
	var out []string
	for _, s := range f.sections {
		if s.Name != ReservedSection {
			out = append(out, s.Name)
		}
	}
	return out
}

// KeyList returns the non-comment key names of a section in order.
func (f *File) KeyList(section string) []string {
	var out []string
	for _, s := range f.sections {
		if s.Name != section {
			continue
		}
		for _, k := range s.Keys {
			if !k.Comment {
				out = append(out, k.Name)
			}
		}
	}
	return out
}

// GetVal returns the values of a key, or an empty ValVec if the
// section or key does not exist.
func (f *File) GetVal(section, key string) ValVec {
	if section == ReservedSection || !isAlnum(section) || !isKeyName(key) {
		return nil
	}
	for _, s := range f.sections {
		if s.Name != section {
			continue
		}
		for _, k := range s.Keys {
			if !k.Comment && k.Name == key {
				return ValVec(k.Values)
			}
		}
	}
	return nil
}

// SetVal updates a key's values, creating the section and key as
// needed.
func (f *File) SetVal(section, key string, vals []string) error {
	if section == ReservedSection {
		return fmt.Errorf("%w: use of reserved section name", errs.ErrInvalidParameter)
	}
	if !isAlnum(section) {
		return fmt.Errorf("%w: invalid section name", errs.ErrInvalidParameter)
	}
	if !isKeyName(key) {
		return fmt.Errorf("%w: invalid key name", errs.ErrInvalidParameter)
	}
	if len(f.sections) == 0 {
		f.sections = []Section{{Name: ReservedSection}}
	}
	for si := range f.sections {
		s := &f.sections[si]
		if s.Name != section {
			continue
		}
		for ki := range s.Keys {
			k := &s.Keys[ki]
			if !k.Comment && k.Name == key {
				k.Values = append([]string(nil), vals...)
				return nil
			}
		}
		s.Keys = append(s.Keys, Key{Name: key, Values: append([]string(nil), vals...)})
		return nil
	}
	f.sections = append(f.sections, Section{
		Name: section,
		Keys: []Key{{Name: key, Values: append([]string(nil), vals...)}},
	})
	return nil
}

func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !isAlnumRune(c) {
			return false
		}
	}
	return true
}

// isKeyName validates key names. Unlike section names, keys may carry
// underscores: the axes sections use kernel event names (ABS_X,
// ABS_HAT0X) as keys.
func isKeyName(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !isAlnumRune(c) && c != '_' {
			return false
		}
	}
	return true
}

func isAlnumRune(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z':
	case c >= 'A' && c <= 'Z':
	case c >= '0' && c <= '9':
	default:
		return false
	}
	return true
}
