// Package ini edits the 3dmigoto d3dx.ini file in place. Lookups go
// through gopkg.in/ini.v1; Save rewrites only the lines whose values
// changed and keeps every other line byte for byte, including comments
// and commandlist flow control (`if $var == 1` / `endif`) that is not
// an `option = value` pair.
package ini

import (
	"fmt"
	"os"
	"sort"
	"strings"

	goini "gopkg.in/ini.v1"
)

// Document is a parsed INI file with pending in-place edits.
type Document struct {
	file  *goini.File
	path  string
	edits map[string]map[string]string // section -> option -> new value
}

// Load parses the INI file at path. Lines ini.v1 cannot parse are
// tolerated; they stay untouched on disk.
func Load(path string) (*Document, error) {
	f, err := goini.LoadSources(goini.LoadOptions{
		IgnoreInlineComment:      true,
		SkipUnrecognizableLines:  true,
		PreserveSurroundedQuote:  true,
		SpaceBeforeInlineComment: true,
	}, path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return &Document{
		file:  f,
		path:  path,
		edits: make(map[string]map[string]string),
	}, nil
}

// Get returns the value of section/option and whether it exists.
func (d *Document) Get(section, option string) (string, bool) {
	sec, err := d.file.GetSection(section)
	if err != nil {
		return "", false
	}
	if !sec.HasKey(option) {
		return "", false
	}
	return sec.Key(option).String(), true
}

// Set stages value for section/option, creating both as needed. A set
// that stores the value already present is a no-op and leaves the
// document clean.
func (d *Document) Set(section, option, value string) error {
	sec := d.file.Section(section)
	if sec.HasKey(option) {
		key := sec.Key(option)
		if key.String() == value {
			return nil
		}
		key.SetValue(value)
	} else {
		if _, err := sec.NewKey(option, value); err != nil {
			return fmt.Errorf("creating key %s.%s: %w", section, option, err)
		}
	}
	if d.edits[section] == nil {
		d.edits[section] = make(map[string]string)
	}
	d.edits[section][option] = value
	return nil
}

// Modified reports whether any Set call changed the document since load
// or the last Save.
func (d *Document) Modified() bool {
	return len(d.edits) > 0
}

// Path returns the file path the document was loaded from.
func (d *Document) Path() string {
	return d.path
}

// Save applies the pending edits to the file on disk. Edited options are
// written as `option = value`; options and sections not present yet are
// appended in place; everything else is preserved verbatim.
func (d *Document) Save() error {
	if len(d.edits) == 0 {
		return nil
	}
	pending := make(map[string]map[string]string, len(d.edits))
	for section, opts := range d.edits {
		cp := make(map[string]string, len(opts))
		for option, value := range opts {
			cp[option] = value
		}
		pending[section] = cp
	}

	var lines []string
	data, err := os.ReadFile(d.path)
	switch {
	case err == nil:
		lines = strings.Split(string(data), "\n")
		// A trailing newline yields one empty trailing element
		if n := len(lines); n > 0 && lines[n-1] == "" {
			lines = lines[:n-1]
		}
	case os.IsNotExist(err):
	default:
		return fmt.Errorf("reading %s: %w", d.path, err)
	}

	var out []string
	section := ""

	// flush appends the section's still-unplaced options before the
	// section's trailing blank lines.
	flush := func() {
		opts := pending[section]
		if len(opts) == 0 {
			return
		}
		names := make([]string, 0, len(opts))
		for name := range opts {
			names = append(names, name)
		}
		sort.Strings(names)
		added := make([]string, 0, len(names))
		for _, name := range names {
			added = append(added, name+" = "+opts[name])
		}
		insert := len(out)
		for insert > 0 && strings.TrimSpace(out[insert-1]) == "" {
			insert--
		}
		rest := append([]string{}, out[insert:]...)
		out = append(out[:insert], append(added, rest...)...)
		delete(pending, section)
	}

	for _, line := range lines {
		trim := strings.TrimSpace(line)
		if strings.HasPrefix(trim, "[") && strings.HasSuffix(trim, "]") {
			flush()
			section = trim[1 : len(trim)-1]
			out = append(out, line)
			continue
		}
		if opts := pending[section]; len(opts) > 0 && trim != "" &&
			!strings.HasPrefix(trim, ";") && !strings.HasPrefix(trim, "#") {
			if i := strings.Index(trim, "="); i > 0 {
				name := strings.TrimSpace(trim[:i])
				if value, ok := opts[name]; ok {
					out = append(out, name+" = "+value)
					delete(opts, name)
					if len(opts) == 0 {
						delete(pending, section)
					}
					continue
				}
			}
		}
		out = append(out, line)
	}
	flush()

	// Sections the file does not have yet
	sections := make([]string, 0, len(pending))
	for name := range pending {
		sections = append(sections, name)
	}
	sort.Strings(sections)
	for _, name := range sections {
		if len(out) > 0 && strings.TrimSpace(out[len(out)-1]) != "" {
			out = append(out, "")
		}
		out = append(out, "["+name+"]")
		opts := pending[name]
		optNames := make([]string, 0, len(opts))
		for option := range opts {
			optNames = append(optNames, option)
		}
		sort.Strings(optNames)
		for _, option := range optNames {
			out = append(out, option+" = "+opts[option])
		}
	}

	if err := os.WriteFile(d.path, []byte(strings.Join(out, "\n")+"\n"), 0644); err != nil {
		return fmt.Errorf("saving %s: %w", d.path, err)
	}
	d.edits = make(map[string]map[string]string)
	return nil
}
