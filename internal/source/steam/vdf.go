package steam

import (
	"fmt"
	"io"
	"strings"
)

// VDF is a parsed node of Valve's text KeyValues format: values are
// either string or nested VDF. Only the subset used by
// libraryfolders.vdf and appmanifest_*.acf is supported.
type VDF map[string]any

// Sub returns the nested object stored under key.
func (v VDF) Sub(key string) (VDF, bool) {
	sub, ok := v[key].(VDF)
	return sub, ok
}

// Str returns the string value stored under key, or "".
func (v VDF) Str(key string) string {
	s, _ := v[key].(string)
	return s
}

// ParseVDF reads a KeyValues document from r.
func ParseVDF(r io.Reader) (VDF, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading vdf: %w", err)
	}
	tokens, err := tokenizeVDF(string(data))
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return VDF{}, nil
	}

	root := make(VDF)
	pos := 0
	for pos < len(tokens) {
		key := tokens[pos]
		pos++
		if pos >= len(tokens) {
			return nil, fmt.Errorf("vdf: unexpected end after key %q", key)
		}
		if tokens[pos] == "{" {
			pos++
			sub, err := parseObject(tokens, &pos)
			if err != nil {
				return nil, err
			}
			root[key] = sub
		} else {
			root[key] = tokens[pos]
			pos++
		}
	}
	return root, nil
}

// parseObject consumes key-value pairs up to and including the closing
// brace, advancing pos.
func parseObject(tokens []string, pos *int) (VDF, error) {
	node := make(VDF)
	for *pos < len(tokens) {
		if tokens[*pos] == "}" {
			*pos++
			return node, nil
		}
		key := tokens[*pos]
		*pos++
		if *pos >= len(tokens) {
			return nil, fmt.Errorf("vdf: unexpected end after key %q", key)
		}
		if tokens[*pos] == "{" {
			*pos++
			sub, err := parseObject(tokens, pos)
			if err != nil {
				return nil, err
			}
			node[key] = sub
		} else {
			node[key] = tokens[*pos]
			*pos++
		}
	}
	return nil, fmt.Errorf("vdf: missing closing brace")
}

// tokenizeVDF splits a document into quoted strings, braces and bare words.
func tokenizeVDF(data string) ([]string, error) {
	var tokens []string
	i := 0
	for i < len(data) {
		c := data[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '{' || c == '}':
			tokens = append(tokens, string(c))
			i++
		case c == '"':
			end := -1
			for j := i + 1; j < len(data); j++ {
				if data[j] == '\\' {
					j++
					continue
				}
				if data[j] == '"' {
					end = j
					break
				}
			}
			if end < 0 {
				return nil, fmt.Errorf("vdf: unclosed quote")
			}
			tokens = append(tokens, data[i+1:end])
			i = end + 1
		default:
			j := i
			for j < len(data) && !strings.ContainsRune(" \t\n\r\"{}", rune(data[j])) {
				j++
			}
			tokens = append(tokens, data[i:j])
			i = j
		}
	}
	return tokens, nil
}

// libraryPathsFromVDF extracts every library path from a parsed
// libraryfolders.vdf: libraryfolders -> "0","1",... -> path.
func libraryPathsFromVDF(root VDF) []string {
	folders, ok := root.Sub("libraryfolders")
	if !ok {
		return nil
	}
	var paths []string
	for i := 0; ; i++ {
		entry, ok := folders.Sub(fmt.Sprintf("%d", i))
		if !ok {
			break
		}
		if p := entry.Str("path"); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// AppManifest is the subset of an appmanifest_*.acf file needed to
// resolve a game's install directory.
type AppManifest struct {
	AppID      string
	Name       string
	InstallDir string
}

// ParseAppManifest parses appmanifest_*.acf content.
func ParseAppManifest(data string) (AppManifest, error) {
	root, err := ParseVDF(strings.NewReader(data))
	if err != nil {
		return AppManifest{}, err
	}
	state, ok := root.Sub("AppState")
	if !ok {
		return AppManifest{}, fmt.Errorf("vdf: missing AppState")
	}
	return AppManifest{
		AppID:      state.Str("appid"),
		Name:       state.Str("name"),
		InstallDir: state.Str("installdir"),
	}, nil
}
