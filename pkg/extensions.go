package mmqa

import (
	"path"
	"sort"
	"strings"
)

// ExtensionSet is an allow-list of lowercase, dot-free file extensions.
// A nil or empty set means "no filter".
type ExtensionSet map[string]struct{}

// NormalizeExtension trims whitespace, strips leading dots and lowercases a token
func NormalizeExtension(token string) string {
	return strings.ToLower(strings.TrimLeft(strings.TrimSpace(token), "."))
}

// NormalizeExtensions builds an ExtensionSet from raw tokens, dropping empties.
// Returns nil when no usable token remains.
func NormalizeExtensions(tokens []string) ExtensionSet {
	var set ExtensionSet
	for _, token := range tokens {
		ext := NormalizeExtension(token)
		if ext == "" {
			continue
		}
		if set == nil {
			set = make(ExtensionSet)
		}
		set[ext] = struct{}{}
	}
	return set
}

// ParseExtensionList splits a comma-separated list such as "jpg, .PNG,txt"
func ParseExtensionList(csv string) ExtensionSet {
	return NormalizeExtensions(strings.Split(csv, ","))
}

// Active reports whether the set filters anything
func (s ExtensionSet) Active() bool {
	return len(s) > 0
}

// Allows reports whether a file name passes the filter
func (s ExtensionSet) Allows(name string) bool {
	if !s.Active() {
		return true
	}
	_, ok := s[ExtensionOf(name)]
	return ok
}

// Sorted returns the members in ascending order, for logging
func (s ExtensionSet) Sorted() []string {
	exts := make([]string, 0, len(s))
	for ext := range s {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// normalized returns a copy whose keys went through NormalizeExtension,
// so callers may pass {"TXT"} or {".txt"}
func (s ExtensionSet) normalized() ExtensionSet {
	if s == nil {
		return nil
	}
	out := make(ExtensionSet, len(s))
	for ext := range s {
		if n := NormalizeExtension(ext); n != "" {
			out[n] = struct{}{}
		}
	}
	return out
}

// ExtensionOf returns the lowercase characters after the last '.' of the base name.
// Names without a dot, and dot-files such as ".bashrc", have no extension.
func ExtensionOf(name string) string {
	base := path.Base(name)
	ext := path.Ext(strings.TrimLeft(base, "."))
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
