// Package guide provides access to embedded help pages used by the CLI's
// guide command and the MCP guide tool.
package guide

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed *.md
var files embed.FS

// Get returns the content of a guide page by name. If name is empty the
// index page is returned.
func Get(name string) (string, error) {
	if name == "" {
		name = "guide"
	}
	if strings.ContainsAny(name, "/\\.") {
		return "", fmt.Errorf("invalid guide topic %q", name)
	}
	data, err := files.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("no guide for %q", name)
	}
	return string(data), nil
}

// List returns the available page names, without the .md suffix and
// excluding the index.
func List() ([]string, error) {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if name != "guide.md" {
			names = append(names, strings.TrimSuffix(name, ".md"))
		}
	}
	sort.Strings(names)
	return names, nil
}
