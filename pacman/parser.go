package pacman

import (
	"strings"

	bapanel "github.com/b0id/blackarch-panel"
)

// ParseInfo parses the "pacman -Si" output for a single package.
//
// The format is "Key : Value" with list values wrapped onto indented
// continuation lines. A line containing a colon opens a field; lines
// without one are appended to the last opened list field. pacman prints
// the literal "None" for empty lists, which parses to an empty slice.
func ParseInfo(name, output string) *bapanel.PackageInfo {
	info := &bapanel.PackageInfo{Name: name}

	var current *[]string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, value, found := strings.Cut(line, ":")
		if !found {
			if current != nil {
				*current = append(*current, strings.Fields(line)...)
			}
			continue
		}

		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "version":
			info.Version = value
		case "description":
			info.Description = value
		case "url":
			if value != "None" {
				info.URL = value
			}
		case "depends on":
			current = &info.Dependencies
			*current = listValue(value)
		case "optional deps":
			current = &info.OptionalDeps
			*current = listValue(value)
		case "groups":
			current = &info.Groups
			*current = listValue(value)
		}
	}

	return info
}

func listValue(value string) []string {
	if value == "" || value == "None" {
		return nil
	}
	return strings.Fields(value)
}
