package catalog

import (
	"bufio"
	"strings"
)

// listingSentinel marks the start of the template block in `new --list`
// output. The parser depends on this exact wording.
const listingSentinel = "following templates are available"

// ParseListing extracts template identifiers from `<toolchain> new --list`
// output. Lines up to and including the sentinel are skipped; every later
// non-blank line is one trimmed identifier, except lines starting with the
// word "The", which are trailing prose rather than template names. Output
// without the sentinel yields nil.
func ParseListing(stdout string) []string {
	var ids []string
	inBlock := false

	scanner := bufio.NewScanner(strings.NewReader(stdout))
	for scanner.Scan() {
		line := scanner.Text()
		if !inBlock {
			if strings.Contains(line, listingSentinel) {
				inBlock = true
			}
			continue
		}

		id := strings.TrimSpace(line)
		if id == "" || startsWithThe(id) {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func startsWithThe(s string) bool {
	f := strings.Fields(s)
	return len(f) > 0 && f[0] == "The"
}
