// Package index loads the address index file that maps record address
// indices to target names.
package index

import (
	"bufio"
	"fmt"
	"os"
)

// Load reads an address index file: one address per line, the first line
// being index 0. Blank lines are skipped so trailing newlines do not shift
// the mapping. Order is preserved.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("index file not found: %s", path)
	}
	defer f.Close()

	var addrs []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			addrs = append(addrs, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading index file %s: %w", path, err)
	}
	return addrs, nil
}

// Resolve returns the name for addrIndex, or a synthesized placeholder
// when the index is beyond the list. Out-of-range indices are an expected
// condition (targets added after the log was written), not an error.
func Resolve(addrs []string, addrIndex int32) string {
	if addrIndex >= 0 && int(addrIndex) < len(addrs) {
		return addrs[addrIndex]
	}
	return fmt.Sprintf("unknown_%d", addrIndex)
}
