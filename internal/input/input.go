// Package input loads the URL list a sweep runs against.
package input

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadFile reads URLs from path, one per line. Blank lines and lines
// starting with '#' are skipped; surrounding whitespace is trimmed.
func LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open url list %s: %w", path, err)
	}
	defer f.Close()

	var urls []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read url list %s: %w", path, err)
	}
	return urls, nil
}

// Collect merges a URL file (optional) with URLs given directly,
// file entries first. It errors when the merged list is empty, so a
// sweep never starts with nothing to do.
func Collect(filePath string, args []string) ([]string, error) {
	var urls []string
	if filePath != "" {
		fromFile, err := LoadFile(filePath)
		if err != nil {
			return nil, err
		}
		urls = append(urls, fromFile...)
	}
	urls = append(urls, args...)

	if len(urls) == 0 {
		return nil, fmt.Errorf("no URLs provided: use --file or pass URLs as arguments")
	}
	return urls, nil
}
