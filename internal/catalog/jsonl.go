package catalog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// DecodeJSONL streams cave records from a JSON-lines reader. Lines that are
// blank or fail to parse are counted and skipped rather than aborting the
// whole import; the scraper occasionally emits truncated lines.
func DecodeJSONL(r io.Reader) ([]Cave, int, error) {
	scanner := bufio.NewScanner(r)
	// Records with many image entries can exceed the default token size.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var caves []Cave
	skipped := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var cave Cave
		if err := json.Unmarshal([]byte(line), &cave); err != nil || cave.CaveID == "" {
			skipped++
			continue
		}
		caves = append(caves, cave)
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("read catalog: %w", err)
	}
	return caves, skipped, nil
}
