package datriectl

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/whs/libdatrie-go/alphamap"
)

// parseAlphabet reads newline-delimited alphabet range definitions:
// "start[-end]", one per line. Blank lines and lines starting with '#'
// are ignored. Each bound accepts any base strconv.ParseInt(s, 0, 64)
// recognizes, so a leading "0x" or "0o" switches base per-line.
func parseAlphabet(r io.Reader) (*alphamap.AlphaMap, error) {
	m := alphamap.New()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		start, end, err := parseRangeLine(line)
		if err != nil {
			return nil, fmt.Errorf("alphabet file line %d: %w", lineNo, err)
		}
		if err := m.AddRange(start, end); err != nil {
			return nil, fmt.Errorf("alphabet file line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

func parseRangeLine(line string) (start, end alphamap.AlphaChar, err error) {
	parts := strings.SplitN(line, "-", 2)
	s, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 0, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range start %q: %w", parts[0], err)
	}
	if len(parts) == 1 {
		return alphamap.AlphaChar(s), alphamap.AlphaChar(s), nil
	}
	e, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 0, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range end %q: %w", parts[1], err)
	}
	return alphamap.AlphaChar(s), alphamap.AlphaChar(e), nil
}
