package espn

import (
	"strconv"
	"strings"
)

// statTable resolves header names to positions within one StatBlock.
type statTable struct {
	index map[string]int
}

func newStatTable(block StatBlock) statTable {
	headers := block.Labels
	if len(headers) == 0 {
		headers = block.Keys
	}
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		key := strings.ToUpper(strings.TrimSpace(h))
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	return statTable{index: index}
}

// indexOf returns the position of the first header present among names.
func (t statTable) indexOf(names ...string) (int, bool) {
	for _, name := range names {
		if i, ok := t.index[strings.ToUpper(name)]; ok {
			return i, true
		}
	}
	return 0, false
}

func (t statTable) has(names ...string) bool {
	_, ok := t.indexOf(names...)
	return ok
}

// raw returns the cell for a header, false when the header or cell is absent.
func (t statTable) raw(stats []string, names ...string) (string, bool) {
	i, ok := t.indexOf(names...)
	if !ok || i < 0 || i >= len(stats) {
		return "", false
	}
	return strings.TrimSpace(stats[i]), true
}

// value reads a numeric cell; absent or malformed cells read as 0.
func (t statTable) value(stats []string, names ...string) float64 {
	cell, ok := t.raw(stats, names...)
	if !ok {
		return 0
	}
	return parseNumber(cell)
}

// made reads the first half of a "made-attempted" or "made/attempted" cell.
func (t statTable) made(stats []string, names ...string) (float64, float64) {
	cell, ok := t.raw(stats, names...)
	if !ok {
		return 0, 0
	}
	return splitMadeAttempted(cell)
}

func parseNumber(cell string) float64 {
	cell = strings.TrimSpace(cell)
	switch cell {
	case "", "-", "--", "---":
		return 0
	}
	cell = strings.TrimPrefix(cell, "+")
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0
	}
	return v
}

func splitMadeAttempted(cell string) (float64, float64) {
	sep := "-"
	if strings.Contains(cell, "/") {
		sep = "/"
	}
	made, attempted, ok := strings.Cut(cell, sep)
	if !ok {
		return parseNumber(cell), 0
	}
	return parseNumber(made), parseNumber(attempted)
}

// parseInnings converts "6.2" (six and two thirds) to 6.667. Placeholders read as 0.
func parseInnings(cell string) float64 {
	cell = strings.TrimSpace(cell)
	whole, frac, hasFrac := strings.Cut(cell, ".")
	w, err := strconv.Atoi(whole)
	if err != nil || w < 0 {
		return 0
	}
	if !hasFrac {
		return float64(w)
	}
	thirds, err := strconv.Atoi(frac)
	if err != nil || thirds < 0 || thirds > 2 {
		return float64(w)
	}
	return float64(w) + float64(thirds)/3
}

func blockKind(block StatBlock) string {
	if kind := strings.ToLower(strings.TrimSpace(block.Type)); kind != "" {
		return kind
	}
	return strings.ToLower(strings.TrimSpace(block.Name))
}
