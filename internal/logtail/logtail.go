package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Read returns at most maxLines lines from the end of the file at path that
// satisfy keep. A nil keep accepts every line, a non-positive maxLines
// returns all matching lines and a missing file yields no lines.
func Read(path string, maxLines int, keep func(string) bool) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	var (
		lines []string
		ring  []string
		count int
		idx   int
	)
	if maxLines > 0 {
		ring = make([]string, maxLines)
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if keep != nil && !keep(line) {
			continue
		}
		if ring == nil {
			lines = append(lines, line)
			continue
		}
		ring[idx] = line
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	if ring == nil {
		return lines, nil
	}

	lines = make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// AtLeast keeps slog text lines whose level=... field is threshold or above.
// Lines without a parsable level are kept.
func AtLeast(threshold slog.Level) func(string) bool {
	return func(line string) bool {
		level, ok := lineLevel(line)
		return !ok || level >= threshold
	}
}

func lineLevel(line string) (slog.Level, bool) {
	for _, field := range strings.Fields(line) {
		value, found := strings.CutPrefix(field, "level=")
		if !found {
			continue
		}
		var level slog.Level
		if err := level.UnmarshalText([]byte(value)); err != nil {
			return 0, false
		}
		return level, true
	}
	return 0, false
}
