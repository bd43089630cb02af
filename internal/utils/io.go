package utils

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// ReadLines reads all lines from r with trailing whitespace trimmed.
// Returns an error if the context is cancelled (e.g., Ctrl+C) before input ends.
func ReadLines(ctx context.Context, r io.Reader) ([]string, error) {
	type result struct {
		lines []string
		err   error
	}
	resultChan := make(chan result, 1)

	go func() {
		var lines []string
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			lines = append(lines, strings.TrimRight(scanner.Text(), " \t\r"))
		}
		resultChan <- result{lines, scanner.Err()}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resultChan:
		return res.lines, res.err
	}
}
