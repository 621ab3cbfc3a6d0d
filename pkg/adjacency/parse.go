package adjacency

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// document is the object form of a JSON matrix file
type document struct {
	Matrix *Matrix `json:"matrix"`
}

// ParseFile reads a matrix from a file. Files ending in .json are decoded as JSON,
// everything else goes through Parse.
func ParseFile(path string) (*Matrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return parseJSON(data)
	}
	return Parse(bytes.NewReader(data))
}

// Parse reads a matrix in either text or JSON form.
//
// The text form is the vertex count N followed by N*N cells, separated by any whitespace.
// A '#' starts a comment that runs to the end of the line.
// Input that starts with '[' or '{' is decoded as JSON instead.
func Parse(r io.Reader) (*Matrix, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		return parseJSON(trimmed)
	}

	var tokens []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()

		// Drop trailing comments
		if idx := strings.Index(line, "#"); idx != -1 {
			line = line[:idx]
		}
		tokens = append(tokens, strings.Fields(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: missing vertex count", ErrInvalidInput)
	}

	n, err := strconv.Atoi(tokens[0])
	if err != nil {
		return nil, fmt.Errorf("%w: bad vertex count %q", ErrInvalidInput, tokens[0])
	}
	if err := checkVertexCount(n); err != nil {
		return nil, err
	}

	tokens = tokens[1:]
	if n > len(tokens) || len(tokens) != n*n {
		return nil, fmt.Errorf("%w: expected %d cells for %d vertices, got %d", ErrInvalidInput, n*n, n, len(tokens))
	}

	cells := make([]int, len(tokens))
	for k, tok := range tokens {
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("%w: cell (%d,%d) is %q", ErrInvalidInput, k/n, k%n, tok)
		}
		cells[k] = v
	}

	return New(toRows(n, cells))
}

func parseJSON(data []byte) (*Matrix, error) {
	trimmed := bytes.TrimSpace(data)

	if len(trimmed) > 0 && trimmed[0] == '{' {
		var doc document
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, wrapJSONError(err)
		}
		if doc.Matrix == nil {
			return nil, fmt.Errorf("%w: missing \"matrix\" field", ErrInvalidInput)
		}
		return doc.Matrix, nil
	}

	var m Matrix
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return nil, wrapJSONError(err)
	}
	return &m, nil
}

// wrapJSONError makes sure decoding failures still match ErrInvalidInput
func wrapJSONError(err error) error {
	if errors.Is(err, ErrInvalidInput) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

// ReadInteractive prompts for a vertex count and then the matrix cells on out,
// reading the answers from in. Cells are collected as they arrive, so a huge count
// fails on missing input rather than on allocation.
func ReadInteractive(in io.Reader, out io.Writer) (*Matrix, error) {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)

	next := func() (string, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		return scanner.Text(), nil
	}

	fmt.Fprint(out, "Enter the number of vertices: ")
	tok, err := next()
	if err != nil {
		return nil, fmt.Errorf("%w: reading vertex count: %v", ErrInvalidInput, err)
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return nil, fmt.Errorf("%w: vertex count is %q", ErrInvalidInput, tok)
	}
	if err := checkVertexCount(n); err != nil {
		return nil, err
	}

	fmt.Fprintln(out, "Enter the adjacency matrix (0 or 1):")
	var cells []int
	for len(cells) < n*n {
		i, j := len(cells)/n, len(cells)%n
		tok, err := next()
		if err != nil {
			return nil, fmt.Errorf("%w: reading cell (%d,%d): %v", ErrInvalidInput, i, j, err)
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("%w: cell (%d,%d) is %q", ErrInvalidInput, i, j, tok)
		}
		cells = append(cells, v)
	}

	return New(toRows(n, cells))
}

// checkVertexCount rejects counts that are negative or whose cell count overflows int
func checkVertexCount(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative vertex count %d", ErrInvalidInput, n)
	}
	if n > 0 && n > math.MaxInt/n {
		return fmt.Errorf("%w: vertex count %d is too large", ErrInvalidInput, n)
	}
	return nil
}

// toRows splits n*n row-major cells into rows
func toRows(n int, cells []int) [][]int {
	rows := make([][]int, n)
	for i := range rows {
		rows[i] = cells[i*n : (i+1)*n]
	}
	return rows
}
