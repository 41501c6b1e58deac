package sheet

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/go-andiamo/splitter"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// ReadDir loads every file in dir matching glob, in lexical order.
func ReadDir(ctx context.Context, dir, glob string, delim rune) ([]Sheet, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSheetsDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrSheetsDir, dir)
	}

	paths, err := filepath.Glob(filepath.Join(dir, glob))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrBadPattern, glob, err)
	}
	sort.Strings(paths)

	sheets := make([]Sheet, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrReadSheet, path, err)
		}
		s, err := Decode(filepath.Base(path), data, delim)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrReadSheet, path, err)
		}
		sheets = append(sheets, s)
	}
	return sheets, nil
}

// Decode converts raw sheet bytes into rows. UTF-8 input may carry a BOM;
// anything that is not valid UTF-8 is read as Latin-1. Blank lines are kept
// so row offsets stay positional.
func Decode(label string, data []byte, delim rune) (Sheet, error) {
	text, err := decodeText(data)
	if err != nil {
		return Sheet{}, err
	}

	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	if text == "" {
		lines = nil
	}

	split := rowSplitter(delim)
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, split(trimLine(line, delim)))
	}
	return Sheet{Label: label, Rows: rows}, nil
}

// trimLine drops the line ending and surrounding blanks. The delimiter is
// never trimmed, so leading and trailing empty cells survive.
func trimLine(line string, delim rune) string {
	return strings.TrimFunc(line, func(r rune) bool {
		return r != delim && (r == '\r' || r == ' ' || r == '\t')
	})
}

func decodeText(data []byte) (string, error) {
	if utf8.Valid(data) {
		out, err := unicode.UTF8BOM.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// rowSplitter returns a quote-aware cell splitter. Rows the quote-aware
// splitter cannot handle (an unterminated quote) fall back to a plain split.
func rowSplitter(delim rune) func(string) []string {
	sp, err := splitter.NewSplitter(delim, splitter.DoubleQuotes)
	return func(line string) []string {
		if line == "" {
			return nil
		}
		if err == nil {
			if parts, serr := sp.Split(line); serr == nil {
				for i, p := range parts {
					parts[i] = unquote(p)
				}
				return parts
			}
		}
		return strings.Split(line, string(delim))
	}
}

func unquote(cell string) string {
	c := strings.TrimSpace(cell)
	if len(c) >= 2 && c[0] == '"' && c[len(c)-1] == '"' {
		return strings.ReplaceAll(c[1:len(c)-1], `""`, `"`)
	}
	return cell
}
