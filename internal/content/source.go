// Package content loads quiz material from a topic string or a file.
package content

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// Material is the subject matter a quiz is generated from.
// Key identifies the material for rating persistence; Text is what the
// question generator sees.
type Material struct {
	Key  string
	Text string
}

// Empty reports whether the material has no usable text.
func (m Material) Empty() bool {
	return strings.TrimSpace(m.Text) == ""
}

// ExtractError reports PDF pages that could not be read. Partial is true
// when the remaining pages still produced usable text; in that case the
// material is returned alongside the error and callers choose whether to
// warn or abort.
type ExtractError struct {
	Path    string
	Pages   []int
	Partial bool
}

func (e *ExtractError) Error() string {
	if e.Partial {
		return fmt.Sprintf("%s: could not read page %s, using the rest", e.Path, pageList(e.Pages))
	}
	return fmt.Sprintf("%s: none of the %d pages could be read", e.Path, len(e.Pages))
}

func pageList(pages []int) string {
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ", ")
}

// FromTopic builds material from a free-form topic string.
func FromTopic(topic string) Material {
	topic = strings.TrimSpace(topic)
	return Material{Key: topic, Text: topic}
}

// FromFile builds material from a file on disk. PDFs are extracted page
// by page; anything else is treated as plain text. The material key is
// the file name without its extension.
//
// A PDF with some unreadable pages returns the material built from the
// readable pages together with a non-nil *ExtractError describing the
// skipped pages.
func FromFile(path string) (Material, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Material{}, fmt.Errorf("read %s: %w", path, err)
	}

	base := filepath.Base(path)
	key := strings.TrimSuffix(base, filepath.Ext(base))

	if isPDF(data) {
		text, err := extractPDF(path, data)
		if text == "" && err != nil {
			return Material{}, err
		}
		return Material{Key: key, Text: text}, err
	}

	if !utf8.Valid(data) || looksBinary(data) {
		return Material{}, fmt.Errorf("%s: not a PDF or text file", path)
	}
	return Material{Key: key, Text: collapseWhitespace(string(data))}, nil
}

func isPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF"))
}

// looksBinary sniffs for NUL bytes in the first chunk of the file.
func looksBinary(data []byte) bool {
	n := len(data)
	if n > 8000 {
		n = 8000
	}
	return bytes.IndexByte(data[:n], 0) >= 0
}

// extractPDF pulls plain text out of every page. Pages that fail to
// extract are reported via *ExtractError; when at least one page yielded
// text, the text is returned as well and the error is marked Partial.
func extractPDF(path string, data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}

	text, failed := extractPages(r.NumPage(), func(i int) (string, error) {
		page := r.Page(i)
		if page.V.IsNull() {
			return "", fmt.Errorf("page %d unreadable", i)
		}
		return page.GetPlainText(nil)
	})

	if len(failed) > 0 {
		return text, &ExtractError{Path: path, Pages: failed, Partial: text != ""}
	}
	return text, nil
}

// extractPages walks every page, collecting text and the numbers of the
// pages that failed. One bad page never aborts the walk.
func extractPages(numPages int, pageText func(i int) (string, error)) (string, []int) {
	var b strings.Builder
	var failed []int

	for i := 1; i <= numPages; i++ {
		text, err := pageText(i)
		if err != nil {
			failed = append(failed, i)
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	return collapseWhitespace(b.String()), failed
}

// collapseWhitespace squeezes runs of whitespace into single spaces,
// keeping paragraph breaks as newlines.
func collapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	space := false
	newline := false
	for _, r := range s {
		switch r {
		case '\n':
			newline = true
			space = false
		case ' ', '\t', '\r':
			if !newline {
				space = true
			}
		default:
			if newline {
				if b.Len() > 0 {
					b.WriteByte('\n')
				}
				newline = false
			} else if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		}
	}
	return b.String()
}
