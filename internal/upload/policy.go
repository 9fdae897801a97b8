// Package upload decides which resume files are accepted and where they
// are written.
package upload

import (
	"fmt"
	"mime"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxSize is the resume size ceiling in bytes (5MB).
const DefaultMaxSize int64 = 5 * 1024 * 1024

const (
	TypePDF  = "application/pdf"
	TypeDOC  = "application/msword"
	TypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// RejectedError is returned for a missing, oversized or disallowed file.
// Nothing has been stored when it is returned.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string { return e.Reason }

func reject(format string, args ...any) error {
	return &RejectedError{Reason: fmt.Sprintf(format, args...)}
}

// ErrMissingFile is returned when the request carries no resume.
var ErrMissingFile = &RejectedError{Reason: "Resume file is required"}

const typeMessage = "Only PDF, DOC, and DOCX files are allowed"

// sniffed lists, per extension, the detected types (or ancestors) that
// file content may have.
var sniffed = map[string][]string{
	".pdf":  {TypePDF},
	".doc":  {TypeDOC, "application/x-ole-storage"},
	".docx": {TypeDOCX, "application/zip"},
}

// Policy is the set of upload constraints.
type Policy struct {
	MaxSize int64
	// Allowed maps a lower-case extension to its accepted media types.
	Allowed      map[string][]string
	SniffContent bool
}

// DefaultPolicy accepts PDF, DOC and DOCX resumes up to DefaultMaxSize.
func DefaultPolicy() Policy {
	return Policy{
		MaxSize: DefaultMaxSize,
		Allowed: map[string][]string{
			".pdf":  {TypePDF},
			".doc":  {TypeDOC},
			".docx": {TypeDOCX},
		},
		SniffContent: true,
	}
}

// Check validates the file name, the declared media type and the size.
func (p Policy) Check(filename, declaredType string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	types, ok := p.Allowed[ext]
	if !ok {
		return reject(typeMessage)
	}

	mediaType, _, err := mime.ParseMediaType(declaredType)
	if err != nil || !slices.Contains(types, strings.ToLower(mediaType)) {
		return reject(typeMessage)
	}

	if size <= 0 {
		return reject("Resume file is empty")
	}
	if size > p.MaxSize {
		return p.TooLarge()
	}
	return nil
}

// TooLarge is the rejection for a file over MaxSize.
func (p Policy) TooLarge() error {
	return reject("File too large: the maximum size is %s", humanSize(p.MaxSize))
}

// Sniff checks that the leading bytes of the file look like the format
// its extension claims. It is a no-op unless SniffContent is set.
func (p Policy) Sniff(head []byte, filename string) error {
	if !p.SniffContent {
		return nil
	}
	want, ok := sniffed[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		return nil
	}
	for m := mimetype.Detect(head); m != nil; m = m.Parent() {
		for _, w := range want {
			if m.Is(w) {
				return nil
			}
		}
	}
	return reject("File content does not match its extension")
}

func humanSize(n int64) string {
	const mb = 1024 * 1024
	if n%mb == 0 {
		return fmt.Sprintf("%dMB", n/mb)
	}
	return fmt.Sprintf("%d bytes", n)
}
