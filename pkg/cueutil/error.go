// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

// ErrFileTooLarge is returned when a CUE file exceeds the configured limit.
var ErrFileTooLarge = errors.New("file too large")

type (
	// FileTooLargeError reports the offending file and both sizes.
	FileTooLargeError struct {
		Filename string
		Size     int64
		Max      int64
	}

	// ValidationError is a single CUE failure located by file and field path.
	ValidationError struct {
		FilePath string
		// CUEPath is the JSON path of the field, e.g. "options[1]".
		CUEPath string
		Message string
	}

	// ValidationErrors collects every failure CUE reported for one file.
	ValidationErrors []*ValidationError
)

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("%s: file size %d bytes exceeds maximum %d bytes", e.Filename, e.Size, e.Max)
}

func (e *FileTooLargeError) Unwrap() error { return ErrFileTooLarge }

func (e *ValidationError) Error() string {
	if e.CUEPath != "" {
		return fmt.Sprintf("%s: %s: %s", e.FilePath, e.CUEPath, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

func (errs ValidationErrors) Error() string {
	if len(errs) == 1 {
		return errs[0].Error()
	}
	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		if e.CUEPath != "" {
			lines = append(lines, e.CUEPath+": "+e.Message)
		} else {
			lines = append(lines, e.Message)
		}
	}
	return fmt.Sprintf("%s: validation failed:\n  %s", errs[0].FilePath, strings.Join(lines, "\n  "))
}

// FormatError turns a CUE error into ValidationErrors carrying JSON path
// field names. Errors that are not CUE errors are wrapped with the file path.
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	list := cueerrors.Errors(err)
	if len(list) == 0 {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	out := make(ValidationErrors, 0, len(list))
	for _, e := range list {
		path := formatPath(cueerrors.Path(e))
		msg := e.Error()
		if path != "" && strings.HasPrefix(msg, path) {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, path), ":"))
		}
		out = append(out, &ValidationError{FilePath: filePath, CUEPath: path, Message: msg})
	}
	return out
}

// formatPath renders ["options", "1"] as "options[1]".
func formatPath(path []string) string {
	var b strings.Builder
	for i, part := range path {
		switch {
		case i > 0 && isIndex(part):
			b.WriteString("[" + part + "]")
		case i > 0:
			b.WriteString("." + part)
		default:
			b.WriteString(part)
		}
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// CheckFileSize fails with a *FileTooLargeError when data exceeds maxSize.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if size := int64(len(data)); size > maxSize {
		return &FileTooLargeError{Filename: filename, Size: size, Max: maxSize}
	}
	return nil
}
