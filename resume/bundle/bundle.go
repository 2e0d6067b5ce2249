// Package bundle packs a rendered PDF and its LaTeX source into a single zip archive.
package bundle

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ContentType is the MIME type of an Archive.
const ContentType = "application/zip"

// ErrEmptyBaseName is returned when no base name is given.
var ErrEmptyBaseName = errors.New("archive base name is required")

// Archive is a finished zip ready to be sent or stored.
type Archive struct {
	FileName string
	Data     []byte
}

// Size returns the archive length in bytes.
func (a Archive) Size() int64 { return int64(len(a.Data)) }

// Bundle writes <base>.pdf and <base>.tex into <base>.zip. Entries are stamped with modified.
func Bundle(pdf []byte, tex string, baseName string, modified time.Time) (Archive, error) {
	base := strings.TrimSpace(baseName)
	if base == "" {
		return Archive{}, ErrEmptyBaseName
	}
	if modified.IsZero() {
		modified = time.Now()
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entries := []struct {
		name string
		data []byte
	}{
		{base + ".pdf", pdf},
		{base + ".tex", []byte(tex)},
	}
	for _, e := range entries {
		if err := writeEntry(zw, e.name, e.data, modified); err != nil {
			_ = zw.Close()
			return Archive{}, fmt.Errorf("bundle %s: %w", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return Archive{}, fmt.Errorf("bundle close: %w", err)
	}
	return Archive{FileName: base + ".zip", Data: buf.Bytes()}, nil
}

func writeEntry(zw *zip.Writer, name string, data []byte, modified time.Time) error {
	header := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modified,
	}
	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
