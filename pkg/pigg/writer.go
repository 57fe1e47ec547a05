package pigg

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zlib"
	"github.com/ssargent/cohbin/pkg/codec"
)

// File is an entry to be written into an archive
type File struct {
	Name     string
	Data     []byte
	Stored   bool // Write uncompressed
	Modified time.Time
}

const (
	archiveHeaderSize = 16
	fileHeaderSize    = 48
)

// Write lays out files as a pigg archive and writes it to w
func Write(w io.Writer, files []File) error {
	payloads := make([][]byte, len(files))
	for i, f := range files {
		if f.Name == "" {
			return fmt.Errorf("file %d: empty name", i)
		}
		if f.Stored {
			payloads[i] = f.Data
			continue
		}
		packed, err := deflate(f.Data)
		if err != nil {
			return fmt.Errorf("compressing %s: %w", f.Name, err)
		}
		payloads[i] = packed
	}

	names := codec.NewWriter()
	for _, f := range files {
		names.Uint32(uint32(len(f.Name) + 1)).Raw([]byte(f.Name)).Raw([]byte{0})
	}

	offset := archiveHeaderSize + len(files)*fileHeaderSize + 12 + names.Len()

	out := codec.NewWriter()
	out.Uint32(ArchiveMagic).
		Uint16(2).
		Uint16(2).
		Uint16(archiveHeaderSize).
		Uint16(fileHeaderSize).
		Uint32(uint32(len(files)))
	for i, f := range files {
		packed := uint32(len(payloads[i]))
		if f.Stored {
			packed = 0
		}
		out.Uint32(FileHeaderMagic).
			Int32(int32(i)).
			Uint32(uint32(len(f.Data))).
			Uint32(uint32(f.Modified.Unix())).
			Uint32(uint32(offset)).
			Uint32(0).
			Uint32(0).
			Raw(make([]byte, 16)).
			Uint32(packed)
		offset += len(payloads[i])
	}
	out.Uint32(NamePoolMagic).Uint32(uint32(len(files))).Uint32(uint32(names.Len())).Raw(names.Bytes())
	for _, p := range payloads {
		out.Raw(p)
	}

	_, err := w.Write(out.Bytes())
	return err
}

func deflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
