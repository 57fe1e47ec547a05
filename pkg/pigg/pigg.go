// Package pigg reads pigg archives, the containers the game ships its data
// files in.
//
// An archive is a header, a table of file headers, a pool of entry names and
// the entry data. Entries are usually zlib compressed. Open memory-maps the
// archive, so entries are only read when asked for.
package pigg

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/edsrzf/mmap-go"
	"github.com/klauspost/compress/zlib"
	"github.com/ssargent/cohbin/pkg/codec"
)

// inflateSlack bounds the buffer preallocated for an entry before
// inflating it. The header's size is untrusted, so the buffer grows past
// this only as real data arrives.
const inflateSlack = 64

// Section markers
const (
	ArchiveMagic    uint32 = 0x123
	FileHeaderMagic uint32 = 0x3456
	NamePoolMagic   uint32 = 0x6789
)

// Errors
var (
	ErrNotFound     = errors.New("entry not found in archive")
	ErrSizeMismatch = errors.New("inflated size does not match header")
	ErrClosed       = errors.New("archive is closed")
)

// Header is the archive's leading header
type Header struct {
	CreatorVersion      uint16 `json:"creator_version" yaml:"creator_version"`
	RequiredReadVersion uint16 `json:"required_read_version" yaml:"required_read_version"`
	ArchiveHeaderSize   uint16 `json:"archive_header_size" yaml:"archive_header_size"`
	FileHeaderSize      uint16 `json:"file_header_size" yaml:"file_header_size"`
	Files               uint32 `json:"files" yaml:"files"`
}

// FileHeader locates one entry's data
type FileHeader struct {
	NameID       int32    `json:"name_id" yaml:"name_id"`
	Size         uint32   `json:"size" yaml:"size"`
	Timestamp    uint32   `json:"timestamp" yaml:"timestamp"`
	Offset       uint32   `json:"offset" yaml:"offset"`
	Reserved     uint32   `json:"-" yaml:"-"`
	HeaderDataID uint32   `json:"header_data_id" yaml:"header_data_id"`
	Checksum     [16]byte `json:"-" yaml:"-"`
	PackedSize   uint32   `json:"packed_size" yaml:"packed_size"` // Zero when stored uncompressed
}

// Entry describes a named file in the archive
type Entry struct {
	Name       string    `json:"name" yaml:"name"`
	Size       uint32    `json:"size" yaml:"size"`
	PackedSize uint32    `json:"packed_size" yaml:"packed_size"`
	Modified   time.Time `json:"modified" yaml:"modified"`
}

// Archive is an opened pigg archive. Reads are safe for concurrent use;
// Close waits for in-flight reads before releasing the mapping.
type Archive struct {
	header Header
	mu     sync.RWMutex
	data   []byte
	mm     mmap.MMap
	file   *os.File
	files  map[string]FileHeader
}

// Open memory-maps the archive at path
func Open(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat archive: %w", err)
	}
	if st.Size() == 0 {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, &codec.TruncatedError{Need: 4})
	}

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to map archive: %w", err)
	}

	a, err := New(mm)
	if err != nil {
		mm.Unmap()
		f.Close()
		return nil, err
	}
	a.mm = mm
	a.file = f
	return a, nil
}

// New reads an archive held in memory
func New(data []byte) (*Archive, error) {
	r := codec.NewReader(data)

	header, err := readHeader(r)
	if err != nil {
		return nil, fmt.Errorf("reading archive header: %w", err)
	}

	headers := make([]FileHeader, 0, min(int(header.Files), r.Len()/48))
	for i := uint32(0); i < header.Files; i++ {
		fh, err := readFileHeader(r)
		if err != nil {
			return nil, fmt.Errorf("reading file header %d: %w", i, err)
		}
		headers = append(headers, fh)
	}

	names, err := readNames(r)
	if err != nil {
		return nil, fmt.Errorf("reading name pool: %w", err)
	}

	a := &Archive{
		header: header,
		data:   data,
		files:  make(map[string]FileHeader, len(headers)),
	}
	for i := 0; i < len(headers) && i < len(names); i++ {
		a.files[names[i]] = headers[i]
	}
	return a, nil
}

func readHeader(r *codec.Reader) (Header, error) {
	var h Header
	if err := expectMagic(r, ArchiveMagic); err != nil {
		return h, err
	}
	var err error
	if h.CreatorVersion, err = r.Uint16(); err != nil {
		return h, err
	}
	if h.RequiredReadVersion, err = r.Uint16(); err != nil {
		return h, err
	}
	if h.ArchiveHeaderSize, err = r.Uint16(); err != nil {
		return h, err
	}
	if h.FileHeaderSize, err = r.Uint16(); err != nil {
		return h, err
	}
	h.Files, err = r.Uint32()
	return h, err
}

func readFileHeader(r *codec.Reader) (FileHeader, error) {
	var fh FileHeader
	if err := expectMagic(r, FileHeaderMagic); err != nil {
		return fh, err
	}

	var err error
	if fh.NameID, err = r.Int32(); err != nil {
		return fh, err
	}
	for _, dst := range []*uint32{&fh.Size, &fh.Timestamp, &fh.Offset, &fh.Reserved, &fh.HeaderDataID} {
		if *dst, err = r.Uint32(); err != nil {
			return fh, err
		}
	}
	sum, err := r.Take(len(fh.Checksum))
	if err != nil {
		return fh, err
	}
	copy(fh.Checksum[:], sum)
	fh.PackedSize, err = r.Uint32()
	return fh, err
}

// readNames reads the name pool. Each name carries a length that counts its
// NUL terminator.
func readNames(r *codec.Reader) ([]string, error) {
	if err := expectMagic(r, NamePoolMagic); err != nil {
		return nil, err
	}
	count, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	if _, err := r.Uint32(); err != nil {
		return nil, err
	}

	names := make([]string, 0, min(int(count), r.Len()/5))
	for i := uint32(0); i < count; i++ {
		n, err := r.Uint32()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, fmt.Errorf("name %d: %w: zero length", i, codec.ErrInvalidEncoding)
		}
		b, err := r.Take(int(n))
		if err != nil {
			return nil, fmt.Errorf("name %d: %w", i, err)
		}
		if b[n-1] != 0 {
			return nil, fmt.Errorf("name %d: %w: missing terminator", i, codec.ErrInvalidEncoding)
		}
		names = append(names, codec.Lossy(b[:n-1]))
	}
	return names, nil
}

func expectMagic(r *codec.Reader, magic uint32) error {
	got, err := r.Uint32()
	if err != nil {
		return err
	}
	if got != magic {
		return fmt.Errorf("%w: magic %#x, want %#x", codec.ErrUnsupportedFormat, got, magic)
	}
	return nil
}

// Header returns the archive header
func (a *Archive) Header() Header {
	return a.header
}

// Files lists the archive's entries sorted by name
func (a *Archive) Files() []Entry {
	out := make([]Entry, 0, len(a.files))
	for name, fh := range a.files {
		out = append(out, Entry{
			Name:       name,
			Size:       fh.Size,
			PackedSize: fh.PackedSize,
			Modified:   time.Unix(int64(fh.Timestamp), 0).UTC(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Stat returns the header of the named entry
func (a *Archive) Stat(name string) (FileHeader, error) {
	fh, ok := a.files[name]
	if !ok {
		return FileHeader{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return fh, nil
}

// Bytes returns the contents of the named entry, inflating it if needed. The
// result never aliases the archive.
func (a *Archive) Bytes(name string) ([]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.data == nil {
		return nil, ErrClosed
	}
	fh, err := a.Stat(name)
	if err != nil {
		return nil, err
	}

	stored := fh.PackedSize
	if stored == 0 {
		stored = fh.Size
	}
	end := uint64(fh.Offset) + uint64(stored)
	if end > uint64(len(a.data)) {
		return nil, fmt.Errorf("%s: %w", name,
			&codec.TruncatedError{Offset: int(fh.Offset), Need: int(stored), Have: max(len(a.data)-int(fh.Offset), 0)})
	}
	raw := a.data[fh.Offset:end]

	if fh.PackedSize == 0 {
		return bytes.Clone(raw), nil
	}

	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open zlib stream: %w", name, err)
	}
	defer zr.Close()

	out := make([]byte, 0, min(uint64(fh.Size), uint64(fh.PackedSize)*inflateSlack))
	buf := bytes.NewBuffer(out)
	if _, err := io.Copy(buf, io.LimitReader(zr, int64(fh.Size)+1)); err != nil {
		return nil, fmt.Errorf("%s: failed to inflate: %w", name, err)
	}
	if buf.Len() != int(fh.Size) {
		return nil, fmt.Errorf("%s: %w: got %d bytes, want %d", name, ErrSizeMismatch, buf.Len(), fh.Size)
	}
	return buf.Bytes(), nil
}

// Close releases the mapping, if any. The archive is unusable afterwards.
func (a *Archive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.data = nil
	var errs []error
	if a.mm != nil {
		errs = append(errs, a.mm.Unmap())
		a.mm = nil
	}
	if a.file != nil {
		errs = append(errs, a.file.Close())
		a.file = nil
	}
	return errors.Join(errs...)
}
