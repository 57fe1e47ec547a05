// Package catalogtest builds small archives for tests of packages that sit on
// top of a catalog.
package catalogtest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/ssargent/cohbin/pkg/codec"
	"github.com/ssargent/cohbin/pkg/messages"
	"github.com/ssargent/cohbin/pkg/parse7"
	"github.com/ssargent/cohbin/pkg/pigg"
)

// Entry names used by the fixtures
const (
	PowerCategoriesEntry = "bin/powercats.bin"
	MessagesEntry        = "texts/English/clientmessages-res.bin"
)

// Messages maps the display keys the fixture records carry to their text
var Messages = map[string]string{
	"P1001": "Blaster Primary",
	"P1002": "Ranged damage sets",
	"P1003": "Ranged",
	"P2001": "Blaster Secondary",
}

// BinFile assembles a Parse7 file from a string pool and record bodies
func BinFile(strings []string, records ...func(w *codec.Writer)) []byte {
	var arena []byte
	for _, s := range strings {
		arena = append(arena, s...)
		arena = append(arena, 0)
	}

	w := codec.NewWriter()
	w.Raw([]byte(parse7.Magic)).
		Uint32(0).
		LString(parse7.Signature).
		Uint32(uint32(len(arena))).
		Raw(arena).
		Pad(codec.NeededPadding(len(arena))).
		Uint32(0).
		Uint32(uint32(len(records)))
	for _, fn := range records {
		w.Framed(fn)
	}
	return w.Bytes()
}

// PowerCategories returns a power categories file with two good records and
// a third whose name points outside the pool
func PowerCategories() []byte {
	strs := []string{
		"", "defs/powercats.def", "Blaster_Ranged", "P1001", "P1002", "P1003",
		"Blaster_Support", "P2001", "Blaster_Ranged.Fire_Blast", "Blaster_Support.Fire_Manipulation",
	}
	off := make(map[string]uint32, len(strs))
	n := uint32(0)
	for _, s := range strs {
		off[s] = n
		n += uint32(len(s)) + 1
	}

	category := func(name, display, help, short string, sets ...string) func(w *codec.Writer) {
		return func(w *codec.Writer) {
			w.Uint32(off["defs/powercats.def"]).
				Uint32(off[name]).
				Uint32(off[display]).
				Uint32(off[help]).
				Uint32(off[short]).
				Uint32(uint32(len(sets)))
			for _, s := range sets {
				w.Uint32(off[s])
			}
		}
	}

	return BinFile(strs,
		category("Blaster_Ranged", "P1001", "P1002", "P1003", "Blaster_Ranged.Fire_Blast"),
		category("Blaster_Support", "P2001", "", "", "Blaster_Support.Fire_Manipulation"),
		func(w *codec.Writer) {
			w.Uint32(0).Uint32(n + 100).Uint32(0).Uint32(0).Uint32(0).Uint32(0)
		},
	)
}

// MessageStore encodes entries as a message store
func MessageStore(entries map[string]string) []byte {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var arena []byte
	for _, k := range keys {
		arena = append(arena, entries[k]...)
		arena = append(arena, 0)
	}

	w := codec.NewWriter()
	w.Uint32(messages.Version).
		Uint32(uint32(len(keys))).Uint32(uint32(len(arena))).Raw(arena).
		Uint32(0).Uint32(0).
		Uint32(uint32(len(keys)))
	for i, k := range keys {
		w.Uint32(uint32(len(k))).Raw([]byte(k)).Uint32(uint32(i)).Uint32(0).Uint32(0)
	}
	return w.Bytes()
}

// Archive is an in-memory archive
type Archive map[string][]byte

// NewArchive returns an archive holding the power categories fixture and a
// message store
func NewArchive() Archive {
	return Archive{
		PowerCategoriesEntry: PowerCategories(),
		MessagesEntry:        MessageStore(Messages),
	}
}

// Bytes returns the named entry
func (a Archive) Bytes(name string) ([]byte, error) {
	data, ok := a[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", pigg.ErrNotFound, name)
	}
	return data, nil
}

// Files lists the entries sorted by name
func (a Archive) Files() []pigg.Entry {
	out := make([]pigg.Entry, 0, len(a))
	for name, data := range a {
		out = append(out, pigg.Entry{Name: name, Size: uint32(len(data))})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// WriteFile writes the archive as a pigg file under dir and returns its path
func (a Archive) WriteFile(dir string) (string, error) {
	files := make([]pigg.File, 0, len(a))
	for _, e := range a.Files() {
		files = append(files, pigg.File{Name: e.Name, Data: a[e.Name], Modified: time.Unix(1354233600, 0)})
	}

	var buf bytes.Buffer
	if err := pigg.Write(&buf, files); err != nil {
		return "", err
	}
	path := filepath.Join(dir, "bin.pigg")
	return path, os.WriteFile(path, buf.Bytes(), 0o644)
}
