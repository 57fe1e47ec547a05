// Package shape derives decode plans for Parse7 records from Go types.
//
// A Shape is the declarative contract the decoder is driven by: an ordered
// field list for records, an ordered variant list for tagged unions, and an
// element shape for options and sequences. Shapes are derived once per Go type
// by reflection and cached. Field declaration order is wire order; reordering
// the fields of a struct changes the format it reads.
//
// # Type mapping
//
//	bool                         4-byte word, nonzero is true
//	int8, int16, int32           4-byte word, narrowed silently
//	uint8, uint16, uint32        4-byte word, narrowed silently
//	float32                      4-byte IEEE-754 word
//	string                       4-byte offset into the file's string pool
//	string `bin:",inline"`       length-prefixed UTF-8 text
//	InlineString                 length-prefixed UTF-8 text
//	[]byte                       length-prefixed bytes
//	*T                           4-byte presence flag, then T when nonzero
//	[]T                          4-byte count, then that many T
//	[N]T                         N consecutive T, no count
//	struct                       4-byte length frame, then each field
//	struct implementing
//	  TupleShaped                each field back-to-back, no frame
//	struct embedding Union and
//	  implementing Enum          4-byte ordinal, then the variant payload
//
// Records that implement PartialShaped are known to declare only a prefix of
// their wire layout; the decoder skips their tail without reporting it.
//
// Unexported fields and fields tagged `bin:"-"` are not part of the layout.
package shape
