// Package objects declares the record schemas found in the game's bin files
// and a registry that maps each kind of file to its schema.
//
// Field order in every struct is wire order. Several fields carry names that
// only describe where they sit in the layout; their meaning is unknown.
//
// Display strings (names, help text) are stored as message keys. Decoded
// records can swap them for text from a message store with ResolveStrings.
package objects
