// Package store persists moose as palette-index artifacts.
//
// Each moose is one JSON file in the store directory:
//
//	{"name":"bob","image":[0,0,5,5,...],"created":1700000000000}
//
// image is the row-major artifact produced by moose.Def.Encode, so a store
// is only readable with the palette order it was written with.
//
// The store is the single writer for a name: Create serialises on a
// per-name lock and refuses names that already exist. Moose are never
// updated in place.
package store
