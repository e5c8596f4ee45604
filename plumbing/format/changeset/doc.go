// Package changeset implements decoding of Mercurial changelog payloads.
//
// A payload starts with a tag byte selecting its encoding:
//   - 0x00: empty changeset.
//   - 'x': zlib stream, the tag byte is the first byte of the stream.
//   - 'u': uncompressed text following the tag byte.
//
// Any other tag is rejected with ErrUnknownEncoding.
//
// The decoded text is a header and a message separated by the first blank
// line. The header lines are, in order, the manifest node in hexadecimal,
// the author, the date and one line per modified file. The date line holds
// a Unix timestamp and the offset of the committer's zone in seconds west
// of UTC, optionally followed by extra key:value pairs.
//
// Only full texts can be decoded: a payload stored as a delta against its
// base revision is not a changeset text.
package changeset
