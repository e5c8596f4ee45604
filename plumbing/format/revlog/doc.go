// Package revlog implements decoding of Mercurial revlog index files.
//
// A revlog stores every revision of one tracked item (the changelog, the
// manifest or a single file). It is made of an index, a sequence of
// fixed-size records, and the revision payloads. The payloads are either
// interleaved with the index records in the same file (inline data) or
// stored in a separate data file.
//
// The first 4 bytes of the index hold a big-endian word whose low 16 bits
// are the format version and whose high 16 bits are flags:
//   - bit 16: inline data.
//   - bit 17: general delta.
//
// The same 4 bytes also belong to the first index record, so the decoder
// rewinds after reading them.
//
// Version 0 records are 76 bytes long:
//   - 4-byte offset of the payload.
//   - 4-byte payload length.
//   - 4-byte base revision.
//   - 4-byte link revision.
//   - 20-byte node of the first parent.
//   - 20-byte node of the second parent.
//   - 20-byte node.
//
// Version 1 (NG) records are 64 bytes long:
//   - 6-byte offset of the payload. For the first record these bytes carry
//     the version word instead, the offset is always 0.
//   - 2-byte flags.
//   - 4-byte compressed length.
//   - 4-byte uncompressed length.
//   - 4-byte base revision.
//   - 4-byte link revision.
//   - 4-byte revision of the first parent.
//   - 4-byte revision of the second parent.
//   - 32-byte node (20 bytes of SHA-1 followed by zero padding).
//
// All numbers are in network order.
//
// Revisions stored as deltas against their base revision are returned as
// stored; this package does not rebuild full texts from delta chains.
//
// Refer to:
// https://www.mercurial-scm.org/wiki/Revlog
package revlog
