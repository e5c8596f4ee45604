package dothg

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/pjbgf/sha1cd"
)

const (
	// maxStorePathLen is the longest encoded path kept by the fncache
	// layout, longer ones are hashed.
	maxStorePathLen = 120
	dirPrefixLen    = 8
	maxShortDirsLen = 8*(dirPrefixLen+1) - 4
)

// EncodeName applies the file name encoding of store repositories to a
// revlog file name: directory components ending in .hg, .i or .d get a
// .hg suffix, upper case letters become '_' followed by the lower case
// letter, '_' is doubled and bytes that are unsafe on common filesystems
// become '~' followed by their hexadecimal value.
func EncodeName(name string) string {
	return encodeFilename(encodeDir(name))
}

// HybridEncodeName applies the encoding of fncache repositories. The
// result of EncodeName is further escaped per path component so that
// Windows reserved names and trailing dots or spaces are safe, and a
// leading dot or space is escaped when dotencode is set. Paths longer than
// 120 bytes are replaced by a hashed name under the dh directory.
func HybridEncodeName(name string, dotencode bool) string {
	name = encodeDir(name)
	res := auxEncode(encodeFilename(name), dotencode)
	if len(res) > maxStorePathLen {
		return hashEncode(name, dotencode)
	}

	return res
}

func encodeDir(name string) string {
	if !strings.Contains(name, ".hg/") && !strings.Contains(name, ".i/") && !strings.Contains(name, ".d/") {
		return name
	}

	name = strings.ReplaceAll(name, ".hg/", ".hg.hg/")
	name = strings.ReplaceAll(name, ".i/", ".i.hg/")
	name = strings.ReplaceAll(name, ".d/", ".d.hg/")
	return name
}

func isReserved(c byte) bool {
	return c < 32 || c >= 126 || strings.IndexByte(`\:*?"<>|`, c) >= 0
}

func encodeFilename(name string) string {
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case isReserved(c):
			fmt.Fprintf(&b, "~%02x", c)
		case c >= 'A' && c <= 'Z':
			b.WriteByte('_')
			b.WriteByte(c - 'A' + 'a')
		case c == '_':
			b.WriteString("__")
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

// lowerEncode is encodeFilename without the '_' escaping of upper case
// letters, used by hashed names where case folding is lossy anyway.
func lowerEncode(name string) string {
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case isReserved(c):
			fmt.Fprintf(&b, "~%02x", c)
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c - 'A' + 'a')
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

func auxEncode(path string, dotencode bool) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		parts[i] = auxEncodeComponent(p, dotencode)
	}

	return strings.Join(parts, "/")
}

func auxEncodeComponent(n string, dotencode bool) string {
	if n == "" {
		return n
	}

	if dotencode && (n[0] == '.' || n[0] == ' ') {
		n = fmt.Sprintf("~%02x", n[0]) + n[1:]
	} else if isWindowsReserved(n) {
		n = n[:2] + fmt.Sprintf("~%02x", n[2]) + n[3:]
	}

	if last := n[len(n)-1]; last == '.' || last == ' ' {
		n = n[:len(n)-1] + fmt.Sprintf("~%02x", last)
	}

	return n
}

// isWindowsReserved reports whether the part of n before its first dot is
// a device name reserved on Windows.
func isWindowsReserved(n string) bool {
	stem := n
	if i := strings.IndexByte(n, '.'); i >= 0 {
		stem = n[:i]
	}

	switch len(stem) {
	case 3:
		switch stem {
		case "aux", "con", "prn", "nul":
			return true
		}
	case 4:
		if stem[3] >= '1' && stem[3] <= '9' {
			switch stem[:3] {
			case "com", "lpt":
				return true
			}
		}
	}

	return false
}

// hashEncode builds the dh/ name of a path too long for the store. The
// name keeps a short prefix of each directory and of the base name, the
// hex SHA-1 of the path and its extension.
func hashEncode(name string, dotencode bool) string {
	h := sha1cd.New()
	h.Write([]byte(name))
	digest := hex.EncodeToString(h.Sum(nil))

	// drop the "data/" prefix, replaced by "dh/"
	rest := name
	if i := strings.IndexByte(name, '/'); i >= 0 {
		rest = name[i+1:]
	}

	parts := strings.Split(lowerEncode(rest), "/")
	for i, p := range parts {
		parts[i] = auxEncodeComponent(p, dotencode)
	}

	basename := parts[len(parts)-1]
	ext := extension(basename)

	var dirs strings.Builder
	for _, p := range parts[:len(parts)-1] {
		d := p
		if len(d) > dirPrefixLen {
			d = d[:dirPrefixLen]
		}

		if d == "" {
			continue
		}

		if last := d[len(d)-1]; last == '.' || last == ' ' {
			d = d[:len(d)-1] + "_"
		}

		if dirs.Len() > 0 && dirs.Len()+1+len(d) > maxShortDirsLen {
			break
		}

		if dirs.Len() > 0 {
			dirs.WriteByte('/')
		}

		dirs.WriteString(d)
	}

	prefix := "dh/"
	if dirs.Len() > 0 {
		prefix += dirs.String() + "/"
	}

	res := prefix + digest + ext
	if space := maxStorePathLen - len(res); space > 0 {
		filler := basename
		if len(filler) > space {
			filler = filler[:space]
		}

		res = prefix + filler + digest + ext
	}

	return res
}

// extension returns the suffix of name starting at its last dot, ignoring
// leading dots.
func extension(name string) string {
	trimmed := strings.TrimLeft(name, ".")
	i := strings.LastIndexByte(trimmed, '.')
	if i < 0 {
		return ""
	}

	return trimmed[i:]
}
