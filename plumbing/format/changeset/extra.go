package changeset

import (
	"fmt"
	"strconv"
	"strings"
)

// decodeExtra parses the NUL separated, backslash escaped key:value pairs
// that may follow the date.
func decodeExtra(raw string) (map[string]string, error) {
	if raw == "" {
		return nil, nil
	}

	extra := make(map[string]string)
	for _, field := range strings.Split(raw, "\x00") {
		if field == "" {
			continue
		}

		field = unescapeExtra(field)
		k, v, ok := strings.Cut(field, ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMalformedExtra, field)
		}

		extra[k] = v
	}

	return extra, nil
}

func unescapeExtra(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}

		i++
		switch s[i] {
		case '\\':
			b.WriteByte('\\')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '0':
			b.WriteByte(0)
		case 'x':
			if i+2 < len(s) {
				if v, err := strconv.ParseUint(s[i+1:i+3], 16, 8); err == nil {
					b.WriteByte(byte(v))
					i += 2
					continue
				}
			}
			b.WriteString(`\x`)
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}

	return b.String()
}
