package changeset

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Field identifies an optional part of a changeset.
type Field uint8

const (
	FieldHash Field = 1 << iota
	FieldAuthor
	FieldDate
	FieldMessage
)

// DefaultBranch is the branch of changesets without a branch extra.
const DefaultBranch = "default"

// Changeset is a decoded changelog revision. Hash, Author, Date and
// Message are only meaningful when Has reports them present.
type Changeset struct {
	// Data is the payload the changeset was decoded from.
	Data []byte
	// Hash is the manifest node, in hexadecimal.
	Hash   string
	Author string
	Date   Date
	// Extra holds the key:value pairs following the date, nil when absent.
	Extra map[string]string
	// Files lists the paths modified by the changeset, in stored order.
	Files []string
	// Message is the commit message, lines joined with '\n'.
	Message string

	fields Field
}

// Decode decodes a stored payload into a new Changeset.
func Decode(payload []byte) (*Changeset, error) {
	c := &Changeset{}
	if err := c.Decode(payload); err != nil {
		return nil, err
	}

	return c, nil
}

// Decode decodes a stored payload into c.
func (c *Changeset) Decode(payload []byte) error {
	text, err := DecodePayload(payload)
	if err != nil {
		return err
	}

	*c = Changeset{Data: payload}
	return c.decodeText(text)
}

func (c *Changeset) decodeText(text string) error {
	r := bufio.NewReader(strings.NewReader(text))

	var message []string
	var body bool
	for i := 0; ; i++ {
		line, err := r.ReadString('\n')
		if err == io.EOF && line == "" {
			break
		}

		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		switch {
		case body:
			message = append(message, line)
		case line == "":
			body = true
			c.fields |= FieldMessage
		default:
			if err := c.decodeHeaderLine(i, line); err != nil {
				return err
			}
		}

		if err == io.EOF {
			break
		}
	}

	c.Message = strings.Join(message, "\n")
	return nil
}

func (c *Changeset) decodeHeaderLine(i int, line string) error {
	switch i {
	case 0:
		c.Hash = line
		c.fields |= FieldHash
	case 1:
		c.Author = line
		c.fields |= FieldAuthor
	case 2:
		date, extra, err := parseDateLine(line)
		if err != nil {
			return err
		}

		c.Extra, err = decodeExtra(extra)
		if err != nil {
			return err
		}

		c.Date = date
		c.fields |= FieldDate
	default:
		c.Files = append(c.Files, line)
	}

	return nil
}

// Has reports whether f was present in the decoded text.
func (c *Changeset) Has(f Field) bool {
	return c.fields&f == f
}

// Branch returns the branch recorded in the extra fields, DefaultBranch if
// there is none.
func (c *Changeset) Branch() string {
	if b, ok := c.Extra["branch"]; ok && b != "" {
		return b
	}

	return DefaultBranch
}

func (c *Changeset) String() string {
	date := ""
	if c.Has(FieldDate) {
		date = c.Date.String()
	}

	return fmt.Sprintf(
		"Author: %s\nDate: %s\nFiles: %s\n\n%s\n",
		c.Author, date, strings.Join(c.Files, ", "), c.Message,
	)
}
