package process

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/h2non/filetype"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

type srcEncoding int

const (
	encUnknown srcEncoding = iota
	encUTF8
	encUTF16BigEndian
	encUTF16LittleEndian
	encUTF32BigEndian
	encUTF32LittleEndian
)

func isUTF32BigEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0x00 && buf[1] == 0x00 && buf[2] == 0xFE && buf[3] == 0xFF
}

func isUTF32LittleEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0xFF && buf[1] == 0xFE && buf[2] == 0x00 && buf[3] == 0x00
}

func isUTF8BOM3(buf []byte) bool {
	return len(buf) >= 3 && buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF
}

func isUTF16BigEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFE && buf[1] == 0xFF
}

func isUTF16LittleEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFF && buf[1] == 0xFE
}

// detectUTF looks at byte order mark, UTF-32 has to be checked before UTF-16.
func detectUTF(buf []byte) srcEncoding {
	switch {
	case isUTF32BigEndianBOM4(buf):
		return encUTF32BigEndian
	case isUTF32LittleEndianBOM4(buf):
		return encUTF32LittleEndian
	case isUTF8BOM3(buf):
		return encUTF8
	case isUTF16BigEndianBOM2(buf):
		return encUTF16BigEndian
	case isUTF16LittleEndianBOM2(buf):
		return encUTF16LittleEndian
	}
	return encUnknown
}

// selectDecoder returns decoder which strips BOM for detected encoding.
func selectDecoder(enc srcEncoding) *encoding.Decoder {
	switch enc {
	case encUnknown:
		return encoding.Nop.NewDecoder()
	case encUTF8:
		return unicode.UTF8BOM.NewDecoder()
	case encUTF16BigEndian:
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
	case encUTF16LittleEndian:
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
	case encUTF32BigEndian:
		return utf32.UTF32(utf32.BigEndian, utf32.ExpectBOM).NewDecoder()
	case encUTF32LittleEndian:
		return utf32.UTF32(utf32.LittleEndian, utf32.ExpectBOM).NewDecoder()
	}
	// this should never happen
	panic(fmt.Sprintf("unexpected source encoding %d", enc))
}

// @charset must be the very first thing in stylesheet.
var charsetRule = regexp.MustCompile(`^@charset\s+["']([^"']+)["']\s*;`)

// decode converts stylesheet to UTF-8. Forced encoding wins, then byte order
// mark, then @charset rule. Content which is not valid UTF-8 and has no
// declaration is rejected.
func decode(data []byte, forced encoding.Encoding) (string, error) {
	if forced != nil {
		out, _, err := transform.Bytes(forced.NewDecoder(), data)
		if err != nil {
			return "", fmt.Errorf("unable to decode stylesheet: %w", err)
		}
		return string(out), nil
	}

	if enc := detectUTF(data); enc != encUnknown {
		out, _, err := transform.Bytes(selectDecoder(enc), data)
		if err != nil {
			return "", fmt.Errorf("unable to decode stylesheet: %w", err)
		}
		return string(out), nil
	}

	if m := charsetRule.FindSubmatch(data); m != nil {
		enc, name := charset.Lookup(string(m[1]))
		if enc == nil {
			return "", fmt.Errorf("unknown stylesheet @charset '%s'", m[1])
		}
		if name != "utf-8" {
			out, _, err := transform.Bytes(enc.NewDecoder(), data)
			if err != nil {
				return "", fmt.Errorf("unable to decode stylesheet from %s: %w", name, err)
			}
			return string(out), nil
		}
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("stylesheet is not valid UTF-8 and does not declare its encoding")
	}
	return string(data), nil
}

// isArchiveFile checks content of the file rather than its extension.
func isArchiveFile(fname string) (bool, error) {
	head, err := readHead(fname)
	if err != nil {
		return false, err
	}
	kind, err := filetype.Archive(head)
	if err != nil {
		return false, nil
	}
	return kind.Extension == "zip", nil
}

// isStylesheetName checks file extension.
func isStylesheetName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".css", ".less":
		return true
	}
	return false
}

// isStylesheetFile accepts stylesheet names which content is not recognized
// as any known binary format.
func isStylesheetFile(fname string) (bool, error) {
	if !isStylesheetName(fname) {
		return false, nil
	}
	head, err := readHead(fname)
	if err != nil {
		return false, err
	}
	return isText(head), nil
}

func isText(head []byte) bool {
	if len(head) == 0 {
		return true
	}
	kind, err := filetype.Match(head)
	return err == nil && kind == filetype.Unknown
}

// readHead reads enough of the file for signature detection.
func readHead(fname string) ([]byte, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// filetype needs at most 262 bytes
	head := make([]byte, 262)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return bytes.Clone(head[:n]), nil
}
