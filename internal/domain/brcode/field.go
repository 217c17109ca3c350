package brcode

import (
	"strconv"
	"strings"
)

const maxValueLen = 99

// field is a single tag-length-value entry of the payload.
type field struct {
	tag   string
	value string
}

// EncodeField renders tag, a two digit decimal length and value.
// Length is the UTF-8 byte length of value.
func EncodeField(tag, value string) (string, error) {
	if !validTag(tag) {
		return "", &EncodingError{Tag: tag, Err: ErrInvalidTag}
	}
	if len(value) > maxValueLen {
		return "", &EncodingError{Tag: tag, Err: ErrValueTooLong}
	}

	var b strings.Builder
	b.Grow(4 + len(value))
	b.WriteString(tag)
	if len(value) < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.Itoa(len(value)))
	b.WriteString(value)
	return b.String(), nil
}

// encodeFields concatenates the encoding of every field, in order.
func encodeFields(fields ...field) (string, error) {
	var b strings.Builder
	for _, f := range fields {
		enc, err := EncodeField(f.tag, f.value)
		if err != nil {
			return "", err
		}
		b.WriteString(enc)
	}
	return b.String(), nil
}

func validTag(tag string) bool {
	return len(tag) == 2 &&
		tag[0] >= '0' && tag[0] <= '9' &&
		tag[1] >= '0' && tag[1] <= '9'
}
