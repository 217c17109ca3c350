package qrgenerator

import (
	"errors"

	qr "github.com/skip2/go-qrcode"
)

var ErrEmptyContent = errors.New("qr content is empty")

type Generator struct {
	size  int
	level qr.RecoveryLevel
}

func NewGenerator(size int) *Generator {
	return &Generator{size: size, level: qr.Medium}
}

// Generate encodes content verbatim into a PNG. A BR Code must reach the
// scanner byte for byte, so nothing is re-serialized here.
func (g *Generator) Generate(content string) ([]byte, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	return qr.Encode(content, g.level, g.size)
}
