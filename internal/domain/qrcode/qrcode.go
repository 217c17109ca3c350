package qrcode

// Generator renders a payload string as a scannable image.
type Generator interface {
	Generate(content string) ([]byte, error)
}
