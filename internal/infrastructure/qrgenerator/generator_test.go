package qrgenerator_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xausdorf/pixcode/internal/infrastructure/qrgenerator"
)

const payload = "00020126330014br.gov.bcb.pix011111999998888520400005303986540510.005802BR" +
	"5913FULANO DE TAL6008BRASILIA62130509DEVPROPAY6304DC7C"

func TestGenerator_Generate(t *testing.T) {
	gen := qrgenerator.NewGenerator(256)

	out, err := gen.Generate(payload)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, 256, img.Bounds().Dy())
}

func TestGenerator_Generate_Empty(t *testing.T) {
	_, err := qrgenerator.NewGenerator(256).Generate("")
	require.ErrorIs(t, err, qrgenerator.ErrEmptyContent)
}
