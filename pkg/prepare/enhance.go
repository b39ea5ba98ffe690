package prepare

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/nodewee/ocr2text/pkg/constants"
	"github.com/nodewee/ocr2text/pkg/logger"
	"github.com/nodewee/ocr2text/pkg/types"
	"github.com/nodewee/ocr2text/pkg/utils"
)

// normalizer validates image bytes and optionally enhances them for OCR
type normalizer struct {
	enhance   bool
	maxWidth  int
	maxHeight int
	logger    *logger.Logger
}

// normalize decodes data and returns the bytes to submit for recognition.
// Decoding failures are corrupt input; enhancement failures keep the original bytes.
func (n *normalizer) normalize(data []byte, format types.InputFormat, checkSize bool) ([]byte, types.InputFormat, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, format, utils.NewCorruptInputError(fmt.Sprintf("%s: %s image", constants.ErrCorruptInput, format), err)
	}

	if checkSize && (cfg.Width > n.maxWidth || cfg.Height > n.maxHeight) {
		return nil, format, utils.NewValidationError(
			fmt.Sprintf("image too large: %dx%d (max %dx%d)", cfg.Width, cfg.Height, n.maxWidth, n.maxHeight), nil).
			WithContext("width", cfg.Width).
			WithContext("height", cfg.Height)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, format, utils.NewCorruptInputError(fmt.Sprintf("%s: %s image", constants.ErrCorruptInput, format), err)
	}

	if !n.enhance {
		return data, format, nil
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, enhanceImage(img), imaging.PNG); err != nil {
		n.logger.Warn("Image enhancement failed, using original: %v", err)
		return data, format, nil
	}
	return buf.Bytes(), types.FormatPNG, nil
}

// enhanceImage upscales small images and boosts legibility
func enhanceImage(img image.Image) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() < constants.SmallImageThreshold || bounds.Dy() < constants.SmallImageThreshold {
		img = imaging.Resize(img, bounds.Dx()*2, bounds.Dy()*2, imaging.Lanczos)
	}

	img = imaging.Sharpen(img, constants.SharpenSigma)
	img = imaging.AdjustContrast(img, constants.ContrastPercentage)
	return imaging.Grayscale(img)
}
