package ocr

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"strings"

	"Expiry-Reminder/domain"

	"github.com/gen2brain/heic"
)

// Image is a receipt photo normalized to PNG and spooled to a temp file.
// Callers must Close it to remove the file.
type Image struct {
	PNG    []byte
	Path   string
	Width  int
	Height int
}

// Decode normalizes raw upload bytes (JPEG, PNG, GIF, HEIC/HEIF) to PNG.
func Decode(data []byte, contentType string) (*Image, error) {
	if len(data) == 0 {
		return nil, domain.ErrEmptyImage
	}

	var (
		img image.Image
		err error
	)
	if isHEIC(data, contentType) {
		img, err = heic.Decode(bytes.NewReader(data))
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImageFormat, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}

	tmp, err := os.CreateTemp("", "receipt-*.png")
	if err != nil {
		return nil, fmt.Errorf("creating temp image: %w", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("writing temp image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("writing temp image: %w", err)
	}

	bounds := img.Bounds()
	return &Image{
		PNG:    buf.Bytes(),
		Path:   tmp.Name(),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

func (i *Image) Open() (io.ReadCloser, error) {
	return os.Open(i.Path)
}

// Close removes the temp file. It is safe to call more than once.
func (i *Image) Close() error {
	if i == nil || i.Path == "" {
		return nil
	}
	err := os.Remove(i.Path)
	i.Path = ""
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func isHEIC(data []byte, contentType string) bool {
	ct := strings.ToLower(contentType)
	if ct == "image/heic" || ct == "image/heif" {
		return true
	}
	if len(data) < 12 || string(data[4:8]) != "ftyp" {
		return false
	}
	switch string(data[8:12]) {
	case "heic", "heix", "hevc", "hevx", "mif1", "msf1":
		return true
	}
	return false
}
