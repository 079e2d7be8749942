package forms

import (
	"bytes"
	"errors"
	"image"
	"path/filepath"
	"strings"

	// Registered decoders for upload sniffing.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

var allowedImageExtensions = map[string]struct{}{
	".gif":  {},
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

// validateImage checks that an uploaded file is a decodable image of an
// allowed type. The extension check catches obvious mismatches cheaply; the
// DecodeConfig pass rejects renamed non-image payloads.
func validateImage(filename string, content []byte) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedImageExtensions[ext]; !ok {
		return errors.New("Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	}
	if len(content) == 0 {
		return errors.New("The submitted file is empty.")
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(content)); err != nil {
		return errors.New("Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	}
	return nil
}
