// Package imaging converts raster images into embeddable data URIs
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"os"

	// Register decoders for the formats source images arrive in.
	_ "image/gif"
	_ "image/jpeg"
)

// DataURIPrefix is the fixed prefix of every encoded payload. Images are
// always re-serialized as PNG regardless of their source format.
const DataURIPrefix = "data:image/png;base64,"

// EncodingError reports a failure to decode or re-serialize an image.
type EncodingError struct {
	Path string // source file, if known
	Err  error
}

func (e *EncodingError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("image encoding failed for %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("image encoding failed: %v", e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// EncodeDataURI re-serializes the image as PNG and wraps it in a
// base64 data URI safe to embed in a JSON request body. The transform is
// lossless: decoding the payload reproduces the pixel data exactly.
func EncodeDataURI(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", &EncodingError{Err: err}
	}
	return DataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// LoadImage decodes an image file from disk. JPEG, PNG and GIF sources
// are supported.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &EncodingError{Path: path, Err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &EncodingError{Path: path, Err: err}
	}
	return img, nil
}

// EncodeFile loads an image from disk and returns its data URI.
func EncodeFile(path string) (string, error) {
	img, err := LoadImage(path)
	if err != nil {
		return "", err
	}
	uri, err := EncodeDataURI(img)
	if err != nil {
		return "", &EncodingError{Path: path, Err: err}
	}
	return uri, nil
}

// DecodeDataURI parses a data URI produced by EncodeDataURI back into an
// image. Used by tests and by the server to accept pre-encoded payloads.
func DecodeDataURI(uri string) (image.Image, error) {
	if len(uri) < len(DataURIPrefix) || uri[:len(DataURIPrefix)] != DataURIPrefix {
		return nil, &EncodingError{Err: fmt.Errorf("missing %q prefix", DataURIPrefix)}
	}

	raw, err := base64.StdEncoding.DecodeString(uri[len(DataURIPrefix):])
	if err != nil {
		return nil, &EncodingError{Err: err}
	}

	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, &EncodingError{Err: err}
	}
	return img, nil
}
