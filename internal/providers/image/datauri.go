package image

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const defaultFormat = "image/png"

// EncodeDataURI renders img as a base64 data URI.
func EncodeDataURI(img *Image) string {
	format := normalizeFormat(img.Format)
	return "data:" + format + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

// DecodeDataURI is the inverse of EncodeDataURI. Only base64 payloads are accepted.
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, errors.New("datauri: missing data: prefix")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errors.New("datauri: missing payload separator")
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, errors.New("datauri: payload is not base64")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("datauri: decode payload: %w", err)
	}
	if mime == "" {
		mime = defaultFormat
	}
	return mime, data, nil
}

func normalizeFormat(mime string) string {
	mime = strings.ToLower(strings.TrimSpace(mime))
	switch mime {
	case "image/jpeg", "image/jpg":
		return "image/jpeg"
	case "":
		return defaultFormat
	default:
		if strings.HasPrefix(mime, "image/") {
			return mime
		}
		return defaultFormat
	}
}
