package extraction

import (
	"encoding/base64"
	"fmt"
	"strings"

	"volunteerhub/internal/domain"
)

// SplitDataURL splits a base64 data URL into its media type and payload.
func SplitDataURL(dataURL string) (mediaType, payload string, err error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", "", fmt.Errorf("%w: image is not a data URL", domain.ErrUnprocessable)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", "", fmt.Errorf("%w: malformed data URL", domain.ErrUnprocessable)
	}
	mediaType, ok = strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", "", fmt.Errorf("%w: data URL is not base64 encoded", domain.ErrUnprocessable)
	}
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	return mediaType, payload, nil
}

// DecodeDataURL returns the media type and raw bytes of a base64 data URL.
func DecodeDataURL(dataURL string) (string, []byte, error) {
	mediaType, payload, err := SplitDataURL(dataURL)
	if err != nil {
		return "", nil, err
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: decoding data URL: %v", domain.ErrUnprocessable, err)
	}
	return mediaType, data, nil
}
