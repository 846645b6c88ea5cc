package srv

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// qrImageSize is the rendered edge length in pixels. Rendering is
// deterministic for identical input, which is what makes the
// per-(account, text) cache meaningful.
const qrImageSize = 300

var urlScheme = regexp.MustCompile(`(?i)^https?://`)

// renderQRCode encodes text as a black-on-white PNG with the standard
// quiet zone and returns it wrapped in a data URL.
func renderQRCode(text string) (string, error) {
	png, err := qrcode.Encode(text, qrcode.Medium, qrImageSize)
	if err != nil {
		return "", fmt.Errorf("encode qr: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// classifyText tags input as "url" when it carries an http(s) scheme,
// else "text". Only the scheme is matched case-insensitively.
func classifyText(text string) string {
	if urlScheme.MatchString(text) {
		return "url"
	}
	return "text"
}

// decodeDataURL splits a stored data URL back into content type and
// raw image bytes for download responses.
func decodeDataURL(dataURL string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return "", nil, fmt.Errorf("unsupported data URL encoding")
	}
	contentType := strings.TrimSuffix(meta, ";base64")
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URL payload: %w", err)
	}
	return contentType, raw, nil
}
