package service

import (
	"encoding/base64"
	"fmt"
	"image/color"
	"regexp"
	"strconv"

	"github.com/avvvet/cardcraft-services/internal/card"
	qrcode "github.com/skip2/go-qrcode"
)

var hexColorRe = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// QRDataURI encodes the block's vCard payload as a PNG data URI, drawn in
// the block color on a transparent background. Export renders at twice the
// layout size.
func QRDataURI(qr *card.QRBlock, scale int) (string, error) {
	q, err := qrcode.New(qr.Payload, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("qr encode: %w", err)
	}
	q.DisableBorder = true
	q.ForegroundColor = parseHexColor(qr.Color, color.Black)
	q.BackgroundColor = color.Transparent

	png, err := q.PNG(qr.Size * scale)
	if err != nil {
		return "", fmt.Errorf("qr png: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

func parseHexColor(s string, def color.Color) color.Color {
	if !hexColorRe.MatchString(s) {
		return def
	}
	h := s[1:]
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return def
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
