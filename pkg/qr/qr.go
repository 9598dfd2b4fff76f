package qr

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

// Generator renders QR code PNGs that point at public menu pages.
type Generator interface {
	MenuURL(slug string) string
	Generate(slug string) ([]byte, error)
}

type MenuQRGenerator struct {
	BaseURL string
	Size    int
}

func NewMenuQRGenerator(baseURL string, size int) *MenuQRGenerator {
	if size <= 0 {
		size = 256
	}
	return &MenuQRGenerator{BaseURL: strings.TrimRight(baseURL, "/"), Size: size}
}

// MenuURL returns the public menu address encoded into the QR image.
func (g *MenuQRGenerator) MenuURL(slug string) string {
	return fmt.Sprintf("%s/menus/%s", g.BaseURL, slug)
}

// Generate renders the QR PNG for a restaurant's public menu page.
func (g *MenuQRGenerator) Generate(slug string) ([]byte, error) {
	return qrcode.Encode(g.MenuURL(slug), qrcode.Medium, g.Size)
}
