package services

import (
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

// ReportURL is the report page of a video under baseURL.
func ReportURL(baseURL, site string) string {
	return strings.TrimRight(baseURL, "/") + "/reporte?video=" + url.QueryEscape(site)
}

// ShareQR encodes the report URL of a video as a PNG QR code.
func ShareQR(baseURL, site string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(ReportURL(baseURL, site), qrcode.Medium, size)
}
