package mapbox

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/geo"
)

const (
	staticMapWidth  = 800
	staticMapHeight = 400
	staticMapPoints = 180
)

// StaticMapURL returns a Mapbox Static Images URL with the route polyline
// and the planned stops drawn on it. The polyline is downsampled first to
// keep the URL within Mapbox's length limits.
func (c *Client) StaticMapURL(route *domain.Route, stops []domain.Coordinates, start, end domain.Coordinates) string {
	reduced := geo.Downsample(route.Points, staticMapPoints)
	encoded := encodePolyline(reduced)

	overlays := []string{
		fmt.Sprintf("path-4+0066ff-0.7(%s)", url.QueryEscape(encoded)),
		fmt.Sprintf("pin-s-a+00aa55(%f,%f)", start.Lon, start.Lat),
		fmt.Sprintf("pin-s-b+111111(%f,%f)", end.Lon, end.Lat),
	}
	for _, p := range stops {
		overlays = append(overlays, fmt.Sprintf("pin-s+f44(%f,%f)", p.Lon, p.Lat))
	}

	return fmt.Sprintf(
		"%s/styles/v1/mapbox/streets-v12/static/%s/auto/%dx%d?access_token=%s",
		c.baseURL, strings.Join(overlays, ","), staticMapWidth, staticMapHeight, c.accessToken,
	)
}

// encodePolyline encodes points with the Google polyline algorithm
// (precision 5), as consumed by the Mapbox path overlay.
func encodePolyline(points []domain.Coordinates) string {
	var sb strings.Builder
	prevLat, prevLon := 0, 0
	for _, p := range points {
		lat := int(math.Round(p.Lat * 1e5))
		lon := int(math.Round(p.Lon * 1e5))
		encodeSigned(&sb, lat-prevLat)
		encodeSigned(&sb, lon-prevLon)
		prevLat, prevLon = lat, lon
	}
	return sb.String()
}

func encodeSigned(sb *strings.Builder, value int) {
	v := value << 1
	if value < 0 {
		v = ^v
	}
	for v >= 0x20 {
		sb.WriteByte(byte((0x20 | (v & 0x1f)) + 63))
		v >>= 5
	}
	sb.WriteByte(byte(v + 63))
}
