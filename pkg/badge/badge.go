package badge

import (
	"encoding/json"
	"fmt"

	"github.com/zeebo/xxh3"
)

const (
	LicenseLabel = "license"
	VersionLabel = "scoop"

	ColorBlue      = "blue"
	ColorGreen     = "green"
	ColorOrange    = "orange"
	ColorRed       = "red"
	ColorLightgrey = "lightgrey"
)

// Badge is a rendered label.
type Badge struct {
	Label   string `json:"label"`
	Message string `json:"message"`
	Color   string `json:"color"`
	IsError bool   `json:"isError,omitempty"`
}

type endpoint struct {
	SchemaVersion int `json:"schemaVersion"`
	Badge
}

// JSON encodes the badge as a shields.io endpoint document.
func (b Badge) JSON() ([]byte, error) {
	data, err := json.Marshal(endpoint{SchemaVersion: 1, Badge: b})
	if err != nil {
		return nil, fmt.Errorf("marshal badge: %w", err)
	}
	return data, nil
}

func (b Badge) String() string {
	return b.Label + ": " + b.Message
}

// ETag returns a strong entity tag for the badge content.
func (b Badge) ETag() string {
	return fmt.Sprintf(`"%016x"`, xxh3.HashString(b.Label+"\x00"+b.Message+"\x00"+b.Color))
}

// Error renders a failure under the given label.
func Error(label, message string) Badge {
	return Badge{Label: label, Message: message, Color: ColorLightgrey, IsError: true}
}
