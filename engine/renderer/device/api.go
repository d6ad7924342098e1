package device

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/anima2d/engine/core"
)

// API identifies a graphics backend family.
type API uint8

const (
	APIHeadless API = iota
	APIOpenGL
	APIVulkan
	APIMetal
	APIDirectX
)

func (a API) String() string {
	switch a {
	case APIHeadless:
		return "headless"
	case APIOpenGL:
		return "opengl"
	case APIVulkan:
		return "vulkan"
	case APIMetal:
		return "metal"
	case APIDirectX:
		return "directx"
	}
	return fmt.Sprintf("api(%d)", uint8(a))
}

// ParseAPI maps a configuration value to an API.
func ParseAPI(s string) (API, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "headless", "none":
		return APIHeadless, nil
	case "opengl", "gl":
		return APIOpenGL, nil
	case "vulkan", "vk":
		return APIVulkan, nil
	case "metal":
		return APIMetal, nil
	case "directx", "dx", "d3d":
		return APIDirectX, nil
	}
	return APIHeadless, fmt.Errorf("%w: %q", core.ErrUnsupportedBackend, s)
}

// MarshalText lets configuration files carry the API by name.
func (a API) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *API) UnmarshalText(text []byte) error {
	v, err := ParseAPI(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
