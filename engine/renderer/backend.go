package renderer

import (
	"fmt"

	"github.com/spaghettifunk/anima2d/engine/core"
	"github.com/spaghettifunk/anima2d/engine/renderer/device"
	"github.com/spaghettifunk/anima2d/engine/renderer/headless"
)

// NewRenderDevice creates the device for api. Only the headless device is
// built into the engine; GPU backends are provided by the host.
func NewRenderDevice(api device.API) (device.RenderDevice, error) {
	switch api {
	case device.APIHeadless:
		return headless.New(), nil
	}
	return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedBackend, api)
}
