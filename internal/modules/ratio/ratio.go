package ratio

import (
	"fmt"

	"github.com/reusedev/media-hub/internal/consts"
	"github.com/reusedev/media-hub/internal/modules/errs"
)

// Policy holds the device ratio targets and the absolute tolerance band.
// Passed explicitly into the pipeline so deployments can tune it without
// recompiling.
type Policy struct {
	Targets   map[consts.DeviceClass]float64
	Tolerance float64
}

// exampleDimensions is part of the rejection message contract: concrete
// pixel sizes a user can resize to.
var exampleDimensions = map[consts.DeviceClass]string{
	consts.DeviceMobile:  "400x500 or 800x1000",
	consts.DeviceDesktop: "1920x1080 or 1600x900",
}

func DefaultPolicy(tolerance float64) Policy {
	return Policy{
		Targets: map[consts.DeviceClass]float64{
			consts.DeviceMobile:  0.8,  // 4:5
			consts.DeviceDesktop: 1.78, // 16:9
		},
		Tolerance: tolerance,
	}
}

func (p Policy) TargetFor(device consts.DeviceClass) (float64, error) {
	target, ok := p.Targets[device]
	if !ok {
		return 0, fmt.Errorf("no target ratio for device class %q", device)
	}
	return target, nil
}

// Validate accepts when |ratio - target| <= tolerance. The rejection
// message names the expected and actual ratios plus example dimensions;
// it is shown to users as-is.
func (p Policy) Validate(ratio float64, device consts.DeviceClass) error {
	target, err := p.TargetFor(device)
	if err != nil {
		return errs.Wrap(errs.KindRatioRejected, "unknown device class", err).
			With("device", device.String())
	}
	diff := ratio - target
	if diff < 0 {
		diff = -diff
	}
	if diff > p.Tolerance {
		return errs.New(errs.KindRatioRejected,
			fmt.Sprintf("image aspect ratio %.2f does not match the %s target %.2f (tolerance ±%.2f); acceptable dimensions include %s",
				ratio, device, target, p.Tolerance, exampleDimensions[device])).
			With("expected_ratio", target).
			With("actual_ratio", ratio).
			With("device", device.String())
	}
	return nil
}
