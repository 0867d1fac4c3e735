package port

import "context"

// DeviceController forwards validated service calls to the device backend.
// Implementations own transport retries; callers treat any error as a
// downstream failure.
type DeviceController interface {
	BoostHotWater(ctx context.Context, deviceID string, endUnix int64) error
	CancelBoostHotWater(ctx context.Context, deviceID string) error
}
