package result

import (
	"math"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/mefengl/note-oauth2/pkg/payload"
)

// Field names for device authorization responses, per
// https://tools.ietf.org/html/rfc8628#section-3.2. The response reuses
// FieldExpiresIn for the lifetime of the code pair.
const (
	FieldDeviceCode              = "device_code"
	FieldUserCode                = "user_code"
	FieldVerificationURI         = "verification_uri"
	FieldVerificationURIComplete = "verification_uri_complete"
	FieldInterval                = "interval"
)

// DefaultIntervalSeconds is the polling interval RFC 8628 prescribes when
// the authorization server does not send an "interval" field.
const DefaultIntervalSeconds int32 = 5

// DeviceAuth is the result of a device authorization request (RFC 8628):
// the code pair the device displays to its user plus the polling parameters
// for the subsequent token requests.
type DeviceAuth struct {
	Result
}

func NewDeviceAuth(p payload.Payload, opts ...Option) *DeviceAuth {
	return &DeviceAuth{Result: *NewResult(p, opts...)}
}

func (d *DeviceAuth) HasDeviceCode() bool {
	return d.hasString(FieldDeviceCode)
}

// DeviceCode returns the required "device_code" field the device presents
// when polling the token endpoint.
func (d *DeviceAuth) DeviceCode() (string, error) {
	return d.stringField(FieldDeviceCode)
}

func (d *DeviceAuth) HasUserCode() bool {
	return d.hasString(FieldUserCode)
}

// UserCode returns the required "user_code" field the end user types at the
// verification URI.
func (d *DeviceAuth) UserCode() (string, error) {
	return d.stringField(FieldUserCode)
}

func (d *DeviceAuth) HasVerificationURI() bool {
	return d.hasString(FieldVerificationURI)
}

// VerificationURI returns the required "verification_uri" field.
func (d *DeviceAuth) VerificationURI() (string, error) {
	return d.stringField(FieldVerificationURI)
}

func (d *DeviceAuth) HasVerificationURIComplete() bool {
	return d.hasString(FieldVerificationURIComplete)
}

// VerificationURIComplete returns the optional "verification_uri_complete"
// field, a verification URI with the user code already embedded.
func (d *DeviceAuth) VerificationURIComplete() (string, error) {
	return d.stringField(FieldVerificationURIComplete)
}

// CodesExpireInSeconds returns the "expires_in" field, the remaining
// lifetime of the device code and user code in seconds.
func (d *DeviceAuth) CodesExpireInSeconds() (int32, error) {
	return d.secondsField(FieldExpiresIn)
}

// CodesExpireAt resolves "expires_in" against the current clock reading.
// Like the token variant, it is recomputed on every call.
func (d *DeviceAuth) CodesExpireAt() (time.Time, error) {
	return d.expiryField(FieldExpiresIn)
}

// IntervalSeconds returns the polling interval the server asked for. Unlike
// the other accessors, an absent "interval" is not an error: the RFC defines
// the value to be 5 seconds when the server omits it. An "interval" that is
// present but not numeric, or that does not fit in int32, still fails.
func (d *DeviceAuth) IntervalSeconds() (int32, error) {
	if !d.payload.Has(FieldInterval) {
		return DefaultIntervalSeconds, nil
	}

	v, ok := d.payload.Number(FieldInterval)
	if !ok || v < math.MinInt32 || v > math.MaxInt32 {
		return 0, &InvalidFieldError{Field: FieldInterval}
	}

	return int32(v), nil
}

// Validate checks the fields RFC 8628 requires of a device authorization
// response, accumulating an error per missing or mistyped field.
func (d *DeviceAuth) Validate() error {
	var errs *multierror.Error

	for _, field := range []string{FieldDeviceCode, FieldUserCode, FieldVerificationURI} {
		if _, err := d.stringField(field); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	if _, err := d.secondsField(FieldExpiresIn); err != nil {
		errs = multierror.Append(errs, err)
	}

	if _, err := d.IntervalSeconds(); err != nil {
		errs = multierror.Append(errs, err)
	}

	return errs.ErrorOrNil()
}
