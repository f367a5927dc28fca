//go:build !unix

package memory

import (
	"github.com/cockroachdb/errors"
)

// MmapProvider is only available on unix platforms.
type MmapProvider struct{}

// NewMmapProvider fails on platforms without anonymous memory mappings.
func NewMmapProvider(opts ...ProviderOption) (*MmapProvider, error) {
	return nil, errors.New("anonymous memory mappings are not supported on this platform")
}

// AllocAndMap always fails on platforms without anonymous memory mappings.
func (m *MmapProvider) AllocAndMap(byteSize int) (Region, error) {
	return nil, errors.Wrap(ErrAllocationFailed, "anonymous memory mappings are not supported on this platform")
}

// Close is a no-op.
func (m *MmapProvider) Close() error {
	return nil
}

// code contract - make sure the type implements the interface.
var _ Provider = &MmapProvider{}
