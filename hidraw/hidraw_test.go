package hidraw

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchString(t *testing.T) {
	// The kernel numbers HID interfaces from one and prints the triple
	// in zero-padded uppercase hex.
	assert.Equal(t, "28DE:1205.0003/hidraw", searchString(0x28DE, 0x1205, 2))
	assert.Equal(t, "0001:00AB.0001/hidraw", searchString(0x1, 0xAB, 0))
}

func TestFindDevNode(t *testing.T) {
	root := t.TempDir()

	// Build a plausible sysfs subtree:
	//   <root>/pci0/usb3/3-1/3-1:1.2/0003:28DE:1205.0003/hidraw/hidraw5
	devDir := filepath.Join(root, "pci0", "usb3", "3-1", "3-1:1.2", "0003:28DE:1205.0003", "hidraw")
	require.NoError(t, os.MkdirAll(filepath.Join(devDir, "hidraw5"), 0o755))

	// A sibling interface that must not match.
	otherDir := filepath.Join(root, "pci0", "usb3", "3-1", "3-1:1.0", "0003:28DE:1205.0001", "hidraw")
	require.NoError(t, os.MkdirAll(filepath.Join(otherDir, "hidraw3"), 0o755))

	assert.Equal(t, "/dev/hidraw5", findDevNode(root, 0x28DE, 0x1205, 2))
	assert.Equal(t, "/dev/hidraw3", findDevNode(root, 0x28DE, 0x1205, 0))
	assert.Equal(t, "", findDevNode(root, 0x28DE, 0x1205, 7))
	assert.Equal(t, "", findDevNode(root, 0xBEEF, 0x1205, 2))
}

func TestOpenRejectsNonCharDevice(t *testing.T) {
	d := New()
	path := filepath.Join(t.TempDir(), "not-a-device")
	require.NoError(t, os.WriteFile(path, []byte{0}, 0o644))
	assert.Error(t, d.Open(path))
	assert.False(t, d.IsOpen())
}

func TestCloseIsIdempotent(t *testing.T) {
	d := New()
	d.Close()
	d.Close()
	assert.False(t, d.IsOpen())
	assert.Empty(t, d.Path())
}

func TestReadWriteRequireOpen(t *testing.T) {
	d := New()
	buf := make([]byte, 64)
	assert.Error(t, d.Read(buf))
	assert.Error(t, d.Write(buf))
	_, err := d.FeatureGet(0x01, buf)
	assert.Error(t, err)
	assert.Error(t, d.FeatureSet(buf))
}
