package audio

import (
	"io"
	"testing"

	"github.com/jfreymuth/pulse"
	pulseproto "github.com/jfreymuth/pulse/proto"
	"github.com/stretchr/testify/require"
)

func TestSelectFromListPrefersDefault(t *testing.T) {
	devices := []Device{
		{ID: "headset", Description: "USB Headset", Available: true, Default: true},
		{ID: "dashcam", Description: "Dashcam Mic", Available: true},
	}

	selection, err := selectFromList(devices, "default", "default")
	require.NoError(t, err)
	require.Equal(t, "headset", selection.Device.ID)
	require.Empty(t, selection.Warning)
	require.False(t, selection.Fallback)
}

func TestSelectFromListMatchesByDescription(t *testing.T) {
	devices := []Device{
		{ID: "alsa_input.usb-0001", Description: "Dashcam Mic", Available: true, Default: true},
		{ID: "alsa_input.usb-0002", Description: "Bluetooth Headset", Available: true},
	}

	selection, err := selectFromList(devices, "bluetooth", "")
	require.NoError(t, err)
	require.Equal(t, "alsa_input.usb-0002", selection.Device.ID)
}

func TestSelectFromListMutedPrimaryUsesFallback(t *testing.T) {
	devices := []Device{
		{ID: "headset", Description: "USB Headset", Available: true, Muted: true, Default: true},
		{ID: "dashcam", Description: "Dashcam Mic", Available: true},
	}

	selection, err := selectFromList(devices, "headset", "dashcam")
	require.NoError(t, err)
	require.Equal(t, "dashcam", selection.Device.ID)
	require.Contains(t, selection.Warning, "muted")
	require.True(t, selection.Fallback)
}

func TestSelectFromListFailsWhenNothingUsable(t *testing.T) {
	devices := []Device{
		{ID: "headset", Description: "USB Headset", Available: true, Muted: true, Default: true},
	}

	_, err := selectFromList(devices, "default", "default")
	require.Error(t, err)
	require.Contains(t, err.Error(), "muted")
}

func TestSelectFromListUnknownInput(t *testing.T) {
	devices := []Device{{ID: "headset", Available: true, Default: true}}

	_, err := selectFromList(devices, "missing", "default")
	require.Error(t, err)
	require.Contains(t, err.Error(), "did not match")
}

func TestSelectFromListEmpty(t *testing.T) {
	_, err := selectFromList(nil, "default", "default")
	require.Error(t, err)
}

func TestDeviceMatches(t *testing.T) {
	dev := Device{ID: "alsa_input.usb-headset", Description: "USB Headset Mono"}
	require.True(t, deviceMatches(dev, "headset"))
	require.True(t, deviceMatches(dev, "usb headset"))
	require.False(t, deviceMatches(dev, "webcam"))
	require.False(t, deviceMatches(dev, ""))
}

func TestSourceStateString(t *testing.T) {
	require.Equal(t, "running", sourceStateString(0))
	require.Equal(t, "idle", sourceStateString(1))
	require.Equal(t, "suspended", sourceStateString(2))
	require.Equal(t, "unknown(9)", sourceStateString(9))
}

func TestSourceAvailable(t *testing.T) {
	require.False(t, sourceAvailable(nil))
	require.True(t, sourceAvailable(&pulseproto.GetSourceInfoReply{}))
}

func TestChunkBytes(t *testing.T) {
	require.Equal(t, 640, chunkBytes(16000))
	require.Equal(t, 1920, chunkBytes(48000))
}

func TestCaptureChunkingAndFlush(t *testing.T) {
	capture := &Capture{
		chunkSize: 4,
		chunks:    make(chan []byte, 8),
		stopCh:    make(chan struct{}),
	}

	n, err := capture.onPCM([]byte{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	require.Equal(t, 6, n)
	require.Equal(t, []byte{1, 2, 3, 4}, <-capture.chunks)
	require.Equal(t, int64(6), capture.BytesCaptured())

	require.NoError(t, capture.Stop())
	require.Equal(t, []byte{5, 6}, <-capture.chunks)

	_, open := <-capture.chunks
	require.False(t, open)
}

func TestCaptureOnPCMAfterStop(t *testing.T) {
	capture := &Capture{
		chunkSize: 4,
		chunks:    make(chan []byte, 8),
		stopCh:    make(chan struct{}),
	}
	require.NoError(t, capture.Stop())
	require.NoError(t, capture.Stop())

	_, err := capture.onPCM([]byte{1, 2})
	require.ErrorIs(t, err, io.EOF)
}

func TestCaptureRawPCMIsACopy(t *testing.T) {
	capture := &Capture{
		chunkSize: 4,
		chunks:    make(chan []byte, 8),
		stopCh:    make(chan struct{}),
	}
	_, err := capture.onPCM([]byte{1, 2, 3, 4})
	require.NoError(t, err)

	raw := capture.RawPCM()
	require.Equal(t, []byte{1, 2, 3, 4}, raw)
	raw[0] = 99
	require.Equal(t, []byte{1, 2, 3, 4}, capture.RawPCM())
}

func TestBytesToInt16(t *testing.T) {
	require.Equal(t, []int16{256, -1}, bytesToInt16([]byte{0x00, 0x01, 0xFF, 0xFF}))
	require.Empty(t, bytesToInt16([]byte{0x01}))
}

func TestClipSourceHalt(t *testing.T) {
	source := &clipSource{samples: []int16{1, 2, 3, 4}}
	buf := make([]int16, 2)

	n, err := source.read(buf)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	source.halt()
	_, err = source.read(buf)
	require.Equal(t, pulse.EndOfData, err)
}
