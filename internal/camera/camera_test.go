package camera

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kdduha/chiliguard/internal/config"
	"github.com/kdduha/chiliguard/internal/models"
)

var jpegMagic = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

type fakeHost struct {
	tools   map[string]bool
	devices map[string]error
	calls   [][]string
	output  []byte
	runErr  error
}

func (h *fakeHost) install(c *FFmpegCamera) *FFmpegCamera {
	c.lookPath = func(name string) (string, error) {
		if h.tools[name] {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}
	c.openDev = func(path string) error {
		if err, ok := h.devices[path]; ok {
			return err
		}
		return os.ErrNotExist
	}
	c.run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		h.calls = append(h.calls, append([]string{name}, args...))
		return h.output, h.runErr
	}
	return c
}

func linuxOnly(t *testing.T) {
	t.Helper()
	if runtime.GOOS != "linux" {
		t.Skip("device files are only probed on linux")
	}
}

func testConfig() config.CameraConfig {
	return config.CameraConfig{
		FFmpegPath:    "ffmpeg",
		V4L2CtlPath:   "v4l2-ctl",
		RearDevice:    0,
		FrontDevice:   1,
		DefaultFacing: "environment",
		VideoSize:     "640x480",
		TorchControl:  "torch",
	}
}

func TestCaptureReturnsFrame(t *testing.T) {
	linuxOnly(t)
	host := &fakeHost{
		tools:   map[string]bool{"ffmpeg": true},
		devices: map[string]error{"/dev/video0": nil},
		output:  jpegMagic,
	}
	cam := host.install(NewFFmpegCamera(testConfig(), zap.NewNop()))

	got, err := cam.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.MIMEJPEG, got.MIMEType)
	require.Len(t, host.calls, 1)
	assert.Contains(t, strings.Join(host.calls[0], " "), "/dev/video0")
}

func TestCapturePermissionDeniedIsRecoverable(t *testing.T) {
	linuxOnly(t)
	host := &fakeHost{
		tools:   map[string]bool{"ffmpeg": true},
		devices: map[string]error{"/dev/video0": os.ErrPermission},
	}
	cam := host.install(NewFFmpegCamera(testConfig(), zap.NewNop()))

	_, err := cam.Capture(context.Background())
	require.ErrorIs(t, err, ErrPermissionDenied)
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Empty(t, host.calls)
}

func TestCaptureMissingDevice(t *testing.T) {
	linuxOnly(t)
	host := &fakeHost{tools: map[string]bool{"ffmpeg": true}}
	cam := host.install(NewFFmpegCamera(testConfig(), zap.NewNop()))

	_, err := cam.Capture(context.Background())
	require.ErrorIs(t, err, ErrNoDevice)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestTorchNoOpWhenUnsupported(t *testing.T) {
	cfg := testConfig()
	cfg.TorchControl = ""
	host := &fakeHost{
		tools:   map[string]bool{"ffmpeg": true, "v4l2-ctl": true},
		devices: map[string]error{"/dev/video0": nil},
	}
	cam := host.install(NewFFmpegCamera(cfg, zap.NewNop()))

	caps, err := cam.Capabilities(context.Background())
	require.NoError(t, err)
	assert.False(t, caps.Torch)

	on, err := cam.ToggleTorch(context.Background())
	require.NoError(t, err)
	assert.False(t, on)
	assert.Empty(t, host.calls)
}

func TestTorchToggleWhenSupported(t *testing.T) {
	linuxOnly(t)
	host := &fakeHost{
		tools:   map[string]bool{"ffmpeg": true, "v4l2-ctl": true},
		devices: map[string]error{"/dev/video0": nil, "/dev/video1": nil},
	}
	cam := host.install(NewFFmpegCamera(testConfig(), zap.NewNop()))

	caps, err := cam.Capabilities(context.Background())
	require.NoError(t, err)
	require.True(t, caps.Torch)
	assert.True(t, caps.CanSwitchFacing)

	on, err := cam.ToggleTorch(context.Background())
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, []string{"v4l2-ctl", "-d", "/dev/video0", "--set-ctrl=torch=1"}, host.calls[0])

	on, err = cam.ToggleTorch(context.Background())
	require.NoError(t, err)
	assert.False(t, on)
}

func TestTorchFailureKeepsState(t *testing.T) {
	linuxOnly(t)
	host := &fakeHost{
		tools:   map[string]bool{"ffmpeg": true, "v4l2-ctl": true},
		devices: map[string]error{"/dev/video0": nil},
		runErr:  errors.New("ioctl failed"),
	}
	cam := host.install(NewFFmpegCamera(testConfig(), zap.NewNop()))

	on, err := cam.ToggleTorch(context.Background())
	require.NoError(t, err)
	assert.False(t, on)
}

func TestSetFacing(t *testing.T) {
	cfg := testConfig()
	cfg.FrontDevice = -1
	cam := (&fakeHost{}).install(NewFFmpegCamera(cfg, zap.NewNop()))

	require.ErrorIs(t, cam.SetFacing(context.Background(), FacingUser), ErrFacingUnsupported)
	require.ErrorIs(t, cam.SetFacing(context.Background(), Facing("sideways")), ErrFacingUnsupported)
	require.NoError(t, cam.SetFacing(context.Background(), FacingEnvironment))

	caps, err := cam.Capabilities(context.Background())
	require.NoError(t, err)
	assert.False(t, caps.CanSwitchFacing)
	assert.Equal(t, FacingEnvironment, caps.Facing)
}

func TestFFmpegArgs(t *testing.T) {
	args, err := ffmpegArgs("linux", 2, "640x480")
	require.NoError(t, err)
	assert.Equal(t, []string{"-f", "v4l2", "-video_size", "640x480", "-i", "/dev/video2"}, args[:6])
	assert.Equal(t, "-", args[len(args)-1])

	_, err = ffmpegArgs("plan9", 0, "640x480")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestFromReader(t *testing.T) {
	got, err := FromReader(bytes.NewReader(jpegMagic), "leaf.jpg", 1024)
	require.NoError(t, err)
	assert.Equal(t, "leaf.jpg", got.Name)
	assert.Equal(t, models.MIMEJPEG, got.MIMEType)

	_, err = FromReader(bytes.NewReader(nil), "empty.jpg", 1024)
	require.ErrorIs(t, err, ErrEmptyFile)

	_, err = FromReader(bytes.NewReader(make([]byte, 2048)), "big.jpg", 1024)
	require.ErrorIs(t, err, ErrFileTooLarge)
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daun.jpg")
	require.NoError(t, os.WriteFile(path, jpegMagic, 0o644))

	got, err := FromFile(path, 0)
	require.NoError(t, err)
	assert.Equal(t, "daun.jpg", got.Name)

	_, err = FromFile(filepath.Join(t.TempDir(), "missing.jpg"), 0)
	require.Error(t, err)
}
