package camera

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/kdduha/chiliguard/internal/config"
	"github.com/kdduha/chiliguard/internal/models"
)

// Facing follows the MediaTrackConstraints naming.
type Facing string

const (
	FacingUser        Facing = "user"
	FacingEnvironment Facing = "environment"
)

const noDevice = -1

var (
	// ErrUnavailable marks every condition where the caller should offer
	// file selection instead of the live camera.
	ErrUnavailable       = errors.New("camera unavailable")
	ErrPermissionDenied  = fmt.Errorf("%w: permission denied", ErrUnavailable)
	ErrNoDevice          = fmt.Errorf("%w: no camera device", ErrUnavailable)
	ErrFacingUnsupported = errors.New("requested camera facing is not available")
	ErrEmptyFrame        = errors.New("no image data captured")
)

// Capabilities is the answer to a capability query made before any
// hardware action.
type Capabilities struct {
	Available       bool   `json:"tersedia"`
	CanSwitchFacing bool   `json:"bisaGantiKamera"`
	Torch           bool   `json:"senter"`
	Facing          Facing `json:"arah"`
	TorchOn         bool   `json:"senterAktif"`
}

// Runner executes an external command and returns its stdout.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// FFmpegCamera grabs single JPEG frames from a local video device.
type FFmpegCamera struct {
	cfg    config.CameraConfig
	logger *zap.Logger

	run      Runner
	lookPath func(string) (string, error)
	openDev  func(string) error

	mu      sync.Mutex
	facing  Facing
	torchOn bool
}

func NewFFmpegCamera(cfg config.CameraConfig, logger *zap.Logger) *FFmpegCamera {
	return &FFmpegCamera{
		cfg:      cfg,
		logger:   logger,
		run:      execRunner,
		lookPath: exec.LookPath,
		openDev:  openDevice,
		facing:   Facing(cfg.DefaultFacing),
	}
}

func openDevice(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}

func (c *FFmpegCamera) deviceFor(f Facing) int {
	if f == FacingUser {
		return c.cfg.FrontDevice
	}
	return c.cfg.RearDevice
}

// Capabilities reports what the hardware supports right now.
func (c *FFmpegCamera) Capabilities(ctx context.Context) (Capabilities, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.capabilitiesLocked(), nil
}

func (c *FFmpegCamera) capabilitiesLocked() Capabilities {
	current := c.deviceFor(c.facing)
	caps := Capabilities{
		Facing:  c.facing,
		TorchOn: c.torchOn,
	}
	caps.Available = current != noDevice && c.checkDevice(current) == nil && c.hasTool(c.cfg.FFmpegPath)
	caps.CanSwitchFacing = c.cfg.FrontDevice != noDevice &&
		c.cfg.RearDevice != noDevice &&
		c.cfg.FrontDevice != c.cfg.RearDevice
	caps.Torch = caps.Available &&
		runtime.GOOS == "linux" &&
		c.cfg.TorchControl != "" &&
		c.hasTool(c.cfg.V4L2CtlPath)
	return caps
}

func (c *FFmpegCamera) hasTool(name string) bool {
	if name == "" {
		return false
	}
	_, err := c.lookPath(name)
	return err == nil
}

// checkDevice maps OS errors to the recoverable camera errors. Only Linux
// exposes devices as files.
func (c *FFmpegCamera) checkDevice(id int) error {
	if id == noDevice {
		return ErrNoDevice
	}
	if runtime.GOOS != "linux" {
		return nil
	}
	err := c.openDev(devicePath(id))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, os.ErrPermission):
		return ErrPermissionDenied
	case errors.Is(err, os.ErrNotExist):
		return ErrNoDevice
	default:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}

func devicePath(id int) string {
	return "/dev/video" + strconv.Itoa(id)
}

func (c *FFmpegCamera) SetFacing(ctx context.Context, f Facing) error {
	if f != FacingUser && f != FacingEnvironment {
		return fmt.Errorf("%w: %q", ErrFacingUnsupported, f)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.deviceFor(f) == noDevice {
		return fmt.Errorf("%w: %q", ErrFacingUnsupported, f)
	}
	if c.facing != f {
		c.facing = f
		c.torchOn = false
	}
	return nil
}

// ToggleTorch flips the illumination aid when the device supports it and
// returns the resulting state. Unsupported hardware is a silent no-op.
func (c *FFmpegCamera) ToggleTorch(ctx context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.capabilitiesLocked().Torch {
		return false, nil
	}

	next := !c.torchOn
	value := "0"
	if next {
		value = "1"
	}
	_, err := c.run(ctx, c.cfg.V4L2CtlPath,
		"-d", devicePath(c.deviceFor(c.facing)),
		"--set-ctrl="+c.cfg.TorchControl+"="+value)
	if err != nil {
		c.logger.Warn("Failed to toggle torch", zap.Error(err))
		return c.torchOn, nil
	}
	c.torchOn = next
	return next, nil
}

// Capture grabs one frame from the device of the current facing.
func (c *FFmpegCamera) Capture(ctx context.Context) (models.Capture, error) {
	c.mu.Lock()
	id := c.deviceFor(c.facing)
	c.mu.Unlock()

	if err := c.checkDevice(id); err != nil {
		return models.Capture{}, err
	}
	if !c.hasTool(c.cfg.FFmpegPath) {
		return models.Capture{}, fmt.Errorf("%w: %s not found", ErrUnavailable, c.cfg.FFmpegPath)
	}

	args, err := ffmpegArgs(runtime.GOOS, id, c.cfg.VideoSize)
	if err != nil {
		return models.Capture{}, err
	}

	output, err := c.run(ctx, c.cfg.FFmpegPath, args...)
	if err != nil {
		c.logger.Error("Failed to capture image from camera", zap.Error(err))
		return models.Capture{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(output) == 0 {
		return models.Capture{}, ErrEmptyFrame
	}

	c.logger.Debug("Captured frame", zap.Int("size", len(output)), zap.Int("device", id))
	return models.NewCapture(models.DefaultCaptureName, output), nil
}

func ffmpegArgs(goos string, device int, videoSize string) ([]string, error) {
	var input []string
	switch goos {
	case "darwin":
		input = []string{"-f", "avfoundation", "-video_size", videoSize, "-framerate", "30", "-i", strconv.Itoa(device)}
	case "linux":
		input = []string{"-f", "v4l2", "-video_size", videoSize, "-i", devicePath(device)}
	case "windows":
		input = []string{"-f", "dshow", "-video_size", videoSize, "-video_device_number", strconv.Itoa(device), "-i", "video=USB Camera"}
	default:
		return nil, fmt.Errorf("%w: unsupported operating system %s", ErrUnavailable, goos)
	}
	return append(input,
		"-vframes", "1",
		"-f", "image2pipe",
		"-vcodec", "mjpeg",
		"-q:v", "2",
		"-"), nil
}
