// boxcam - Terminal bounding-box camera demo
//
// Renders a scene into an identifier buffer, runs the box extraction
// pipeline on it each frame, and shows the identifier map with box outlines
// overlaid in the terminal.
//
// Controls:
//
//	B       - Cycle box type (visible-2d / full-2d / 3d)
//	+/-     - Zoom in/out
//	Space   - Pause/resume the orbit
//	P       - Save the current frame as PNG
//	Esc/Q   - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/rs/zerolog/log"

	"github.com/softrender/boxcam/pkg/boxes"
	"github.com/softrender/boxcam/pkg/logging"
	"github.com/softrender/boxcam/pkg/math3d"
	"github.com/softrender/boxcam/pkg/render"
	"github.com/softrender/boxcam/pkg/scene"
)

// backgroundLabel is the reserved label meaning "no object at this pixel".
const backgroundLabel = 0

var (
	targetFPS  = flag.Int("fps", 30, "Target FPS")
	boxTypeStr = flag.String("type", "visible-2d", "Box type: visible-2d, full-2d or 3d")
	pngPath    = flag.String("png", "boxcam.png", "Path for saved frames")
	orbitSpeed = flag.Float64("orbit", 0.5, "Orbit speed in radians per second")
	logLevel   = flag.String("log-level", "info", "Log level")
	logToFile  = flag.Bool("log-file", false, "Also log to ./logs/boxcam.log")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "boxcam - Terminal bounding-box camera demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: boxcam [options] [model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Without a model a builtin multi-part scene is used.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  B       - Cycle box type\n")
		fmt.Fprintf(os.Stderr, "  +/-     - Zoom in/out\n")
		fmt.Fprintf(os.Stderr, "  Space   - Pause/resume orbit\n")
		fmt.Fprintf(os.Stderr, "  P       - Save frame as PNG\n")
		fmt.Fprintf(os.Stderr, "  Esc/Q   - Quit\n")
	}
	flag.Parse()

	logging.Setup(logging.Config{
		Level:       *logLevel,
		LogToFile:   *logToFile,
		LogFileName: "boxcam",
	})

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseBoxType maps the -type flag to a box type.
func parseBoxType(s string) (boxes.BoxType, error) {
	switch s {
	case "visible-2d":
		return boxes.VisibleBox2D, nil
	case "full-2d":
		return boxes.FullBox2D, nil
	case "3d":
		return boxes.Box3D, nil
	default:
		return 0, fmt.Errorf("unknown box type %q", s)
	}
}

// buildScene loads the model argument or assembles the builtin scene: a
// two-part "robot" whose boxes merge, plus a standalone crate.
func buildScene() (*scene.Scene, error) {
	s := scene.NewScene()

	if flag.NArg() > 0 {
		objects, err := scene.LoadModel(flag.Arg(0), 1)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
		for _, obj := range objects {
			s.Add(obj)
		}
		return s, nil
	}

	body := scene.NewBoxObject("robot-body", 1, math3d.V3(1, 1.2, 0.6))
	body.Group = "robot"

	head := scene.NewBoxObject("robot-head", 1, math3d.V3(0.5, 0.5, 0.5))
	head.Group = "robot"
	head.Node.Position = math3d.V3(0, 0.95, 0)
	head.Node.SetParent(body.Node)

	crate := scene.NewBoxObject("crate", 2, math3d.V3(0.8, 0.8, 0.8))
	crate.Node.Position = math3d.V3(1.8, -0.2, 0)
	crate.Node.Orientation = math3d.QuatFromAxisAngle(math3d.V3(0, 1, 0), math.Pi/5)

	s.Add(body)
	s.Add(head)
	s.Add(crate)
	return s, nil
}

// labelColors gives each semantic label a stable display color.
var labelColors = []render.Color{
	render.ColorGray,
	render.ColorBlue,
	render.ColorMagenta,
	render.ColorCyan,
	render.ColorYellow,
}

func run() error {
	boxType, err := parseBoxType(*boxTypeStr)
	if err != nil {
		return err
	}

	world, err := buildScene()
	if err != nil {
		return err
	}

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	termRenderer := render.NewTerminalRenderer(term, width, height)
	fbWidth, fbHeight := termRenderer.FramebufferSize()
	fb := render.NewFramebuffer(fbWidth, fbHeight)
	idmap := render.NewIDMap(fbWidth, fbHeight)

	camera := render.NewCamera()
	camera.SetAspectRatio(float64(fbWidth) / float64(fbHeight))
	camera.SetClipPlanes(0.1, 100)

	extractor := boxes.New(fbWidth, fbHeight, backgroundLabel)
	extractor.SetBoxType(boxType)

	// The pipeline skips frames with no subscribers, so the HUD counter
	// doubles as the demo's subscription.
	var boxCount int
	cancelSub := extractor.OnBoxes(func(bs []boxes.BoundingBox) {
		boxCount = len(bs)
	})
	defer cancelSub()

	painter := boxes.NewPainter(fbWidth, fbHeight)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Orbit state: the camera circles the origin; zoom animates toward its
	// target with a critically damped spring.
	const (
		zoomMin = 2.0
		zoomMax = 20.0
	)
	angle := 0.0
	zoom, zoomTarget, zoomVel := 6.0, 6.0, 0.0
	zoomSpring := harmonica.NewSpring(harmonica.FPS(*targetFPS), 6.0, 1.0)
	paused := false
	savePNG := false

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				termRenderer = render.NewTerminalRenderer(term, width, height)
				fbWidth, fbHeight = termRenderer.FramebufferSize()
				fb = render.NewFramebuffer(fbWidth, fbHeight)
				idmap = render.NewIDMap(fbWidth, fbHeight)
				camera.SetAspectRatio(float64(fbWidth) / float64(fbHeight))
				extractor = boxes.New(fbWidth, fbHeight, backgroundLabel)
				extractor.SetBoxType(boxType)
				cancelSub()
				cancelSub = extractor.OnBoxes(func(bs []boxes.BoundingBox) {
					boxCount = len(bs)
				})
				painter = boxes.NewPainter(fbWidth, fbHeight)
			case uv.KeyPressEvent:
				switch ev.String() {
				case "esc", "q", "ctrl+c":
					cancel()
				case "b":
					boxType = (boxType + 1) % 3
					extractor.SetBoxType(boxType)
				case " ":
					paused = !paused
				case "p":
					savePNG = true
				case "+", "=":
					zoomTarget = math.Max(zoomMin, zoomTarget-1)
				case "-", "_":
					zoomTarget = math.Min(zoomMax, zoomTarget+1)
				}
			}
		}
	}()

	targetDuration := time.Second / time.Duration(*targetFPS)
	lastFrame := time.Now()

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now
		if dt > 0.1 {
			dt = 0.1
		}

		if !paused {
			angle += *orbitSpeed * dt
		}
		zoom, zoomVel = zoomSpring.Update(zoom, zoomVel, zoomTarget)

		camera.SetPosition(math3d.V3(
			zoom*math.Sin(angle),
			zoom*0.35,
			zoom*math.Cos(angle),
		))
		camera.LookAt(math3d.Zero3())

		// Render the identifier map and extract this frame's boxes.
		idmap.Render(world, camera, backgroundLabel)
		frameBoxes := extractor.ProcessFrame(idmap.Data, world, camera)

		// Visualize: labels as colors, box outlines on top.
		fb.Clear(render.ColorBlack)
		for y := 0; y < fbHeight; y++ {
			for x := 0; x < fbWidth; x++ {
				label := idmap.Data[(y*fbWidth+x)*3+2]
				if label == backgroundLabel {
					continue
				}
				fb.SetPixel(x, y, labelColors[int(label)%len(labelColors)])
			}
		}
		for _, b := range frameBoxes {
			painter.DrawBox(fb, b, camera.ProjectionMatrix(), render.ColorGreen)
		}

		if savePNG {
			savePNG = false
			if err := fb.SavePNG(*pngPath); err != nil {
				log.Err(err).Str("path", *pngPath).Msg("save png failed")
			} else {
				log.Info().Str("path", *pngPath).Int("boxes", boxCount).Msg("frame saved")
			}
		}

		termRenderer.Render(fb)
		if err := termRenderer.Flush(); err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
