// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command vrdemo exercises the overlay engine against the software
// graphics backend: it creates a few overlays, submits generated
// textures, installs a cube-map skybox, and prints the composition
// layer list a renderer would receive each frame.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/gogpu/vrbridge"
	_ "github.com/gogpu/vrbridge/backend/software"
	"github.com/gogpu/vrbridge/vr"
	"github.com/gogpu/vrbridge/xr"
)

func main() {
	var (
		count   = flag.Int("overlays", 3, "number of overlays to create")
		size    = flag.Int("size", 256, "texture size in pixels")
		skybox  = flag.Bool("skybox", true, "install a six-face skybox")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	vrbridge.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	man := vrbridge.NewOverlayManager(xr.Capabilities{
		CylinderLayers: true,
		ColorScaleBias: true,
		EquirectLayers: true,
	})
	sd := vrbridge.NewSessionData(&demoSession{})
	defer sd.Close()

	for i := 0; i < *count; i++ {
		key := fmt.Sprintf("demo.overlay.%d", i)
		h, status := man.CreateOverlay(key, fmt.Sprintf("Demo %d", i))
		if status != vr.OverlayErrorNone {
			log.Fatalf("CreateOverlay: %v", status)
		}

		man.SetOverlayWidth(h, 1.0+0.5*float32(i))
		man.SetOverlaySortOrder(h, uint32(*count-i))
		if i%2 == 1 {
			man.SetOverlayCurvature(h, 0.3)
		}
		man.ShowOverlay(h)

		tex := vr.Texture{
			Handle: gradient(*size, *size, float64(i)/float64(*count)),
			Type:   vr.TextureTypeSoftware,
		}
		if status := man.SetOverlayTexture(h, sd, &tex); status != vr.OverlayErrorNone {
			log.Fatalf("SetOverlayTexture: %v", status)
		}
	}

	if *skybox {
		faces := make([]vr.Texture, 6)
		for i := range faces {
			faces[i] = vr.Texture{
				Handle: gradient(64, 64, float64(i)/6),
				Type:   vr.TextureTypeSoftware,
			}
		}
		if err := man.SetSkybox(sd, faces); err != nil {
			log.Fatalf("SetSkybox: %v", err)
		}
	}

	layers := man.Layers(sd, *skybox)
	fmt.Printf("composition layers (%d):\n", len(layers))
	for i, layer := range layers {
		fmt.Printf("  %2d: %s rect=%dx%d space=%d\n",
			i, shapeName(layer.Shape),
			layer.SubImage.ImageRect.Extent.Width,
			layer.SubImage.ImageRect.Extent.Height,
			layer.Space)
	}
}

func shapeName(s xr.LayerShape) string {
	switch shape := s.(type) {
	case xr.LayerQuad:
		return fmt.Sprintf("quad   %.2fx%.2fm", shape.Size.Width, shape.Size.Height)
	case xr.LayerCylinder:
		return fmt.Sprintf("cyl    r=%.2fm a=%.2frad", shape.Radius, shape.CentralAngle)
	case xr.LayerEquirect:
		return fmt.Sprintf("sphere r=%.0fm", shape.Radius)
	}
	return "unknown"
}

// gradient renders a hue-shifted diagonal gradient test texture.
func gradient(w, h int, shift float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := (float64(x) + float64(y)) / float64(w+h)
			img.Set(x, y, color.RGBA{
				R: uint8(255 * (0.5 + 0.5*math.Sin(2*math.Pi*(t+shift)))),
				G: uint8(255 * t),
				B: uint8(255 * (1 - t)),
				A: 255,
			})
		}
	}
	return img
}

// demoSession is a minimal in-process session: swapchains are plain
// image rings and every wait completes immediately.
type demoSession struct{}

func (demoSession) CurrentOrigin() vr.TrackingOrigin { return vr.TrackingOriginStanding }

func (demoSession) SpaceForOrigin(origin vr.TrackingOrigin) xr.Space {
	return xr.Space(origin) + 1
}

func (demoSession) NegotiateFormat(info *xr.SwapchainCreateInfo) {}

func (demoSession) CreateSwapchain(info *xr.SwapchainCreateInfo) (xr.Swapchain, error) {
	images := make([]xr.Image, 3)
	for i := range images {
		images[i] = image.NewRGBA(image.Rect(0, 0, int(info.Width), int(info.Height)))
	}
	return &demoSwapchain{images: images}, nil
}

type demoSwapchain struct {
	images []xr.Image
	next   uint32
}

func (s *demoSwapchain) EnumerateImages() ([]xr.Image, error) { return s.images, nil }

func (s *demoSwapchain) Acquire() (uint32, error) {
	idx := s.next % uint32(len(s.images))
	s.next++
	return idx, nil
}

func (s *demoSwapchain) Wait(timeout time.Duration) error { return nil }
func (s *demoSwapchain) Release() error                   { return nil }
func (s *demoSwapchain) Destroy() error                   { return nil }
