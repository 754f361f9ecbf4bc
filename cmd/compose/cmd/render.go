package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/compose"
	"github.com/gogpu/compose/asset"
	"github.com/gogpu/compose/export"
	"github.com/gogpu/compose/internal/imageio"
	"github.com/gogpu/compose/qrstamp"
	"github.com/gogpu/compose/scene"
)

var (
	renderPreset     string
	renderFill       string
	renderBackground string
	renderFront      bool
	renderStamps     []string
	renderQR         []string
	renderLoad       string
	renderSave       string
	renderRatio      float64
	renderOut        string
	renderQuality    int
	renderProxy      string
	renderTimeout    time.Duration
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Compose layers and export an image",
	Long: `Build a composition from flags or a saved document and export it.

Stamps are given as ref[@x,y[,scale[,rotation]]] where ref is a file path,
an http(s) URL or a data URL. Coordinates are logical canvas pixels; a stamp
without a placement is centered. QR stamps use the same placement syntax
after the encoded text.

Flags are applied on top of a loaded document, so --load with --stamp adds
stamps to an existing design.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.StringVar(&renderPreset, "preset", string(scene.PresetLandscape), "canvas preset (square, portrait, landscape)")
	f.StringVar(&renderFill, "fill", compose.White.Hex(), "canvas fill color")
	f.StringVar(&renderBackground, "background", "", "background image reference")
	f.BoolVar(&renderFront, "background-front", false, "pin the background above the stamps")
	f.StringArrayVar(&renderStamps, "stamp", nil, "stamp ref[@x,y[,scale[,rotation]]] (repeatable)")
	f.StringArrayVar(&renderQR, "qr", nil, "QR code text[@x,y[,scale[,rotation]]] (repeatable)")
	f.StringVar(&renderLoad, "load", "", "load a saved document")
	f.StringVar(&renderSave, "save", "", "save the composed document")
	f.Float64Var(&renderRatio, "pixel-ratio", export.DefaultPixelRatio, "output pixels per logical pixel")
	f.StringVarP(&renderOut, "out", "o", "out.png", "output file (.png, .jpg)")
	f.IntVar(&renderQuality, "quality", imageio.DefaultJPEGQuality, "JPEG quality")
	f.StringVar(&renderProxy, "proxy", "", "fetch remote images through this proxy endpoint")
	f.DurationVar(&renderTimeout, "timeout", asset.DefaultTimeout, "overall timeout")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, renderTimeout)
	defer cancel()

	format, err := imageio.ParseFormat(filepath.Ext(renderOut))
	if err != nil {
		return fmt.Errorf("output %s: %w", renderOut, err)
	}

	var loaderOpts []asset.Option
	if renderProxy != "" {
		loaderOpts = append(loaderOpts, asset.WithProxy(renderProxy))
	}
	loader := asset.NewLoader(loaderOpts...)

	s, err := buildScene(ctx, cmd, loader)
	if err != nil {
		return err
	}
	if err := waitLayers(ctx, s); err != nil {
		return err
	}

	if renderSave != "" {
		if err := saveDocument(renderSave, s); err != nil {
			return err
		}
	}

	exp := &export.Exporter{
		Scene:      s,
		PixelRatio: renderRatio,
		Settle:     -1,
		Format:     format,
		Quality:    renderQuality,
	}
	res, err := exp.Save(ctx, export.FileSink{Path: renderOut})
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s (%dx%d %s, %d bytes, %d layers)\n",
		renderOut, res.Width, res.Height, res.MIME(), len(res.Data), s.Len())
	return nil
}

func buildScene(ctx context.Context, cmd *cobra.Command, loader *asset.Loader) (*scene.Scene, error) {
	flags := cmd.Flags()

	var s *scene.Scene
	if renderLoad != "" {
		f, err := os.Open(renderLoad)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		s, err = scene.Decode(ctx, f, qrstamp.Resolver(loader))
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", renderLoad, err)
		}
	} else {
		s = scene.New()
	}

	if renderLoad == "" || flags.Changed("preset") {
		p, err := scene.ParsePreset(renderPreset)
		if err != nil {
			return nil, err
		}
		s.SetPreset(p)
	}
	if renderLoad == "" || flags.Changed("fill") {
		fill, err := compose.ParseHex(renderFill)
		if err != nil {
			return nil, err
		}
		s.SetFill(fill)
	}

	if renderBackground != "" {
		s.SetBackground(loader.Load(ctx, renderBackground), displayName(renderBackground))
	}
	if flags.Changed("background-front") {
		s.SetBackgroundInFront(renderFront)
	}

	for _, arg := range renderStamps {
		ref, p, err := parsePlacement(arg)
		if err != nil {
			return nil, err
		}
		id := s.AddStamp(loader.Load(ctx, ref), displayName(ref))
		s.UpdateTransform(id, p)
	}
	for _, arg := range renderQR {
		text, p, err := parsePlacement(arg)
		if err != nil {
			return nil, err
		}
		h, err := qrstamp.Stamp(text, nil)
		if err != nil {
			return nil, err
		}
		id := s.AddStamp(h, "QR")
		s.UpdateTransform(id, p)
	}
	s.ClearSelection()
	return s, nil
}

// waitLayers blocks until every asset-backed layer has finished decoding.
// Layers that failed stay in the scene and are skipped by the renderer.
func waitLayers(ctx context.Context, s *scene.Scene) error {
	for _, l := range s.Layers() {
		h, ok := l.Bitmap.(*asset.Handle)
		if !ok {
			continue
		}
		err := h.Wait(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			compose.Logger().Warn("compose: layer not renderable",
				"layer", string(l.ID), "source", l.Source, "err", err)
		}
	}
	return nil
}

func saveDocument(path string, s *scene.Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := scene.Encode(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func displayName(ref string) string {
	switch {
	case strings.HasPrefix(ref, "data:"):
		return "image"
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		ref = strings.SplitN(ref, "?", 2)[0]
		return ref[strings.LastIndex(ref, "/")+1:]
	}
	return filepath.Base(ref)
}
