package hud

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/ebitenui/ebitenui"
	ebuiimage "github.com/ebitenui/ebitenui/image"
	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/assetviewer/ecs"
	"github.com/milk9111/assetviewer/ecs/component"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/gofont/goregular"
)

// statusTicks is how long an event message stays on screen (60 TPS).
const statusTicks = 120

// HUD is the overlay showing the current orientation and a reset button. It
// runs as the last system of the tick so it sees that tick's events.
type HUD struct {
	ui          *ebitenui.UI
	orientation *widget.Text
	fps         *widget.Text
	status      *widget.Text

	onReset        func(w *ecs.World)
	resetRequested bool
	statusLeft     int
}

// New builds the overlay. onReset runs on the update goroutine when the reset
// button is clicked.
func New(title string, onReset func(w *ecs.World)) (*HUD, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("hud: load font: %w", err)
	}
	var face text.Face = &text.GoTextFace{Source: src, Size: 14}

	h := &HUD{onReset: onReset}
	rowData := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionStart})

	h.orientation = widget.NewText(
		widget.TextOpts.Text(FormatOrientation(0, 0), &face, colornames.White),
		widget.TextOpts.WidgetOpts(rowData),
	)
	h.fps = widget.NewText(
		widget.TextOpts.Text(FormatFPS(0), &face, colornames.Lightgray),
		widget.TextOpts.WidgetOpts(rowData),
	)
	h.status = widget.NewText(
		widget.TextOpts.Text("", &face, colornames.Khaki),
		widget.TextOpts.WidgetOpts(rowData),
	)
	resetBtn := widget.NewButton(
		widget.ButtonOpts.Image(theme().Image),
		widget.ButtonOpts.Text("Reset view (R)", &face, &widget.ButtonTextColor{Idle: colornames.White}),
		widget.ButtonOpts.WidgetOpts(rowData, widget.WidgetOpts.MinSize(160, 28)),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
			h.resetRequested = true
		}),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(ebuiimage.NewNineSliceColor(color.NRGBA{A: 160})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	panel.AddChild(widget.NewText(
		widget.TextOpts.Text(title, &face, colornames.White),
		widget.TextOpts.WidgetOpts(rowData),
	))
	panel.AddChild(h.orientation)
	panel.AddChild(h.fps)
	panel.AddChild(resetBtn)
	panel.AddChild(h.status)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	h.ui = &ebitenui.UI{Container: root}
	return h, nil
}

func (h *HUD) Update(w *ecs.World) {
	if _, v, ok := ecs.First(w, component.ViewableComponent.Kind()); ok {
		h.orientation.Label = FormatOrientation(v.Rot, v.Tilt)
	}
	h.fps.Label = FormatFPS(ebiten.ActualFPS())

	for _, evt := range w.Events().Peek() {
		if msg := StatusMessage(evt); msg != "" {
			h.status.Label = msg
			h.statusLeft = statusTicks
		}
	}
	if h.statusLeft > 0 {
		h.statusLeft--
		if h.statusLeft == 0 {
			h.status.Label = ""
		}
	}

	h.ui.Update()
	if h.resetRequested {
		h.resetRequested = false
		if h.onReset != nil {
			h.onReset(w)
		}
	}
}

func (h *HUD) Draw(screen *ebiten.Image) {
	h.ui.Draw(screen)
}

// Hovered reports whether the cursor is over the overlay. Drags starting
// there belong to the HUD, not the model.
func Hovered() bool {
	return ebuiinput.UIHovered
}

func FormatOrientation(rot, tilt float64) string {
	return fmt.Sprintf("rot %6.1f°  tilt %6.1f°", rot*180/math.Pi, tilt*180/math.Pi)
}

func FormatFPS(fps float64) string {
	return fmt.Sprintf("%.0f fps", fps)
}

// StatusMessage describes an event for the status line, or returns "" for
// events the HUD does not report.
func StatusMessage(evt ecs.Event) string {
	switch evt.Type {
	case ecs.EventModelReloaded:
		return fmt.Sprintf("reloaded %v", evt.Data)
	case ecs.EventSettingsReloaded:
		return "settings reloaded"
	case ecs.EventOrientationCopy:
		return "orientation copied"
	case ecs.EventViewReset:
		return "view reset"
	default:
		return ""
	}
}
