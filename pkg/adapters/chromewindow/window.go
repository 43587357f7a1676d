// Package chromewindow provides an interactive display window using chromedp.
//
// The window is a Chrome/Chromium app window showing a single image. Frames
// are pushed as data URLs; key and mouse events come back through a CDP
// runtime binding.
package chromewindow

import (
	"context"
	_ "embed"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html"
	"image"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/inspector"
	"github.com/chromedp/cdproto/page"
	cdpruntime "github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/user/pinframe/pkg/ports"
)

const (
	bindingName = "pinframeEvent"
	showFunc    = "pinframeShow"

	eventBuffer = 256
)

//go:embed page.html
var pageTemplate string

// Window implements ports.Window using chromedp.
type Window struct {
	renderer ports.Renderer
	logger   ports.Logger

	allocCtx    context.Context
	allocCancel context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc

	format  ports.ImageFormat
	quality int

	events    chan ports.InputEvent
	closeOnce sync.Once
}

// New creates a Window. The renderer encodes frames for transport.
func New(renderer ports.Renderer, logger ports.Logger) *Window {
	return &Window{
		renderer: renderer,
		logger:   logger.WithComponent("window"),
		events:   make(chan ports.InputEvent, eventBuffer),
	}
}

// Open launches the browser and loads the viewer page.
func (w *Window) Open(ctx context.Context, opts ports.WindowOptions) error {
	chromePath := ResolveChromePath(opts.ChromePath)
	if chromePath == "" {
		return fmt.Errorf("chrome not found: please install Chrome/Chromium, set CHROME_PATH environment variable, or use --chrome-path option")
	}

	w.format = opts.Format
	w.quality = opts.Quality
	if w.quality <= 0 {
		w.quality = 90
	}

	w.allocCtx, w.allocCancel = chromedp.NewExecAllocator(ctx, allocatorOptions(chromePath, opts)...)
	w.ctx, w.cancel = chromedp.NewContext(w.allocCtx)

	chromedp.ListenTarget(w.ctx, func(ev interface{}) {
		switch e := ev.(type) {
		case *cdpruntime.EventBindingCalled:
			if e.Name != bindingName {
				return
			}
			if input, ok := decodeEvent(e.Payload); ok {
				w.emit(input)
			}
		case *inspector.EventDetached:
			w.emitClosed()
		}
	})

	if err := chromedp.Run(w.ctx,
		cdpruntime.Enable(),
		cdpruntime.AddBinding(bindingName),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, renderPage(opts.Title)).Do(ctx)
		}),
	); err != nil {
		w.Close()
		return fmt.Errorf("open window: %w", err)
	}

	go func() {
		<-w.ctx.Done()
		w.emitClosed()
	}()

	w.logger.Debug("Window opened with %s", chromePath)
	return nil
}

// Show replaces the displayed image.
func (w *Window) Show(img image.Image) error {
	if w.ctx == nil {
		return fmt.Errorf("window not open")
	}

	data, err := w.renderer.EncodeImage(img, w.format, w.quality)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	url := "data:" + w.format.MIMEType() + ";base64," + base64.StdEncoding.EncodeToString(data)

	var ok bool
	if err := chromedp.Run(w.ctx, chromedp.Evaluate(showFunc+"("+strconv.Quote(url)+")", &ok)); err != nil {
		return fmt.Errorf("show frame: %w", err)
	}
	if !ok {
		return fmt.Errorf("show frame: viewer page not ready")
	}
	return nil
}

// Events returns the channel of input events. The channel is never closed;
// an InputClosed event is delivered once when the window goes away.
func (w *Window) Events() <-chan ports.InputEvent {
	return w.events
}

// Close shuts down the browser.
func (w *Window) Close() error {
	if w.cancel != nil {
		w.cancel()
	}

	// Give Chrome a moment to shut down gracefully, then force kill
	time.Sleep(100 * time.Millisecond)

	if w.allocCancel != nil {
		w.allocCancel()
	}
	return nil
}

func (w *Window) emit(ev ports.InputEvent) {
	if ev.Kind == ports.InputClosed {
		w.emitClosed()
		return
	}
	select {
	case w.events <- ev:
	default:
		w.logger.Warn("Input queue full, dropping event")
	}
}

func (w *Window) emitClosed() {
	w.closeOnce.Do(func() {
		// Blocking send: the close notification must not be dropped.
		go func() { w.events <- ports.InputEvent{Kind: ports.InputClosed} }()
	})
}

func allocatorOptions(chromePath string, opts ports.WindowOptions) []chromedp.ExecAllocatorOption {
	o := []chromedp.ExecAllocatorOption{
		chromedp.ExecPath(chromePath),
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("metrics-recording-only", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("safebrowsing-disable-auto-update", true),
		chromedp.Flag("app", "about:blank"),
	}

	if opts.Headless {
		o = append(o,
			chromedp.Flag("headless", "new"),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-gpu", true),
		)
	}

	if opts.Width > 0 && opts.Height > 0 {
		o = append(o, chromedp.WindowSize(opts.Width, opts.Height))
	}
	return o
}

func renderPage(title string) string {
	r := strings.NewReplacer(
		"{{TITLE}}", html.EscapeString(title),
		"{{BINDING}}", bindingName,
		"{{SHOW}}", showFunc,
	)
	return r.Replace(pageTemplate)
}

// eventPayload is the JSON the viewer page sends through the binding.
type eventPayload struct {
	Type   string `json:"type"`
	Key    string `json:"key"`
	Button int    `json:"button"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

func decodeEvent(payload string) (ports.InputEvent, bool) {
	var p eventPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return ports.InputEvent{}, false
	}

	switch p.Type {
	case "key":
		if p.Key == "" {
			return ports.InputEvent{}, false
		}
		return ports.InputEvent{Kind: ports.InputKey, Key: p.Key}, true
	case "click":
		var button ports.MouseButton
		switch p.Button {
		case 0:
			button = ports.ButtonPrimary
		case 1:
			button = ports.ButtonMiddle
		case 2:
			button = ports.ButtonSecondary
		default:
			return ports.InputEvent{}, false
		}
		return ports.InputEvent{Kind: ports.InputClick, Button: button, X: p.X, Y: p.Y}, true
	case "closed":
		return ports.InputEvent{Kind: ports.InputClosed}, true
	default:
		return ports.InputEvent{}, false
	}
}

var _ ports.Window = (*Window)(nil)
