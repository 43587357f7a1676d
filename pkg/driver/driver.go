// Package driver runs an annotation batch: it walks the videos of an input
// directory, loads each one into the session, turns window input into session
// events, renders the overlay and persists annotation records.
package driver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/user/pinframe/pkg/annotation"
	"github.com/user/pinframe/pkg/keymap"
	"github.com/user/pinframe/pkg/overlay"
	"github.com/user/pinframe/pkg/ports"
	"github.com/user/pinframe/pkg/scan"
	"github.com/user/pinframe/pkg/session"
)

// ErrLocked is returned when another process holds the record directory lock.
var ErrLocked = errors.New("driver: record directory is locked by another process")

// Options configures a Controller.
type Options struct {
	// Extensions selects the videos of the input directory.
	Extensions []string

	// OutputDir is the record directory, relative to the input directory
	// unless absolute.
	OutputDir string

	Window ports.WindowOptions
}

// Deps are the collaborators of a Controller.
type Deps struct {
	FileSystem ports.FileSystem
	Session    *session.Session
	Window     ports.Window
	Composer   *overlay.Composer
	Keymap     *keymap.Keymap
	Logger     ports.Logger

	// Lock returns the lock guarding a record directory. Nil disables locking.
	Lock func(dir string) ports.DirLocker
}

// Controller owns the window and drives the session through a batch.
type Controller struct {
	fs       ports.FileSystem
	session  *session.Session
	window   ports.Window
	composer *overlay.Composer
	keys     *keymap.Keymap
	lock     func(dir string) ports.DirLocker
	logger   ports.Logger
	opts     Options

	// view is the last composed image; clicks are mapped through it.
	view overlay.Result

	// saved is the record of the loaded video as last read or written.
	saved annotation.Map
}

// New creates a Controller.
func New(deps Deps, opts Options) *Controller {
	keys := deps.Keymap
	if keys == nil {
		keys = keymap.Default()
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "annotations"
	}
	return &Controller{
		fs:       deps.FileSystem,
		session:  deps.Session,
		window:   deps.Window,
		composer: deps.Composer,
		keys:     keys,
		lock:     deps.Lock,
		logger:   deps.Logger.WithComponent("driver"),
		opts:     opts,
	}
}

// RecordDir returns the record directory for an input directory.
func (c *Controller) RecordDir(inputDir string) string {
	if filepath.IsAbs(c.opts.OutputDir) {
		return c.opts.OutputDir
	}
	return filepath.Join(inputDir, c.opts.OutputDir)
}

// action is what ends the annotation of one video.
type action int

const (
	actionNone action = iota
	actionCommit
	actionBack
	actionQuit
)

// Run annotates the videos of inputDir until the end of the list is reached
// or the user quits. A missing or non-directory input yields a
// *scan.DirectoryError before any window is opened.
func (c *Controller) Run(ctx context.Context, inputDir string) (Result, error) {
	videos, err := scan.Discover(c.fs, inputDir, c.opts.Extensions)
	if err != nil {
		return Result{}, err
	}

	recordDir := c.RecordDir(inputDir)
	result := Result{
		InputDir:  inputDir,
		RecordDir: recordDir,
		Videos:    make([]VideoResult, len(videos)),
	}
	for i, v := range videos {
		result.Videos[i] = VideoResult{Video: v}
	}

	if len(videos) == 0 {
		c.logger.Warn("No videos found in %s", inputDir)
		return result, nil
	}
	c.logger.Info("Found %d videos in %s", len(videos), inputDir)

	store := annotation.NewStore(c.fs, recordDir)
	if err := store.Prepare(); err != nil {
		return result, err
	}

	paths := make([]string, len(videos))
	for i, v := range videos {
		paths[i] = v.Path
	}
	for _, stem := range store.Claim(paths) {
		c.logger.Warn("Videos named %s differ only by extension, records keep the extension", stem)
	}

	if c.lock != nil {
		lock := c.lock(recordDir)
		ok, err := lock.TryLock()
		if err != nil {
			return result, err
		}
		if !ok {
			return result, ErrLocked
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				c.logger.Warn("Failed to release lock: %v", err)
			}
		}()
	}

	if err := c.window.Open(ctx, c.opts.Window); err != nil {
		return result, fmt.Errorf("open window: %w", err)
	}
	defer c.window.Close()

	failed := make(map[int]bool)
	forward := true
	idx := 0

	for idx < len(videos) {
		if idx < 0 {
			// Every earlier video failed; resume forward.
			idx, forward = 0, true
			continue
		}

		if failed[idx] {
			idx = step(idx, forward)
			continue
		}

		vr := &result.Videos[idx]
		ok, err := c.open(ctx, store, vr)
		if err != nil {
			return result, err
		}
		if !ok {
			failed[idx] = true
			idx = step(idx, forward)
			continue
		}

		act, err := c.annotate(ctx, store, vr)
		if err != nil {
			return result, err
		}

		switch act {
		case actionCommit:
			idx, forward = idx+1, true
		case actionBack:
			if idx > 0 {
				idx--
			}
			forward = false
		case actionQuit:
			if vr.Status != StatusCommitted || !c.session.ExportAnnotations().Equal(c.saved) {
				vr.Status = StatusUnsaved
			}
			result.Quit = true
			c.logger.Info("Quit without saving %s", vr.Video.Name)
			return result, nil
		}
	}

	c.logger.Info("Reached the end of the video list")
	return result, nil
}

func step(idx int, forward bool) int {
	if forward {
		return idx + 1
	}
	return idx - 1
}

// open loads a video and its saved record into the session. It returns false
// when the video has to be skipped.
func (c *Controller) open(ctx context.Context, store *annotation.Store, vr *VideoResult) (bool, error) {
	name := vr.Video.Name

	initial, found, err := store.Load(vr.Video.Path)
	if err != nil {
		var serr *annotation.SerializationError
		if errors.As(err, &serr) {
			c.logger.Error("Skipping %s: malformed record %s: %v", name, serr.Path, serr.Err)
		} else {
			c.logger.Error("Skipping %s: %v", name, err)
		}
		vr.Status = StatusSkipped
		vr.Reason = err.Error()
		return false, nil
	}

	if err := c.session.Load(ctx, vr.Video.Path, initial); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		c.logger.Warn("Skipping %s: %v", name, err)
		vr.Status = StatusSkipped
		vr.Reason = err.Error()
		return false, nil
	}

	c.saved = initial
	vr.Frames = c.session.FrameCount()
	if found {
		c.logger.Info("Opened %s (%d frames, %d annotated)", name, vr.Frames, len(initial))
	} else {
		c.logger.Info("Opened %s (%d frames)", name, vr.Frames)
	}
	return true, nil
}

// annotate runs the event loop for the loaded video.
func (c *Controller) annotate(ctx context.Context, store *annotation.Store, vr *VideoResult) (action, error) {
	if err := c.render(); err != nil {
		return actionNone, err
	}

	events := c.window.Events()
	for {
		select {
		case <-ctx.Done():
			return actionNone, ctx.Err()
		case ev := <-events:
			act, changed := c.handle(ev)
			switch act {
			case actionCommit, actionBack:
				if err := c.save(store, vr); err != nil {
					return actionNone, err
				}
				return act, nil
			case actionQuit:
				return act, nil
			}
			if changed {
				if err := c.render(); err != nil {
					return actionNone, err
				}
			}
		}
	}
}

// handle maps one input event to a session event or a batch action.
func (c *Controller) handle(ev ports.InputEvent) (action, bool) {
	switch ev.Kind {
	case ports.InputClosed:
		return actionQuit, false

	case ports.InputKey:
		switch c.keys.Resolve(ev.Key) {
		case keymap.CommandPreviousFrame:
			return actionNone, c.session.Apply(session.Event{Kind: session.EventStepBackward})
		case keymap.CommandNextFrame:
			return actionNone, c.session.Apply(session.Event{Kind: session.EventStepForward})
		case keymap.CommandDecreaseJump:
			return actionNone, c.session.Apply(session.Event{Kind: session.EventDecreaseJump})
		case keymap.CommandIncreaseJump:
			return actionNone, c.session.Apply(session.Event{Kind: session.EventIncreaseJump})
		case keymap.CommandCommit:
			return actionCommit, false
		case keymap.CommandGoBack:
			return actionBack, false
		case keymap.CommandQuit:
			return actionQuit, false
		}

	case ports.InputClick:
		cursor := c.session.Cursor()
		switch ev.Button {
		case ports.ButtonPrimary:
			x, y := c.view.ToFrame(ev.X, ev.Y)
			return actionNone, c.session.Apply(session.Event{
				Kind:  session.EventSetPoint,
				Frame: cursor,
				Point: annotation.Point{X: x, Y: y},
			})
		case ports.ButtonSecondary:
			return actionNone, c.session.Apply(session.Event{Kind: session.EventClearPoint, Frame: cursor})
		}
	}

	return actionNone, false
}

// render composes the current frame with its overlay and shows it.
func (c *Controller) render() error {
	cursor := c.session.Cursor()
	view, err := c.composer.Compose(overlay.Frame{
		Image:      c.session.CurrentFrame(),
		Name:       c.session.Name(),
		Index:      cursor,
		Count:      c.session.FrameCount(),
		FrameJump:  c.session.FrameJump(),
		Annotation: c.session.ResolveDisplayAnnotation(cursor),
	})
	if err != nil {
		return fmt.Errorf("render %s: %w", c.session.Name(), err)
	}
	c.view = view

	if err := c.window.Show(view.Image); err != nil {
		return fmt.Errorf("show %s: %w", c.session.Name(), err)
	}
	return nil
}

// save persists the session's annotations to the record of the loaded video.
func (c *Controller) save(store *annotation.Store, vr *VideoResult) error {
	m := c.session.ExportAnnotations()

	path, err := store.Save(vr.Video.Path, m)
	if err != nil {
		c.logger.Error("Failed to save %s: %v", vr.Video.Name, err)
		return fmt.Errorf("save %s: %w", vr.Video.Name, err)
	}

	c.saved = m
	vr.Status = StatusCommitted
	vr.Reason = ""
	vr.Annotated = len(m)
	vr.RecordPath = path
	c.logger.Info("Saved %d annotations to %s", len(m), path)
	return nil
}
