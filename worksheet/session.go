package worksheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ByLCY/zitie/layout"
	"github.com/ByLCY/zitie/ocr"
	"github.com/ByLCY/zitie/renderer"
)

// Session holds the state of one generation flow:
//
//	Idle -> Recognizing -> Ready -> Rendering -> Ready
//	           |                        |
//	           +------> Failed <--------+
//
// Every upload or text edit starts a new generation. A recognition that
// returns after a newer generation began is discarded with ErrStale and
// never overwrites the newer text.
type Session struct {
	engine   ocr.Engine
	renderer renderer.Renderer
	logger   *slog.Logger
	language string
	progress func(ocr.Progress)

	mu      sync.Mutex
	status  Status
	gen     uint64
	cancel  context.CancelFunc
	text    string
	hasText bool
	layout  *layout.WorksheetLayout
	err     error
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the structured logger; the default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLanguage sets the OCR language hint, default ocr.DefaultLanguage.
func WithLanguage(lang string) Option {
	return func(s *Session) {
		if lang != "" {
			s.language = lang
		}
	}
}

// WithProgress forwards OCR progress notifications to fn.
func WithProgress(fn func(ocr.Progress)) Option {
	return func(s *Session) { s.progress = fn }
}

// NewSession creates an idle session. engine may be nil when text is only
// ever supplied through SetText.
func NewSession(engine ocr.Engine, r renderer.Renderer, opts ...Option) *Session {
	s := &Session{
		engine:   engine,
		renderer: r,
		logger:   slog.Default(),
		language: ocr.DefaultLanguage,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Status returns the current state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Text returns the current text and whether there is any.
func (s *Session) Text() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text, s.hasText
}

// Current returns the last computed layout, or nil.
func (s *Session) Current() *layout.WorksheetLayout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layout
}

// Err returns the error that moved the session to Failed, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Recognize runs OCR on image and, unless a newer request superseded it,
// stores the recognized text. Starting a recognition cancels the previous
// in-flight one.
func (s *Session) Recognize(ctx context.Context, image []byte, opts ...ocr.InputOption) (string, error) {
	if s.engine == nil {
		return "", &StageError{Stage: StageRecognize, Err: errors.New("未配置文字识别引擎")}
	}
	s.mu.Lock()
	if s.status == StatusRendering {
		s.mu.Unlock()
		return "", ErrBusy
	}
	gen := s.begin()
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.status = StatusRecognizing
	s.mu.Unlock()
	defer cancel()

	id := fmt.Sprintf("upload-%d", gen)
	logger := s.logger.With("input", id, "engine", s.engine.Name())
	logger.Info("开始识别", "bytes", len(image), "language", s.language)

	base := []ocr.InputOption{
		ocr.WithLanguages(s.language),
		ocr.WithProgress(func(p ocr.Progress) {
			logger.Debug("识别进度", "status", p.Status, "progress", p.Progress)
			if s.progress != nil {
				s.progress(p)
			}
		}),
	}
	var res ocr.Result
	in, err := ocr.NewInput(id, image, append(base, opts...)...)
	if err == nil {
		res, err = s.engine.Recognize(ctx, in)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		logger.Debug("丢弃过期的识别结果")
		return "", ErrStale
	}
	s.cancel = nil
	if err != nil {
		var re *ocr.RecognitionError
		if !errors.As(err, &re) {
			err = ocr.NewRecognitionError(s.engine.Name(), id, err)
		}
		s.text, s.hasText = "", false
		s.fail(&StageError{Stage: StageRecognize, Err: err})
		logger.Error("识别失败", "error", err)
		return "", s.err
	}
	s.text, s.hasText = res.Text, true
	s.status = StatusReady
	logger.Info("识别完成", "chars", len([]rune(res.Text)), "confidence", res.Confidence)
	return res.Text, nil
}

// SetText replaces the current text, e.g. after the user edited the
// recognized result. Any in-flight recognition becomes stale.
func (s *Session) SetText(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusRendering {
		return ErrBusy
	}
	s.begin()
	s.text, s.hasText = text, true
	s.status = StatusReady
	return nil
}

// Layout lays out the current text with the settings in req; req.Text is
// ignored.
func (s *Session) Layout(req Request) (*layout.WorksheetLayout, error) {
	s.mu.Lock()
	if s.status == StatusRecognizing || s.status == StatusRendering {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	if !s.hasText {
		s.mu.Unlock()
		return nil, ErrNotReady
	}
	text, gen := s.text, s.gen
	s.mu.Unlock()

	ws, err := Build(req.WithText(text))

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return nil, ErrStale
	}
	if err != nil {
		// 旧布局对应旧配置，不能再被渲染
		s.layout = nil
		s.fail(err)
		s.logger.Error("布局计算失败", "error", err)
		return nil, err
	}
	s.layout = ws
	s.status = StatusReady
	s.err = nil
	s.logger.Info("布局完成", "pages", len(ws.Pages), "cells", ws.CellCount(),
		"cellsPerRow", ws.CellsPerRow, "rowsPerPage", ws.RowsPerPage)
	return ws, nil
}

// Render hands the current layout to the renderer. An empty layout has
// nothing to render and returns (nil, nil). On failure the layout is kept
// so Render can be retried without recomputing it.
func (s *Session) Render(meta renderer.Meta) ([]byte, error) {
	s.mu.Lock()
	if s.status == StatusRecognizing || s.status == StatusRendering {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	ws := s.layout
	if ws == nil {
		s.mu.Unlock()
		return nil, ErrNotReady
	}
	if len(ws.Pages) == 0 {
		s.mu.Unlock()
		s.logger.Info("没有可渲染的内容")
		return nil, nil
	}
	if s.renderer == nil {
		s.mu.Unlock()
		return nil, &StageError{Stage: StageRender, Err: errors.New("未配置渲染器")}
	}
	s.status = StatusRendering
	s.mu.Unlock()

	data, err := s.renderer.Render(ws, meta)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		var re *renderer.RenderError
		if !errors.As(err, &re) {
			err = &renderer.RenderError{Page: -1, Err: err}
		}
		s.fail(&StageError{Stage: StageRender, Err: err})
		s.logger.Error("渲染失败", "error", err)
		return nil, s.err
	}
	s.status = StatusReady
	s.err = nil
	s.logger.Info("渲染完成", "pages", len(ws.Pages), "bytes", len(data))
	return data, nil
}

// Generate sets text, lays it out and renders it in one call.
func (s *Session) Generate(req Request) ([]byte, *layout.WorksheetLayout, error) {
	if err := s.SetText(req.Text); err != nil {
		return nil, nil, err
	}
	ws, err := s.Layout(req)
	if err != nil {
		return nil, nil, err
	}
	data, err := s.Render(req.Meta)
	if err != nil {
		return nil, ws, err
	}
	return data, ws, nil
}

// begin starts a new generation and cancels in-flight work. Caller holds mu.
func (s *Session) begin() uint64 {
	s.gen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.layout = nil
	s.err = nil
	return s.gen
}

// fail records err and moves to Failed. Caller holds mu.
func (s *Session) fail(err error) {
	s.err = err
	s.status = StatusFailed
}
