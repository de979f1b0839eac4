package calculator

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/calcdesk/handler"
	calc "github.com/dmitrymomot/calcdesk/pkg/calculator"
	"github.com/dmitrymomot/calcdesk/pkg/display"
	"github.com/dmitrymomot/calcdesk/pkg/keypad"
	"github.com/dmitrymomot/calcdesk/pkg/logger"
	"github.com/dmitrymomot/calcdesk/pkg/ratelimiter"
	"github.com/dmitrymomot/calcdesk/pkg/session"
)

// Service serves the calculator page, its input endpoint and the frame
// stream for the caller's session.
type Service struct {
	cfg          Config
	sessions     *session.Manager
	desks        *Registry
	views        *Views
	errorHandler handler.ErrorHandler[handler.Context]
	limiter      PressLimiter
	log          *slog.Logger
}

// PressLimiter caps input events per session.
type PressLimiter interface {
	Allow(ctx context.Context, key string) (*ratelimiter.Result, error)
}

// ServiceOption configures optional Service behavior.
type ServiceOption func(*Service)

// WithPressLimiter limits POST /press per session. Denied presses answer
// 429 with Retry-After.
func WithPressLimiter(l PressLimiter) ServiceOption {
	return func(s *Service) {
		s.limiter = l
	}
}

// NewService wires the service. Nil views fall back to DefaultViews and a
// nil error handler to one rendering those views.
func NewService(
	cfg Config,
	sessions *session.Manager,
	desks *Registry,
	views *Views,
	errorHandler handler.ErrorHandler[handler.Context],
	log *slog.Logger,
	opts ...ServiceOption,
) *Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if views == nil {
		views = DefaultViews()
	}
	if errorHandler == nil {
		errorHandler = handler.NewErrorHandler(log, handler.ErrorHandlerConfig{
			ErrorPage:  views.ErrorPage,
			ErrorToast: views.Toast,
		})
	}
	cfg.BasePath = strings.TrimSuffix(cfg.BasePath, "/")
	s := &Service{
		cfg:          cfg,
		sessions:     sessions,
		desks:        desks,
		views:        views,
		errorHandler: errorHandler,
		log:          log.With(logger.Component("calculator")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle returns the service routes. Every route runs with a session.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(s.sessions.EnsureSession)

	r.Get("/", handler.Wrap(s.page,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Get("/stream", handler.Wrap(s.stream,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Get("/state", handler.Wrap(s.state,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Post("/press", handler.Wrap(s.press,
		handler.WithBinders[handler.Context, PressRequest](handler.Signals()),
		handler.WithErrorHandler[handler.Context, PressRequest](s.errorHandler),
	))

	return r
}

// PressRequest carries one input event. Buttons send number or action,
// the keyboard sends key.
type PressRequest struct {
	Key    string `json:"key"`
	Action string `json:"action"`
	Number string `json:"number"`
}

// Resolve maps the request to a keypad action.
func (p PressRequest) Resolve() (keypad.Action, bool) {
	if p.Number != "" || p.Action != "" {
		return keypad.FromButton(p.Number, p.Action)
	}
	return keypad.FromKey(p.Key)
}

func (s *Service) page(ctx handler.Context, _ struct{}) handler.Response {
	var frame display.Frame
	err := s.onDesk(ctx, func(desk *Desk, st *sessionState) (err error) {
		frame, err = desk.Open(ctx, st)
		return err
	})
	if err != nil {
		return handler.Fail(err)
	}
	return handler.Templ(s.views.Page(PageParams{
		Title:       s.cfg.Title,
		DatastarURL: s.cfg.DatastarURL,
		BasePath:    s.cfg.BasePath,
		Layout:      keypad.Layout(),
		Frame:       frame,
		Display:     s.views.Display,
	}))
}

func (s *Service) press(ctx handler.Context, req PressRequest) handler.Response {
	action, ok := req.Resolve()
	if !ok {
		return handler.Empty()
	}
	sess, ok := session.FromContext(ctx)
	if !ok {
		return handler.Fail(errors.Join(handler.ErrInternalServerError, ErrNoSession))
	}
	if err := s.allow(ctx, sess.ID.String()); err != nil {
		return handler.Fail(err)
	}

	var frame display.Frame
	err := s.onDesk(ctx, func(desk *Desk, st *sessionState) (err error) {
		frame, err = desk.Press(ctx, action, st)
		return err
	})
	if err != nil {
		return handler.Fail(err)
	}
	return handler.Templ(s.views.Display(frame), handler.WithTarget("#display"))
}

func (s *Service) state(ctx handler.Context, _ struct{}) handler.Response {
	var (
		frame display.Frame
		phase calc.Phase
	)
	err := s.onDesk(ctx, func(desk *Desk, st *sessionState) (err error) {
		frame, phase, err = desk.Snapshot(ctx, st)
		return err
	})
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(frame, handler.WithJSONMeta(map[string]any{"phase": phase}))
}

func (s *Service) stream(ctx handler.Context, _ struct{}) handler.Response {
	desk, _, err := s.desk(ctx)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.SSE(func(stream handler.StreamContext) error {
		sub := desk.Subscribe(stream)
		defer sub.Close()

		for msg := range sub.Receive(stream) {
			if err := s.sendFrame(stream, msg.Data); err != nil {
				if stream.Err() != nil {
					return nil
				}
				return err
			}
		}
		s.log.DebugContext(stream, "stream closed")
		return nil
	})
}

func (s *Service) sendFrame(stream handler.StreamContext, f display.Frame) error {
	if err := stream.SendComponent(s.views.Display(f), handler.WithTarget("#display")); err != nil {
		return err
	}
	return stream.SendSignal("pressed", string(f.Pressed))
}

func (s *Service) allow(ctx handler.Context, key string) error {
	if s.limiter == nil {
		return nil
	}
	res, err := s.limiter.Allow(ctx, key)
	if err != nil {
		return errors.Join(handler.ErrServiceUnavailable, err)
	}
	ratelimiter.SetHeaders(ctx.ResponseWriter().Header(), res)
	if !res.Allowed() {
		s.log.WarnContext(ctx, "press rate limited", logger.Duration(res.RetryAfter()))
		return handler.ErrTooManyRequests
	}
	return nil
}

// onDesk runs op on the session's desk. A desk evicted between lookup and
// op is fetched again once; its state is reloaded from the session.
func (s *Service) onDesk(ctx handler.Context, op func(*Desk, *sessionState) error) error {
	for attempt := 0; ; attempt++ {
		desk, st, err := s.desk(ctx)
		if err != nil {
			return err
		}
		err = op(desk, st)
		if !errors.Is(err, ErrDeskClosed) {
			return err
		}
		if attempt > 0 {
			return errors.Join(handler.ErrServiceUnavailable, err)
		}
	}
}

func (s *Service) desk(ctx handler.Context) (*Desk, *sessionState, error) {
	sess, ok := session.FromContext(ctx)
	if !ok {
		return nil, nil, errors.Join(handler.ErrInternalServerError, ErrNoSession)
	}
	desk, err := s.desks.Desk(sess.ID.String())
	if err != nil {
		return nil, nil, errors.Join(handler.ErrServiceUnavailable, err)
	}
	return desk, &sessionState{mgr: s.sessions, sess: sess, w: ctx.ResponseWriter()}, nil
}
