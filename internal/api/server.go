package api

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"tweetsense/internal/analyzer"
	"tweetsense/internal/config"
	"tweetsense/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	msgUnknownLabel = "The model returned a label this page does not recognise."
	msgUnavailable  = "The sentiment model is unavailable right now. Please try again."
)

// ModelInfo describes the loaded model for the page header and /health.
type ModelInfo interface {
	Backend() string
	Name() string
}

type Server struct {
	echo      *echo.Echo
	analyzer  *analyzer.Analyzer
	model     ModelInfo
	log       *zap.Logger
	templates *template.Template
}

type PageView struct {
	Model  string
	Input  string
	Result *ResultView
}

type ResultView struct {
	Prompt    string
	Error     string
	Sentiment string
	Icon      string
	Score     string
}

func NewServer(a *analyzer.Analyzer, model ModelInfo, log *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(log))
	e.Use(middleware.Recover())

	tmpl := template.Must(template.ParseFS(templateFS, "templates/*.html"))

	s := &Server{
		echo:      e,
		analyzer:  a,
		model:     model,
		log:       log,
		templates: tmpl,
	}

	s.routes()

	return s
}

func (s *Server) routes() {
	s.echo.GET("/", s.index)
	s.echo.POST("/analyze", s.analyze)
	s.echo.GET("/health", s.health)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

func (s *Server) Start(cfg config.ServerConfig) error {
	s.echo.Server.ReadTimeout = cfg.ReadTimeout
	s.echo.Server.WriteTimeout = cfg.WriteTimeout
	return s.echo.Start(cfg.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) index(c echo.Context) error {
	return s.render(c, http.StatusOK, "index.html", PageView{Model: s.model.Name()})
}

func (s *Server) analyze(c echo.Context) error {
	text := c.FormValue("text")
	status := http.StatusOK

	var result ResultView
	out, err := s.analyzer.Analyze(c.Request().Context(), text)
	switch {
	case errors.Is(err, domain.ErrUnknownLabel):
		status = http.StatusBadGateway
		result.Error = msgUnknownLabel
	case err != nil:
		status = http.StatusBadGateway
		result.Error = msgUnavailable
	case out.Empty():
		result.Prompt = out.Prompt
	default:
		result.Sentiment = out.Sentiment.Text
		result.Icon = out.Sentiment.Icon
		result.Score = out.Score
	}

	// htmx does not swap non-2xx responses.
	if isHTMX(c) {
		return s.render(c, http.StatusOK, "result", &result)
	}

	return s.render(c, status, "index.html", PageView{
		Model:  s.model.Name(),
		Input:  text,
		Result: &result,
	})
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"backend": s.model.Backend(),
		"model":   s.model.Name(),
	})
}

func (s *Server) render(c echo.Context, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.log.Error("render template", zap.String("template", name), zap.Error(err))
		return err
	}
	return c.HTMLBlob(status, buf.Bytes())
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				log.Error("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	})
}
