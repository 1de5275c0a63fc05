package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/selivandex/stock-forecaster/internal/adapters/config"
	"github.com/selivandex/stock-forecaster/internal/predictor"
	"github.com/selivandex/stock-forecaster/pkg/logger"
	"github.com/selivandex/stock-forecaster/pkg/models"
)

// Server exposes the forecasting facade over HTTP
type Server struct {
	cfg  *config.Config
	svc  *predictor.Service
	echo *echo.Echo
}

type errorResponse struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}

// New creates the HTTP server and registers routes
func New(cfg *config.Config, svc *predictor.Service) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Use(middleware.Recover())

	s := &Server{cfg: cfg, svc: svc, echo: e}

	e.GET("/health", s.health)

	api := e.Group("/api/v1")
	api.GET("/forecast/:symbol", s.forecast)
	api.GET("/news-impact/:symbol", s.newsImpact)
	api.GET("/scenarios/:symbol", s.scenarios)

	return s
}

// Start blocks serving HTTP until Shutdown is called
func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) forecast(c echo.Context) error {
	symbol := c.Param("symbol")
	days := s.intQuery(c, "days", s.cfg.Forecast.DefaultHorizonDays)
	if days > s.cfg.Forecast.MaxHorizonDays {
		days = s.cfg.Forecast.MaxHorizonDays
	}
	includeNews := s.boolQuery(c, "include_news", true)

	result, err := s.svc.Predict(c.Request().Context(), symbol, days, includeNews)
	if err != nil {
		return s.handleError(c, symbol, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) newsImpact(c echo.Context) error {
	symbol := c.Param("symbol")
	daysBack := s.intQuery(c, "days_back", s.cfg.Forecast.MinLookbackDays)

	result, err := s.svc.AnalyzeNewsImpact(c.Request().Context(), symbol, daysBack)
	if err != nil {
		return s.handleError(c, symbol, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) scenarios(c echo.Context) error {
	symbol := c.Param("symbol")
	days := s.intQuery(c, "days", s.cfg.Forecast.DefaultHorizonDays)
	if days > s.cfg.Forecast.MaxHorizonDays {
		days = s.cfg.Forecast.MaxHorizonDays
	}

	result, err := s.svc.CreateSentimentScenarios(c.Request().Context(), symbol, days)
	if err != nil {
		return s.handleError(c, symbol, err)
	}
	return c.JSON(http.StatusOK, result)
}

// handleError maps the error taxonomy onto structured responses; the
// forecasting endpoints never leak a raw error chain
func (s *Server) handleError(c echo.Context, symbol string, err error) error {
	logger.Warn("request failed",
		zap.String("symbol", symbol),
		zap.String("path", c.Path()),
		zap.Error(err),
	)

	switch {
	case errors.Is(err, models.ErrDataUnavailable):
		return c.JSON(http.StatusNotFound, errorResponse{
			Error:  "no price data available for " + symbol,
			Status: "error",
		})
	case errors.Is(err, models.ErrSentimentUnavailable):
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{
			Error:  "no sentiment data available for " + symbol,
			Status: "error",
		})
	default:
		return c.JSON(http.StatusBadGateway, errorResponse{
			Error:  "analysis failed for " + symbol,
			Status: "error",
		})
	}
}

func (s *Server) intQuery(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func (s *Server) boolQuery(c echo.Context, name string, fallback bool) bool {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}
