package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"apula/server/internal/config"
	"apula/server/internal/httpapi"
	"apula/server/internal/mailer"
)

var (
	logLevel = new(slog.LevelVar)

	loadConfig     = config.Load
	newSMTP        = mailer.NewSMTP
	listenAndServe = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownServer = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		slog.Error("server error", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logLevel.Set(cfg.Level())

	transport, err := newTransport(cfg, logger)
	if err != nil {
		return fmt.Errorf("init mail transport: %w", err)
	}

	api := httpapi.New(transport, buildSettings(cfg), logger)

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	srv := buildServer(addr, api.Handler(), cfg.SendTimeout)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", slog.String("addr", "http://"+addr), slog.String("mail_driver", cfg.MailDriver))
		if err := listenAndServe(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := shutdownServer(srv, shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newTransport(cfg config.Config, logger *slog.Logger) (mailer.Transport, error) {
	if cfg.MailDriver == config.DriverLog {
		return &mailer.LogTransport{Logger: logger}, nil
	}
	t, err := newSMTP(mailer.SMTPConfig{
		Host:    cfg.SMTPHost,
		Port:    cfg.SMTPPort,
		User:    cfg.EmailUser,
		Pass:    cfg.EmailPass,
		Timeout: cfg.SendTimeout,
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func buildSettings(cfg config.Config) httpapi.Settings {
	return httpapi.Settings{
		Sender:      cfg.EmailUser,
		SendTimeout: cfg.SendTimeout,
	}
}

// The write deadline must outlast a full send attempt.
func buildServer(addr string, handler http.Handler, sendTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: sendTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
