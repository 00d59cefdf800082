package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/rezzedai/bourlier-site/internal/content"
	"github.com/rezzedai/bourlier-site/internal/schedule"
	"github.com/rezzedai/bourlier-site/internal/tui"
	"github.com/rezzedai/bourlier-site/internal/visitor/sqlitestore"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	return rootCommand().ExecuteContext(ctx)
}

func rootCommand() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:          "bourlier-site",
		Short:        "Personal site server with an animated single page",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			level, err := parseLevel(cfg.LogLevel, verbose)
			if err != nil {
				return err
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(withConfig(ctx, cfg))
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(serveCommand())
	root.AddCommand(previewCommand())
	root.AddCommand(checkCommand())
	return root
}

type configKey struct{}

func withConfig(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

func configFromContext(ctx context.Context) Config {
	cfg, _ := ctx.Value(configKey{}).(Config)
	return cfg
}

// loadContent returns the content at path, or the embedded content when
// path is empty.
func loadContent(path string) (*content.Content, error) {
	if path == "" {
		return content.Default()
	}
	return content.Load(path)
}

func serveCommand() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)
			if port != "" {
				cfg.Port = port
			}
			return serve(ctx, cfg, loggerFromContext(ctx))
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
	return cmd
}

func serve(ctx context.Context, cfg Config, logger *log.Logger) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := loadContent(cfg.ContentPath)
	if err != nil {
		return err
	}
	for _, w := range c.Validate() {
		logger.Debug("content mismatch", "field", w.Field, "msg", w.Message)
	}

	db, err := sqlitestore.Open(ctx, cfg.DatabasePath, cfg.HashSalt, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if !cfg.SMTP.Configured() {
		logger.Warn("SMTP is not configured, the contact form will report errors")
	}
	s, err := newServer(cfg, c, db, newSMTPMailer(cfg.SMTP), logger)
	if err != nil {
		return err
	}
	handler, err := s.routes()
	if err != nil {
		return err
	}

	loopCtx, stopLoop := context.WithCancel(ctx)
	loop := schedule.NewLoop()
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		loop.Run(loopCtx)
	}()
	stopCleanup := s.runCleanup(loopCtx, loop)
	defer func() {
		stopLoop()
		<-loopDone
		stopCleanup()
	}()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr, "admin", "/admin/login")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func previewCommand() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview the page in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if path == "" {
				path = configFromContext(ctx).ContentPath
			}
			c, err := loadContent(path)
			if err != nil {
				return err
			}
			return tui.Run(ctx, c, loggerFromContext(ctx))
		},
	}
	cmd.Flags().StringVarP(&path, "content", "c", "", "content file (default: embedded)")
	return cmd
}

func checkCommand() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "check [content.yaml]",
		Short: "Validate a content file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			path := configFromContext(ctx).ContentPath
			if len(args) == 1 {
				path = args[0]
			}
			c, err := loadContent(path)
			if err != nil {
				return err
			}
			warnings := c.Validate()
			for _, w := range warnings {
				logger.Warn(w.Message, "field", w.Field)
			}
			if strict && len(warnings) > 0 {
				return fmt.Errorf("%d content warnings", len(warnings))
			}
			logger.Info("content ok", "sections", len(c.Sections), "metrics", len(c.Hero.Metrics), "warnings", len(warnings))
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when there are warnings")
	return cmd
}
