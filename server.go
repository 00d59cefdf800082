package main

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rezzedai/bourlier-site/internal/content"
	"github.com/rezzedai/bourlier-site/internal/countup"
	"github.com/rezzedai/bourlier-site/internal/reveal"
	"github.com/rezzedai/bourlier-site/internal/schedule"
	"github.com/rezzedai/bourlier-site/internal/scrollspy"
	"github.com/rezzedai/bourlier-site/internal/visitor"
	"github.com/rezzedai/bourlier-site/internal/visitor/sqlitestore"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	visitorCookie   = "visitor_id"
	cleanupInterval = 24 * time.Hour
)

type server struct {
	cfg        Config
	content    *content.Content
	db         *sqlitestore.Store
	mailer     Mailer
	logger     *log.Logger
	adminToken string
	now        func() time.Time
}

func newServer(cfg Config, c *content.Content, db *sqlitestore.Store, mailer Mailer, logger *log.Logger) (*server, error) {
	token, err := newAdminToken()
	if err != nil {
		return nil, err
	}
	return &server{
		cfg:        cfg,
		content:    c,
		db:         db,
		mailer:     mailer,
		logger:     logger,
		adminToken: token,
		now:        time.Now,
	}, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"markdown": content.Markdown,
		"letters": func(text string) []reveal.Letter {
			return reveal.Letters(text, reveal.DefaultStep)
		},
		"metric":  countup.Parse,
		"stagger": func(i int) int64 { return countup.Stagger(i).Milliseconds() },
		"ms":      func(d time.Duration) int64 { return d.Milliseconds() },
		"menuDelay": func(i int) int64 {
			return scrollspy.MenuDelay(i).Milliseconds()
		},
		// section hands a section layout the page data and its own record.
		"section": func(page any, s content.Section) map[string]any {
			return map[string]any{"page": page, "s": s}
		},
	}
}

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs()).ParseFS(templateFS, "templates/*.html")
}

// routes builds the gin engine.
func (s *server) routes() (*gin.Engine, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger))
	r.SetHTMLTemplate(tmpl)
	r.Static("/static", s.cfg.StaticDir)

	r.Use(s.visitTracking())

	r.GET("/", s.handleIndex)
	r.GET("/healthz", s.handleHealth)
	r.GET("/api/content", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.content)
	})
	r.GET("/memory", s.handleMemory)
	r.GET("/api/greeting", s.handleGreeting)
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{"contact": s.content.Contact})
	})
	r.POST("/contact", s.handleContact)

	s.setupAdminRoutes(r)
	return r, nil
}

// requestLogger logs each request once it has been handled.
func requestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		fields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"took", time.Since(start).Round(time.Microsecond),
		}
		switch {
		case status >= 500:
			logger.Error("request", fields...)
		case strings.HasPrefix(c.Request.URL.Path, "/static/"):
			logger.Debug("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}

// identify returns the visitor id from the cookie, issuing a new one when
// the request has none. returning is true if the cookie was already set.
func (s *server) identify(c *gin.Context) (id string, returning bool) {
	if v, err := c.Cookie(visitorCookie); err == nil {
		if _, err := uuid.Parse(v); err == nil {
			return v, true
		}
	}
	id = uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(visitorCookie, id, 365*24*3600, "/", "", false, true)
	return id, false
}

func (s *server) greet(c *gin.Context) visitor.Greeting {
	id, _ := s.identify(c)
	g, err := visitor.Greet(c.Request.Context(), s.db, id, s.now())
	if err != nil {
		s.logger.Error("greeting lookup failed", "err", err)
		return visitor.Greeting{Message: GreetingFallback}
	}
	return g
}

func (s *server) handleIndex(c *gin.Context) {
	links := make([]scrollspy.Link, len(s.content.Nav))
	for i, l := range s.content.Nav {
		links[i] = scrollspy.Link{Label: l.Label, Href: l.Href}
	}
	now := s.now()
	c.HTML(http.StatusOK, "index.html", gin.H{
		"content":    s.content,
		"nav":        scrollspy.Highlight(links, "", false),
		"greeting":   s.greet(c),
		"palette":    visitor.PaletteAt(now),
		"rootMargin": scrollspy.DefaultBand.RootMargin(),
		"year":       now.Year(),
	})
}

func (s *server) handleMemory(c *gin.Context) {
	if !s.content.Memory.Enabled() {
		c.String(http.StatusNotFound, "404 page not found")
		return
	}
	now := s.now()
	c.HTML(http.StatusOK, "memory.html", gin.H{
		"site":    s.content.Site,
		"product": s.content.Memory,
		"palette": visitor.PaletteAt(now),
		"year":    now.Year(),
		"footer":  s.content.Footer,
	})
}

func (s *server) handleGreeting(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"greeting": s.greet(c),
		"palette":  visitor.PaletteAt(s.now()),
	})
}

func (s *server) handleHealth(c *gin.Context) {
	if err := s.db.Ping(c.Request.Context()); err != nil {
		s.logger.Error("health check failed", "err", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleContact answers with an HTML fragment in both outcomes so the form
// can swap it in place.
func (s *server) handleContact(c *gin.Context) {
	msg := ContactMessage{
		Name:    c.PostForm("fullName"),
		Email:   c.PostForm("email"),
		Message: c.PostForm("message"),
	}
	if err := msg.Validate(); err != nil {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": ContactInvalid,
		})
		return
	}
	if err := s.mailer.Send(c.Request.Context(), msg); err != nil {
		s.logger.Error("contact email failed", "err", err)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": ContactFailed,
		})
		return
	}
	s.logger.Info("contact email sent", "client", s.db.HashIP(c.ClientIP()))
	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": ContactSent,
	})
}

// untracked lists path prefixes that never count as visits.
var untracked = []string{"/static/", "/admin", "/api/", "/favicon", "/privacy", "/healthz", "/contact"}

// visitTracking records page views with a hashed address. Requests carrying
// DNT: 1 are not recorded.
func (s *server) visitTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, p := range untracked {
			if strings.HasPrefix(path, p) {
				c.Next()
				return
			}
		}
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		_, err := c.Cookie(visitorCookie)
		returning := err == nil
		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		if err := s.db.Record(c.Request.Context(), c.ClientIP(), c.GetHeader("User-Agent"), path, returning); err != nil {
			s.logger.Error("recording visit failed", "err", err)
		}
	}
}

// runCleanup deletes expired visits now and then every cleanupInterval on
// sched. The returned function cancels the next run.
func (s *server) runCleanup(ctx context.Context, sched schedule.Scheduler) (stop func()) {
	var (
		timer   schedule.Timer
		stopped bool
		tick    func()
	)
	tick = func() {
		if stopped || ctx.Err() != nil {
			return
		}
		if _, err := s.db.Cleanup(ctx, s.cfg.VisitRetention); err != nil {
			s.logger.Error("privacy cleanup failed", "err", err)
		}
		timer = sched.AfterFunc(cleanupInterval, tick)
	}
	tick()
	return func() {
		stopped = true
		schedule.StopAll(timer)
	}
}
