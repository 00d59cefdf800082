// admin.go - privacy-conscious visit statistics behind a session cookie
package main

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

const adminCookie = "admin_token"

// adminAuth redirects to the login page unless the request carries the
// session token issued at login.
func (s *server) adminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || !secureEqual(token, s.adminToken) {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// newAdminToken returns the session token for this process. Sessions do not
// survive a restart.
func newAdminToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate admin token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func secureEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// setupAdminRoutes registers the privacy page and the admin area.
func (s *server) setupAdminRoutes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":     "Privacy Policy",
			"retention": s.cfg.VisitRetention,
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		client := s.db.HashIP(c.ClientIP())
		if s.cfg.AdminPassword == "" {
			s.logger.Warn("admin login attempted but ADMIN_PASSWORD is not set", "client", client)
			c.HTML(http.StatusServiceUnavailable, "admin-login.html", gin.H{
				"error": AdminDisabled,
			})
			return
		}

		// Evaluate both so a wrong username costs the same as a wrong password.
		userOK := secureEqual(c.PostForm("username"), s.cfg.AdminUsername)
		passOK := secureEqual(c.PostForm("password"), s.cfg.AdminPassword)
		if !userOK || !passOK {
			s.logger.Warn("failed admin login", "client", client)
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"error": AdminInvalid,
			})
			return
		}

		c.SetCookie(adminCookie, s.adminToken, 3600*24, "/admin", "", gin.Mode() == gin.ReleaseMode, true)
		s.logger.Info("admin login", "client", client)
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		s.logger.Info("admin logout", "client", s.db.HashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(s.adminAuth())

	admin.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.db.Stats(c.Request.Context())
		if err != nil {
			s.logger.Error("loading admin stats", "err", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats":    stats,
			"warnings": s.content.Validate(),
		})
	})

	admin.GET("/visitors", func(c *gin.Context) {
		visits, err := s.db.Recent(c.Request.Context(), 200)
		if err != nil {
			s.logger.Error("loading visits", "err", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{"visits": visits})
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.db.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		n, err := s.db.Cleanup(c.Request.Context(), s.cfg.VisitRetention)
		if err != nil {
			s.logger.Error("privacy cleanup", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Privacy cleanup failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete", "removed": n})
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.db.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		s.logger.Info("admin stats exported", "client", s.db.HashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}
