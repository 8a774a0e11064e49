// admin.go - site owner dashboard: visitor counts, link clicks and FAQ answer stats
package main

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// VisitorMetric is one tracked page view.
type VisitorMetric struct {
	ID        int       `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

type AdminStats struct {
	TotalVisitors    int64           `json:"total_visitors"`
	UniqueVisitors   int64           `json:"unique_visitors"`
	VisitorsToday    int64           `json:"visitors_today"`
	VisitorsThisWeek int64           `json:"visitors_this_week"`
	TotalLinks       int64           `json:"total_links"`
	TotalClicks      int64           `json:"total_clicks"`
	TopLinks         []LinkStat      `json:"top_links"`
	TotalAnswers     int64           `json:"total_answers"`
	FallbackAnswers  int64           `json:"fallback_answers"`
	TopQuestions     []FAQHit        `json:"top_questions"`
	ActiveChats      int             `json:"active_chats"`
	RecentVisitors   []VisitorMetric `json:"recent_visitors"`
}

// initAdminToken mints the login cookie value and the IP hashing salt. Both
// change on every restart, which logs the admin out.
func (a *app) initAdminToken() {
	a.adminToken = generateAdminToken()
	a.hashingSalt = generateAdminToken() // Use for IP hashing

	log.Printf("Admin access available at: /admin/login")
	if gin.Mode() == gin.DebugMode {
		log.Printf("Admin token (dev only): %s", a.adminToken)
	}

	log.Println("Privacy: Visitor tracking enabled with hashed IP addresses")
}

func generateAdminToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal("Failed to generate admin token:", err)
	}
	return hex.EncodeToString(bytes)
}

// hashIP is stable for the life of the process only.
func (a *app) hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + a.hashingSalt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (a *app) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("admin_token")
		if err != nil || !constantTimeEqual(token, a.adminToken) {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// untrackedPrefixes are assets, admin pages and chat polling, none of which
// are page views.
var untrackedPrefixes = []string{
	"/static/", "/images/", "/admin/", "/favicon", "/privacy",
	"/chat/", "/api/", "/about/", "/projects/", "/go/", "/healthz",
}

// visitorTrackingMiddleware records full page loads unless the browser sends DNT.
func (a *app) visitorTrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range untrackedPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		go a.trackVisitor(c.ClientIP(), c.GetHeader("User-Agent"), path)
		c.Next()
	}
}

func (a *app) trackVisitor(ip, userAgent, path string) {
	_, err := a.db.Exec(`
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, a.hashIP(ip), userAgent, path, time.Now().UTC())

	if err != nil {
		log.Printf("Error recording visitor: %v", err)
	}
}

// cleanupOldVisitorData deletes page views older than VisitorRetention.
func (a *app) cleanupOldVisitorData() {
	modifier := fmt.Sprintf("-%d seconds", int64(a.cfg.VisitorRetention.Seconds()))
	result, err := a.db.Exec(`
		DELETE FROM visitors
		WHERE timestamp < datetime('now', ?)
	`, modifier)
	if err != nil {
		log.Printf("Error cleaning up old visitor data: %v", err)
		return
	}

	rowsDeleted, _ := result.RowsAffected()
	if rowsDeleted > 0 {
		log.Printf("Privacy cleanup: Removed %d visitor records older than %s", rowsDeleted, a.cfg.VisitorRetention)
	}
}

func (a *app) recentVisitors(limit int) ([]VisitorMetric, error) {
	rows, err := a.db.Query(`
		SELECT id, hashed_ip, user_agent, path, timestamp
		FROM visitors
		ORDER BY timestamp DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visitors []VisitorMetric
	for rows.Next() {
		var visitor VisitorMetric
		err := rows.Scan(&visitor.ID, &visitor.HashedIP, &visitor.UserAgent, &visitor.Path, &visitor.Timestamp)
		if err != nil {
			continue
		}
		visitors = append(visitors, visitor)
	}
	return visitors, rows.Err()
}

func (a *app) getAdminStats() (*AdminStats, error) {
	stats := &AdminStats{ActiveChats: a.chats.Len()}

	counters := []struct {
		query string
		dest  *int64
	}{
		{"SELECT COUNT(*) FROM visitors", &stats.TotalVisitors},
		{"SELECT COUNT(DISTINCT hashed_ip) FROM visitors", &stats.UniqueVisitors},
		{"SELECT COUNT(*) FROM visitors WHERE DATE(timestamp) = DATE('now')", &stats.VisitorsToday},
		{"SELECT COUNT(*) FROM visitors WHERE timestamp >= datetime('now', '-7 days')", &stats.VisitorsThisWeek},
		{"SELECT COUNT(*) FROM links", &stats.TotalLinks},
		{"SELECT COALESCE(SUM(clicks), 0) FROM links", &stats.TotalClicks},
		{"SELECT COALESCE(SUM(count), 0) FROM faq_hits", &stats.TotalAnswers},
		{"SELECT COALESCE(SUM(count), 0) FROM faq_hits WHERE outcome = 'fallback'", &stats.FallbackAnswers},
	}
	for _, ctr := range counters {
		if err := a.db.QueryRow(ctr.query).Scan(ctr.dest); err != nil {
			return nil, fmt.Errorf("%s: %w", ctr.query, err)
		}
	}

	var err error
	if stats.TopLinks, err = listLinks(a.db, 10); err != nil {
		return nil, err
	}
	if stats.TopQuestions, err = topFAQHits(a.db, 10); err != nil {
		return nil, err
	}
	if stats.RecentVisitors, err = a.recentVisitors(50); err != nil {
		return nil, err
	}
	return stats, nil
}

func (a *app) setupAdminRoutes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":     "Privacy Policy",
			"retention": a.cfg.VisitorRetention.String(),
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")

		userOK := constantTimeEqual(username, a.cfg.AdminUsername)
		passOK := constantTimeEqual(password, a.cfg.AdminPassword)
		if userOK && passOK {
			// Scoped to /admin so the public pages never see it
			c.SetCookie("admin_token", a.adminToken, 3600*24, "/admin", "", a.cfg.CookieSecure, true)
			log.Printf("Admin login successful from %s", a.hashIP(c.ClientIP()))
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}

		log.Printf("Failed admin login attempt from %s", a.hashIP(c.ClientIP()))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie("admin_token", "", -1, "/admin", "", a.cfg.CookieSecure, true)
		log.Printf("Admin logout from %s", a.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	adminGroup := r.Group("/admin")
	adminGroup.Use(a.adminAuthMiddleware())

	adminGroup.GET("/dashboard", func(c *gin.Context) {
		stats, err := a.getAdminStats()
		if err != nil {
			log.Printf("Error loading admin stats: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}

		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats": stats,
		})
	})

	adminGroup.GET("/api/stats", func(c *gin.Context) {
		a.writeStats(c, "")
	})

	adminGroup.GET("/links", func(c *gin.Context) {
		links, err := listLinks(a.db, 200)
		if err != nil {
			log.Printf("Error loading links: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load links",
			})
			return
		}

		c.HTML(http.StatusOK, "admin-links.html", gin.H{
			"links": links,
		})
	})

	adminGroup.GET("/visitors", func(c *gin.Context) {
		visitors, err := a.recentVisitors(200)
		if err != nil {
			log.Printf("Error loading visitors: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}

		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
			"visitors": visitors,
		})
	})

	adminGroup.DELETE("/links/:code/clicks", func(c *gin.Context) {
		code := c.Param("code")

		err := resetLinkClicks(a.db, code)
		if errors.Is(err, errLinkNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
			return
		}
		if err != nil {
			log.Printf("Error resetting clicks for %s: %v", code, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset clicks"})
			return
		}

		log.Printf("Clicks for %s reset by admin from %s", code, a.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, gin.H{"message": "Clicks reset"})
	})

	adminGroup.DELETE("/faq-hits", func(c *gin.Context) {
		n, err := clearFAQHits(a.db)
		if err != nil {
			log.Printf("Error clearing FAQ stats: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear FAQ stats"})
			return
		}
		log.Printf("FAQ stats cleared (%d rows) by admin from %s", n, a.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, gin.H{"message": "FAQ stats cleared", "deleted": n})
	})

	adminGroup.POST("/privacy/cleanup", func(c *gin.Context) {
		go a.cleanupOldVisitorData()
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup initiated"})
	})

	adminGroup.GET("/export/stats", func(c *gin.Context) {
		log.Printf("Admin stats exported by %s", a.hashIP(c.ClientIP()))
		a.writeStats(c, "admin-stats.json")
	})
}

// writeStats responds with the dashboard numbers as JSON, as a download when
// filename is set.
func (a *app) writeStats(c *gin.Context, filename string) {
	stats, err := a.getAdminStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if filename != "" {
		c.Header("Content-Disposition", "attachment; filename="+filename)
	}
	c.JSON(http.StatusOK, stats)
}
