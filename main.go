package main

import (
	"context"
	"database/sql"
	"errors"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/Cedrix49/portfolio/internal/chat"
	"github.com/Cedrix49/portfolio/internal/faq"
)

// app carries the shared state behind every route.
type app struct {
	cfg         Config
	db          *sql.DB
	kb          *faq.KnowledgeBase
	matcher     *faq.Matcher
	chats       *chat.Store
	adminToken  string
	hashingSalt string
	aboutHTML   template.HTML
}

func newApp(cfg Config, db *sql.DB, kb *faq.KnowledgeBase) *app {
	a := &app{
		cfg:     cfg,
		db:      db,
		kb:      kb,
		matcher: faq.NewMatcher(kb, faq.WithTrimPunctuation(cfg.TrimPunctuation)),
		chats: chat.NewStore(chat.StoreConfig{
			Greeting:    kb.Greeting(),
			Suggestions: faq.NewSuggestionProvider(kb.Suggestions()),
			TTL:         cfg.SessionTTL,
			Rate:        rate.Limit(cfg.ChatRate),
			Burst:       cfg.ChatBurst,
		}),
		aboutHTML: renderMarkdown(AboutMe),
	}
	a.initAdminToken()
	return a
}

func loadKnowledgeBase(path string) (*faq.KnowledgeBase, error) {
	if path == "" {
		return faq.Default(), nil
	}
	kb, err := faq.LoadFile(path)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded %d FAQ entries from %s", kb.Len(), path)
	return kb, nil
}

// aboutSections maps /about/:section to the tab rendered by about-section.html.
var aboutSections = map[string]string{
	"who-i-am":   "Who I Am",
	"skills":     "Technical Skills",
	"experience": "Experience",
}

func (a *app) router() *gin.Engine {
	r := gin.Default()
	r.LoadHTMLGlob(a.cfg.TemplateGlob)

	r.Static("/images", "./images")
	r.Static("/static", "./static")

	r.Use(a.visitorTrackingMiddleware())

	// Home page route
	r.GET("/", func(c *gin.Context) {
		s := a.chatSession(c)
		c.HTML(http.StatusOK, "index.html", gin.H{
			"ownerName":   OwnerName,
			"ownerTitle":  OwnerTitle,
			"githubUser":  GithubUser,
			"tagline":     HeroTagline,
			"navLinks":    NavLinks,
			"stackIcons":  StackIcons,
			"aboutMe":     a.aboutHTML,
			"projects":    Projects,
			"selected":    Projects[0],
			"profiles":    ProfileLinks[:3],
			"chat":        a.chatData(s, ""),
			"currentYear": time.Now().Year(),
		})
	})

	// HTMX about tabs
	r.GET("/about/:section", func(c *gin.Context) {
		section := c.Param("section")
		title, ok := aboutSections[section]
		if !ok {
			c.String(http.StatusNotFound, "unknown section")
			return
		}
		c.HTML(http.StatusOK, "about-section.html", gin.H{
			"section":     section,
			"title":       title,
			"aboutMe":     a.aboutHTML,
			"skills":      Skills,
			"experiences": Experiences,
		})
	})

	// HTMX project details
	r.GET("/projects/:id", func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.String(http.StatusNotFound, "unknown project")
			return
		}
		project, ok := findProject(id)
		if !ok {
			c.String(http.StatusNotFound, "unknown project")
			return
		}
		c.HTML(http.StatusOK, "project-detail.html", gin.H{
			"project": project,
			"details": renderMarkdown(project.Description),
		})
	})

	// Outbound profile and demo links
	r.GET("/go/:code", func(c *gin.Context) {
		url, err := followLink(a.db, c.Param("code"))
		if errors.Is(err, errLinkNotFound) {
			c.String(http.StatusNotFound, "link not found")
			return
		}
		if err != nil {
			log.Printf("Error following link: %v", err)
			c.String(http.StatusInternalServerError, "link unavailable")
			return
		}
		c.Redirect(http.StatusFound, url)
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "faq_entries": a.kb.Len()})
	})

	a.setupChatRoutes(r)
	a.setupAdminRoutes(r)
	return r
}

// runBackground starts the session janitor and the daily privacy cleanup;
// both stop with ctx.
func (a *app) runBackground(ctx context.Context) {
	go a.chats.Run(ctx, time.Minute)
	go func() {
		a.cleanupOldVisitorData()
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				a.cleanupOldVisitorData()
			}
		}
	}()
}

func main() {
	cfg := loadConfig()
	closeLog := setupLogging(cfg.LogFile)
	defer closeLog()

	kb, err := loadKnowledgeBase(cfg.FAQFile)
	if err != nil {
		log.Fatalf("Failed to load FAQ knowledge base: %v", err)
	}

	db, err := openDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := seedLinks(db, ProfileLinks); err != nil {
		log.Fatalf("Failed to seed links: %v", err)
	}

	a := newApp(cfg, db, kb)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	a.runBackground(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           a.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("Portfolio listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
