package http

import (
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/librarylite/internal/logging"
	"github.com/mrlokans/librarylite/internal/middleware"
)

// templateFuncs are available to every HTML template.
var templateFuncs = template.FuncMap{
	"currentYear": func() int {
		return time.Now().Year()
	},
}

// LoadTemplates parses every *.html file in dir.
func LoadTemplates(dir string) (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseGlob(dir + "/*.html")
}

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	router := gin.New()
	router.Use(logging.RequestLogger(logger))
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(middleware.SecurityHeaders())

	if cfg.ReadOnly {
		router.Use(middleware.ReadOnly(true))
	}

	var flasher Flasher
	if cfg.Sessions != nil {
		router.Use(cfg.Sessions.LoadSave())
		flasher = cfg.Sessions
	}

	tmpl := template.Must(LoadTemplates(cfg.TemplatesPath))
	router.SetHTMLTemplate(tmpl)

	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	}

	var pinger Pinger
	if cfg.Database != nil {
		pinger = cfg.Database
	}
	health := NewHealthController(pinger, cfg.BookStore, cfg.Version)
	booksController := NewBooksController(cfg.BookStore)
	formsController := NewBookFormsController(cfg.BookStore, flasher)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", Ping)

	// Books JSON API
	api := router.Group("/books")
	{
		api.GET("/", booksController.ListBooks)
		api.POST("/", booksController.CreateBook)
		api.GET("/:id", booksController.GetBook)
		api.PUT("/:id", booksController.UpdateBook)
		api.DELETE("/:id", booksController.DeleteBook)
	}

	// HTML pages; only these carry forms, so only these need CSRF tokens
	router.GET("/", formsController.HomePage)

	pages := router.Group("/books")
	if len(cfg.CSRFSecret) > 0 {
		pages.Use(middleware.CSRF(cfg.CSRFSecret, cfg.SecureCookies))
	}
	{
		pages.GET("/page", formsController.BooksPage)
		pages.GET("/new", formsController.NewBookPage)
		pages.POST("/new", formsController.CreateBook)
		pages.GET("/:id/edit", formsController.EditBookPage)
		pages.POST("/:id/edit", formsController.UpdateBook)
		pages.POST("/:id/delete", formsController.DeleteBook)
	}

	logRoutes(logger, router)

	return router
}

func logRoutes(logger zerolog.Logger, router *gin.Engine) {
	for _, route := range router.Routes() {
		logger.Debug().Str("method", route.Method).Str("path", route.Path).Msg("Route registered")
	}
}
