package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"article-admin/config"
	"article-admin/console"
	"article-admin/models"
	"article-admin/providers"
	"article-admin/providers/articles"
	"article-admin/render"
	"article-admin/services"
	"article-admin/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const sessionCookie = "article_admin_session"

var (
	activeSessionsGauge prometheus.Gauge
	snapshotsCounter    *prometheus.CounterVec
)

func init() {
	activeSessionsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "console_active_sessions",
			Help: "Number of browser sessions currently held by the console.",
		},
	)
	snapshotsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_snapshots_total",
			Help: "Total number of article list snapshots by result.",
		},
		[]string{"result"},
	)
	prometheus.MustRegister(activeSessionsGauge, snapshotsCounter)
}

func apiKeyAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.MetricsAPIKey == "" {
			c.Next()
			return
		}
		apiKey := c.GetHeader("X-API-KEY")
		if apiKey != cfg.MetricsAPIKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid API Key"})
			return
		}
		c.Next()
	}
}

func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "same-origin")
		c.Header("Content-Security-Policy", "default-src 'self'; frame-src 'self'; object-src 'self'; base-uri 'none'; frame-ancestors 'self'")
		c.Next()
	}
}

// sessionMiddleware ordnet jeder Anfrage die Sitzung ihres Browsers zu.
func sessionMiddleware(cfg *config.Config, registry *console.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sess *console.Session
		if id, err := c.Cookie(sessionCookie); err == nil {
			sess, _ = registry.Get(id)
		}
		if sess == nil {
			sess = registry.Create()
			activeSessionsGauge.Set(float64(registry.Len()))
		}
		sess.Touch(time.Now())
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, sess.ID, int(cfg.SessionIdleTimeout.Seconds()), "/", "", false, true)
		c.Set("session", sess)
		c.Next()
	}
}

func sessionFrom(c *gin.Context) *console.Session {
	return c.MustGet("session").(*console.Session)
}

func redirectHome(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}

func articleID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		sessionFrom(c).Flash(console.FlashError, "ID de artículo inválido")
		redirectHome(c)
		return 0, false
	}
	return id, true
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	var logging *zap.Logger
	if cfg.LogMode == "development" {
		logging, err = zap.NewDevelopment()
	} else {
		logging, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	// Setup Backend & Archive
	backend := articles.NewClient(cfg, logging)
	var archiver services.Archiver
	archive, err := storage.NewArchive(cfg)
	if err != nil {
		logging.Fatal("S3 client creation failed", zap.Error(err))
	}
	if archive != nil {
		archiver = archive
		logging.Info("S3 archive enabled", zap.String("bucket", cfg.ArchiveS3Bucket))
	}

	// Setup Services
	recordService := services.NewRecordService(cfg, backend, archiver, logging)
	registry := console.NewRegistry(cfg.ItemsPerPage)
	renderer, err := render.New(cfg.MaxUploadMB)
	if err != nil {
		logging.Fatal("Template parsing failed", zap.Error(err))
	}

	router := newRouter(cfg, registry, recordService, renderer, logging)

	// Setup Cron
	cronScheduler := cron.New()
	if _, err := cronScheduler.AddFunc(cfg.SessionSweepSchedule, func() {
		removed := registry.Sweep(time.Now(), cfg.SessionIdleTimeout)
		activeSessionsGauge.Set(float64(registry.Len()))
		if removed > 0 {
			logging.Info("Idle sessions removed", zap.Int("removed", removed), zap.Int("active", registry.Len()))
		}
	}); err != nil {
		logging.Fatal("Invalid session sweep schedule", zap.Error(err))
	}
	if cfg.SnapshotSchedule != "" {
		if archiver == nil {
			logging.Warn("SNAPSHOT_SCHEDULE set but no archive configured, snapshots disabled")
		} else {
			snapshotter := services.NewSnapshotter(backend, archiver, cfg.KeepSnapshots, logging)
			if _, err := cronScheduler.AddFunc(cfg.SnapshotSchedule, func() {
				logging.Info("Running scheduled snapshot job...")
				key, err := snapshotter.Run(context.Background())
				if err != nil {
					snapshotsCounter.WithLabelValues("error").Inc()
					logging.Error("Snapshot job failed", zap.Error(err))
					return
				}
				snapshotsCounter.WithLabelValues("ok").Inc()
				logging.Info("Snapshot job completed", zap.String("key", key))
			}); err != nil {
				logging.Fatal("Invalid snapshot schedule", zap.Error(err))
			}
		}
	}
	cronScheduler.Start()

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort), zap.String("backend", cfg.BackendURL))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       60 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
}

func newRouter(cfg *config.Config, registry *console.Registry, svc *services.RecordService, renderer *render.Renderer, logger *zap.Logger) *gin.Engine {
	router := gin.Default()
	router.Use(securityHeaders())
	if origins := cfg.AllowedOrigins(); len(origins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "X-Requested-With"},
			AllowCredentials: true,
		}))
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": registry.Len()})
	})
	router.GET("/metrics", apiKeyAuthMiddleware(cfg), gin.WrapH(promhttp.Handler()))
	router.StaticFS("/static", http.FS(render.Static()))

	pages := router.Group("/")
	pages.Use(sessionMiddleware(cfg, registry))

	setupPageRoutes(pages, svc, renderer, logger)
	setupArticleRoutes(pages, svc, cfg)
	setupImportRoutes(pages, svc, cfg)
	setupExportRoutes(pages, svc, logger)
	setupDocumentRoutes(pages, svc, logger)

	return router
}

func setupPageRoutes(rg *gin.RouterGroup, svc *services.RecordService, renderer *render.Renderer, logger *zap.Logger) {
	rg.GET("/", func(c *gin.Context) {
		sess := sessionFrom(c)
		if !sess.Loaded() {
			// Fehler landen als Nachricht in der Sitzung.
			_ = svc.Load(c.Request.Context(), sess)
		}
		var buf bytes.Buffer
		if err := renderer.Page(&buf, sess.Snapshot()); err != nil {
			logger.Error("Failed to render page", zap.Error(err))
			c.String(http.StatusInternalServerError, "Error al generar la página")
			return
		}
		c.Header("Cache-Control", "no-store")
		c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
	})

	rg.POST("/reload", func(c *gin.Context) {
		_ = svc.Reload(c.Request.Context(), sessionFrom(c))
		redirectHome(c)
	})

	rg.POST("/filter", func(c *gin.Context) {
		sessionFrom(c).SetFilter(console.Filter{
			Query:     c.PostForm("q"),
			Selection: console.ParseSelection(c.PostForm("sel")),
		})
		redirectHome(c)
	})

	rg.POST("/page-size", func(c *gin.Context) {
		size, _ := strconv.Atoi(c.PostForm("size"))
		sessionFrom(c).SetPageSize(size)
		redirectHome(c)
	})

	rg.GET("/page/:n", func(c *gin.Context) {
		n, _ := strconv.Atoi(c.Param("n"))
		sessionFrom(c).GoToPage(n)
		redirectHome(c)
	})

	rg.POST("/columns", func(c *gin.Context) {
		sessionFrom(c).SetColumns(console.ColumnsFromSelection(c.PostFormArray("col")))
		redirectHome(c)
	})

	rg.GET("/instructions", func(c *gin.Context) {
		text, err := svc.Instructions(c.Request.Context())
		if err != nil {
			c.String(http.StatusBadGateway, "Error al generar las instrucciones: %v", err)
			return
		}
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
	})
}

func setupArticleRoutes(rg *gin.RouterGroup, svc *services.RecordService, cfg *config.Config) {
	rg.POST("/articles/:id/toggle-selection", func(c *gin.Context) {
		id, ok := articleID(c)
		if !ok {
			return
		}
		_ = svc.ToggleSelection(c.Request.Context(), sessionFrom(c), id)
		redirectHome(c)
	})

	rg.GET("/articles/:id/edit", func(c *gin.Context) {
		id, ok := articleID(c)
		if !ok {
			return
		}
		_ = svc.OpenEdit(c.Request.Context(), sessionFrom(c), id)
		redirectHome(c)
	})

	rg.POST("/articles/:id/save", func(c *gin.Context) {
		id, ok := articleID(c)
		if !ok {
			return
		}
		sess := sessionFrom(c)
		if err := parseForm(c, cfg); err != nil {
			sess.Flash(console.FlashError, formErrorText(err))
			redirectHome(c)
			return
		}
		_ = svc.Save(c.Request.Context(), sess, id, c.Request.PostForm)
		redirectHome(c)
	})

	rg.POST("/edit/cancel", func(c *gin.Context) {
		svc.CancelEdit(sessionFrom(c))
		redirectHome(c)
	})
}

func setupDocumentRoutes(rg *gin.RouterGroup, svc *services.RecordService, logger *zap.Logger) {
	rg.POST("/articles/:id/documents", func(c *gin.Context) {
		id, ok := articleID(c)
		if !ok {
			return
		}
		sess := sessionFrom(c)
		if err := parseForm(c, svc.Config); err != nil {
			sess.Flash(console.FlashError, formErrorText(err))
			redirectHome(c)
			return
		}
		docType, err := models.ParseDocType(c.PostForm("doc_type"))
		if err != nil {
			sess.Flash(console.FlashError, "Tipo de documento inválido")
			redirectHome(c)
			return
		}
		file, err := readUpload(c, "file_"+string(docType), svc.Config.MaxUploadBytes())
		if err != nil {
			sess.Flash(console.FlashError, "Error al leer el archivo: "+err.Error())
			redirectHome(c)
			return
		}
		draft := console.DraftFromForm(c.Request.PostForm)
		_ = svc.UploadDocument(c.Request.Context(), sess, id, docType, file, draft)
		redirectHome(c)
	})

	rg.POST("/articles/:id/documents/:docType/delete", func(c *gin.Context) {
		id, ok := articleID(c)
		if !ok {
			return
		}
		sess := sessionFrom(c)
		docType, err := models.ParseDocType(c.Param("docType"))
		if err != nil {
			sess.Flash(console.FlashError, "Tipo de documento inválido")
			redirectHome(c)
			return
		}
		var draft map[string]string
		if err := parseForm(c, svc.Config); err == nil {
			draft = console.DraftFromForm(c.Request.PostForm)
		}
		_ = svc.DeleteDocument(c.Request.Context(), sess, id, docType, draft)
		redirectHome(c)
	})

	rg.GET("/documents/:filename", func(c *gin.Context) {
		st, err := svc.Document(c.Request.Context(), c.Param("filename"))
		if err != nil {
			status := http.StatusBadGateway
			var oe *services.OpError
			if errors.As(err, &oe) && oe.Status == http.StatusNotFound {
				status = http.StatusNotFound
			}
			logger.Warn("Document proxy failed", zap.String("filename", c.Param("filename")), zap.Error(err))
			c.String(status, "Documento no disponible")
			return
		}
		defer st.Body.Close()
		contentType := st.ContentType
		if contentType == "" {
			contentType = "application/pdf"
		}
		c.DataFromReader(http.StatusOK, st.ContentLength, contentType, st.Body, map[string]string{
			"Content-Disposition": "inline",
		})
	})
}

func setupImportRoutes(rg *gin.RouterGroup, svc *services.RecordService, cfg *config.Config) {
	rg.POST("/import", func(c *gin.Context) {
		sess := sessionFrom(c)
		if err := parseForm(c, cfg); err != nil {
			sess.Flash(console.FlashError, formErrorText(err))
			redirectHome(c)
			return
		}
		file, err := readUpload(c, "file", cfg.MaxUploadBytes())
		if err != nil {
			sess.Flash(console.FlashError, "Error al leer el archivo: "+err.Error())
			redirectHome(c)
			return
		}
		_ = svc.CheckImport(c.Request.Context(), sess, file)
		redirectHome(c)
	})

	rg.POST("/import/confirm", func(c *gin.Context) {
		force := c.PostForm("mode") == "force"
		_ = svc.ConfirmImport(c.Request.Context(), sessionFrom(c), force)
		redirectHome(c)
	})

	rg.POST("/import/cancel", func(c *gin.Context) {
		svc.CancelImport(sessionFrom(c))
		redirectHome(c)
	})
}

func setupExportRoutes(rg *gin.RouterGroup, svc *services.RecordService, logger *zap.Logger) {
	export := func(kind providers.ExportKind) gin.HandlerFunc {
		return func(c *gin.Context) {
			file, err := svc.Export(c.Request.Context(), sessionFrom(c), kind)
			if err != nil {
				redirectHome(c)
				return
			}
			logger.Debug("Serving export", zap.String("file", file.Filename))
			c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
			c.Data(http.StatusOK, file.ContentType, file.Data)
		}
	}
	rg.GET("/export/all", export(providers.ExportAll))
	rg.GET("/export/selected", export(providers.ExportSelected))
}

// parseForm liest ein multipart- oder urlencoded-Formular mit Größenbegrenzung.
func parseForm(c *gin.Context, cfg *config.Config) error {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, cfg.MaxUploadBytes()+1<<20)
	err := c.Request.ParseMultipartForm(1 << 20)
	if errors.Is(err, http.ErrNotMultipart) {
		return nil
	}
	return err
}

// formErrorText unterscheidet zu große Anfragen von fehlerhaften Formularen.
func formErrorText(err error) string {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return "El archivo supera el tamaño máximo permitido"
	}
	return "Error al leer el formulario: " + err.Error()
}

// readUpload liest eine hochgeladene Datei. Ein fehlendes Feld ergibt einen leeren Upload.
func readUpload(c *gin.Context, field string, limit int64) (providers.Upload, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return providers.Upload{}, nil
	}
	if err != nil {
		return providers.Upload{}, err
	}
	return readFileHeader(fh, limit)
}

func readFileHeader(fh *multipart.FileHeader, limit int64) (providers.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return providers.Upload{}, err
	}
	defer f.Close()
	// Ein Byte mehr als erlaubt, damit die Größenprüfung greift.
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return providers.Upload{}, err
	}
	return providers.Upload{Filename: fh.Filename, Data: data}, nil
}
