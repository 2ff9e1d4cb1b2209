// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"github.com/Ab4kshin/Unost-backend/db"
	"github.com/Ab4kshin/Unost-backend/internal/model"
	"github.com/Ab4kshin/Unost-backend/internal/storage"
	"github.com/Ab4kshin/Unost-backend/pkg/middleware"
	"github.com/Ab4kshin/Unost-backend/pkg/security"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

type API struct {
	DB      *gorm.DB
	Router  *gin.Engine
	Argon   *security.ArgonHash
	Storage *storage.Disk
}

func NewRouter() (*API, error) {
	a := &API{}

	database, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	a.DB = database

	makeLogger()

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     viper.GetStringSlice("cors.origins"),
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetUint("userID"); v != 0 {
					fields = append(fields, zap.Uint("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	a.Router.MaxMultipartMemory = 5 << 20

	a.Argon = security.New()

	st, err := storage.New(viper.GetString("storage.path"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize portfolio storage, %w", err)
	}
	a.Storage = st

	a.registerRoutes()

	if viper.GetBool("create-admin") {
		if err := a.ensureAdmin(); err != nil {
			return nil, fmt.Errorf("failed to create admin account, %w", err)
		}
	}

	return a, nil
}

func (a *API) registerRoutes() {
	jwt := middleware.NewJWTMiddleware(a.DB)
	admin := middleware.RequireRole(model.RoleAdmin)
	maxUploadSize := viper.GetInt64("upload.max_size")

	main := a.Router.Group("/api")
	{
		// POST /api/login 		-> Logs in a user and returns a bearer token
		main.POST("/login", middleware.BodySizeLimiter(1<<20), a.UserLogin)

		// POST /api/register 		-> Registers a new student account
		main.POST("/register", middleware.BodySizeLimiter(1<<20), a.UserRegister)

		// GET /api/check-token		-> Validates a bearer token
		main.GET("/check-token", jwt, a.TokenCheck)
	}

	students := main.Group("/students", jwt)
	{
		// GET /api/students		-> Lists all students
		students.GET("", cacheFor(30), a.StudentList)

		// GET /api/students/profile	-> Returns the requester's own profile
		students.GET("/profile", a.StudentProfile)

		// GET /api/students/:id	-> Returns one student with their grades
		students.GET("/:id", a.StudentFetch)

		portfolio := students.Group("/portfolio")
		{
			// GET /api/students/portfolio			-> Lists the requester's portfolio files
			portfolio.GET("", a.PortfolioList)

			// POST /api/students/portfolio			-> Uploads a new portfolio file
			portfolio.POST("", middleware.BodySizeLimiter(maxUploadSize+1<<20), a.PortfolioUpload)

			// GET /api/students/portfolio/:id/download	-> Streams a portfolio file
			portfolio.GET("/:id/download", a.PortfolioDownload)

			// DELETE /api/students/portfolio/:id		-> Deletes a portfolio file
			portfolio.DELETE("/:id", a.PortfolioDelete)
		}
	}

	complaints := main.Group("/complaints")
	{
		// POST /api/complaints		-> Files an anonymous complaint
		complaints.POST("", middleware.BodySizeLimiter(1<<20), a.ComplaintCreate)

		// GET /api/complaints		-> Lists complaints (admin only)
		complaints.GET("", jwt, admin, a.ComplaintList)

		// GET /api/complaints/stats	-> 7-day rolling complaint counts (admin only)
		complaints.GET("/stats", jwt, admin, cacheFor(30), a.ComplaintStats)
	}

	feedback := main.Group("/feedback")
	{
		// POST /api/feedback		-> Leaves feedback
		feedback.POST("", middleware.BodySizeLimiter(1<<20), a.FeedbackCreate)

		// GET /api/feedback		-> Lists feedback (admin only)
		feedback.GET("", jwt, admin, a.FeedbackList)

		// GET /api/feedback/stats	-> 7-day rolling feedback counts (admin only)
		feedback.GET("/stats", jwt, admin, cacheFor(30), a.FeedbackStats)
	}
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	if lvl, err := zapcore.ParseLevel(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
