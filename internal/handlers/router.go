package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterConfig holds the HTTP settings that are not handler dependencies.
type RouterConfig struct {
	CORSOrigins []string
	// UploadDir is served read-only under UploadURLPrefix.
	UploadDir       string
	UploadURLPrefix string
	// MaxMultipartMemory is how much of a form is kept in memory before
	// spilling to temp files.
	MaxMultipartMemory int64
}

// NewRouter wires the API routes under /api and the static resume files.
func NewRouter(cfg RouterConfig, jobs *JobHandler, apps *ApplicationHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	if cfg.MaxMultipartMemory > 0 {
		r.MaxMultipartMemory = cfg.MaxMultipartMemory
	}

	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsCfg))

	if cfg.UploadDir != "" && cfg.UploadURLPrefix != "" {
		r.Static(cfg.UploadURLPrefix, cfg.UploadDir)
	}

	api := r.Group("/api")
	{
		api.GET("/health", jobs.HealthCheck)

		api.GET("/jobs", jobs.ListJobs)
		api.POST("/jobs", jobs.CreateJob)
		api.POST("/jobs/extract", jobs.ParseJob)
		api.GET("/jobs/:id", jobs.GetJob)
		api.GET("/jobs/:id/applications", jobs.ListApplications)

		api.GET("/applications", apps.List)
		api.POST("/applications", apps.Submit)
	}
	return r
}
