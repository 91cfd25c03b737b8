package app

import (
	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/cache"
	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/repository"
	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/service"
)

// App holds the wired application dependencies.
type App struct {
	AssessmentRepo    repository.AssessmentRepository
	StatsCache        cache.StatsCache
	AssessmentService *service.AssessmentService
}
