package app

import (
	"context"
	"sync"

	"github.com/mselser95/hearthstone-cards/internal/hearthstone"
	"github.com/mselser95/hearthstone-cards/pkg/cache"
	"github.com/mselser95/hearthstone-cards/pkg/config"
	"github.com/mselser95/hearthstone-cards/pkg/healthprobe"
	"github.com/mselser95/hearthstone-cards/pkg/httpserver"
	"go.uber.org/zap"
)

// App is the main application orchestrator.
type App struct {
	cfg           *config.Config
	logger        *zap.Logger
	healthChecker *healthprobe.HealthChecker
	httpServer    *httpserver.Server
	cache         *cache.RistrettoCache
	service       *hearthstone.Service
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}
