package assembly

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/txix-open/isp-kit/http/httpcli"
	"github.com/txix-open/isp-kit/log"
	"waitlist-service/conf"
	"waitlist-service/handler"
	"waitlist-service/middleware"
	"waitlist-service/repository"
	"waitlist-service/service"
)

type Locator struct {
	logger     log.Logger
	klaviyoCli *httpcli.Client
}

func NewLocator(logger log.Logger, klaviyoCli *httpcli.Client) Locator {
	return Locator{
		logger:     logger,
		klaviyoCli: klaviyoCli,
	}
}

func (l Locator) Handler(config conf.Remote, redisCli redis.UniversalClient) http.Handler {
	var store service.RateLimitStore
	if redisCli != nil {
		store = repository.NewRedisRateLimiter(redisCli)
	} else {
		store = repository.NewLocalRateLimiter(config.RateLimit.SweepInterval())
	}
	rateLimitService := service.NewRateLimit(store, config.RateLimit)

	klaviyoRepo := repository.NewKlaviyo(l.klaviyoCli, config.Klaviyo)
	waitlistService := service.NewWaitlist(klaviyoRepo, config.Klaviyo, config.Logging.DevMode, l.logger)
	waitlistHandler := handler.NewWaitlist(waitlistService)

	chain := middleware.Chain(
		waitlistHandler,
		middleware.RequestId(),
		middleware.Logger(l.logger, config.Logging.RequestLogEnable),
		middleware.ErrorHandler(l.logger),
		middleware.MethodCheck(http.MethodPost),
		middleware.ClientKey(),
		middleware.RateLimit(rateLimitService),
	)
	entrypoint := middleware.Entrypoint(
		config.Http.MaxRequestBodySizeInKb*1024,
		chain,
		l.logger,
	)

	router := mux.NewRouter()
	router.Handle(config.Http.Path(), entrypoint)

	return router
}
