//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/seristack/cocoon-recommender/internal/bootstrap"
	"github.com/seristack/cocoon-recommender/internal/domain/auth"
	"github.com/seristack/cocoon-recommender/internal/domain/pricing"
	"github.com/seristack/cocoon-recommender/internal/domain/recommend"
	"github.com/seristack/cocoon-recommender/internal/infra/config"
	httpiface "github.com/seristack/cocoon-recommender/internal/interface/http"
	"github.com/seristack/cocoon-recommender/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideAuthConfig,
		provideRecommendConfig,
		provideWeatherProvider,
		providePredictor,
		provideOracle,
		provideForecastCache,
		providePgxPool,
		provideUserRepository,
		provideRecommendationRepository,
		provideFarmerRepository,
		provideMarketRepository,
		provideFarmerService,
		provideMarketService,
		auth.NewService,
		recommend.NewService,
		wire.Bind(new(recommend.PriceOracle), new(*pricing.Oracle)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
