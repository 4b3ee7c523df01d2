//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"lalazar/config"
	"lalazar/infras/jwt"
	"lalazar/infras/kafka"
	"lalazar/infras/otel"
	"lalazar/infras/postgres"
	"lalazar/infras/redis"
	"lalazar/infras/s3"
	"lalazar/internal/events"
	"lalazar/permissions"
	"lalazar/shared/cache"
	"lalazar/transport/http"
	"lalazar/transport/http/middleware"
	"lalazar/transport/http/router"

	authRepository "lalazar/internal/domains/auth/repository"
	authService "lalazar/internal/domains/auth/service"
	bookingRepository "lalazar/internal/domains/booking/repository"
	bookingService "lalazar/internal/domains/booking/service"
	categoryRepository "lalazar/internal/domains/category/repository"
	guestRepository "lalazar/internal/domains/guest/repository"
	guestService "lalazar/internal/domains/guest/service"
	hotelRepository "lalazar/internal/domains/hotel/repository"
	paymentRepository "lalazar/internal/domains/payment/repository"
	paymentService "lalazar/internal/domains/payment/service"
	roomRepository "lalazar/internal/domains/room/repository"
	roomService "lalazar/internal/domains/room/service"

	authHandler "lalazar/internal/handlers/auth"
	bookingHandler "lalazar/internal/handlers/booking"
	guestHandler "lalazar/internal/handlers/guest"
	healthHandler "lalazar/internal/handlers/health"
	paymentHandler "lalazar/internal/handlers/payment"
	roomHandler "lalazar/internal/handlers/room"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	events.New,
)

var lookupRepositories = wire.NewSet(
	categoryRepository.New,
	hotelRepository.New,
)

var authDomain = wire.NewSet(
	authRepository.New,
	authService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var paymentDomain = wire.NewSet(
	paymentRepository.New,
	paymentService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var guestDomain = wire.NewSet(
	guestRepository.New,
	guestService.New,
)

var domains = wire.NewSet(
	lookupRepositories,
	authDomain,
	bookingDomain,
	paymentDomain,
	roomDomain,
	guestDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	bookingHandler.New,
	paymentHandler.New,
	roomHandler.New,
	guestHandler.New,
	healthHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
