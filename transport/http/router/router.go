package router

import (
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"lalazar/internal/handlers/auth"
	"lalazar/internal/handlers/booking"
	"lalazar/internal/handlers/guest"
	"lalazar/internal/handlers/health"
	"lalazar/internal/handlers/payment"
	"lalazar/internal/handlers/room"
)

type DomainHandlers struct {
	Auth    auth.Handler
	Booking booking.Handler
	Payment payment.Handler
	Room    room.Handler
	Guest   guest.Handler
	Health  health.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Health.Router(router)

	router.Get("/swagger/*", httpSwagger.Handler())

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Guest.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
