package routers

import (
	"jadwalin-service/internal/app/delivery/http/controllers"
	"jadwalin-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachBookingRoutes(router chi.Router, middlewares *middlewares.Middlewares, bookingController *controllers.BookingController) {
	router.With(middlewares.Authenticate).Post("/", bookingController.CreateBooking)
}
