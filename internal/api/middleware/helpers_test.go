package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
)

func muxRouter(m HTTPMetrics) *mux.Router {
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/bookings/{bookingId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	return r
}
