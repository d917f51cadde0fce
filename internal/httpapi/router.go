package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the handler into the HTTP route table.
func NewRouter(h *Handler) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/ask", h.Ask).Methods(http.MethodPost)

	return r
}
