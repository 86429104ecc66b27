package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ocn-tools/ocn-registry/interfaces"
)

// RequestError provides structured error information for HTTP responses.
type RequestError struct {
	// StatusCode is the HTTP status code to return.
	StatusCode int

	// Err is the underlying error.
	Err error
}

// Error returns the message of the underlying error.
func (e *RequestError) Error() string {
	return e.Err.Error()
}

// Handler serves the read-only registry API. All state lives on-chain;
// the handler only translates between HTTP and the registry reader.
type Handler struct {
	registry interfaces.RegistryReader
	log      *slog.Logger
}

// NewHandler creates an HTTP handler over the given registry reader.
func NewHandler(registry interfaces.RegistryReader, log *slog.Logger) *Handler {
	return &Handler{
		registry: registry,
		log:      log,
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("could not encode response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, reqErr *RequestError) {
	if reqErr.StatusCode >= http.StatusInternalServerError {
		h.log.Error("request failed", "status", reqErr.StatusCode, "err", reqErr.Err)
	} else {
		h.log.Debug("request rejected", "status", reqErr.StatusCode, "err", reqErr.Err)
	}
	h.writeJSON(w, reqErr.StatusCode, map[string]string{"error": reqErr.Error()})
}

func asRequestError(err error) *RequestError {
	if errors.Is(err, interfaces.ErrInvalidArgument) {
		return &RequestError{StatusCode: http.StatusBadRequest, Err: err}
	}
	return &RequestError{StatusCode: http.StatusInternalServerError, Err: err}
}

// HandleListNodes returns every listed node.
func (h *Handler) HandleListNodes(w http.ResponseWriter, r *http.Request) {
	nodes, err := h.registry.GetAllNodes(r.Context())
	if err != nil {
		h.writeError(w, asRequestError(err))
		return
	}
	h.writeJSON(w, http.StatusOK, nodes)
}

// HandleGetNode returns the node of one operator, or 404 if the operator
// has no listing.
func (h *Handler) HandleGetNode(w http.ResponseWriter, r *http.Request) {
	operator, err := interfaces.ParseAddress(chi.URLParam(r, "operator"))
	if err != nil {
		h.writeError(w, &RequestError{StatusCode: http.StatusBadRequest, Err: err})
		return
	}

	node, err := h.registry.GetNode(r.Context(), operator)
	if err != nil {
		h.writeError(w, asRequestError(err))
		return
	}
	if node == nil {
		h.writeError(w, &RequestError{StatusCode: http.StatusNotFound, Err: errors.New("operator has no node listing")})
		return
	}
	h.writeJSON(w, http.StatusOK, node)
}

// HandleListParties returns every registered party.
func (h *Handler) HandleListParties(w http.ResponseWriter, r *http.Request) {
	parties, err := h.registry.GetAllParties(r.Context())
	if err != nil {
		h.writeError(w, asRequestError(err))
		return
	}
	h.writeJSON(w, http.StatusOK, parties)
}

// HandleGetParty returns the party registered under a wallet address, or
// 404 if absent.
func (h *Handler) HandleGetParty(w http.ResponseWriter, r *http.Request) {
	address, err := interfaces.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		h.writeError(w, &RequestError{StatusCode: http.StatusBadRequest, Err: err})
		return
	}

	party, err := h.registry.GetPartyByAddress(r.Context(), address)
	if err != nil {
		h.writeError(w, asRequestError(err))
		return
	}
	if party == nil {
		h.writeError(w, &RequestError{StatusCode: http.StatusNotFound, Err: errors.New("party not registered")})
		return
	}
	h.writeJSON(w, http.StatusOK, party)
}

// HandleGetPartyByOcpi returns the party registered under an OCPI
// (countryCode, partyId) pair, or 404 if absent.
func (h *Handler) HandleGetPartyByOcpi(w http.ResponseWriter, r *http.Request) {
	countryCode := chi.URLParam(r, "countryCode")
	partyID := chi.URLParam(r, "partyId")

	party, err := h.registry.GetPartyByOcpi(r.Context(), countryCode, partyID)
	if err != nil {
		h.writeError(w, asRequestError(err))
		return
	}
	if party == nil {
		h.writeError(w, &RequestError{StatusCode: http.StatusNotFound, Err: errors.New("party not registered")})
		return
	}
	h.writeJSON(w, http.StatusOK, party)
}
