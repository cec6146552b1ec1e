package handlers

import (
	"net/http"
	"strconv"

	"github.com/alamlaptops/storefront/internal/errors"
	"github.com/alamlaptops/storefront/internal/utils/response"
	"github.com/google/uuid"
)

// SessionHeader carries the anonymous cart session id. The client generates
// it once and sends it on every cart and checkout call.
const SessionHeader = "X-Session-ID"

func sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		response.Error(w, errors.BadRequestError("Session ID is required"))

		return "", false
	}

	return id, true
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		response.Error(w, errors.BadRequestError("Invalid "+name))

		return uuid.Nil, false
	}

	return id, true
}

// pagination applies the storefront defaults: first page, 12 per page,
// capped at 100.
func pagination(r *http.Request) (page, size int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	size, _ = strconv.Atoi(r.URL.Query().Get("size"))

	if page < 1 {
		page = 1
	}

	if size < 1 {
		size = 12
	}

	if size > 100 {
		size = 100
	}

	return page, size
}
