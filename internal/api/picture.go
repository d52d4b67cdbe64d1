package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/DMarby/photo-gateway/internal/handler"
	"github.com/DMarby/photo-gateway/internal/params"
	"github.com/DMarby/photo-gateway/internal/photo"
	"github.com/DMarby/photo-gateway/internal/provider"
	"github.com/gorilla/mux"
	"github.com/twmb/murmur3"
)

func (a *API) pictureHandler(w http.ResponseWriter, r *http.Request) *handler.Error {
	providerID := mux.Vars(r)["provider"]
	overrides := params.FromQuery(r.URL.Query())

	p, err := a.Fetcher.Fetch(r.Context(), providerID, overrides)
	if err != nil {
		switch {
		case errors.Is(err, provider.ErrUnknownProvider):
			return handler.BadRequest(fmt.Sprintf("Unknown provider: %s", providerID))
		case errors.Is(err, photo.ErrFetchFailed):
			return handler.BadGateway(err.Error())
		}

		a.logError(r, "error fetching photo", err)
		return handler.InternalServerError()
	}

	// Set the headers
	tag := etag(p.Data)
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("ETag", tag)

	if etagMatches(r.Header.Get("If-None-Match"), tag) {
		w.WriteHeader(http.StatusNotModified)
		return nil
	}

	w.Header().Set("Content-Type", p.MIMEType)
	w.Header().Set("Content-Length", strconv.Itoa(len(p.Data)))

	// Return the photo
	w.Write(p.Data)

	return nil
}

func etag(data []byte) string {
	return fmt.Sprintf("\"%016x\"", murmur3.Sum64(data))
}

// etagMatches reports whether an If-None-Match header matches the etag, using weak comparison
func etagMatches(ifNoneMatch string, tag string) bool {
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == tag {
			return true
		}
	}

	return false
}
