package api

import (
	"net/http"

	"github.com/DMarby/photo-gateway/internal/handler"
)

// Route describes an endpoint of the api
type Route struct {
	Route       string   `json:"route"`
	Methods     []string `json:"methods"`
	Description string   `json:"description"`
}

// Routes lists the endpoints returned by the discovery endpoint
var Routes = []Route{
	{
		Route:       "/",
		Methods:     []string{"GET"},
		Description: "Lists the available routes",
	},
	{
		Route:       "/picture/{provider}",
		Methods:     []string{"GET"},
		Description: "Returns a random photo from the given provider, query parameters override the provider defaults",
	},
}

func (a *API) indexHandler(w http.ResponseWriter, r *http.Request) *handler.Error {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	handler.WriteJSON(w, http.StatusOK, Routes)
	return nil
}
