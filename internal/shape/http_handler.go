package shape

import (
	"bookcatalog/internal/httpx"
	"net/http"
	"strconv"
)

type HTTPHandler struct{}

func NewHTTPHandler() *HTTPHandler {
	return &HTTPHandler{}
}

func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/shapes/{kind}/area", h.Area)
}

type areaResponse struct {
	Kind string  `json:"kind"`
	Area float64 `json:"area"`
}

// Area handles GET /v1/shapes/{kind}/area?<dimension>=<value>...
func (h *HTTPHandler) Area(w http.ResponseWriter, r *http.Request) {
	dims := make(map[string]float64)
	for key, values := range r.URL.Query() {
		if len(values) == 0 {
			continue
		}
		v, err := strconv.ParseFloat(values[0], 64)
		if err != nil {
			httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Dimensions must be numbers", []httpx.ErrorDetail{
				{Field: key, Message: "not a number"},
			})
			return
		}
		dims[key] = v
	}

	s, err := Parse(r.PathValue("kind"), dims)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_SHAPE", err.Error(), nil)
		return
	}
	area, err := FiniteArea(s)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_SHAPE", err.Error(), nil)
		return
	}

	httpx.JSONSuccess(w, r, areaResponse{Kind: s.Name(), Area: area}, nil)
}
