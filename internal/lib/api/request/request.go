package request

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"volunteerHub/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// Decode reads an HTML form post or, for any other content type, a JSON body.
func Decode(r *http.Request, v any) error {
	if render.GetRequestContentType(r) == render.ContentTypeForm {
		return render.DecodeForm(r.Body, v)
	}

	err := render.DecodeJSON(r.Body, v)
	if err == io.EOF {
		return fmt.Errorf("empty request body")
	}

	return err
}

// OccurrenceKey reads the {eventID} and {start} URL parameters.
func OccurrenceKey(r *http.Request) (models.OccurrenceKey, error) {
	eventIDStr := chi.URLParam(r, "eventID")
	if eventIDStr == "" {
		return models.OccurrenceKey{}, fmt.Errorf("event id is required")
	}

	eventID, err := strconv.Atoi(eventIDStr)
	if err != nil || eventID <= 0 {
		return models.OccurrenceKey{}, fmt.Errorf("invalid event id format")
	}

	startStr, err := url.PathUnescape(chi.URLParam(r, "start"))
	if err != nil || startStr == "" {
		return models.OccurrenceKey{}, fmt.Errorf("occurrence start is required")
	}

	start, err := models.ParseTime(startStr)
	if err != nil {
		return models.OccurrenceKey{}, fmt.Errorf("invalid occurrence start format")
	}

	return models.OccurrenceKey{EventID: eventID, Start: start}, nil
}
