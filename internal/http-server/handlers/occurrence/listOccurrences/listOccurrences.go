package listOccurrences

import (
	"context"
	"log/slog"
	"net/http"

	"volunteerHub/internal/lib/api/response"
	"volunteerHub/internal/lib/logger/sl"
	"volunteerHub/internal/models"

	"github.com/go-chi/render"
)

type ListResponse struct {
	response.Response
	Occurrences []models.EventOccurrence `json:"occurrences"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=OccurrencesLister
type OccurrencesLister interface {
	ListOccurrences(ctx context.Context) ([]models.EventOccurrence, error)
}

func New(log *slog.Logger, lister OccurrencesLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.occurrence.listOccurrences.New"

		log := log.With(slog.String("op", op))

		occs, err := lister.ListOccurrences(r.Context())
		if err != nil {
			log.Error("failed to list occurrences", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list occurrences"))
			return
		}

		log.Debug("occurrences listed", slog.Int("count", len(occs)))

		render.JSON(w, r, ListResponse{
			Response:    response.OK(),
			Occurrences: occs,
		})
	}
}
