package getOccurrence

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"volunteerHub/internal/lib/api/request"
	"volunteerHub/internal/lib/api/response"
	"volunteerHub/internal/lib/logger/sl"
	"volunteerHub/internal/models"
	"volunteerHub/internal/service"

	"github.com/go-chi/render"
)

type OccurrenceResponse struct {
	response.Response
	Occurrence    *models.EventOccurrence `json:"occurrence,omitempty"`
	Remaining     int                     `json:"remaining"`
	Registrations []models.Registration   `json:"registrations"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=OccurrenceGetter
type OccurrenceGetter interface {
	GetOccurrence(ctx context.Context, key models.OccurrenceKey) (*models.EventOccurrence, []models.Registration, error)
}

func New(log *slog.Logger, getter OccurrenceGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.occurrence.getOccurrence.New"

		log := log.With(slog.String("op", op))

		key, err := request.OccurrenceKey(r)
		if err != nil {
			log.Error("invalid occurrence key", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		occ, regs, err := getter.GetOccurrence(r.Context(), key)
		if err != nil {
			if errors.Is(err, service.ErrOccurrenceNotFound) {
				log.Info("occurrence not found", slog.String("occurrence", key.String()))
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("occurrence not found"))
				return
			}

			log.Error("failed to get occurrence", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get occurrence"))
			return
		}

		render.JSON(w, r, OccurrenceResponse{
			Response:      response.OK(),
			Occurrence:    occ,
			Remaining:     occ.Remaining(),
			Registrations: regs,
		})
	}
}
