package deleteOccurrence

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

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=OccurrenceDeleter
type OccurrenceDeleter interface {
	DeleteOccurrence(ctx context.Context, key models.OccurrenceKey) error
}

func New(log *slog.Logger, deleter OccurrenceDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.occurrence.deleteOccurrence.New"

		log := log.With(slog.String("op", op))

		key, err := request.OccurrenceKey(r)
		if err != nil {
			log.Error("invalid occurrence key", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		if err = deleter.DeleteOccurrence(r.Context(), key); err != nil {
			log.Error("failed to delete occurrence", sl.Err(err))

			switch {
			case errors.Is(err, service.ErrOccurrenceNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("occurrence not found"))
			case errors.Is(err, service.ErrOccurrenceInUse):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("occurrence has active registrations"))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to delete occurrence"))
			}
			return
		}

		log.Info("occurrence deleted", slog.String("occurrence", key.String()))

		render.JSON(w, r, response.OK())
	}
}
