package deleteRegistration

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
	"github.com/go-playground/validator/v10"
)

type DeleteRequest struct {
	ParticipantID      int    `json:"Participant_ID" form:"Participant_ID" validate:"required,gt=0"`
	EventID            int    `json:"Event_ID" form:"Event_ID" validate:"required,gt=0"`
	EventDateTimeStart string `json:"EventDateTimeStart" form:"EventDateTimeStart" validate:"required"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=RegistrationRemover
type RegistrationRemover interface {
	RemoveRegistration(ctx context.Context, key models.RegistrationKey) error
}

// New serves the administrative hard delete of a registration.
func New(log *slog.Logger, remover RegistrationRemover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.registration.deleteRegistration.New"

		log := log.With(slog.String("op", op))

		var req DeleteRequest

		err := request.Decode(r, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err = validator.New().Struct(req); err != nil {
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Invalid(err))
			return
		}

		start, err := models.ParseTime(req.EventDateTimeStart)
		if err != nil {
			log.Error("invalid occurrence start", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid EventDateTimeStart format"))
			return
		}

		key := models.RegistrationKey{
			ParticipantID: req.ParticipantID,
			EventID:       req.EventID,
			Start:         start,
		}

		if err = remover.RemoveRegistration(r.Context(), key); err != nil {
			log.Error("failed to remove registration", sl.Err(err))

			switch {
			case errors.Is(err, service.ErrMissingField):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(err.Error()))
			case errors.Is(err, service.ErrRegistrationNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("registration not found"))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to remove registration"))
			}
			return
		}

		log.Info("registration removed",
			slog.Int("participant_id", key.ParticipantID),
			slog.Int("event_id", key.EventID),
		)

		render.JSON(w, r, response.OK())
	}
}
