package createRegistration

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

type RegistrationRequest struct {
	ParticipantID      int    `json:"Participant_ID" form:"Participant_ID" validate:"required,gt=0"`
	EventID            int    `json:"Event_ID" form:"Event_ID" validate:"required,gt=0"`
	EventDateTimeStart string `json:"EventDateTimeStart" form:"EventDateTimeStart" validate:"required"`
}

type RegistrationResponse struct {
	response.Response
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Registrar
type Registrar interface {
	Register(ctx context.Context, key models.RegistrationKey) error
}

func New(log *slog.Logger, registrar Registrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.registration.createRegistration.New"

		log := log.With(slog.String("op", op))

		var req RegistrationRequest

		err := request.Decode(r, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.Any("request", req))

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

		err = registrar.Register(r.Context(), key)
		if err != nil {
			log.Error("failed to register", sl.Err(err))

			switch {
			case errors.Is(err, service.ErrMissingField):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(err.Error()))
			case errors.Is(err, service.ErrDeadlineExpired):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("registration deadline has passed"))
			case errors.Is(err, service.ErrCapacityExceeded):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("event is full"))
			case errors.Is(err, service.ErrOccurrenceNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("occurrence not found"))
			case errors.Is(err, service.ErrDuplicateRegistration):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("participant is already registered for this occurrence"))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to register"))
			}
			return
		}

		log.Info("participant registered",
			slog.Int("participant_id", key.ParticipantID),
			slog.Int("event_id", key.EventID),
		)

		responseOK(w, r)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, RegistrationResponse{
		Response: response.OK(),
	})
}
