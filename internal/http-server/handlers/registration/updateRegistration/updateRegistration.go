package updateRegistration

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

type UpdateRequest struct {
	ParticipantID      int    `json:"Participant_ID" form:"Participant_ID" validate:"required,gt=0"`
	EventID            int    `json:"Event_ID" form:"Event_ID" validate:"required,gt=0"`
	EventDateTimeStart string `json:"EventDateTimeStart" form:"EventDateTimeStart" validate:"required"`
	Action             string `json:"action" form:"action" validate:"required"`
}

type UpdateResponse struct {
	response.Response
	Registration *models.Registration `json:"registration,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=RegistrationUpdater
type RegistrationUpdater interface {
	UpdateRegistration(ctx context.Context, key models.RegistrationKey, action models.Action) (*models.Registration, error)
}

func New(log *slog.Logger, updater RegistrationUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.registration.updateRegistration.New"

		log := log.With(slog.String("op", op))

		var req UpdateRequest

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

		reg, err := updater.UpdateRegistration(r.Context(), key, models.Action(req.Action))
		if err != nil {
			log.Error("failed to update registration", sl.Err(err))

			switch {
			case errors.Is(err, service.ErrInvalidAction):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("action must be one of attended, absent, cancel"))
			case errors.Is(err, service.ErrMissingField):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(err.Error()))
			case errors.Is(err, service.ErrCapacityExceeded):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("event is full"))
			case errors.Is(err, service.ErrRegistrationNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("registration not found"))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to update registration"))
			}
			return
		}

		log.Info("registration updated", slog.String("status", string(reg.Status)))

		responseOK(w, r, reg)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, reg *models.Registration) {
	render.JSON(w, r, UpdateResponse{
		Response:     response.OK(),
		Registration: reg,
	})
}
