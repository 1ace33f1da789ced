package createOccurrence

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"volunteerHub/internal/lib/api/request"
	"volunteerHub/internal/lib/api/response"
	"volunteerHub/internal/lib/logger/sl"
	"volunteerHub/internal/models"
	"volunteerHub/internal/service"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type OccurrenceRequest struct {
	EventID              int    `json:"Event_ID" form:"Event_ID" validate:"required,gt=0"`
	EventDateTimeStart   string `json:"EventDateTimeStart" form:"EventDateTimeStart" validate:"required"`
	Capacity             int    `json:"Capacity" form:"Capacity" validate:"required,gt=0"`
	RegistrationDeadline string `json:"RegistrationDeadline,omitempty" form:"RegistrationDeadline"`
	Location             string `json:"Location,omitempty" form:"Location"`
}

type OccurrenceResponse struct {
	response.Response
	Occurrence *models.EventOccurrence `json:"occurrence,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=OccurrenceCreator
type OccurrenceCreator interface {
	CreateOccurrence(ctx context.Context, occ models.EventOccurrence) (*models.EventOccurrence, error)
}

func New(log *slog.Logger, creator OccurrenceCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.occurrence.createOccurrence.New"

		log := log.With(slog.String("op", op))

		var req OccurrenceRequest

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

		occ, err := toOccurrence(req)
		if err != nil {
			log.Error("invalid time value", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		created, err := creator.CreateOccurrence(r.Context(), occ)
		if err != nil {
			log.Error("failed to create occurrence", sl.Err(err))

			switch {
			case errors.Is(err, service.ErrMissingField), errors.Is(err, service.ErrInvalidOccurrence):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(err.Error()))
			case errors.Is(err, service.ErrOccurrenceExists):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("occurrence already exists"))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to create occurrence"))
			}
			return
		}

		log.Info("occurrence created", slog.String("occurrence", created.String()))

		render.JSON(w, r, OccurrenceResponse{
			Response:   response.OK(),
			Occurrence: created,
		})
	}
}

func toOccurrence(req OccurrenceRequest) (models.EventOccurrence, error) {
	start, err := models.ParseTime(req.EventDateTimeStart)
	if err != nil {
		return models.EventOccurrence{}, errors.New("invalid EventDateTimeStart format")
	}

	var deadline *time.Time
	if req.RegistrationDeadline != "" {
		d, err := models.ParseTime(req.RegistrationDeadline)
		if err != nil {
			return models.EventOccurrence{}, errors.New("invalid RegistrationDeadline format")
		}
		deadline = &d
	}

	return models.EventOccurrence{
		OccurrenceKey: models.OccurrenceKey{EventID: req.EventID, Start: start},
		Capacity:      req.Capacity,
		Deadline:      deadline,
		Location:      req.Location,
	}, nil
}
