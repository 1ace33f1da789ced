package updateRegistration

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"volunteerHub/internal/http-server/handlers/registration/updateRegistration/mocks"
	"volunteerHub/internal/lib/logger/handlers/slogdiscard"
	"volunteerHub/internal/models"
	"volunteerHub/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testKey = models.RegistrationKey{
	ParticipantID: 12,
	EventID:       3,
	Start:         time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
}

func body(action string) string {
	return `{"Participant_ID": 12, "Event_ID": 3, "EventDateTimeStart": "2025-06-01T09:00:00Z", "action": "` + action + `"}`
}

func TestUpdateRegistrationHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	cancelled := &models.Registration{
		RegistrationKey: testKey,
		Status:          models.StatusCancelled,
		CreatedAt:       time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC),
	}

	testCases := []struct {
		name           string
		method         string
		path           string
		requestBody    string
		mockSetup      func(m *mocks.RegistrationUpdater)
		expectedStatus int
		expectedBody   string
		checkBody      func(t *testing.T, body string)
	}{
		{
			name:        "Cancel",
			requestBody: body("cancel"),
			mockSetup: func(m *mocks.RegistrationUpdater) {
				m.On("UpdateRegistration", mock.Anything, testKey, models.ActionCancel).Return(cancelled, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{
				"status": "OK",
				"registration": {
					"Participant_ID": 12,
					"Event_ID": 3,
					"EventDateTimeStart": "2025-06-01T09:00:00Z",
					"status": "cancelled",
					"created_at": "2025-05-01T08:00:00Z",
					"attended": false
				}
			}`,
		},
		{
			name:        "Attended via PATCH",
			method:      http.MethodPatch,
			path:        "/registration",
			requestBody: body("attended"),
			mockSetup: func(m *mocks.RegistrationUpdater) {
				attended := *cancelled
				attended.Status = models.StatusAttended
				m.On("UpdateRegistration", mock.Anything, testKey, models.ActionAttended).Return(&attended, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"status":"attended"`)
				assert.Contains(t, body, `"attended":true`)
			},
		},
		{
			name:        "Invalid action",
			requestBody: body("bogus"),
			mockSetup: func(m *mocks.RegistrationUpdater) {
				m.On("UpdateRegistration", mock.Anything, testKey, models.Action("bogus")).Return(nil, service.ErrInvalidAction)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"action must be one of attended, absent, cancel"}`,
		},
		{
			name:           "Missing action",
			requestBody:    `{"Participant_ID": 12, "Event_ID": 3, "EventDateTimeStart": "2025-06-01T09:00:00Z"}`,
			mockSetup:      func(m *mocks.RegistrationUpdater) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "field Action is a required field")
			},
		},
		{
			name:           "Invalid JSON",
			requestBody:    `{`,
			mockSetup:      func(m *mocks.RegistrationUpdater) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
		{
			name:        "Registration not found",
			requestBody: body("absent"),
			mockSetup: func(m *mocks.RegistrationUpdater) {
				m.On("UpdateRegistration", mock.Anything, testKey, models.ActionAbsent).Return(nil, service.ErrRegistrationNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"registration not found"}`,
		},
		{
			name:        "Reinstate into full occurrence",
			requestBody: body("attended"),
			mockSetup: func(m *mocks.RegistrationUpdater) {
				m.On("UpdateRegistration", mock.Anything, testKey, models.ActionAttended).Return(nil, service.ErrCapacityExceeded)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"event is full"}`,
		},
		{
			name:        "Store error",
			requestBody: body("cancel"),
			mockSetup: func(m *mocks.RegistrationUpdater) {
				m.On("UpdateRegistration", mock.Anything, testKey, models.ActionCancel).
					Return(nil, &service.StoreError{Op: "test", Err: errors.New("deadlock detected")})
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to update registration"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			updater := mocks.NewRegistrationUpdater(t)
			tc.mockSetup(updater)

			handler := New(logger, updater)

			router := chi.NewRouter()
			router.Post("/registration/update", handler)
			router.Patch("/registration", handler)

			method, path := tc.method, tc.path
			if method == "" {
				method, path = http.MethodPost, "/registration/update"
			}

			req, err := http.NewRequest(method, path, bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
			} else if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.String())
			}
		})
	}
}
