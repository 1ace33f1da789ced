package request

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ParticipantID int    `json:"Participant_ID" form:"Participant_ID"`
	Start         string `json:"EventDateTimeStart" form:"EventDateTimeStart"`
}

func TestDecode_JSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"Participant_ID": 5, "EventDateTimeStart": "2025-06-01 09:00:00"}`))
	req.Header.Set("Content-Type", "application/json")

	var got sample
	require.NoError(t, Decode(req, &got))
	assert.Equal(t, sample{ParticipantID: 5, Start: "2025-06-01 09:00:00"}, got)
}

func TestDecode_Form(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("Participant_ID=5&EventDateTimeStart=2025-06-01+09%3A00%3A00"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var got sample
	require.NoError(t, Decode(req, &got))
	assert.Equal(t, sample{ParticipantID: 5, Start: "2025-06-01 09:00:00"}, got)
}

func TestDecode_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))

	var got sample
	assert.Error(t, Decode(req, &got))
}

func TestOccurrenceKey(t *testing.T) {
	testCases := []struct {
		name    string
		path    string
		want    time.Time
		wantErr string
	}{
		{
			name: "rfc3339",
			path: "/occurrences/3/2025-06-01T09:00:00Z",
			want: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "escaped space",
			path: "/occurrences/3/2025-06-01%2009:00:00",
			want: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			name:    "bad event id",
			path:    "/occurrences/abc/2025-06-01T09:00:00Z",
			wantErr: "invalid event id format",
		},
		{
			name:    "bad start",
			path:    "/occurrences/3/yesterday",
			wantErr: "invalid occurrence start format",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var (
				gotErr error
				gotID  int
				gotAt  time.Time
			)

			router := chi.NewRouter()
			router.Get("/occurrences/{eventID}/{start}", func(w http.ResponseWriter, r *http.Request) {
				key, err := OccurrenceKey(r)
				gotErr, gotID, gotAt = err, key.EventID, key.Start
			})

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tc.path, nil))

			if tc.wantErr != "" {
				require.Error(t, gotErr)
				assert.Equal(t, tc.wantErr, gotErr.Error())
				return
			}

			require.NoError(t, gotErr)
			assert.Equal(t, 3, gotID)
			assert.True(t, tc.want.Equal(gotAt))
		})
	}
}
