package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stacksolutions/estimator/internal/model"
	"github.com/stacksolutions/estimator/internal/ratefile"
	"github.com/stacksolutions/estimator/internal/repository"
	"github.com/stacksolutions/estimator/internal/service"
)

type mockConsultationService struct {
	availableDatesFunc func(from time.Time, days int) []model.AvailableDate
	bookFunc           func(ctx context.Context, input model.ConsultationBookingInput) (*model.ConsultationBooking, error)
	openSlotsFunc      func(ctx context.Context, date string) ([]string, error)
}

func (m *mockConsultationService) AvailableDates(from time.Time, days int) []model.AvailableDate {
	if m.availableDatesFunc != nil {
		return m.availableDatesFunc(from, days)
	}
	return []model.AvailableDate{}
}

func (m *mockConsultationService) Book(ctx context.Context, input model.ConsultationBookingInput) (*model.ConsultationBooking, error) {
	if m.bookFunc != nil {
		return m.bookFunc(ctx, input)
	}
	return &model.ConsultationBooking{ID: "b1", Date: input.Date, Slot: input.Slot}, nil
}

func (m *mockConsultationService) ListSlots() []string {
	return []string{"09:00 AM", "10:00 AM"}
}

func (m *mockConsultationService) OpenSlots(ctx context.Context, date string) ([]string, error) {
	if m.openSlotsFunc != nil {
		return m.openSlotsFunc(ctx, date)
	}
	return m.ListSlots(), nil
}

const validBookingBody = `{
	"name": "Ana Pérez",
	"email": "ana@example.com",
	"phone": "+1 555 123 4567",
	"company": "Acme",
	"project_type": "web",
	"budget": "25k-50k",
	"date": "2024-01-16",
	"slot": "10:00 AM",
	"meeting_type": "video"
}`

func TestConsultationHandler_Dates(t *testing.T) {
	var gotDays int
	h := NewConsultationHandler(&mockConsultationService{
		availableDatesFunc: func(from time.Time, days int) []model.AvailableDate {
			gotDays = days
			return []model.AvailableDate{{Value: "2024-01-16", Label: "Tuesday, Jan 16"}}
		},
	})

	rec := httptest.NewRecorder()
	h.Dates(rec, httptest.NewRequest(http.MethodGet, "/api/consultation/dates?days=14", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotDays != 14 {
		t.Errorf("expected days=14, got %d", gotDays)
	}
	var resp datesResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Dates) != 1 || resp.Dates[0].Label != "Tuesday, Jan 16" {
		t.Errorf("unexpected dates %+v", resp.Dates)
	}
	if len(resp.Slots) != 2 {
		t.Errorf("expected slots in response, got %v", resp.Slots)
	}
}

func TestConsultationHandler_Dates_BadDays(t *testing.T) {
	h := NewConsultationHandler(&mockConsultationService{})

	for _, q := range []string{"days=0", "days=-1", "days=abc"} {
		rec := httptest.NewRecorder()
		h.Dates(rec, httptest.NewRequest(http.MethodGet, "/api/consultation/dates?"+q, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", q, rec.Code)
		}
	}
}

func TestConsultationHandler_Book_Success(t *testing.T) {
	var captured model.ConsultationBookingInput
	h := NewConsultationHandler(&mockConsultationService{
		bookFunc: func(ctx context.Context, input model.ConsultationBookingInput) (*model.ConsultationBooking, error) {
			captured = input
			return &model.ConsultationBooking{ID: "b1"}, nil
		},
	})

	rec := httptest.NewRecorder()
	h.Book(rec, httptest.NewRequest(http.MethodPost, "/api/consultation/bookings", strings.NewReader(validBookingBody)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d, body: %s", rec.Code, rec.Body.String())
	}
	if captured.Email != "ana@example.com" || captured.MeetingType != "video" {
		t.Errorf("unexpected input %+v", captured)
	}
}

func TestConsultationHandler_Book_Validation(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value any
		tag   string
	}{
		{"short name", "name", "A", "min"},
		{"short name padded with spaces", "name", "  a  ", "min"},
		{"bad email", "email", "not-an-email", "email"},
		{"short phone", "phone", "555", "min"},
		{"letters in phone", "phone", "call me maybe", "phone"},
		{"missing budget", "budget", "", "required"},
		{"bad date", "date", "16/01/2024", "datetime"},
		{"bad meeting type", "meeting_type", "carrier pigeon", "oneof"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]any
			_ = json.Unmarshal([]byte(validBookingBody), &body)
			body[tt.field] = tt.value
			raw, _ := json.Marshal(body)

			h := NewConsultationHandler(&mockConsultationService{
				bookFunc: func(ctx context.Context, input model.ConsultationBookingInput) (*model.ConsultationBooking, error) {
					t.Error("expected service not to be called")
					return nil, nil
				},
			})
			rec := httptest.NewRecorder()
			h.Book(rec, httptest.NewRequest(http.MethodPost, "/api/consultation/bookings", strings.NewReader(string(raw))))

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if resp := decodeError(t, rec); resp.Fields[tt.field] != tt.tag {
				t.Errorf("expected %s to fail %q, got %v", tt.field, tt.tag, resp.Fields)
			}
		})
	}
}

func TestConsultationHandler_Book_ServiceErrors(t *testing.T) {
	tests := []struct {
		err      error
		wantCode int
		wantErr  string
	}{
		{service.ErrUnknownSlot, http.StatusUnprocessableEntity, "unknown_slot"},
		{service.ErrUnavailableDate, http.StatusUnprocessableEntity, "unavailable_date"},
		{service.ErrSlotTaken, http.StatusConflict, "slot_taken"},
		{errors.New("db connection lost"), http.StatusInternalServerError, "booking_failed"},
	}
	for _, tt := range tests {
		t.Run(tt.wantErr, func(t *testing.T) {
			h := NewConsultationHandler(&mockConsultationService{
				bookFunc: func(ctx context.Context, input model.ConsultationBookingInput) (*model.ConsultationBooking, error) {
					return nil, tt.err
				},
			})
			rec := httptest.NewRecorder()
			h.Book(rec, httptest.NewRequest(http.MethodPost, "/api/consultation/bookings", strings.NewReader(validBookingBody)))

			if rec.Code != tt.wantCode {
				t.Errorf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			if resp := decodeError(t, rec); resp.Error != tt.wantErr {
				t.Errorf("expected error=%s, got %q", tt.wantErr, resp.Error)
			}
		})
	}
}

func TestConsultationHandler_Book_TrimsInput(t *testing.T) {
	var captured model.ConsultationBookingInput
	h := NewConsultationHandler(&mockConsultationService{
		bookFunc: func(ctx context.Context, input model.ConsultationBookingInput) (*model.ConsultationBooking, error) {
			captured = input
			return &model.ConsultationBooking{ID: "b1"}, nil
		},
	})
	body := strings.Replace(validBookingBody, `"Ana Pérez"`, `"  Ana Pérez  "`, 1)

	rec := httptest.NewRecorder()
	h.Book(rec, httptest.NewRequest(http.MethodPost, "/api/consultation/bookings", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d, body: %s", rec.Code, rec.Body.String())
	}
	if captured.Name != "Ana Pérez" {
		t.Errorf("expected trimmed name, got %q", captured.Name)
	}
}

func TestConsultationHandler_Slots(t *testing.T) {
	var gotDate string
	h := NewConsultationHandler(&mockConsultationService{
		openSlotsFunc: func(ctx context.Context, date string) ([]string, error) {
			gotDate = date
			return []string{"11:00 AM"}, nil
		},
	})

	rec := httptest.NewRecorder()
	h.Slots(rec, httptest.NewRequest(http.MethodGet, "/api/consultation/slots?date=2024-01-16", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotDate != "2024-01-16" {
		t.Errorf("expected date passed through, got %q", gotDate)
	}
	var resp slotsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Date != "2024-01-16" || len(resp.Slots) != 1 || resp.Slots[0] != "11:00 AM" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestConsultationHandler_Slots_HidesBookedEndToEnd(t *testing.T) {
	svc := service.NewConsultationService(repository.NewMemoryBookingRepository())
	h := NewConsultationHandler(svc)

	dates := svc.AvailableDates(time.Now(), 0)
	date := dates[0].Value
	if _, err := svc.Book(context.Background(), model.ConsultationBookingInput{
		Name: "Ana", Email: "ana@example.com", Phone: "5551234567", ProjectType: "web",
		Budget: "discuss", Date: date, Slot: "09:00 AM", MeetingType: "phone",
	}); err != nil {
		t.Fatalf("book: %v", err)
	}

	rec := httptest.NewRecorder()
	h.Slots(rec, httptest.NewRequest(http.MethodGet, "/api/consultation/slots?date="+date, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body: %s", rec.Code, rec.Body.String())
	}
	var resp slotsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Slots) != len(model.ConsultationSlots)-1 || resp.Slots[0] != "10:00 AM" {
		t.Errorf("expected 09:00 AM hidden, got %v", resp.Slots)
	}
}

func TestConsultationHandler_Slots_Errors(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		err      error
		wantCode int
		wantErr  string
	}{
		{"missing date", "", nil, http.StatusBadRequest, "invalid_input"},
		{"malformed date", "?date=16/01/2024", nil, http.StatusBadRequest, "invalid_input"},
		{"unavailable", "?date=2024-01-20", service.ErrUnavailableDate, http.StatusUnprocessableEntity, "unavailable_date"},
		{"repository failure", "?date=2024-01-16", errors.New("db connection lost"), http.StatusInternalServerError, "slots_failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewConsultationHandler(&mockConsultationService{
				openSlotsFunc: func(ctx context.Context, date string) ([]string, error) {
					return nil, tt.err
				},
			})
			rec := httptest.NewRecorder()
			h.Slots(rec, httptest.NewRequest(http.MethodGet, "/api/consultation/slots"+tt.query, nil))

			if rec.Code != tt.wantCode {
				t.Errorf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			if resp := decodeError(t, rec); resp.Error != tt.wantErr {
				t.Errorf("expected error=%s, got %q", tt.wantErr, resp.Error)
			}
		})
	}
}

func TestCatalogHandler_Catalog(t *testing.T) {
	h := NewCatalogHandler(service.NewCatalogService(ratefile.NewStore(nil)))

	rec := httptest.NewRecorder()
	h.Catalog(rec, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var c model.Catalog
	if err := json.NewDecoder(rec.Body).Decode(&c); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(c.ProjectTypes) != 5 || c.ROICategories[2].ID != "ai-automation" {
		t.Errorf("unexpected catalog %+v", c)
	}
}
