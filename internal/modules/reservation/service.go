// Package reservation validates and submits table reservations through the
// order API, including the email verification-code round trip.
package reservation

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"tablebite.com/app/internal/modules/storeapi"
	"tablebite.com/app/internal/modules/verify"
	"tablebite.com/app/internal/shared/apperr"
)

// codeCooldown is the minimum gap between verification-code emails per
// address.
const codeCooldown = 60 * time.Second

var codePattern = regexp.MustCompile(`^\d{6}$`)

// API is the slice of the order API reservations need. Satisfied by
// *storeapi.Client.
type API interface {
	SendVerificationCode(ctx context.Context, email, recaptchaToken string) error
	CreateReservation(ctx context.Context, req storeapi.ReservationRequest) error
}

type Service struct {
	api      API
	verifier verify.Verifier

	mu       sync.Mutex
	lastSend map[string]time.Time
	now      func() time.Time
}

func NewService(api API, verifier verify.Verifier) *Service {
	return &Service{
		api:      api,
		verifier: verifier,
		lastSend: map[string]time.Time{},
		now:      time.Now,
	}
}

// SendCode emails a verification code to the guest, at most once per
// cooldown window per address.
func (s *Service) SendCode(ctx context.Context, email, token string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if !strings.Contains(email, "@") {
		return apperr.InvalidErr("checkout.emailRequired", nil)
	}

	s.mu.Lock()
	if last, ok := s.lastSend[email]; ok && s.now().Sub(last) < codeCooldown {
		s.mu.Unlock()
		return apperr.InvalidErr("reservation.codeCooldown", nil)
	}
	s.mu.Unlock()

	if err := s.verifier.Verify(ctx, token, "send_verification_code"); err != nil {
		return apperr.UnavailableErr("reservation.errorMessage", err)
	}
	if err := s.api.SendVerificationCode(ctx, email, token); err != nil {
		return apperr.UnavailableErr("reservation.errorMessage", err)
	}

	s.mu.Lock()
	s.lastSend[email] = s.now()
	s.mu.Unlock()
	return nil
}

// Request is a reservation as submitted by the guest.
type Request struct {
	GuestName        string `json:"guest_name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	VerificationCode string `json:"verification_code" binding:"required"`
	Phone            string `json:"phone" binding:"required"`
	GuestCount       int    `json:"guest_count" binding:"required,min=1"`
	// ReservationTime is RFC 3339 with offset, e.g. 2026-09-01T19:30:00+00:00.
	ReservationTime string `json:"reservation_time" binding:"required"`
	Notes           string `json:"notes"`
}

// Create validates the request against the store's opening hours, checks the
// bot-verification token and books the reservation. Validation failures never
// reach the API.
func (s *Service) Create(ctx context.Context, store *storeapi.Store, req Request, token string) error {
	if fields := s.validate(req); len(fields) > 0 {
		return apperr.InvalidErr("reservation.missingFields", fields)
	}
	if !codePattern.MatchString(req.VerificationCode) {
		return apperr.InvalidErr("reservation.invalidVerificationCode", nil)
	}

	at, err := time.Parse(time.RFC3339, req.ReservationTime)
	if err != nil {
		return apperr.InvalidErr("reservation.missingFields", map[string]string{"reservation_time": "invalid"})
	}
	if !withinHours(store.StoreInfo.Hours, at) {
		return apperr.InvalidErr("reservation.outsideHours", nil)
	}

	if err := s.verifier.Verify(ctx, token, "create_reservation"); err != nil {
		return apperr.UnavailableErr("reservation.errorMessage", err)
	}

	err = s.api.CreateReservation(ctx, storeapi.ReservationRequest{
		StoreID:          store.ID,
		GuestName:        req.GuestName,
		Email:            req.Email,
		VerificationCode: req.VerificationCode,
		Phone:            req.Phone,
		GuestCount:       req.GuestCount,
		ReservationTime:  req.ReservationTime,
		Notes:            req.Notes,
		RecaptchaToken:   token,
	})
	if err != nil {
		if errors.Is(err, storeapi.ErrInvalidVerificationCode) {
			return apperr.InvalidErr("reservation.invalidVerificationCode", nil)
		}
		return apperr.UnavailableErr("reservation.errorMessage", err)
	}
	return nil
}

func (s *Service) validate(req Request) map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(req.GuestName) == "" {
		fields["guest_name"] = "required"
	}
	if !strings.Contains(req.Email, "@") {
		fields["email"] = "required"
	}
	if strings.TrimSpace(req.VerificationCode) == "" {
		fields["verification_code"] = "required"
	}
	if strings.TrimSpace(req.Phone) == "" {
		fields["phone"] = "required"
	}
	if req.GuestCount < 1 {
		fields["guest_count"] = "required"
	}
	if strings.TrimSpace(req.ReservationTime) == "" {
		fields["reservation_time"] = "required"
	}
	return fields
}

// withinHours checks the reservation instant against the store's opening
// window for that weekday ("Mon" -> "09:00-22:00"). Stores without hours
// accept any time.
func withinHours(hours map[string]string, at time.Time) bool {
	if len(hours) == 0 {
		return true
	}
	day := at.Weekday().String()[:3]
	window, ok := hours[day]
	if !ok {
		return false
	}
	openM, closeM, ok := parseWindow(window)
	if !ok {
		return true
	}
	minutes := at.Hour()*60 + at.Minute()
	return minutes >= openM && minutes <= closeM
}

func parseWindow(window string) (openM, closeM int, ok bool) {
	parts := strings.SplitN(window, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	openM, ok1 := parseClock(parts[0])
	closeM, ok2 := parseClock(parts[1])
	return openM, closeM, ok1 && ok2
}

func parseClock(s string) (int, bool) {
	hm := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(hm) != 2 {
		return 0, false
	}
	h, err1 := strconv.Atoi(hm[0])
	m, err2 := strconv.Atoi(hm[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
