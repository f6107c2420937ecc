package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nosmoke-health/nosmoke/internal/app/progress"
	"github.com/nosmoke-health/nosmoke/internal/domain"
	"github.com/nosmoke-health/nosmoke/internal/infra/metrics"
	"github.com/nosmoke-health/nosmoke/internal/security"
)

// ─── Auth endpoints ─────────────────────────────────────────────────────────

type registerRequest struct {
	Email             string     `json:"email" validate:"required,email"`
	Password          string     `json:"password" validate:"required,min=8"`
	Name              string     `json:"name" validate:"required"`
	CigarettesPerDay  int        `json:"cigarettes_per_day"`
	CostPerPack       float64    `json:"cost_per_pack"`
	CigarettesPerPack int        `json:"cigarettes_per_pack"`
	QuitDate          *time.Time `json:"quit_date"`
}

type tokenResponse struct {
	AccessToken string             `json:"access_token"`
	TokenType   string             `json:"token_type"`
	User        domain.UserProfile `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := s.db.GetUserByEmail(req.Email); err == nil {
		writeDomainError(w, domain.ErrEmailTaken)
		return
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	now := time.Now().UTC()
	user := domain.UserProfile{
		ID:                uuid.NewString(),
		Email:             strings.ToLower(req.Email),
		Name:              req.Name,
		PasswordHash:      hash,
		CigarettesPerDay:  req.CigarettesPerDay,
		CostPerPack:       req.CostPerPack,
		CigarettesPerPack: req.CigarettesPerPack,
		QuitDate:          req.QuitDate,
		Subscription:      domain.TierFree,
		CreatedAt:         now,
	}
	applyBaselineDefaults(&user)
	if user.QuitDate == nil {
		// Quit date anchors every elapsed-time metric; default to the
		// registration day.
		quit := progress.DayStart(now)
		user.QuitDate = &quit
	}
	if err := user.ValidateBaseline(); err != nil {
		writeDomainError(w, err)
		return
	}

	if err := s.db.InsertUser(user); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	metrics.Registrations.Inc()

	s.writeToken(w, user)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.db.GetUserByEmail(strings.ToLower(req.Email))
	if err != nil || !security.VerifyPassword(req.Password, user.PasswordHash) {
		writeDomainError(w, domain.ErrInvalidCredentials)
		return
	}

	metrics.Logins.WithLabelValues("password").Inc()
	s.writeToken(w, *user)
}

type telegramAuthRequest struct {
	InitData   string `json:"init_data" validate:"required"`
	TelegramID int64  `json:"telegram_id" validate:"required"`
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name"`
	Username   string `json:"username"`
}

func (s *Server) handleTelegramAuth(w http.ResponseWriter, r *http.Request) {
	var req telegramAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if s.botToken != "" {
		if err := security.VerifyTelegramInitData(req.InitData, s.botToken); err != nil {
			writeDomainError(w, err)
			return
		}
	}

	user, err := s.db.GetUserByTelegramID(req.TelegramID)
	if err != nil {
		now := time.Now().UTC()
		quit := progress.DayStart(now)
		created := domain.UserProfile{
			ID:                uuid.NewString(),
			TelegramID:        req.TelegramID,
			Name:              strings.TrimSpace(req.FirstName + " " + req.LastName),
			CigarettesPerDay:  domain.DefaultCigarettesPerDay,
			CostPerPack:       domain.DefaultCostPerPack,
			CigarettesPerPack: domain.DefaultCigarettesPerPack,
			QuitDate:          &quit,
			Subscription:      domain.TierFree,
			CreatedAt:         now,
		}
		if err := s.db.InsertUser(created); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		metrics.Registrations.Inc()
		user = &created
	}

	metrics.Logins.WithLabelValues("telegram").Inc()
	s.writeToken(w, *user)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, caller(r))
}

func (s *Server) writeToken(w http.ResponseWriter, user domain.UserProfile) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}

// applyBaselineDefaults fills zeroed baseline fields with the defaults.
func applyBaselineDefaults(u *domain.UserProfile) {
	if u.CigarettesPerDay == 0 {
		u.CigarettesPerDay = domain.DefaultCigarettesPerDay
	}
	if u.CostPerPack == 0 {
		u.CostPerPack = domain.DefaultCostPerPack
	}
	if u.CigarettesPerPack == 0 {
		u.CigarettesPerPack = domain.DefaultCigarettesPerPack
	}
}
