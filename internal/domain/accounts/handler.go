package accounts

import (
	"net/http"
	"time"

	"pet-dispatch/internal/middleware"
	"pet-dispatch/internal/platform/respond"
	"pet-dispatch/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/register", registerHandler(svc))
	r.Get("/me", meHandler(svc))
}

type accountResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      auth.Role `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// registerHandler godoc
// @Summary Registrar cuenta
// @Description Crea una cuenta con rol `user` (default) o `guide`. Los tokens se emiten fuera de este servicio.
// @Tags accounts
// @Accept json
// @Produce json
// @Param payload body RegisterInput true "Datos de registro; password y password2 deben coincidir"
// @Success 201 {object} accountResponse
// @Failure 400 {object} map[string]string "validación / username ya existe"
// @Router /register [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in RegisterInput
		if err := respond.DecodeJSON(r, &in); err != nil {
			respond.Error(w, err)
			return
		}

		a, err := svc.Register(r.Context(), in)
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusCreated, toAccountResponse(a))
	}
}

func meHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.CurrentUser(r.Context())
		if !ok {
			respond.Unauthorized(w)
			return
		}

		a, err := svc.GetByID(r.Context(), claims.UserID)
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, toAccountResponse(a))
	}
}

func toAccountResponse(a Account) accountResponse {
	return accountResponse{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
	}
}
