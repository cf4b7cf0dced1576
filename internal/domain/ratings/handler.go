package ratings

import (
	"net/http"
	"time"

	"pet-dispatch/internal/middleware"
	"pet-dispatch/internal/platform/respond"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta rutas públicas de guías.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/guides/{guideID}/profile", guideProfileHandler(svc))
}

// RequestRoutes se monta dentro del subrouter /requests.
func RequestRoutes(svc *Service) func(chi.Router) {
	return func(r chi.Router) {
		r.Post("/{requestID}/rating", rateRequestHandler(svc))
	}
}

type ratingResponse struct {
	ID        string    `json:"id"`
	RequestID string    `json:"request_id"`
	UserID    string    `json:"user_id"`
	GuideID   string    `json:"guide_id"`
	Stars     int       `json:"stars"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type guideProfileResponse struct {
	GuideID     string  `json:"guide_id"`
	Username    string  `json:"username"`
	FullName    string  `json:"full_name"`
	RatingAvg   float64 `json:"rating_avg"`
	RatingCount int     `json:"rating_count"`
}

// rateRequestHandler godoc
// @Summary Calificar servicio
// @Description El dueño califica (1 a 5 estrellas) una solicitud entregada. Una sola calificación por solicitud. Chequeos en orden: dueño (403), entregada, ya calificada, con guía, rango de estrellas (400).
// @Tags ratings
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param requestID path string true "ID de la solicitud"
// @Param payload body RateInput true "Estrellas y comentario"
// @Success 201 {object} ratingResponse
// @Failure 400 {object} map[string]string "no finalizada / ya calificada / sin guía / fuera de rango"
// @Failure 401 {object} map[string]string "unauthorized"
// @Failure 403 {object} map[string]string "not authorized"
// @Failure 404 {object} map[string]string "request not found"
// @Router /requests/{requestID}/rating [post]
func rateRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.CurrentUser(r.Context())
		if !ok {
			respond.Unauthorized(w)
			return
		}

		var in RateInput
		if err := respond.DecodeJSON(r, &in); err != nil {
			respond.Error(w, err)
			return
		}

		rt, err := svc.Rate(r.Context(), chi.URLParam(r, "requestID"), claims, in)
		if err != nil {
			respond.Error(w, err)
			return
		}

		respond.JSON(w, http.StatusCreated, ratingResponse{
			ID:        rt.ID,
			RequestID: rt.RequestID,
			UserID:    rt.UserID,
			GuideID:   rt.GuideID,
			Stars:     rt.Stars,
			Comment:   rt.Comment,
			CreatedAt: rt.CreatedAt,
		})
	}
}

// guideProfileHandler godoc
// @Summary Perfil público del guía
// @Description Promedio y cantidad de calificaciones recibidas. Sin calificaciones devuelve 0 y 0. No requiere autenticación.
// @Tags ratings
// @Produce json
// @Param guideID path string true "ID del guía"
// @Success 200 {object} guideProfileResponse
// @Failure 404 {object} map[string]string "account not found"
// @Router /guides/{guideID}/profile [get]
func guideProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GuideProfile(r.Context(), chi.URLParam(r, "guideID"))
		if err != nil {
			respond.Error(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, guideProfileResponse{
			GuideID:     p.GuideID,
			Username:    p.Username,
			FullName:    p.FullName,
			RatingAvg:   p.RatingAvg,
			RatingCount: p.RatingCount,
		})
	}
}
