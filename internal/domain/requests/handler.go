package requests

import (
	"context"
	"net/http"
	"time"

	"pet-dispatch/internal/middleware"
	"pet-dispatch/internal/platform/respond"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /requests; mounts agrega subrutas de otros módulos
// (p.ej. /requests/{requestID}/rating) dentro del mismo subrouter.
func RegisterRoutes(r chi.Router, svc *Service, mounts ...func(chi.Router)) {
	r.Route("/requests", func(rr chi.Router) {
		rr.Post("/", createRequestHandler(svc))
		rr.Get("/", listRequestsHandler(svc))

		// antes que /{requestID} para que no lo capture el parámetro
		rr.Get("/pending-feedback", pendingFeedbackHandler(svc))

		rr.Get("/{requestID}", getRequestHandler(svc))
		rr.Patch("/{requestID}", updateRequestHandler(svc))
		rr.Delete("/{requestID}", deleteRequestHandler(svc))

		rr.Post("/{requestID}/accept", acceptRequestHandler(svc))
		rr.Post("/{requestID}/milestones", recordMilestoneHandler(svc))

		for _, mount := range mounts {
			mount(rr)
		}
	})

	r.Get("/guide/available-requests", availableRequestsHandler(svc))
	r.Get("/guide/assigned-requests", assignedRequestsHandler(svc))
	r.Get("/history/requests", historyHandler(svc))
}

type milestoneResponse struct {
	ID         string    `json:"id"`
	RequestID  string    `json:"request_id"`
	Milestone  Stage     `json:"milestone" enums:"arrival_origin,pet_on_board,delivered"`
	RecordedAt time.Time `json:"recorded_at"`
	RecordedBy string    `json:"recorded_by"`
}

type ratingResponse struct {
	ID        string    `json:"id"`
	Stars     int       `json:"stars"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// requestResponse representa una solicitud de servicio con su trazabilidad.
type requestResponse struct {
	ID                string       `json:"id"`
	OwnerUserID       string       `json:"owner_user_id"`
	ServiceType       ServiceKind  `json:"service_type" enums:"transfer,walk,vet_visit"`
	ScheduleType      ScheduleMode `json:"schedule_type" enums:"immediate,scheduled"`
	ScheduledDatetime *time.Time   `json:"scheduled_datetime"`

	OriginText string   `json:"origin_text"`
	OriginLat  *float64 `json:"origin_lat"`
	OriginLng  *float64 `json:"origin_lng"`
	DestText   string   `json:"dest_text"`
	DestLat    *float64 `json:"dest_lat"`
	DestLng    *float64 `json:"dest_lng"`

	PetID           string `json:"pet_id,omitempty"`
	QuickPetName    string `json:"quick_pet_name"`
	QuickPetSpecies string `json:"quick_pet_species"`
	QuickPetNotes   string `json:"quick_pet_notes"`
	Observations    string `json:"observations"`

	CreatedAt       time.Time           `json:"created_at"`
	Confirmed       bool                `json:"confirmed"`
	Delivered       bool                `json:"delivered"`
	AssignedGuideID string              `json:"assigned_guide_id,omitempty"`
	Milestones      []milestoneResponse `json:"milestones"`
	Rating          *ratingResponse     `json:"rating"`
}

type acceptResponse struct {
	Detail    string `json:"detail"`
	RequestID string `json:"request_id"`
}

type recordMilestoneRequest struct {
	Milestone string `json:"milestone" enums:"arrival_origin,pet_on_board,delivered"`
}

// createRequestHandler godoc
// @Summary Crear solicitud de servicio
// @Description Crea una solicitud (traslado, paseo o veterinaria) para el usuario autenticado. Si schedule_type es `scheduled`, scheduled_datetime es obligatorio. pet_id debe pertenecer al usuario.
// @Tags requests
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body Input true "Datos de la solicitud"
// @Success 201 {object} requestResponse
// @Failure 400 {object} map[string]string "invalid json / validación"
// @Failure 401 {object} map[string]string "unauthorized"
// @Router /requests [post]
func createRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.CurrentUser(r.Context())
		if !ok {
			respond.Unauthorized(w)
			return
		}

		var in Input
		if err := respond.DecodeJSON(r, &in); err != nil {
			respond.Error(w, err)
			return
		}

		sr, err := svc.Create(r.Context(), claims.UserID, in)
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusCreated, toRequestResponse(sr, nil))
	}
}

func listRequestsHandler(svc *Service) http.HandlerFunc {
	return listHandler(svc, func(ctx context.Context, svc *Service) ([]ServiceRequest, error) {
		claims, _ := middleware.CurrentUser(ctx)
		return svc.ListByOwner(ctx, claims.UserID)
	})
}

func historyHandler(svc *Service) http.HandlerFunc {
	return listHandler(svc, func(ctx context.Context, svc *Service) ([]ServiceRequest, error) {
		claims, _ := middleware.CurrentUser(ctx)
		return svc.History(ctx, claims.UserID)
	})
}

func availableRequestsHandler(svc *Service) http.HandlerFunc {
	return listHandler(svc, func(ctx context.Context, svc *Service) ([]ServiceRequest, error) {
		claims, _ := middleware.CurrentUser(ctx)
		return svc.ListAvailable(ctx, claims)
	})
}

func assignedRequestsHandler(svc *Service) http.HandlerFunc {
	return listHandler(svc, func(ctx context.Context, svc *Service) ([]ServiceRequest, error) {
		claims, _ := middleware.CurrentUser(ctx)
		return svc.ListAssigned(ctx, claims)
	})
}

// pendingFeedbackHandler godoc
// @Summary Solicitudes pendientes de calificar
// @Description Solicitudes del usuario confirmadas, con guía asignado y sin calificación.
// @Tags ratings
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} requestResponse
// @Failure 401 {object} map[string]string "unauthorized"
// @Router /requests/pending-feedback [get]
func pendingFeedbackHandler(svc *Service) http.HandlerFunc {
	return listHandler(svc, func(ctx context.Context, svc *Service) ([]ServiceRequest, error) {
		claims, _ := middleware.CurrentUser(ctx)
		return svc.PendingFeedback(ctx, claims.UserID)
	})
}

func listHandler(svc *Service, list func(context.Context, *Service) ([]ServiceRequest, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.CurrentUser(r.Context()); !ok {
			respond.Unauthorized(w)
			return
		}

		items, err := list(r.Context(), svc)
		if err != nil {
			respond.Error(w, err)
			return
		}

		out := make([]requestResponse, 0, len(items))
		for _, sr := range items {
			rating, err := svc.RatingOf(r.Context(), sr.ID)
			if err != nil {
				respond.Error(w, err)
				return
			}
			out = append(out, toRequestResponse(sr, rating))
		}
		respond.JSON(w, http.StatusOK, out)
	}
}

func getRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.CurrentUser(r.Context())
		if !ok {
			respond.Unauthorized(w)
			return
		}

		sr, err := svc.GetForOwner(r.Context(), claims.UserID, chi.URLParam(r, "requestID"))
		if err != nil {
			respond.Error(w, err)
			return
		}
		writeRequest(w, r, svc, http.StatusOK, sr)
	}
}

// updateRequestHandler godoc
// @Summary Editar solicitud
// @Description PATCH parcial de una solicitud propia. Una vez asignado un guía la solicitud queda bloqueada.
// @Tags requests
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param requestID path string true "ID de la solicitud"
// @Param payload body UpdateInput true "Campos a modificar"
// @Success 200 {object} requestResponse
// @Failure 400 {object} map[string]string "validación / ya asignada"
// @Failure 401 {object} map[string]string "unauthorized"
// @Failure 404 {object} map[string]string "request not found"
// @Router /requests/{requestID} [patch]
func updateRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.CurrentUser(r.Context())
		if !ok {
			respond.Unauthorized(w)
			return
		}

		var in UpdateInput
		if err := respond.DecodeJSON(r, &in); err != nil {
			respond.Error(w, err)
			return
		}

		sr, err := svc.Update(r.Context(), claims.UserID, chi.URLParam(r, "requestID"), in)
		if err != nil {
			respond.Error(w, err)
			return
		}
		writeRequest(w, r, svc, http.StatusOK, sr)
	}
}

func deleteRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.CurrentUser(r.Context())
		if !ok {
			respond.Unauthorized(w)
			return
		}

		if err := svc.Delete(r.Context(), claims.UserID, chi.URLParam(r, "requestID")); err != nil {
			respond.Error(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// acceptRequestHandler godoc
// @Summary Aceptar solicitud (guía)
// @Description Asigna la solicitud al guía autenticado. Falla si ya tiene guía, incluso si es el mismo.
// @Tags lifecycle
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-Role header string false "Solo en modo dev, rol (user|guide)"
// @Param Authorization header string false "Bearer token en producción"
// @Param requestID path string true "ID de la solicitud"
// @Success 200 {object} acceptResponse
// @Failure 400 {object} map[string]string "request already assigned"
// @Failure 401 {object} map[string]string "unauthorized"
// @Failure 403 {object} map[string]string "only guides can perform this action"
// @Failure 404 {object} map[string]string "request not found"
// @Router /requests/{requestID}/accept [post]
func acceptRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.CurrentUser(r.Context())
		if !ok {
			respond.Unauthorized(w)
			return
		}

		sr, err := svc.Accept(r.Context(), chi.URLParam(r, "requestID"), claims)
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, acceptResponse{Detail: "assigned", RequestID: sr.ID})
	}
}

// recordMilestoneHandler godoc
// @Summary Registrar hito (guía asignado)
// @Description Registra arrival_origin, pet_on_board o delivered, en ese orden y una sola vez cada uno. delivered confirma la solicitud.
// @Tags lifecycle
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-Role header string false "Solo en modo dev, rol (user|guide)"
// @Param Authorization header string false "Bearer token en producción"
// @Param requestID path string true "ID de la solicitud"
// @Param payload body recordMilestoneRequest true "Hito a registrar"
// @Success 201 {object} milestoneResponse
// @Failure 400 {object} map[string]string "hito inválido / fuera de orden / duplicado"
// @Failure 401 {object} map[string]string "unauthorized"
// @Failure 403 {object} map[string]string "only the assigned guide can record milestones"
// @Failure 404 {object} map[string]string "request not found"
// @Router /requests/{requestID}/milestones [post]
func recordMilestoneHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.CurrentUser(r.Context())
		if !ok {
			respond.Unauthorized(w)
			return
		}

		var req recordMilestoneRequest
		if err := respond.DecodeJSON(r, &req); err != nil {
			respond.Error(w, err)
			return
		}

		m, err := svc.RecordMilestone(r.Context(), chi.URLParam(r, "requestID"), req.Milestone, claims)
		if err != nil {
			respond.Error(w, err)
			return
		}
		respond.JSON(w, http.StatusCreated, toMilestoneResponse(m))
	}
}

func writeRequest(w http.ResponseWriter, r *http.Request, svc *Service, status int, sr ServiceRequest) {
	rating, err := svc.RatingOf(r.Context(), sr.ID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, status, toRequestResponse(sr, rating))
}

func toMilestoneResponse(m Milestone) milestoneResponse {
	return milestoneResponse{
		ID:         m.ID,
		RequestID:  m.RequestID,
		Milestone:  m.Stage,
		RecordedAt: m.RecordedAt,
		RecordedBy: m.RecordedBy,
	}
}

func toRequestResponse(sr ServiceRequest, rating *RatingSummary) requestResponse {
	ms := make([]milestoneResponse, 0, len(sr.Milestones))
	for _, m := range sr.Milestones {
		ms = append(ms, toMilestoneResponse(m))
	}

	out := requestResponse{
		ID:                sr.ID,
		OwnerUserID:       sr.OwnerUserID,
		ServiceType:       sr.Kind,
		ScheduleType:      sr.ScheduleMode,
		ScheduledDatetime: sr.ScheduledAt,
		OriginText:        sr.Origin.Text,
		OriginLat:         sr.Origin.Lat,
		OriginLng:         sr.Origin.Lng,
		DestText:          sr.Destination.Text,
		DestLat:           sr.Destination.Lat,
		DestLng:           sr.Destination.Lng,
		PetID:             sr.PetID,
		QuickPetName:      sr.QuickPet.Name,
		QuickPetSpecies:   sr.QuickPet.Species,
		QuickPetNotes:     sr.QuickPet.Notes,
		Observations:      sr.Observations,
		CreatedAt:         sr.CreatedAt,
		Confirmed:         sr.Confirmed,
		Delivered:         sr.IsDelivered(),
		AssignedGuideID:   sr.AssignedGuideID,
		Milestones:        ms,
	}
	if rating != nil {
		out.Rating = &ratingResponse{
			ID:        rating.ID,
			Stars:     rating.Stars,
			Comment:   rating.Comment,
			CreatedAt: rating.CreatedAt,
		}
	}
	return out
}
