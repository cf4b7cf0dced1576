package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-dispatch/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type client struct {
	t       *testing.T
	baseURL string
}

func newClient(t *testing.T) *client {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	t.Cleanup(ts.Close)
	return &client{t: t, baseURL: ts.URL}
}

func TestHTTP_EndToEnd_RequestLifecycle(t *testing.T) {
	c := newClient(t)

	guideID := c.register("guia1", "guide")
	otherGuideID := c.register("guia2", "guide")
	ownerID := c.register("dueno1", "user")
	strangerID := c.register("otro", "user")

	// 1) Perfil del guía sin calificaciones
	{
		st, body := c.do(http.MethodGet, "/guides/"+guideID+"/profile", "", nil)
		require.Equal(t, http.StatusOK, st, string(body))
		var p map[string]any
		require.NoError(t, json.Unmarshal(body, &p))
		assert.Equal(t, "guia1", p["username"])
		assert.EqualValues(t, 0, p["rating_avg"])
		assert.EqualValues(t, 0, p["rating_count"])
	}

	// 2) Dueño crea solicitud
	reqID := c.createRequest(ownerID)

	// 3) Un usuario común no puede aceptar
	{
		st, body := c.do(http.MethodPost, "/requests/"+reqID+"/accept", strangerID, nil)
		assert.Equal(t, http.StatusForbidden, st)
		assert.Equal(t, "only guides can perform this action", detail(t, body))
	}

	// 4) Sin guía asignado no se puede calificar
	{
		st, _ := c.do(http.MethodPost, "/requests/"+reqID+"/rating", ownerID, map[string]any{"stars": 5})
		assert.Equal(t, http.StatusBadRequest, st)
	}

	// 5) Guía acepta; segundo intento falla
	{
		st, body := c.do(http.MethodPost, "/requests/"+reqID+"/accept", guideID, nil)
		require.Equal(t, http.StatusOK, st, string(body))
		var out map[string]any
		require.NoError(t, json.Unmarshal(body, &out))
		assert.Equal(t, "assigned", out["detail"])
		assert.Equal(t, reqID, out["request_id"])

		st, body = c.do(http.MethodPost, "/requests/"+reqID+"/accept", otherGuideID, nil)
		assert.Equal(t, http.StatusBadRequest, st)
		assert.Equal(t, "request already assigned", detail(t, body))
	}

	// 6) Con guía asignado el dueño ya no puede editar
	{
		st, _ := c.do(http.MethodPatch, "/requests/"+reqID, ownerID, map[string]any{"observations": "cambio"})
		assert.Equal(t, http.StatusBadRequest, st)
	}

	// 7) Hitos: fuera de orden, guía ajeno, inválido
	{
		st, body := c.do(http.MethodPost, "/requests/"+reqID+"/milestones", guideID, map[string]any{"milestone": "pet_on_board"})
		assert.Equal(t, http.StatusBadRequest, st)
		assert.Contains(t, detail(t, body), "arrival_origin")

		st, _ = c.do(http.MethodPost, "/requests/"+reqID+"/milestones", otherGuideID, map[string]any{"milestone": "arrival_origin"})
		assert.Equal(t, http.StatusForbidden, st)

		st, _ = c.do(http.MethodPost, "/requests/"+reqID+"/milestones", guideID, map[string]any{"milestone": "teleported"})
		assert.Equal(t, http.StatusBadRequest, st)
	}

	// 8) Rating antes de entregar
	c.recordMilestone(guideID, reqID, "arrival_origin")
	{
		st, body := c.do(http.MethodPost, "/requests/"+reqID+"/rating", ownerID, map[string]any{"stars": 5})
		assert.Equal(t, http.StatusBadRequest, st)
		assert.Equal(t, "request is not finished yet", detail(t, body))

		st, _ = c.do(http.MethodPost, "/requests/"+reqID+"/milestones", guideID, map[string]any{"milestone": "arrival_origin"})
		assert.Equal(t, http.StatusBadRequest, st)
	}

	c.recordMilestone(guideID, reqID, "pet_on_board")
	c.recordMilestone(guideID, reqID, "delivered")

	// 9) Solicitud entregada y confirmada, con el rastro completo
	{
		st, body := c.do(http.MethodGet, "/requests/"+reqID, ownerID, nil)
		require.Equal(t, http.StatusOK, st, string(body))
		var sr struct {
			Confirmed       bool   `json:"confirmed"`
			Delivered       bool   `json:"delivered"`
			AssignedGuideID string `json:"assigned_guide_id"`
			Milestones      []struct {
				Milestone  string `json:"milestone"`
				RecordedBy string `json:"recorded_by"`
			} `json:"milestones"`
		}
		require.NoError(t, json.Unmarshal(body, &sr))
		assert.True(t, sr.Confirmed)
		assert.True(t, sr.Delivered)
		assert.Equal(t, guideID, sr.AssignedGuideID)
		require.Len(t, sr.Milestones, 3)
		assert.Equal(t, "arrival_origin", sr.Milestones[0].Milestone)
		assert.Equal(t, "delivered", sr.Milestones[2].Milestone)
		assert.Equal(t, guideID, sr.Milestones[2].RecordedBy)
	}

	// 10) Pendiente de calificar
	assert.Equal(t, []string{reqID}, c.pendingFeedback(ownerID))

	// 11) Gate de calificación
	{
		st, body := c.do(http.MethodPost, "/requests/"+reqID+"/rating", strangerID, map[string]any{"stars": 5})
		assert.Equal(t, http.StatusForbidden, st)
		assert.Equal(t, "not authorized", detail(t, body))

		st, body = c.do(http.MethodPost, "/requests/"+reqID+"/rating", ownerID, map[string]any{"stars": 0})
		assert.Equal(t, http.StatusBadRequest, st)
		assert.Equal(t, "stars must be between 1 and 5", detail(t, body))

		st, body = c.do(http.MethodPost, "/requests/"+reqID+"/rating", ownerID, map[string]any{"stars": 4, "comment": "puntual"})
		require.Equal(t, http.StatusCreated, st, string(body))
		var rt map[string]any
		require.NoError(t, json.Unmarshal(body, &rt))
		assert.Equal(t, guideID, rt["guide_id"])
		assert.Equal(t, ownerID, rt["user_id"])
		assert.EqualValues(t, 4, rt["stars"])

		st, body = c.do(http.MethodPost, "/requests/"+reqID+"/rating", ownerID, map[string]any{"stars": 5})
		assert.Equal(t, http.StatusBadRequest, st)
		assert.Equal(t, "request already rated", detail(t, body))
	}

	// 12) Ya calificada: sale de pendientes
	assert.Empty(t, c.pendingFeedback(ownerID))

	// 13) Segunda solicitud calificada con 2 => promedio 3
	{
		second := c.createRequest(ownerID)
		st, _ := c.do(http.MethodPost, "/requests/"+second+"/accept", guideID, nil)
		require.Equal(t, http.StatusOK, st)
		for _, stage := range []string{"arrival_origin", "pet_on_board", "delivered"} {
			c.recordMilestone(guideID, second, stage)
		}
		st, _ = c.do(http.MethodPost, "/requests/"+second+"/rating", ownerID, map[string]any{"stars": 2})
		require.Equal(t, http.StatusCreated, st)

		st, body := c.do(http.MethodGet, "/guides/"+guideID+"/profile", "", nil)
		require.Equal(t, http.StatusOK, st)
		var p map[string]any
		require.NoError(t, json.Unmarshal(body, &p))
		assert.InDelta(t, 3.0, p["rating_avg"], 0.0001)
		assert.EqualValues(t, 2, p["rating_count"])
	}

	// 14) Tableros del guía e historial
	{
		st, body := c.do(http.MethodGet, "/guide/assigned-requests", guideID, nil)
		require.Equal(t, http.StatusOK, st)
		assert.Len(t, ids(t, body), 2)

		st, _ = c.do(http.MethodGet, "/guide/assigned-requests", ownerID, nil)
		assert.Equal(t, http.StatusForbidden, st)

		st, body = c.do(http.MethodGet, "/history/requests", ownerID, nil)
		require.Equal(t, http.StatusOK, st)
		assert.Len(t, ids(t, body), 2)
	}
}

func TestHTTP_GuideBoard_ListsOnlyUnassigned(t *testing.T) {
	c := newClient(t)
	guideID := c.register("guia", "guide")
	ownerID := c.register("dueno", "user")

	first := c.createRequest(ownerID)
	second := c.createRequest(ownerID)

	st, _ := c.do(http.MethodPost, "/requests/"+first+"/accept", guideID, nil)
	require.Equal(t, http.StatusOK, st)

	st, body := c.do(http.MethodGet, "/guide/available-requests", guideID, nil)
	require.Equal(t, http.StatusOK, st)
	assert.Equal(t, []string{second}, ids(t, body))
}

func TestHTTP_Requests_OwnerScopedAndValidated(t *testing.T) {
	c := newClient(t)
	ownerID := c.register("dueno", "user")
	otherID := c.register("otro", "user")

	reqID := c.createRequest(ownerID)

	st, _ := c.do(http.MethodGet, "/requests/"+reqID, otherID, nil)
	assert.Equal(t, http.StatusNotFound, st)

	st, _ = c.do(http.MethodDelete, "/requests/"+reqID, otherID, nil)
	assert.Equal(t, http.StatusNotFound, st)

	// programada sin fecha
	st, body := c.do(http.MethodPost, "/requests", ownerID, map[string]any{
		"service_type":  "walk",
		"schedule_type": "scheduled",
		"origin_text":   "Casa",
		"dest_text":     "Parque",
	})
	assert.Equal(t, http.StatusBadRequest, st, string(body))

	// mascota ajena
	petID := c.createPet(otherID, "Luna")
	st, _ = c.do(http.MethodPost, "/requests", ownerID, map[string]any{
		"service_type":  "transfer",
		"schedule_type": "immediate",
		"origin_text":   "Casa",
		"dest_text":     "Clínica",
		"pet_id":        petID,
	})
	assert.Equal(t, http.StatusBadRequest, st)

	st, _ = c.do(http.MethodDelete, "/requests/"+reqID, ownerID, nil)
	assert.Equal(t, http.StatusNoContent, st)

	st, _ = c.do(http.MethodGet, "/requests/"+reqID, ownerID, nil)
	assert.Equal(t, http.StatusNotFound, st)
}

func TestHTTP_Pets_OwnerScoped(t *testing.T) {
	c := newClient(t)
	ownerID := c.register("dueno", "user")
	otherID := c.register("otro", "user")

	petID := c.createPet(ownerID, "Milo")

	st, _ := c.do(http.MethodGet, "/pets/"+petID, otherID, nil)
	assert.Equal(t, http.StatusNotFound, st)

	st, body := c.do(http.MethodPatch, "/pets/"+petID, ownerID, map[string]any{"notes": "come poco"})
	require.Equal(t, http.StatusOK, st, string(body))
	var p map[string]any
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, "come poco", p["notes"])

	st, body = c.do(http.MethodGet, "/pets", ownerID, nil)
	require.Equal(t, http.StatusOK, st)
	assert.Equal(t, []string{petID}, ids(t, body))
}

func TestHTTP_Accounts_RegisterAndMe(t *testing.T) {
	c := newClient(t)
	guideID := c.register("guia", "guide")

	st, body := c.do(http.MethodGet, "/me", guideID, nil)
	require.Equal(t, http.StatusOK, st, string(body))
	var me map[string]any
	require.NoError(t, json.Unmarshal(body, &me))
	assert.Equal(t, "guide", me["role"])

	st, body = c.do(http.MethodPost, "/register", "", map[string]any{
		"username":  "guia",
		"password":  "secreto1",
		"password2": "secreto1",
	})
	assert.Equal(t, http.StatusBadRequest, st)
	assert.Equal(t, "username already taken", detail(t, body))

	st, body = c.do(http.MethodPost, "/register", "", map[string]any{
		"username":  "nuevo",
		"password":  "secreto1",
		"password2": "otro-secreto",
	})
	assert.Equal(t, http.StatusBadRequest, st)
	assert.Equal(t, "passwords do not match", detail(t, body))
}

func TestHTTP_UnknownGuideProfile_NotFound(t *testing.T) {
	c := newClient(t)
	st, body := c.do(http.MethodGet, "/guides/no-existe/profile", "", nil)
	assert.Equal(t, http.StatusNotFound, st)
	assert.Equal(t, "account not found", detail(t, body))
}

func TestHTTP_Unauthenticated(t *testing.T) {
	c := newClient(t)
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/me"},
		{http.MethodGet, "/requests"},
		{http.MethodGet, "/requests/pending-feedback"},
		{http.MethodPost, "/requests/x/accept"},
		{http.MethodPost, "/requests/x/rating"},
	} {
		st, body := c.do(tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, st, tc.path)
		assert.Equal(t, "unauthorized", detail(t, body), tc.path)
	}
}

func TestHTTP_HealthAndMetrics(t *testing.T) {
	c := newClient(t)

	st, body := c.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, st)
	assert.Equal(t, "ok", string(body))

	st, body = c.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, st)
	assert.Contains(t, string(body), "pet_dispatch_http_requests_total")
}

// helpers

func (c *client) register(username, role string) string {
	c.t.Helper()
	st, body := c.do(http.MethodPost, "/register", "", map[string]any{
		"username":   username,
		"email":      username + "@example.com",
		"password":   "secreto1",
		"password2":  "secreto1",
		"first_name": "Nombre",
		"last_name":  username,
		"role":       role,
	})
	require.Equal(c.t, http.StatusCreated, st, string(body))
	return id(c.t, body)
}

func (c *client) createRequest(ownerID string) string {
	c.t.Helper()
	st, body := c.do(http.MethodPost, "/requests", ownerID, map[string]any{
		"service_type":      "transfer",
		"schedule_type":     "immediate",
		"origin_text":       "Av. Siempre Viva 742",
		"dest_text":         "Clínica Norte",
		"quick_pet_name":    "Toby",
		"quick_pet_species": "dog",
	})
	require.Equal(c.t, http.StatusCreated, st, string(body))
	return id(c.t, body)
}

func (c *client) createPet(ownerID, name string) string {
	c.t.Helper()
	st, body := c.do(http.MethodPost, "/pets", ownerID, map[string]any{
		"name":    name,
		"species": "cat",
	})
	require.Equal(c.t, http.StatusCreated, st, string(body))
	return id(c.t, body)
}

func (c *client) recordMilestone(guideID, reqID, stage string) {
	c.t.Helper()
	st, body := c.do(http.MethodPost, "/requests/"+reqID+"/milestones", guideID, map[string]any{"milestone": stage})
	require.Equal(c.t, http.StatusCreated, st, string(body))
}

func (c *client) pendingFeedback(ownerID string) []string {
	c.t.Helper()
	st, body := c.do(http.MethodGet, "/requests/pending-feedback", ownerID, nil)
	require.Equal(c.t, http.StatusOK, st, string(body))
	return ids(c.t, body)
}

func (c *client) do(method, path, debugUserID string, body any) (int, []byte) {
	c.t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.baseURL+path, rdr)
	require.NoError(c.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	require.NoError(c.t, err)
	return res.StatusCode, b
}

func id(t *testing.T, body []byte) string {
	t.Helper()
	var out struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotEmpty(t, out.ID)
	return out.ID
}

func ids(t *testing.T, body []byte) []string {
	t.Helper()
	var list []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &list))
	out := make([]string, 0, len(list))
	for _, it := range list {
		out = append(out, it.ID)
	}
	return out
}

func detail(t *testing.T, body []byte) string {
	t.Helper()
	var out struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	return out.Detail
}
