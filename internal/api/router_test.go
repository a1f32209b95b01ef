package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"quill/internal/api/controllers"
	"quill/internal/config"
	"quill/internal/models/request_models"
	"quill/internal/models/response_models"
	"quill/internal/repositories"
	"quill/internal/services"
	mem "quill/pkg/memcache"
	"quill/pkg/middleware"
	"quill/pkg/storage"
	"quill/pkg/utils"
)

type stubLLM struct {
	reply string
	calls int
}

func (s *stubLLM) Name() string { return "stub" }

func (s *stubLLM) Complete(context.Context, utils.CompletionRequest) (string, error) {
	s.calls++
	return s.reply, nil
}

// recordingDocuments overrides Update; every other method panics if reached.
type recordingDocuments struct {
	services.DocumentServiceInterface
	updates []request_models.UpdateDocumentRequest
}

func (r *recordingDocuments) Update(_ context.Context, _, id uuid.UUID, req request_models.UpdateDocumentRequest) (*response_models.DocumentResponse, error) {
	r.updates = append(r.updates, req)
	return &response_models.DocumentResponse{ID: id.String(), Title: "unchanged"}, nil
}

type scriptedStyles struct {
	err error
}

func (s scriptedStyles) Generate(_ context.Context, _ uuid.UUID, req request_models.GenerateStyleRequest, report services.StyleReporter) (*response_models.DocumentResponse, error) {
	report.Progress(5, "Authenticated")
	report.Log("Using the provided style description")
	if s.err != nil {
		return nil, s.err
	}
	report.Progress(100, "Style saved")
	return &response_models.DocumentResponse{Title: "Crisp", IsStyle: true}, nil
}

type testServer struct {
	router *gin.Engine
	tokens *utils.TokenIssuer
	llm    *stubLLM
	docs   *recordingDocuments
}

// newTestServer wires the real services against a server with no database.
func newTestServer(t *testing.T, styles services.StyleServiceInterface) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()

	tokens := utils.NewTokenIssuer("test-secret", time.Hour)
	llm := &stubLLM{reply: "Fresh copy for [Company]"}

	accountRepo := repositories.NewAccountRepository(nil)
	documentRepo := repositories.NewDocumentRepository(nil)
	personaRepo := repositories.NewPersonaRepository(nil)
	folderRepo := repositories.NewFolderRepository(nil)

	documents := services.NewDocumentService(documentRepo)
	personas := services.NewPersonaService(personaRepo, accountRepo)
	guests := services.NewGuestLimiter(mem.NewUsageCounters(), config.GuestConfig{Enabled: true, Limit: 2, Window: time.Hour})

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	recorder := &recordingDocuments{DocumentServiceInterface: documents}
	if styles == nil {
		styles = services.NewStyleService(llm, accountRepo, documentRepo, documents, log)
	}
	paymentCfg := services.PaymentConfig{}

	ctrl := Controllers{
		Account:  controllers.NewAccountController(services.NewAccountService(accountRepo, tokens, log)),
		Document: controllers.NewDocumentController(recorder),
		Folder:   controllers.NewFolderController(services.NewFolderService(folderRepo, documents)),
		Persona:  controllers.NewPersonaController(personas),
		Compose:  controllers.NewComposeController(services.NewComposeService(llm, documentRepo, documents, personas, guests, log)),
		Style:    controllers.NewStyleController(styles),
		Export:   controllers.NewExportController(services.NewExportService(documents, store, log)),
		Payment:  controllers.NewPaymentController(services.NewPaymentService(services.NewStripeGateway(paymentCfg), accountRepo, paymentCfg, log)),
	}

	return &testServer{
		router: NewRouter(log, middleware.NewAuth(tokens), []string{"*"}, ctrl),
		tokens: tokens,
		llm:    llm,
		docs:   recorder,
	}
}

func (s *testServer) do(t *testing.T, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) bearer(t *testing.T) map[string]string {
	t.Helper()
	token, err := s.tokens.CreateToken(uuid.New(), "writer@example.com")
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

type envelope struct {
	Status      string          `json:"status"`
	Code        int             `json:"code"`
	Message     string          `json:"message"`
	TraceID     string          `json:"trace_id"`
	Data        json.RawMessage `json:"data"`
	RequireAuth bool            `json:"requireAuth"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.TraceIDHeader))
	assert.Equal(t, w.Header().Get(middleware.TraceIDHeader), decode(t, w).TraceID)
}

func TestGuestComposeLimit(t *testing.T) {
	s := newTestServer(t, nil)
	guest := map[string]string{controllers.GuestIDHeader: "guest-1"}
	body := `{"prompt":"Announce our spring sale","marketTier":"premium"}`

	for _, remaining := range []int{1, 0} {
		w := s.do(t, http.MethodPost, "/compose", body, guest)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var result response_models.ComposeResponse
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &result))
		assert.Equal(t, "Fresh copy for [Company]", result.Content)
		assert.False(t, result.Saved)
		require.NotNil(t, result.GuestRemaining)
		assert.Equal(t, remaining, *result.GuestRemaining)
	}

	w := s.do(t, http.MethodPost, "/compose", body, guest)
	assert.Equal(t, http.StatusForbidden, w.Code)
	env := decode(t, w)
	assert.True(t, env.RequireAuth)
	assert.Equal(t, 2, s.llm.calls, "a blocked guest must not reach the model")

	other := s.do(t, http.MethodPost, "/compose", body, map[string]string{controllers.GuestIDHeader: "guest-2"})
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestComposeWithoutDatabaseReturnsUnsavedText(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodPost, "/compose", `{"prompt":"Write a tagline"}`, s.bearer(t))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result response_models.ComposeResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &result))
	assert.False(t, result.Saved)
	assert.Nil(t, result.Document)
	assert.Nil(t, result.GuestRemaining)
}

func TestComposeRejectsBadToken(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodPost, "/compose", `{"prompt":"x"}`, map[string]string{"Authorization": "Bearer nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, s.llm.calls)
}

func TestComposeValidation(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodPost, "/compose", `{}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRewriteSelectionMissing(t *testing.T) {
	s := newTestServer(t, nil)

	body := `{"content":"Our coffee is good.","selection":"tea","instruction":"punchier"}`
	w := s.do(t, http.MethodPost, "/rewrite", body, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Selection not found in content", decode(t, w).Message)
	assert.Zero(t, s.llm.calls)
}

func TestExportTxtAttachment(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodPost, "/export", `{"title":"Hello","content":"**World**","format":"txt"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".txt")
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))
	assert.Contains(t, w.Body.String(), "Hello")
	assert.Contains(t, w.Body.String(), "World")
	assert.NotContains(t, w.Body.String(), "**")
}

func TestExportUnsupportedFormat(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodPost, "/export", `{"title":"Hello","content":"x","format":"pdf"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t, nil)

	for _, path := range []string{"/documents", "/folders", "/personas", "/accounts/me", "/payments/subscription"} {
		w := s.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestDocumentsWithoutDatabase(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodGet, "/documents", "", s.bearer(t))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = s.do(t, http.MethodGet, "/documents/not-a-uuid", "", s.bearer(t))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmptyPatchIsAccepted(t *testing.T) {
	s := newTestServer(t, nil)
	id := uuid.New()

	w := s.do(t, http.MethodPatch, "/documents/"+id.String(), "", s.bearer(t))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, s.docs.updates, 1)
	assert.Equal(t, request_models.UpdateDocumentRequest{}, s.docs.updates[0])

	w = s.do(t, http.MethodPatch, "/documents/"+id.String(), `{"pinned":true}`, s.bearer(t))
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, s.docs.updates, 2)
	require.NotNil(t, s.docs.updates[1].Pinned)
	assert.True(t, *s.docs.updates[1].Pinned)
}

func TestStyleGenerationStream(t *testing.T) {
	s := newTestServer(t, scriptedStyles{})

	w := s.do(t, http.MethodPost, "/styles/generate", `{"sample":"We write short. We write warm."}`, s.bearer(t))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/event-stream"))

	body := w.Body.String()
	assert.Contains(t, body, "event:progress")
	assert.Contains(t, body, "event:log")
	assert.Contains(t, body, "event:complete")
	assert.NotContains(t, body, "event:error")
	assert.Less(t, strings.Index(body, "event:progress"), strings.Index(body, "event:complete"))
}

func TestStyleGenerationStreamError(t *testing.T) {
	s := newTestServer(t, scriptedStyles{err: utils.ErrUnexpectedBehaviorOfAI})

	w := s.do(t, http.MethodPost, "/styles/generate", `{"sample":"anything"}`, s.bearer(t))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "event:error")
	assert.Contains(t, body, `"code":502`)
	assert.NotContains(t, body, "event:complete")
}

func TestStyleGenerationRequiresAuth(t *testing.T) {
	s := newTestServer(t, scriptedStyles{})

	w := s.do(t, http.MethodPost, "/styles/generate", `{"sample":"anything"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPaymentsDisabled(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodGet, "/payments/plans", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodGet, "/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
