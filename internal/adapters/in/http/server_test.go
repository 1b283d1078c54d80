package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	api "donations/internal/adapters/in/http"
	"donations/internal/adapters/out/memory"
	"donations/internal/core/application/usecases/commands"
	"donations/internal/core/application/usecases/queries"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/domain/services"
	"donations/internal/core/ports"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

type MockContentGenerator struct{ mock.Mock }

func (m *MockContentGenerator) Generate(ctx context.Context, req ports.ContentRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type memoryUoWs struct {
	factory *memory.UnitOfWorkFactory
}

func (f memoryUoWs) Create() commands.UoW {
	return f.factory.Create()
}

type testServer struct {
	t         *testing.T
	e         *echo.Echo
	auth      *api.Authenticator
	generator *MockContentGenerator
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	factory := memory.NewUnitOfWorkFactory(memory.NewStore(), nil)
	uows := memoryUoWs{factory: factory}
	readers := queries.UnitOfWorkReaders{Factory: factory}
	access := services.NewAccessPolicy()
	capacity := services.NewCapacityTracker(true)
	donations := services.NewDonationLifecycle(access, capacity)
	deliveries := services.NewDeliveryLifecycle(access)

	generator := &MockContentGenerator{}
	generate, err := commands.NewGenerateContentCommandHandler(uows, access, generator, nil)
	require.NoError(t, err)

	h := api.Handlers{
		CreateDonor:           commands.NewCreateDonorCommandHandler(uows, access),
		DeleteDonor:           commands.NewDeleteDonorCommandHandler(uows, access, capacity),
		CreateCenter:          commands.NewCreateCollectionCenterCommandHandler(uows, access),
		UpdateCenter:          commands.NewUpdateCollectionCenterCommandHandler(uows, access),
		ReconcileCenterLoads:  commands.NewReconcileCenterLoadsCommandHandler(uows, access),
		CreateDeliveryPartner: commands.NewCreateDeliveryPartnerCommandHandler(uows, access),
		CreateRecipient:       commands.NewCreateRecipientCommandHandler(uows, access),
		SetRecipientActive:    commands.NewSetRecipientActiveCommandHandler(uows, access),

		CreateDonation:         commands.NewCreateDonationCommandHandler(uows, access, capacity),
		AssignDonationToCenter: commands.NewAssignDonationToCenterCommandHandler(uows, donations),
		AcceptDonation:         commands.NewAcceptDonationCommandHandler(uows, donations),
		RejectDonation:         commands.NewRejectDonationCommandHandler(uows, donations),
		ProcessDonation:        commands.NewProcessDonationCommandHandler(uows, donations),
		DeleteDonation:         commands.NewDeleteDonationCommandHandler(uows, access, capacity),

		CreateDelivery:        commands.NewCreateDeliveryCommandHandler(uows, deliveries),
		PickupDelivery:        commands.NewPickupDeliveryCommandHandler(uows, deliveries),
		MarkDeliveryInTransit: commands.NewMarkDeliveryInTransitCommandHandler(uows, deliveries),
		CompleteDelivery:      commands.NewCompleteDeliveryCommandHandler(uows, deliveries),
		CancelDelivery:        commands.NewCancelDeliveryCommandHandler(uows, deliveries),
		DeleteDelivery:        commands.NewDeleteDeliveryCommandHandler(uows, deliveries),

		RecordWaste:  commands.NewRecordWasteCommandHandler(uows, access),
		ProcessWaste: commands.NewProcessWasteCommandHandler(uows, access),
		DeleteWaste:  commands.NewDeleteWasteCommandHandler(uows, access),

		GenerateContent: generate,

		ListDonations:    queries.NewListDonationsQueryHandler(readers),
		GetDonation:      queries.NewGetDonationQueryHandler(readers),
		ListDeliveries:   queries.NewListDeliveriesQueryHandler(readers),
		ListMyDeliveries: queries.NewListMyDeliveriesQueryHandler(readers),
		Registry:         queries.NewRegistryQueryHandler(readers),
		Content:          queries.NewContentQueryHandler(readers),
	}

	auth, err := api.NewAuthenticator(secret)
	require.NoError(t, err)
	e, err := api.NewServer(h, auth, nil, nil, nil).Echo()
	require.NoError(t, err)

	return &testServer{t: t, e: e, auth: auth, generator: generator}
}

func (s *testServer) token(username string, roles ...kernel.Role) string {
	s.t.Helper()
	token, err := s.auth.IssueToken(username, time.Hour, roles...)
	require.NoError(s.t, err)
	return token
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

// create posts body and returns the id of the created resource.
func (s *testServer) create(path, token string, body any) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, path, token, body)
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	var created api.CreatedResponse
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &created))
	return created.ID.String()
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type actors struct {
	admin, staff, driver, donor string
}

func (s *testServer) actors() actors {
	return actors{
		admin:  s.token("root", kernel.RoleAdmin),
		staff:  s.token("maria", "ROLE_STAFF"),
		driver: s.token("sam", kernel.RoleDriver),
		donor:  s.token("luna", kernel.RoleDonor),
	}
}

// seed registers a center run by maria, luna's donor record, sam as a driver
// and one active recipient.
func (s *testServer) seed(a actors, capacity int) (centerID, donorID, driverID, recipientID string) {
	centerID = s.create("/api/centers", a.admin, api.CenterRequest{Name: "North depot", MaxCapacity: capacity, StaffUsername: "maria"})
	donorID = s.create("/api/donors", a.donor, api.CreateDonorRequest{Name: "Cafe Luna", Type: "RESTAURANT", Username: "luna"})
	driverID = s.create("/api/delivery-partners", a.staff, api.CreateDeliveryPartnerRequest{Name: "Sam", Username: "sam"})
	recipientID = s.create("/api/recipients", a.staff, api.CreateRecipientRequest{
		Name:    "Hope Shelter",
		Type:    "SHELTER",
		Contact: api.ContactPayload{Person: "Ann", Email: "ann@hope.example"},
	})
	return centerID, donorID, driverID, recipientID
}

func TestServer_DonationToDeliveryFlow(t *testing.T) {
	s := newTestServer(t)
	a := s.actors()
	centerID, donorID, driverID, recipientID := s.seed(a, 10)

	donationID := s.create("/api/donations", a.donor, map[string]any{
		"donorId":  donorID,
		"centerId": centerID,
		"itemName": "Rice",
		"quantity": 4,
		"unit":     "kg",
	})
	rec := s.do(http.MethodPost, "/api/donations/"+donationID+"/accept", a.staff, nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/centers/mine", a.staff, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	center := decode[api.Center](t, rec)
	assert.Equal(t, 4, center.CurrentLoad)
	assert.Equal(t, 6, center.AvailableCapacity)

	deliveryID := s.create("/api/deliveries", a.staff, map[string]any{
		"donationId":  donationID,
		"driverId":    driverID,
		"recipientId": recipientID,
		"notes":       "back door",
	})

	rec = s.do(http.MethodGet, "/api/delivery-partners?available=true", a.staff, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]api.DeliveryPartner](t, rec))

	for _, step := range []string{"pickup", "in-transit", "complete"} {
		rec = s.do(http.MethodPost, "/api/deliveries/"+deliveryID+"/"+step, a.driver, nil)
		require.Equal(t, http.StatusNoContent, rec.Code, "%s: %s", step, rec.Body.String())
	}

	rec = s.do(http.MethodGet, "/api/deliveries/mine?status=DELIVERED", a.driver, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	mine := decode[[]api.Delivery](t, rec)
	require.Len(t, mine, 1)
	assert.Equal(t, deliveryID, mine[0].ID.String())
	assert.NotNil(t, mine[0].ActualPickupTime)
	assert.NotNil(t, mine[0].DeliveredTime)

	rec = s.do(http.MethodPost, "/api/donations/"+donationID+"/process", a.staff, nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/donations/"+donationID, a.donor, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[api.Donation](t, rec)
	assert.Equal(t, "PROCESSED", got.Status)
	assert.Equal(t, "KG", got.Unit)
}

func TestServer_CapacityAndStateConflicts(t *testing.T) {
	s := newTestServer(t)
	a := s.actors()
	centerID, donorID, _, _ := s.seed(a, 10)

	first := s.create("/api/donations", a.donor, map[string]any{
		"donorId": donorID, "centerId": centerID, "itemName": "Bread", "quantity": 6, "unit": "LOAVES",
	})

	rec := s.do(http.MethodPost, "/api/donations", a.donor, map[string]any{
		"donorId": donorID, "centerId": centerID, "itemName": "Milk", "quantity": 5, "unit": "LITRE",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, decode[api.ErrorResponse](t, rec).Message, "capacity exceeded")

	rec = s.do(http.MethodPost, "/api/donations/"+first+"/reject", a.staff, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodPost, "/api/donations/"+first+"/accept", a.admin, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	s.create("/api/donations", a.donor, map[string]any{
		"donorId": donorID, "centerId": centerID, "itemName": "Milk", "quantity": 5, "unit": "LITRE",
	})

	rec = s.do(http.MethodGet, "/api/donations?status=REJECTED", a.staff, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]api.Donation](t, rec), 1)
}

func TestServer_Authentication(t *testing.T) {
	s := newTestServer(t)

	t.Run("missing token", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/api/centers", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other, err := api.NewAuthenticator("another-secret")
		require.NoError(t, err)
		token, err := other.IssueToken("root", time.Hour, kernel.RoleAdmin)
		require.NoError(t, err)

		rec := s.do(http.MethodGet, "/api/centers", token, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed token", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/api/centers", s.token("root", kernel.RoleAdmin)[:10], nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := s.auth.IssueToken("root", -time.Minute, kernel.RoleAdmin)
		require.NoError(t, err)

		rec := s.do(http.MethodGet, "/api/centers", token, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("health needs no token", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/health", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestServer_ErrorMapping(t *testing.T) {
	s := newTestServer(t)
	a := s.actors()

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		want   int
	}{
		{"body fails validation", http.MethodPost, "/api/centers", a.admin, map[string]any{"maxCapacity": 5}, http.StatusBadRequest},
		{"malformed body", http.MethodPost, "/api/centers", a.admin, "not an object", http.StatusBadRequest},
		{"malformed path id", http.MethodGet, "/api/donations/not-a-uuid", a.staff, nil, http.StatusBadRequest},
		{"unknown status filter", http.MethodGet, "/api/deliveries?status=LOST", a.staff, nil, http.StatusBadRequest},
		{"unknown content type", http.MethodGet, "/api/donations/" + uuid.NewString() + "/content/POEM", a.staff, nil, http.StatusBadRequest},
		{"donor creating a center", http.MethodPost, "/api/centers", a.donor, api.CenterRequest{Name: "Mine", MaxCapacity: 3}, http.StatusForbidden},
		{"driver listing waste", http.MethodGet, "/api/waste", a.driver, nil, http.StatusForbidden},
		{"unknown donation", http.MethodGet, "/api/donations/" + uuid.NewString(), a.staff, nil, http.StatusNotFound},
		{"unknown delivery", http.MethodPost, "/api/deliveries/" + uuid.NewString() + "/pickup", a.staff, nil, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(tt.method, tt.path, tt.token, tt.body)

			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			body := decode[api.ErrorResponse](t, rec)
			assert.Equal(t, tt.want, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestServer_Content(t *testing.T) {
	s := newTestServer(t)
	a := s.actors()
	centerID, donorID, _, _ := s.seed(a, 10)
	donationID := s.create("/api/donations", a.donor, map[string]any{
		"donorId": donorID, "centerId": centerID, "itemName": "Rice", "quantity": 2, "unit": "KG",
	})

	s.generator.On("Generate", mock.Anything, mock.MatchedBy(func(req ports.ContentRequest) bool {
		return req.Type == "THANK_YOU"
	})).Return("<p>Thank you, Cafe Luna!</p>", nil).Once()
	s.generator.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("quota exhausted")).Once()

	rec := s.do(http.MethodPost, "/api/donations/"+donationID+"/content", a.donor, api.GenerateContentRequest{Type: "thank_you"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	generated := decode[api.Content](t, rec)
	assert.Equal(t, "THANK_YOU", generated.Type)
	assert.Equal(t, "<p>Thank you, Cafe Luna!</p>", generated.Content)

	rec = s.do(http.MethodGet, "/api/donations/"+donationID+"/content/THANK_YOU", a.staff, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, generated.ID, decode[api.Content](t, rec).ID)

	rec = s.do(http.MethodGet, "/api/content/thank-you/mine", a.donor, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]api.Content](t, rec), 1)

	rec = s.do(http.MethodPost, "/api/donations/"+donationID+"/content", a.staff, api.GenerateContentRequest{Type: "FOOD_TIPS"})
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	rec = s.do(http.MethodGet, "/api/donations/"+donationID+"/content/FOOD_TIPS", a.staff, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	s.generator.AssertExpectations(t)
}

func TestServer_RoutesAreInContract(t *testing.T) {
	s := newTestServer(t)
	doc, err := api.LoadContract()
	require.NoError(t, err)

	for _, route := range s.e.Routes() {
		if route.Method == echo.RouteNotFound || !strings.HasPrefix(route.Path, "/api/") {
			continue
		}
		path := toTemplate(route.Path)
		item := doc.Paths.Find(path)
		require.NotNil(t, item, "route %s %s is missing from the contract", route.Method, path)
		assert.NotNil(t, item.GetOperation(route.Method), "operation %s %s is missing from the contract", route.Method, path)
	}

	rec := s.do(http.MethodGet, "/openapi.json", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"operationId":"generateContent"`)
}

// toTemplate turns an echo path (/a/:id) into an OpenAPI one (/a/{id}).
func toTemplate(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if strings.HasPrefix(p, ":") {
			parts[i] = "{" + p[1:] + "}"
		}
	}
	return strings.Join(parts, "/")
}
