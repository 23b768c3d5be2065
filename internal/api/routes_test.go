package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fittrack/fitness-tracker/internal/catalog"
	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"
	"fittrack/fitness-tracker/internal/repository/docstore"
	"fittrack/fitness-tracker/internal/service"
	"fittrack/fitness-tracker/internal/store/memory"
)

const testJWTSecret = "routes-test-secret"

type memUserRepo struct {
	byEmail map[string]*domain.User
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *user
	stored.ID = id
	r.byEmail[user.Email] = &stored
	return id, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	for _, user := range r.byEmail {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

type noopFileStorage struct{}

func (noopFileStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, _ string, _ time.Duration) (string, error) {
	return "https://storage.test/upload/" + objectKey, nil
}

func (noopFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.test/download/" + objectKey, nil
}

func (noopFileStorage) DeleteObject(context.Context, string) error { return nil }

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	s := memory.New()
	userRepo := &memUserRepo{byEmail: make(map[string]*domain.User)}

	authService := service.NewAuthService(userRepo, testJWTSecret, time.Hour)
	workoutService := service.NewWorkoutService(docstore.NewWorkoutRepository(s))
	planService := service.NewPlanService(docstore.NewPlanRepository(s), docstore.NewActivePlanRepository(s))
	profileService := service.NewProfileService(docstore.NewProfileRepository(s), noopFileStorage{})
	catalogClient := catalog.NewClient("http://127.0.0.1:0", nil)

	router := gin.New()
	SetupRoutes(router, testJWTSecret, authService, workoutService, planService, profileService, catalogClient)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func registerAndLogin(t *testing.T, router *gin.Engine) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{
		Name: "Alex", Email: "alex@example.com", Password: "hunter2222",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{
		Email: "alex@example.com", Password: "hunter2222",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func restDays() []domain.DaySlot {
	days := make([]domain.DaySlot, len(domain.Weekdays))
	for i, day := range domain.Weekdays {
		days[i] = domain.DaySlot{Day: day, RestDay: true}
	}
	return days
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodGet, "/api/v1/workouts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/workouts", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestResetTokenDoesNotOpenSession(t *testing.T) {
	router := newTestRouter()
	registerAndLogin(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/reset-token", "", ResetTokenRequest{
		Email: "alex@example.com",
	})
	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp struct {
		ResetToken string `json:"resetToken"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ResetToken)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/workouts", resp.ResetToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWorkoutLifecycle(t *testing.T) {
	router := newTestRouter()
	token := registerAndLogin(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/workouts", token, CreateWorkoutRequest{
		Name: "Push Day",
		Exercises: []domain.ExerciseRef{
			{ExerciseID: "ex1", Name: "Bench Press", Sets: "4", Reps: "8", RestTime: "90s"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created domain.Workout
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/workouts", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var workouts []domain.Workout
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &workouts))
	require.Len(t, workouts, 1)
	assert.Equal(t, created.ID, workouts[0].ID)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/workouts/"+created.ID, token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/workouts", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
}

func TestPlanActivationAndToday(t *testing.T) {
	router := newTestRouter()
	token := registerAndLogin(t, router)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/plans/active", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/plans", token, CreatePlanRequest{
		Name: "Deload Week",
		Days: restDays(),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created domain.Plan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/plans/"+created.ID+"/activate", token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/plans/active", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var active domain.Plan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &active))
	assert.Equal(t, created.ID, active.ID)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/plans/active/today", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var today TodayResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &today))
	require.NotNil(t, today.Slot)
	assert.True(t, today.Slot.RestDay)
	assert.Equal(t, 7, today.WeeksWorkouts)

	// Deleting the active plan leaves a dangling pointer that reads as 404.
	rec = doJSON(t, router, http.MethodDelete, "/api/v1/plans/"+created.ID, token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/plans/active", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPlanValidationRejected(t *testing.T) {
	router := newTestRouter()
	token := registerAndLogin(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/plans", token, CreatePlanRequest{
		Name: "Half Week",
		Days: restDays()[:3],
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfileEndpoints(t *testing.T) {
	router := newTestRouter()
	token := registerAndLogin(t, router)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/profile", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/api/v1/profile", token, UpdateProfileRequest{
		Name: "Alex", Age: 30, Gender: "Male",
		Height: 180, Weight: 80,
		ActivityLevel: domain.ActivityModerate, Units: "metric",
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/v1/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile ProfileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "Alex", profile.Name)
	assert.Equal(t, "24.7", profile.BMI)
	assert.Equal(t, 2759, profile.DailyCalories)
	assert.Equal(t, "180 cm", profile.FormattedHeight)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/profile/avatar-url", token, AvatarUploadRequest{
		ContentType: "image/png",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var upload service.AvatarUpload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &upload))
	assert.Contains(t, upload.UploadURL, "avatars/")
}
