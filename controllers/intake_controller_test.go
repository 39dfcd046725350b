package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nutritrack/config"
	"nutritrack/routes"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func doJSON(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := routes.SetupRouter()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	prev := config.DB
	config.DB = gdb
	return mock, func() {
		config.DB = prev
		db.Close()
	}
}

var intakeColumns = []string{
	"id", "user_id", "date", "calories", "protein", "carbs", "fats", "fiber", "water",
	"created_at", "updated_at",
}

type envelope struct {
	Status string `json:"status"`
	Error  string `json:"error"`
	Intake struct {
		UserID   uint    `json:"user_id"`
		Calories float64 `json:"calories"`
		Protein  float64 `json:"protein"`
		Carbs    float64 `json:"carbs"`
		Fats     float64 `json:"fats"`
		Fiber    float64 `json:"fiber"`
		Water    float64 `json:"water"`
	} `json:"intake"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestAddIntakeRejectsInvalidScope(t *testing.T) {
	// validation fails before any datastore access, so no DB is wired here
	w := doJSON(t, http.MethodPost, "/intake/add/1",
		`{"scope":"monthly","date":"2024-01-01","calories":500}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w).Error, "daily")
}

func TestAddIntakeRejectsMissingDate(t *testing.T) {
	w := doJSON(t, http.MethodPost, "/intake/add/1", `{"scope":"daily","calories":500}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w).Error, "date")
}

func TestAddIntakeRejectsMalformedDate(t *testing.T) {
	w := doJSON(t, http.MethodPost, "/intake/add/1",
		`{"scope":"daily","date":"01-01-2024","calories":500}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w).Error, "YYYY-MM-DD")
}

func TestAddIntakeRejectsNegativeNutrient(t *testing.T) {
	w := doJSON(t, http.MethodPost, "/intake/add/1",
		`{"scope":"daily","date":"2024-01-01","calories":-5}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w).Error, "calories")
}

func TestAddIntakeRejectsNonNumericNutrient(t *testing.T) {
	w := doJSON(t, http.MethodPost, "/intake/add/1",
		`{"scope":"daily","date":"2024-01-01","calories":"abc"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddIntakeRejectsBadUserID(t *testing.T) {
	w := doJSON(t, http.MethodPost, "/intake/add/abc",
		`{"scope":"daily","date":"2024-01-01","calories":500}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w).Error, "user id")
}

func TestAddIntakeCreatesRecord(t *testing.T) {
	mock, cleanup := newMockDB(t)
	defer cleanup()

	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "daily_intakes"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "daily_intakes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "daily_intakes"`).
		WillReturnRows(sqlmock.NewRows(intakeColumns).
			AddRow(1, 1, date, 500.0, 20.0, 0.0, 0.0, 0.0, 0.0, time.Now(), time.Now()))

	w := doJSON(t, http.MethodPost, "/intake/add/1",
		`{"scope":"daily","date":"2024-01-01","calories":500,"protein":20}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	env := decode(t, w)
	assert.Equal(t, "created", env.Status)
	assert.Equal(t, 500.0, env.Intake.Calories)
	assert.Equal(t, 20.0, env.Intake.Protein)
	assert.Equal(t, 0.0, env.Intake.Carbs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEditIntakeZeroesOmittedFields(t *testing.T) {
	mock, cleanup := newMockDB(t)
	defer cleanup()

	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "daily_intakes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()
	// record previously had protein 50; the overwrite stores 0 for it
	mock.ExpectQuery(`SELECT \* FROM "daily_intakes"`).
		WillReturnRows(sqlmock.NewRows(intakeColumns).
			AddRow(1, 1, date, 100.0, 0.0, 0.0, 0.0, 0.0, 0.0, time.Now(), time.Now()))

	w := doJSON(t, http.MethodPut, "/intake/edit/1",
		`{"scope":"daily","date":"2024-01-01","calories":100}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env := decode(t, w)
	assert.Equal(t, "upserted", env.Status)
	assert.Equal(t, 100.0, env.Intake.Calories)
	assert.Equal(t, 0.0, env.Intake.Protein)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveIntakeReturnsClampedRecord(t *testing.T) {
	mock, cleanup := newMockDB(t)
	defer cleanup()

	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "daily_intakes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()
	mock.ExpectQuery(`SELECT \* FROM "daily_intakes"`).
		WillReturnRows(sqlmock.NewRows(intakeColumns).
			AddRow(1, 1, date, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, time.Now(), time.Now()))

	w := doJSON(t, http.MethodPost, "/intake/remove/1",
		`{"scope":"daily","date":"2024-01-01","calories":500}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env := decode(t, w)
	assert.Equal(t, "updated", env.Status)
	assert.Equal(t, 0.0, env.Intake.Calories)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetIntakeNotFound(t *testing.T) {
	mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "daily_intakes"`).
		WillReturnRows(sqlmock.NewRows(intakeColumns))

	w := doJSON(t, http.MethodGet, "/intake/1?scope=daily&date=2024-01-01", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteIntakeMissingDateParam(t *testing.T) {
	w := doJSON(t, http.MethodDelete, "/intake/1?scope=daily", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w).Error, "date")
}
