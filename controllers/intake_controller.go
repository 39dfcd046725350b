package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"nutritrack/models"
	"nutritrack/services"
	"nutritrack/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type IntakeController struct {
	Hub *services.IntakeHub
}

func NewIntakeController(hub *services.IntakeHub) *IntakeController {
	return &IntakeController{Hub: hub}
}

// intakeBody is the shared request shape of add/edit/remove. Nutrient fields
// are pointers so that absent and zero can be told apart during validation;
// absent always resolves to 0.
type intakeBody struct {
	Scope    string   `json:"scope"`
	Date     string   `json:"date"`
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fats     *float64 `json:"fats"`
	Fiber    *float64 `json:"fiber"`
	Water    *float64 `json:"water"`
}

// nutrients validates every provided field is a finite non-negative number and
// resolves absent fields to 0.
func (b *intakeBody) nutrients() (models.Nutrients, error) {
	fields := []struct {
		name string
		val  *float64
	}{
		{"calories", b.Calories},
		{"protein", b.Protein},
		{"carbs", b.Carbs},
		{"fats", b.Fats},
		{"fiber", b.Fiber},
		{"water", b.Water},
	}
	for _, f := range fields {
		if !utils.ValidNutrient(f.val) {
			return models.Nutrients{}, fmt.Errorf("%s must be a finite non-negative number", f.name)
		}
	}
	return models.Nutrients{
		Calories: utils.NutrientValue(b.Calories),
		Protein:  utils.NutrientValue(b.Protein),
		Carbs:    utils.NutrientValue(b.Carbs),
		Fats:     utils.NutrientValue(b.Fats),
		Fiber:    utils.NutrientValue(b.Fiber),
		Water:    utils.NutrientValue(b.Water),
	}, nil
}

type intakeOp func(userID uint, scope string, date time.Time, n models.Nutrients) (*models.IntakeRecord, string, error)

func (ic *IntakeController) AddIntake(c *gin.Context) {
	ic.apply(c, services.AddIntake)
}

func (ic *IntakeController) EditIntake(c *gin.Context) {
	ic.apply(c, services.EditIntake)
}

func (ic *IntakeController) RemoveIntake(c *gin.Context) {
	ic.apply(c, services.RemoveIntake)
}

func (ic *IntakeController) apply(c *gin.Context, op intakeOp) {
	userID, err := paramUserID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var body intakeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if body.Date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'date' field (expected YYYY-MM-DD)"})
		return
	}
	date, err := utils.ParseDate(body.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
		return
	}

	n, err := body.nutrients()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, status, err := op(userID, body.Scope, date, n)
	if err != nil {
		if errors.Is(err, services.ErrInvalidScope) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		utils.Log.WithError(err).WithField("user_id", userID).Error("intake operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": storageErrorMessage(err)})
		return
	}

	ic.Hub.BroadcastUpdate(userID, services.IntakeEvent{Scope: body.Scope, Status: status, Intake: rec})

	code := http.StatusOK
	if status == services.StatusCreated {
		code = http.StatusCreated
	}
	c.JSON(code, gin.H{"status": status, "intake": rec})
}

// GetIntake reads one record, keyed by ?scope= and ?date=.
func (ic *IntakeController) GetIntake(c *gin.Context) {
	userID, scope, date, ok := keyFromQuery(c)
	if !ok {
		return
	}

	rec, err := services.GetIntake(userID, scope, date)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidScope):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "intake record not found"})
		default:
			utils.Log.WithError(err).Error("intake lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": storageErrorMessage(err)})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"intake": rec})
}

// GetIntakeHistory lists all of a user's records in a scope, newest first.
func (ic *IntakeController) GetIntakeHistory(c *gin.Context) {
	userID, err := paramUserID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	recs, err := services.ListIntakes(userID, c.Query("scope"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidScope) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		utils.Log.WithError(err).Error("intake history failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": storageErrorMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"intakes": recs})
}

// DeleteIntake removes one record, keyed by ?scope= and ?date=.
func (ic *IntakeController) DeleteIntake(c *gin.Context) {
	userID, scope, date, ok := keyFromQuery(c)
	if !ok {
		return
	}

	if err := services.DeleteIntake(userID, scope, date); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidScope):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "intake record not found"})
		default:
			utils.Log.WithError(err).Error("intake delete failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": storageErrorMessage(err)})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func paramUserID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func keyFromQuery(c *gin.Context) (userID uint, scope string, date time.Time, ok bool) {
	userID, err := paramUserID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, "", time.Time{}, false
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'date' query param"})
		return 0, "", time.Time{}, false
	}
	date, err = utils.ParseDate(dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
		return 0, "", time.Time{}, false
	}

	return userID, c.Query("scope"), date, true
}

// storageErrorMessage hides datastore detail outside of debug/test modes.
func storageErrorMessage(err error) string {
	if gin.Mode() == gin.ReleaseMode {
		return "intake operation failed"
	}
	return err.Error()
}
