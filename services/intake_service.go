package services

import (
	"errors"
	"time"

	"nutritrack/config"
	"nutritrack/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Result status tags returned alongside an intake record.
const (
	StatusCreated  = "created"
	StatusUpdated  = "updated"
	StatusUpserted = "upserted"
)

var ErrInvalidScope = errors.New("scope must be 'daily' or 'weekly'")

// intakeTable maps a scope to its table; rejected before any datastore access.
func intakeTable(scope string) (string, error) {
	switch scope {
	case models.ScopeDaily:
		return "daily_intakes", nil
	case models.ScopeWeekly:
		return "weekly_intakes", nil
	default:
		return "", ErrInvalidScope
	}
}

func conflictColumns() []clause.Column {
	return []clause.Column{{Name: "user_id"}, {Name: "date"}}
}

var nutrientColumns = []string{"calories", "protein", "carbs", "fats", "fiber", "water"}

func nutrientValues(n models.Nutrients) map[string]float64 {
	return map[string]float64{
		"calories": n.Calories,
		"protein":  n.Protein,
		"carbs":    n.Carbs,
		"fats":     n.Fats,
		"fiber":    n.Fiber,
		"water":    n.Water,
	}
}

// AddIntake increments the record for (userID, scope, date) by the given
// deltas, creating it against a zero baseline when absent. The arithmetic
// runs inside a single INSERT ... ON CONFLICT DO UPDATE statement, so
// concurrent adds for the same key cannot lose updates.
func AddIntake(userID uint, scope string, date time.Time, deltas models.Nutrients) (*models.IntakeRecord, string, error) {
	table, err := intakeTable(scope)
	if err != nil {
		return nil, "", err
	}

	// Existence check only decides the created/updated tag; a concurrent
	// writer can at worst mislabel it, never corrupt a value.
	var existing int64
	if err := config.DB.Table(table).
		Where("user_id = ? AND date = ?", userID, date).
		Count(&existing).Error; err != nil {
		return nil, "", err
	}

	set := make(map[string]interface{}, len(nutrientColumns)+1)
	for col, v := range nutrientValues(deltas) {
		set[col] = gorm.Expr(table+"."+col+" + ?", v)
	}
	set["updated_at"] = time.Now()

	rec := models.IntakeRecord{UserID: userID, Date: date, Nutrients: deltas}
	err = config.DB.Table(table).
		Clauses(clause.OnConflict{Columns: conflictColumns(), DoUpdates: clause.Assignments(set)}).
		Create(&rec).Error
	if err != nil {
		return nil, "", err
	}

	out, err := getIntake(table, userID, date)
	if err != nil {
		return nil, "", err
	}
	if existing > 0 {
		return out, StatusUpdated, nil
	}
	return out, StatusCreated, nil
}

// EditIntake overwrites the record for (userID, scope, date) with the given
// absolute values. Fields omitted by the caller arrive as zero and are stored
// as zero; this is a full replace, not a merge.
func EditIntake(userID uint, scope string, date time.Time, values models.Nutrients) (*models.IntakeRecord, string, error) {
	table, err := intakeTable(scope)
	if err != nil {
		return nil, "", err
	}

	cols := append(append([]string{}, nutrientColumns...), "updated_at")
	rec := models.IntakeRecord{UserID: userID, Date: date, Nutrients: values}
	err = config.DB.Table(table).
		Clauses(clause.OnConflict{Columns: conflictColumns(), DoUpdates: clause.AssignmentColumns(cols)}).
		Create(&rec).Error
	if err != nil {
		return nil, "", err
	}

	out, err := getIntake(table, userID, date)
	if err != nil {
		return nil, "", err
	}
	return out, StatusUpserted, nil
}

// RemoveIntake decrements the record for (userID, scope, date), clamping every
// field at zero. Removing from an absent key still materializes a zero row,
// since max(0, 0-delta) is 0.
func RemoveIntake(userID uint, scope string, date time.Time, deltas models.Nutrients) (*models.IntakeRecord, string, error) {
	table, err := intakeTable(scope)
	if err != nil {
		return nil, "", err
	}

	set := make(map[string]interface{}, len(nutrientColumns)+1)
	for col, v := range nutrientValues(deltas) {
		set[col] = gorm.Expr("GREATEST("+table+"."+col+" - ?, 0)", v)
	}
	set["updated_at"] = time.Now()

	rec := models.IntakeRecord{UserID: userID, Date: date}
	err = config.DB.Table(table).
		Clauses(clause.OnConflict{Columns: conflictColumns(), DoUpdates: clause.Assignments(set)}).
		Create(&rec).Error
	if err != nil {
		return nil, "", err
	}

	out, err := getIntake(table, userID, date)
	if err != nil {
		return nil, "", err
	}
	return out, StatusUpdated, nil
}

// GetIntake returns the record for (userID, scope, date), or
// gorm.ErrRecordNotFound when absent.
func GetIntake(userID uint, scope string, date time.Time) (*models.IntakeRecord, error) {
	table, err := intakeTable(scope)
	if err != nil {
		return nil, err
	}
	return getIntake(table, userID, date)
}

// ListIntakes returns all of a user's records in a scope, newest first.
func ListIntakes(userID uint, scope string) ([]models.IntakeRecord, error) {
	table, err := intakeTable(scope)
	if err != nil {
		return nil, err
	}

	var recs []models.IntakeRecord
	err = config.DB.Table(table).
		Where("user_id = ?", userID).
		Order("date desc").
		Find(&recs).Error
	return recs, err
}

// DeleteIntake removes the record for (userID, scope, date), reporting
// gorm.ErrRecordNotFound when there was nothing to delete.
func DeleteIntake(userID uint, scope string, date time.Time) error {
	table, err := intakeTable(scope)
	if err != nil {
		return err
	}

	res := config.DB.Table(table).
		Where("user_id = ? AND date = ?", userID, date).
		Delete(&models.IntakeRecord{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func getIntake(table string, userID uint, date time.Time) (*models.IntakeRecord, error) {
	var rec models.IntakeRecord
	err := config.DB.Table(table).
		Where("user_id = ? AND date = ?", userID, date).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
