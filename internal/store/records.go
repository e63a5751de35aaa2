package store

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fjacquet/finanai/internal/currencyutils"
	"fjacquet/finanai/internal/dateutils"
	"fjacquet/finanai/internal/finerrors"
	"fjacquet/finanai/internal/logging"
	"fjacquet/finanai/internal/models"
)

// noGoal is the select value the dashboard stores when an expense is not
// tied to a goal.
const noGoal = "none"

// record is one stored object before validation. Values keep the dynamic
// types of the source encoding (json.Number, float64, int, string, bool,
// time.Time).
type record map[string]interface{}

// transactionDoc is the stored shape of a transaction in every backend.
type transactionDoc struct {
	ID               string      `json:"id" yaml:"id" csv:"id"`
	Amount           json.Number `json:"amount" yaml:"amount" csv:"amount"`
	Description      string      `json:"description" yaml:"description" csv:"description"`
	Category         string      `json:"category" yaml:"category" csv:"category"`
	Necessity        string      `json:"necessity,omitempty" yaml:"necessity,omitempty" csv:"necessity"`
	GoalContribution string      `json:"goalContribution,omitempty" yaml:"goalContribution,omitempty" csv:"goal_contribution"`
	Date             string      `json:"date" yaml:"date" csv:"date"`
}

// goalDoc is the stored shape of a goal in every backend.
type goalDoc struct {
	ID           string      `json:"id" yaml:"id" csv:"id"`
	Name         string      `json:"name" yaml:"name" csv:"name"`
	Date         string      `json:"date" yaml:"date" csv:"date"`
	Completed    bool        `json:"completed" yaml:"completed" csv:"completed"`
	TargetAmount json.Number `json:"targetAmount,omitempty" yaml:"targetAmount,omitempty" csv:"target_amount"`
}

func newTransactionDoc(t models.Transaction) transactionDoc {
	return transactionDoc{
		ID:               t.ID,
		Amount:           json.Number(t.Amount.String()),
		Description:      t.Description,
		Category:         string(t.Category),
		Necessity:        string(t.Necessity),
		GoalContribution: t.GoalContribution,
		Date:             formatDate(t.Date),
	}
}

func newGoalDoc(g models.Goal) goalDoc {
	doc := goalDoc{
		ID:        g.ID,
		Name:      g.Name,
		Date:      formatDate(g.Date),
		Completed: g.Completed,
	}
	if !g.TargetAmount.IsZero() {
		doc.TargetAmount = json.Number(g.TargetAmount.String())
	}
	return doc
}

func (d transactionDoc) record() record {
	r := record{
		"id":          d.ID,
		"amount":      string(d.Amount),
		"description": d.Description,
		"category":    d.Category,
		"date":        d.Date,
	}
	if d.Necessity != "" {
		r["necessity"] = d.Necessity
	}
	if d.GoalContribution != "" {
		r["goalContribution"] = d.GoalContribution
	}
	return r
}

func (d goalDoc) record() record {
	r := record{
		"id":        d.ID,
		"name":      d.Name,
		"date":      d.Date,
		"completed": d.Completed,
	}
	if d.TargetAmount != "" {
		r["targetAmount"] = string(d.TargetAmount)
	}
	return r
}

func transactionDocs(transactions []models.Transaction) []transactionDoc {
	docs := make([]transactionDoc, 0, len(transactions))
	for _, t := range transactions {
		docs = append(docs, newTransactionDoc(t))
	}
	return docs
}

func goalDocs(goals []models.Goal) []goalDoc {
	docs := make([]goalDoc, 0, len(goals))
	for _, g := range goals {
		docs = append(docs, newGoalDoc(g))
	}
	return docs
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateutils.DateLayoutJSISO)
}

// decodeTransactions converts stored records into transactions. Malformed
// records are skipped with a warning so one bad entry never hides the rest.
func decodeTransactions(records []record, logger logging.Logger) []models.Transaction {
	transactions := make([]models.Transaction, 0, len(records))
	for i, r := range records {
		t, err := decodeTransaction(r, i)
		if err != nil {
			logger.WithError(err).Warn("Skipping malformed transaction",
				logging.Field{Key: logging.FieldIndex, Value: i})
			continue
		}
		if !t.Category.IsValid() {
			logger.Warn("Unrecognized category, counted as other",
				logging.Field{Key: logging.FieldIndex, Value: i},
				logging.Field{Key: logging.FieldCategory, Value: string(t.Category)})
		}
		transactions = append(transactions, t)
	}
	return transactions
}

func decodeTransaction(r record, index int) (models.Transaction, error) {
	if r == nil {
		return models.Transaction{}, &finerrors.ValidationError{Record: "transaction", Index: index, Field: "record", Reason: "is not an object"}
	}

	amount, err := decimalField(r, "amount")
	if err != nil {
		return models.Transaction{}, &finerrors.ValidationError{Record: "transaction", Index: index, Field: "amount", Reason: err.Error()}
	}

	date, err := dateField(r, "date")
	if err != nil {
		return models.Transaction{}, &finerrors.ValidationError{Record: "transaction", Index: index, Field: "date", Reason: err.Error()}
	}

	necessityRaw, _ := stringField(r, "necessity")
	necessity, err := models.ParseNecessity(necessityRaw)
	if err != nil {
		return models.Transaction{}, &finerrors.ValidationError{Record: "transaction", Index: index, Field: "necessity", Reason: err.Error()}
	}

	id, _ := stringField(r, "id")
	if id == "" {
		id = uuid.NewString()
	}
	description, _ := stringField(r, "description")
	category, _ := stringField(r, "category")
	goal, _ := stringField(r, "goalContribution")
	if goal == noGoal {
		goal = ""
	}

	return models.Transaction{
		ID:               id,
		Amount:           amount,
		Description:      description,
		Category:         models.Category(strings.ToLower(strings.TrimSpace(category))),
		Necessity:        necessity,
		GoalContribution: goal,
		Date:             date,
	}, nil
}

// decodeGoals converts stored records into goals, skipping malformed ones.
func decodeGoals(records []record, logger logging.Logger) []models.Goal {
	goals := make([]models.Goal, 0, len(records))
	for i, r := range records {
		g, err := decodeGoal(r, i)
		if err != nil {
			logger.WithError(err).Warn("Skipping malformed goal",
				logging.Field{Key: logging.FieldIndex, Value: i})
			continue
		}
		goals = append(goals, g)
	}
	return goals
}

func decodeGoal(r record, index int) (models.Goal, error) {
	if r == nil {
		return models.Goal{}, &finerrors.ValidationError{Record: "goal", Index: index, Field: "record", Reason: "is not an object"}
	}

	date, err := dateField(r, "date")
	if err != nil {
		return models.Goal{}, &finerrors.ValidationError{Record: "goal", Index: index, Field: "date", Reason: err.Error()}
	}

	completed, err := boolField(r, "completed")
	if err != nil {
		return models.Goal{}, &finerrors.ValidationError{Record: "goal", Index: index, Field: "completed", Reason: err.Error()}
	}

	target := decimal.Zero
	if _, ok := r["targetAmount"]; ok {
		if raw, _ := stringField(r, "targetAmount"); raw != "" {
			target, err = decimalField(r, "targetAmount")
			if err != nil {
				return models.Goal{}, &finerrors.ValidationError{Record: "goal", Index: index, Field: "targetAmount", Reason: err.Error()}
			}
		}
	}

	id, _ := stringField(r, "id")
	if id == "" {
		id = uuid.NewString()
	}
	name, _ := stringField(r, "name")

	return models.Goal{
		ID:           id,
		Name:         name,
		Date:         date,
		Completed:    completed,
		TargetAmount: target,
	}, nil
}

func stringField(r record, key string) (string, bool) {
	switch v := r[key].(type) {
	case nil:
		return "", false
	case string:
		return strings.TrimSpace(v), true
	case json.Number:
		return v.String(), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return fmt.Sprint(v), true
	}
}

func decimalField(r record, key string) (decimal.Decimal, error) {
	switch v := r[key].(type) {
	case nil:
		return decimal.Zero, fmt.Errorf("is missing")
	case json.Number:
		return decimal.NewFromString(v.String())
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, fmt.Errorf("is not a finite number")
		}
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case string:
		return currencyutils.ParseAmount(v)
	default:
		return decimal.Zero, fmt.Errorf("has unsupported type %T", v)
	}
}

func dateField(r record, key string) (time.Time, error) {
	switch v := r[key].(type) {
	case nil:
		return time.Time{}, fmt.Errorf("is missing")
	case time.Time:
		return v, nil
	case string:
		return dateutils.ParseDate(v)
	case json.Number:
		ms, err := v.Int64()
		if err != nil {
			return time.Time{}, err
		}
		return time.UnixMilli(ms).UTC(), nil
	case int:
		return time.UnixMilli(int64(v)).UTC(), nil
	case int64:
		return time.UnixMilli(v).UTC(), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return time.Time{}, fmt.Errorf("is not a finite number")
		}
		return time.UnixMilli(int64(v)).UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("has unsupported type %T", v)
	}
}

func boolField(r record, key string) (bool, error) {
	switch v := r[key].(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return false, nil
		}
		return strconv.ParseBool(strings.TrimSpace(v))
	case json.Number:
		return v.String() != "0", nil
	case int:
		return v != 0, nil
	case int64:
		return v != 0, nil
	default:
		return false, fmt.Errorf("has unsupported type %T", v)
	}
}
