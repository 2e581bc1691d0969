package main

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Skufu/cardiorisk/internal/patient"
	"github.com/Skufu/cardiorisk/internal/report"
	"github.com/Skufu/cardiorisk/internal/risk"
)

//go:embed web
var webFS embed.FS

var templateFuncs = template.FuncMap{
	"percent": report.FormatProbability,
}

// Form choices for the enumerated inputs.
var formOptions = struct {
	Sex        []string
	YesNo      []string
	ChestPain  []int
	RestingECG []int
	STSlope    []int
	Vessels    []int
	Thal       []int
}{
	Sex:        []string{patient.SexFemale, patient.SexMale},
	YesNo:      []string{patient.No, patient.Yes},
	ChestPain:  []int{1, 2, 3, 4},
	RestingECG: []int{0, 1, 2},
	STSlope:    []int{1, 2, 3},
	Vessels:    []int{0, 1, 2, 3},
	Thal:       []int{3, 6, 7},
}

var fieldLabels = map[string]string{
	"Age":               "Age",
	"Sex":               "Gender",
	"ChestPainType":     "Chest pain type",
	"RestingBP":         "Resting blood pressure",
	"Cholesterol":       "Cholesterol",
	"FastingBloodSugar": "Fasting blood sugar",
	"RestingECG":        "Resting ECG result",
	"MaxHeartRate":      "Max heart rate",
	"ExerciseAngina":    "Exercise-induced angina",
	"STDepression":      "ST depression",
	"STSlope":           "ST slope",
	"MajorVessels":      "Number of major vessels",
	"Thalassemia":       "Thalassemia",
}

type handler struct {
	db     HealthChecker
	models ModelSource
}

type resultView struct {
	ID         string
	Assessment risk.Assessment
	Table      *report.Table
}

type pageData struct {
	Input      patient.Input
	Options    interface{}
	Result     *resultView
	Errors     []string
	ModelError string
	NoFactors  string
}

type predictResponse struct {
	ID string `json:"id"`
	risk.Assessment
	Summary *report.Table `json:"summary,omitempty"`
}

func (h *handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", h.page(patient.Defaults()))
}

func (h *handler) predictForm(c *gin.Context) {
	var in patient.Input
	if err := c.ShouldBind(&in); err != nil {
		page := h.page(in)
		page.Errors = bindingMessages(err)
		c.HTML(http.StatusUnprocessableEntity, "index.html", page)
		return
	}
	if missing := patient.MissingFields(func(column string) bool {
		_, ok := c.Request.PostForm[column]
		return ok
	}); len(missing) > 0 {
		page := h.page(in)
		page.Errors = requiredMessages(missing)
		c.HTML(http.StatusUnprocessableEntity, "index.html", page)
		return
	}

	page := h.page(in)
	id := uuid.NewString()
	assessment, err := h.predict(id, in)
	if err != nil {
		slog.Error("prediction failed", "id", id, "error", err)
		page.ModelError = fmt.Sprintf("Error loading model: %v", err)
		c.HTML(http.StatusOK, "index.html", page)
		return
	}

	page.Result = &resultView{ID: id, Assessment: assessment, Table: summarize(id, in, assessment)}
	c.HTML(http.StatusOK, "index.html", page)
}

func (h *handler) predictAPI(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}
	var present map[string]json.RawMessage
	if err := json.Unmarshal(raw, &present); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}
	if missing := patient.MissingFields(func(column string) bool {
		v, ok := present[column]
		return ok && string(v) != "null"
	}); len(missing) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "validation_failed",
			"details": requiredMessages(missing),
		})
		return
	}

	var in patient.Input
	if err := binding.JSON.BindBody(raw, &in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation_failed",
				"details": bindingMessages(err),
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}

	id := uuid.NewString()
	assessment, err := h.predict(id, in)
	if err != nil {
		slog.Error("prediction failed", "id", id, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "model_unavailable",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, predictResponse{
		ID:         id,
		Assessment: assessment,
		Summary:    summarize(id, in, assessment),
	})
}

func (h *handler) readyz(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{"status": "ok", "model": "ok", "db": "disabled"}

	if _, err := h.models.Get(); err != nil {
		status = http.StatusServiceUnavailable
		body["status"] = "degraded"
		body["model"] = fmt.Sprintf("unavailable: %v", err)
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		body["db"] = "ok"
		if err := h.db.Ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
			body["db"] = fmt.Sprintf("unhealthy: %v", err)
		}
	}

	c.JSON(status, body)
}

func (h *handler) reloadModel(c *gin.Context) {
	if err := h.models.Reload(); err != nil {
		slog.Error("model reload failed", "path", h.models.Path(), "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "model_unavailable",
			"details": err.Error(),
		})
		return
	}
	slog.Info("model reloaded", "path", h.models.Path())
	c.JSON(http.StatusOK, gin.H{"status": "reloaded", "path": h.models.Path()})
}

// predict runs the classifier on one patient and applies the risk rules.
func (h *handler) predict(id string, in patient.Input) (risk.Assessment, error) {
	clf, err := h.models.Get()
	if err != nil {
		return risk.Assessment{}, err
	}

	features := in.Features()
	diagnosis, err := clf.Predict(features)
	if err != nil {
		return risk.Assessment{}, fmt.Errorf("predict: %w", err)
	}
	proba, err := clf.PredictProba(features)
	if err != nil {
		return risk.Assessment{}, fmt.Errorf("predict probability: %w", err)
	}

	a := risk.Assess(diagnosis, proba[1]*100, in)
	slog.Info("prediction completed",
		"id", id,
		"diagnosis", a.Diagnosis,
		"probability", report.FormatProbability(a.Probability),
		"risk_level", a.Level,
		"risk_factors", len(a.Factors),
	)
	return a, nil
}

func (h *handler) page(in patient.Input) pageData {
	return pageData{
		Input:     in,
		Options:   formOptions,
		NoFactors: risk.NoFactorsMessage,
	}
}

// summarize builds the summary table. A failure is logged and the rest of
// the result is still shown.
func summarize(id string, in patient.Input, a risk.Assessment) *report.Table {
	table, err := report.Build(in, a)
	if err != nil {
		slog.Error("summary table failed", "id", id, "error", err)
		return nil
	}
	return &table
}

func requiredMessages(fields []string) []string {
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		label, ok := fieldLabels[f]
		if !ok {
			label = f
		}
		msgs = append(msgs, fmt.Sprintf("%s is required.", label))
	}
	return msgs
}

func bindingMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"Invalid form submission."}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		label, ok := fieldLabels[fe.Field()]
		if !ok {
			label = fe.Field()
		}
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required.", label))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s.", label, fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s.", label, fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s.", label, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid.", label))
		}
	}
	return msgs
}
