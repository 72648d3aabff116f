package handlers

import (
	"VitaClinic/models"
	"VitaClinic/scheduling"
	"VitaClinic/services"
	"VitaClinic/utils"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	service *services.PatientService
}

func NewPatientHandler(service *services.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Create(c, &patient); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, patient)
}

func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	id := c.Param("patient_id")
	patient, err := h.service.GetByID(c, id)
	if err != nil || patient == nil {
		c.JSON(404, gin.H{"error": "Patient not found"})
		return
	}
	c.JSON(200, patient)
}

func (h *PatientHandler) GetAllPatients(c *gin.Context) {
	patients, err := h.service.GetAll(c)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, patients)
}

func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	id := c.Param("patient_id")
	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	patient.ID = id
	if err := h.service.Update(c, &patient); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, patient)
}

func (h *PatientHandler) ArchivePatient(c *gin.Context) {
	id := c.Param("patient_id")
	if err := h.service.Archive(c, id); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(204, gin.H{"message": "Patient archived"})
}

// SubmitQuestionnaire scores a compliance questionnaire and returns the
// stored record together with the patient's new tier.
func (h *PatientHandler) SubmitQuestionnaire(c *gin.Context) {
	id := c.Param("patient_id")

	var answers scheduling.QuestionnaireAnswers
	if err := c.ShouldBindJSON(&answers); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateQuestionnairePayload(answers); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	questionnaire, err := h.service.SubmitQuestionnaire(c, id, answers, time.Now().UTC())
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, gin.H{
		"questionnaire": questionnaire,
		"score":         questionnaire.CalculatedScore,
		"tier":          scheduling.TierForScore(questionnaire.CalculatedScore),
	})
}

// GetBookingWindow returns the patient's current window against a doctor's
// configured horizon. The doctor_window_days query parameter overrides the
// default for what-if checks.
func (h *PatientHandler) GetBookingWindow(c *gin.Context) {
	id := c.Param("patient_id")

	patient, err := h.service.GetByID(c, id)
	if err != nil || patient == nil {
		c.JSON(404, gin.H{"error": "Patient not found"})
		return
	}

	windowDays := 30
	if raw := c.Query("doctor_window_days"); raw != "" {
		windowDays, err = strconv.Atoi(raw)
		if err != nil {
			c.JSON(400, gin.H{"error": "invalid doctor_window_days"})
			return
		}
	}

	window, err := h.service.BookingWindow(c, patient, windowDays, time.Now().UTC())
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, window)
}
