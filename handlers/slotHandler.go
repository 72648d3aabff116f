package handlers

import (
	"VitaClinic/models"
	"VitaClinic/services"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type SlotHandler struct {
	service *services.SlotService
}

func NewSlotHandler(service *services.SlotService) *SlotHandler {
	return &SlotHandler{service: service}
}

func (h *SlotHandler) CreateSlot(c *gin.Context) {
	var slot models.Slot
	if err := c.ShouldBindJSON(&slot); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	slot.DoctorID = c.Param("doctor_id")
	if err := h.service.Create(c, &slot); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, slot)
}

type recurringSlotsRequest struct {
	From         string `json:"from"`
	To           string `json:"to"`
	DayStartHour int    `json:"day_start_hour"`
	DayEndHour   int    `json:"day_end_hour"`
	SlotType     string `json:"slot_type"`
}

// GenerateRecurring bulk-creates weekday slot runs over a date range.
func (h *SlotHandler) GenerateRecurring(c *gin.Context) {
	doctorID := c.Param("doctor_id")

	var req recurringSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	from, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid from date"})
		return
	}
	to, err := time.Parse("2006-01-02", req.To)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid to date"})
		return
	}
	if req.SlotType == "" {
		req.SlotType = models.SlotFollowUp
	}

	slots, err := h.service.GenerateRecurring(c, doctorID, from, to, req.DayStartHour, req.DayEndHour, req.SlotType, time.Now().UTC())
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, gin.H{"created": len(slots), "slots": slots})
}

func (h *SlotHandler) BlockSlot(c *gin.Context) {
	doctorID := c.Param("doctor_id")
	slotID := c.Param("slot_id")
	if err := h.service.Block(c, slotID, doctorID); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"message": "Slot blocked"})
}

// GetAvailableForPatient lists the open slots a patient can actually book,
// together with their current booking window.
func (h *SlotHandler) GetAvailableForPatient(c *gin.Context) {
	doctorID := c.Param("doctor_id")
	patientID := c.Query("patient_id")
	if patientID == "" {
		c.JSON(400, gin.H{"error": "patient_id is required"})
		return
	}

	slots, window, err := h.service.AvailableForPatient(c, doctorID, patientID, time.Now().UTC())
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"window": window, "slots": slots})
}

type reserveUrgentRequest struct {
	Percentage float64 `json:"percentage"`
}

func (h *SlotHandler) ReserveUrgent(c *gin.Context) {
	doctorID := c.Param("doctor_id")

	var req reserveUrgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	reserved, err := h.service.ReserveUrgent(c, doctorID, req.Percentage, time.Now().UTC())
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"reserved": reserved})
}

func (h *SlotHandler) ReleaseUnusedReserved(c *gin.Context) {
	doctorID := c.Param("doctor_id")

	hoursBefore := 48
	if raw := c.Query("hours_before"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(400, gin.H{"error": "invalid hours_before"})
			return
		}
		hoursBefore = parsed
	}

	released, err := h.service.ReleaseUnusedReserved(c, doctorID, hoursBefore, time.Now().UTC())
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"released": released})
}

// GetScarcity reports the doctor's supply level over the lookahead window.
func (h *SlotHandler) GetScarcity(c *gin.Context) {
	doctorID := c.Param("doctor_id")

	level, available, total, err := h.service.Scarcity(c, doctorID, time.Now().UTC())
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{
		"scarcity_level":  level,
		"available_slots": available,
		"total_slots":     total,
	})
}

// GetWaitlistRanking returns the prioritized demand roster with the
// current reservation plan.
func (h *SlotHandler) GetWaitlistRanking(c *gin.Context) {
	doctorID := c.Param("doctor_id")

	ranking, err := h.service.RankWaitlist(c, doctorID, time.Now().UTC())
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, ranking)
}
