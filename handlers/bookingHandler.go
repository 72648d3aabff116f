package handlers

import (
	"VitaClinic/scheduling"
	"VitaClinic/services"
	"VitaClinic/utils"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service *services.BookingService
}

func NewBookingHandler(service *services.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

type bookRequest struct {
	PatientID string `json:"patient_id"`
	SlotID    string `json:"slot_id"`
	Reason    string `json:"reason"`
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if req.PatientID == "" || req.SlotID == "" {
		c.JSON(400, gin.H{"error": "patient_id and slot_id are required"})
		return
	}

	booking, err := h.service.Book(c, req.PatientID, req.SlotID, req.Reason, time.Now().UTC())
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, booking)
}

type emergencyBookRequest struct {
	PatientID     string `json:"patient_id"`
	SlotID        string `json:"slot_id"`
	UrgencyReason string `json:"urgency_reason"`
}

func (h *BookingHandler) CreateEmergencyBooking(c *gin.Context) {
	var req emergencyBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if req.PatientID == "" || req.SlotID == "" {
		c.JSON(400, gin.H{"error": "patient_id and slot_id are required"})
		return
	}

	booking, err := h.service.BookEmergency(c, req.PatientID, req.SlotID, req.UrgencyReason, time.Now().UTC())
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, booking)
}

func (h *BookingHandler) GetBookingByID(c *gin.Context) {
	id := c.Param("booking_id")
	booking, err := h.service.GetByID(c, id)
	if err != nil || booking == nil {
		c.JSON(404, gin.H{"error": "Booking not found"})
		return
	}
	c.JSON(200, booking)
}

func (h *BookingHandler) GetPatientBookings(c *gin.Context) {
	patientID := c.Param("patient_id")
	bookings, err := h.service.GetByPatient(c, patientID)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, bookings)
}

func (h *BookingHandler) GetDoctorBookings(c *gin.Context) {
	doctorID := c.Param("doctor_id")

	now := time.Now().UTC()
	from, to := now, now.AddDate(0, 0, 30)
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(400, gin.H{"error": "invalid from date"})
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(400, gin.H{"error": "invalid to date"})
			return
		}
		to = parsed
	}

	bookings, err := h.service.GetByDoctor(c, doctorID, from, to)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, bookings)
}

type triageSubmission struct {
	scheduling.TriageFields
	ReasonDetails string `json:"reason_details"`
}

// SubmitTriage files a cancel or reschedule request against a booking.
func (h *BookingHandler) SubmitTriage(c *gin.Context) {
	bookingID := c.Param("booking_id")

	var req triageSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateTriagePayload(req.TriageFields); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	request, err := h.service.SubmitTriage(c, bookingID, req.TriageFields, req.ReasonDetails, time.Now().UTC())
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, request)
}

type triageReview struct {
	Approved bool `json:"approved"`
}

func (h *BookingHandler) ReviewTriage(c *gin.Context) {
	requestID, err := strconv.ParseUint(c.Param("request_id"), 10, 64)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid request id"})
		return
	}

	var req triageReview
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	request, err := h.service.ReviewTriage(c, uint(requestID), req.Approved, time.Now().UTC())
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, request)
}

type rescheduleRequest struct {
	NewSlotID string `json:"new_slot_id"`
}

func (h *BookingHandler) Reschedule(c *gin.Context) {
	requestID, err := strconv.ParseUint(c.Param("request_id"), 10, 64)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid request id"})
		return
	}

	var req rescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if req.NewSlotID == "" {
		c.JSON(400, gin.H{"error": "new_slot_id is required"})
		return
	}

	booking, err := h.service.Reschedule(c, uint(requestID), req.NewSlotID, time.Now().UTC())
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, booking)
}

func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	id := c.Param("booking_id")
	if err := h.service.Complete(c, id, time.Now().UTC()); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"message": "Booking completed"})
}

func (h *BookingHandler) MarkNoShow(c *gin.Context) {
	id := c.Param("booking_id")
	if err := h.service.MarkNoShow(c, id, time.Now().UTC()); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"message": "Booking marked as no-show"})
}

type doctorCancelRequest struct {
	Reason string `json:"reason"`
}

func (h *BookingHandler) CancelByDoctor(c *gin.Context) {
	id := c.Param("booking_id")

	var req doctorCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.CancelByDoctor(c, id, req.Reason, time.Now().UTC()); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"message": "Booking cancelled"})
}
