package controllers

import (
	"VitaClinic/handlers"

	"github.com/gin-gonic/gin"
)

func SetupSchedulingRoutes(router *gin.Engine, patientHandler *handlers.PatientHandler, doctorHandler *handlers.DoctorHandler, slotHandler *handlers.SlotHandler, bookingHandler *handlers.BookingHandler) {
	router.POST("/doctors", doctorHandler.CreateDoctor)
	router.GET("/doctors/:doctor_id", doctorHandler.GetDoctorByID)
	router.PUT("/doctors/:doctor_id", doctorHandler.UpdateDoctor)
	router.GET("/doctors", doctorHandler.GetAllDoctors)

	router.POST("/patients", patientHandler.CreatePatient)
	router.GET("/patients/:patient_id", patientHandler.GetPatientByID)
	router.PUT("/patients/:patient_id", patientHandler.UpdatePatient)
	router.DELETE("/patients/:patient_id", patientHandler.ArchivePatient)
	router.GET("/patients", patientHandler.GetAllPatients)

	router.POST("/patients/:patient_id/questionnaire", patientHandler.SubmitQuestionnaire)
	router.GET("/patients/:patient_id/booking_window", patientHandler.GetBookingWindow)
	router.GET("/patients/:patient_id/bookings", bookingHandler.GetPatientBookings)

	router.POST("/doctors/:doctor_id/slots", slotHandler.CreateSlot)
	router.POST("/doctors/:doctor_id/slots/recurring", slotHandler.GenerateRecurring)
	router.PUT("/doctors/:doctor_id/slots/:slot_id/block", slotHandler.BlockSlot)
	router.GET("/doctors/:doctor_id/slots/available", slotHandler.GetAvailableForPatient)
	router.POST("/doctors/:doctor_id/slots/reserve_urgent", slotHandler.ReserveUrgent)
	router.POST("/doctors/:doctor_id/slots/release_reserved", slotHandler.ReleaseUnusedReserved)
	router.GET("/doctors/:doctor_id/scarcity", slotHandler.GetScarcity)
	router.GET("/doctors/:doctor_id/waitlist", slotHandler.GetWaitlistRanking)
	router.GET("/doctors/:doctor_id/bookings", bookingHandler.GetDoctorBookings)

	router.POST("/bookings", bookingHandler.CreateBooking)
	router.POST("/bookings/emergency", bookingHandler.CreateEmergencyBooking)
	router.GET("/bookings/:booking_id", bookingHandler.GetBookingByID)
	router.POST("/bookings/:booking_id/triage", bookingHandler.SubmitTriage)
	router.PUT("/bookings/:booking_id/complete", bookingHandler.CompleteBooking)
	router.PUT("/bookings/:booking_id/no_show", bookingHandler.MarkNoShow)
	router.PUT("/bookings/:booking_id/cancel_by_doctor", bookingHandler.CancelByDoctor)

	router.PUT("/triage_requests/:request_id/review", bookingHandler.ReviewTriage)
	router.POST("/triage_requests/:request_id/reschedule", bookingHandler.Reschedule)
}
