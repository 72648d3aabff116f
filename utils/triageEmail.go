package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendTriageReviewEmail notifies a doctor that a cancellation or reschedule
// request needs manual review.
func SendTriageReviewEmail(doctorEmail, patientName, requestType, urgency string) error {
	fromEmail := os.Getenv("SMTP_USER")

	m := gomail.NewMessage()
	m.SetHeader("From", fromEmail)
	m.SetHeader("To", doctorEmail)
	m.SetHeader("Subject", fmt.Sprintf("Triage review needed: %s request (%s)", requestType, urgency))

	body := fmt.Sprintf(
		"Patient %s submitted a %s request that was classified as %s and needs your review before it can proceed.",
		patientName, requestType, urgency)
	m.SetBody("text/plain", body)

	htmlBody := `
	<!DOCTYPE html>
	<html>
	<head>
		<title>Triage Review Needed</title>
		<style>
			body {
				font-family: Arial, sans-serif;
				background-color: #f4f4f4;
				margin: 0;
				padding: 0;
			}
			.container {
				background-color: #ffffff;
				margin: 20px auto;
				padding: 20px;
				border-radius: 8px;
				box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);
				max-width: 600px;
			}
			h1 {
				color: #333333;
			}
			p {
				color: #666666;
			}
			.urgency {
				font-weight: bold;
				color: #dc3545;
			}
		</style>
	</head>
	<body>
		<div class="container">
			<h1>Triage Review Needed</h1>
			<p>Patient <strong>` + patientName + `</strong> submitted a ` + requestType + ` request.</p>
			<p>Classified urgency: <span class="urgency">` + urgency + `</span></p>
			<p>The request is on hold until you approve or decline it.</p>
		</div>
	</body>
	</html>
	`
	m.AddAlternative("text/html", htmlBody)

	smtpHost := os.Getenv("SMTP_HOST")
	smtpPortStr := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	smtpPort, err := strconv.Atoi(smtpPortStr)
	if err != nil {
		log.Printf("Invalid SMTP_PORT value: %v", err)
		return err
	}

	d := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass)
	return d.DialAndSend(m)
}
