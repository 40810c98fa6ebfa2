package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

const resendAPI = "https://api.resend.com/emails"
const defaultFrom = "Hotel Bookings <noreply@bookings.local>"

// Mailer delivers the transactional emails the booking flow depends on.
// The booking rollback path needs a definite success/failure answer, so
// implementations must block until the outcome is known.
type Mailer interface {
	SendBookingConfirmation(to string, confirmationURL string) error
	SendVerifyOTP(to string, code string) error
}

// Mail is the mailer used by the route handlers. Tests swap it out.
var Mail Mailer = NewResendMailer()

type resendEmail struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Html    string `json:"html"`
}

// ResendMailer sends through the Resend REST API with a bounded timeout so
// a stuck mail provider cannot hold a booking request open indefinitely.
type ResendMailer struct {
	client *http.Client
}

func NewResendMailer() *ResendMailer {
	return &ResendMailer{client: &http.Client{Timeout: 5 * time.Second}}
}

func (m *ResendMailer) send(to, subject, html string) error {
	apiKey := os.Getenv("RESEND_API_KEY")
	if apiKey == "" {
		log.Printf("Missing RESEND_API_KEY, mock email triggered.")
		fmt.Printf("\n--- MOCK EMAIL ---\nTo: %s\nSubject: %s\nBody:\n%s\n-------------------\n",
			to, subject, html)
		return nil
	}

	payload := resendEmail{
		From:    defaultFrom,
		To:      to,
		Subject: subject,
		Html:    html,
	}

	body, _ := json.Marshal(payload)
	req, err := http.NewRequest("POST", resendAPI, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("Resend API error: %s", resp.Status)
	}

	log.Printf("Email sent to %s via Resend.", to)
	return nil
}

func (m *ResendMailer) SendBookingConfirmation(to string, confirmationURL string) error {
	html := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; background: #f4f4f4; color: #333; padding: 20px; text-align: center;">
			<div style="background-color: #fff; padding: 30px; border-radius: 8px;">
				<h2 style="color: #007bff; margin-bottom: 20px;">Confirm your booking</h2>
				<p style="font-size: 16px; margin-bottom: 20px;">Thank you for your booking! Please confirm it by clicking the button below:</p>
				<a href="%s" style="display: inline-block; background-color: #007bff; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; font-weight: bold; font-size: 16px;">
					Confirm booking
				</a>
				<p style="font-size: 12px; color: #777;">This is an automated message. Please do not reply.</p>
			</div>
		</div>
	`, confirmationURL)
	return m.send(to, "Please confirm your booking", html)
}

func (m *ResendMailer) SendVerifyOTP(to string, code string) error {
	html := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; background: #ffffff; text-align: center; padding: 40px 20px; color: #000;">
			<div style="font-size: 20px; margin-bottom: 20px; font-weight: bold;">Your Signup Verification Code</div>
			<div style="font-size: 24px; font-weight: bold; letter-spacing: 20px;">%s</div>
			<div style="margin-top: 10px; font-size: 14px;">Don't share this code with anyone!</div>
			<div style="font-size: 12px; color: #555;">This is an automated message. <b>Please do not reply.</b></div>
		</div>
	`, code)
	return m.send(to, "Your email verification code", html)
}
