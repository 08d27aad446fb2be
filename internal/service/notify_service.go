package service

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"slotpark/internal/entities"
)

// NotifyService delivers reminder emails through SendGrid and booking SMS
// through Twilio. Credentials come from the environment.
type NotifyService struct {
}

func NewNotifyService() *NotifyService {
	return &NotifyService{}
}

func (s *NotifyService) SendReminderEmail(toEmail, driverName, slotName string, endTime time.Time) error {
	data := entities.ReminderEmailData{
		DriverName:       driverName,
		SlotName:         slotName,
		EndTimeFormatted: endTime.Format("15:04"),
		CurrentYear:      time.Now().Year(),
	}

	subject := fmt.Sprintf("Your parking at slot %s ends soon", data.SlotName)
	plainBody := fmt.Sprintf(
		"Hello %s,\n\nYour parking booking at slot %s ends at %s.\n"+
			"Please return to your vehicle or extend the booking.\n\n"+
			"SlotPark %d. All rights reserved.",
		data.DriverName, data.SlotName, data.EndTimeFormatted, data.CurrentYear,
	)
	htmlBody := fmt.Sprintf(
		"<p>Hello %s,</p><p>Your parking booking at slot <strong>%s</strong> ends at <strong>%s</strong>.</p>"+
			"<p>Please return to your vehicle or extend the booking.</p><p>SlotPark %d</p>",
		data.DriverName, data.SlotName, data.EndTimeFormatted, data.CurrentYear,
	)

	return sendEmailWithSendGrid(toEmail, driverName, subject, plainBody, htmlBody)
}

func sendEmailWithSendGrid(toEmailAddress, toName, subject, plainTextContent, htmlContent string) error {
	sendgridAPIKey := os.Getenv("SENDGRID_API_KEY")
	if sendgridAPIKey == "" {
		log.Println("WARNING: SENDGRID_API_KEY is not set. Email will not be sent.")
		return fmt.Errorf("SENDGRID_API_KEY is not set")
	}

	fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if fromEmail == "" {
		log.Println("WARNING: SENDGRID_FROM_EMAIL is not set. Email will not be sent.")
		return fmt.Errorf("SENDGRID_FROM_EMAIL is not set")
	}

	fromName := os.Getenv("SENDGRID_FROM_NAME")
	if fromName == "" {
		fromName = "SlotPark"
	}

	from := mail.NewEmail(fromName, fromEmail)
	to := mail.NewEmail(toName, toEmailAddress)
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)

	client := sendgrid.NewSendClient(sendgridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email via SendGrid to %s: %v", toEmailAddress, err)
		return fmt.Errorf("sending email through SendGrid failed: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		log.Printf("Email sent to %s (subject: %s). Status: %d", toEmailAddress, subject, response.StatusCode)
		return nil
	}

	log.Printf("Error sending email to %s via SendGrid. Status: %d, Body: %s",
		toEmailAddress, response.StatusCode, response.Body)
	return fmt.Errorf("SendGrid returned non-success status %d: %s", response.StatusCode, response.Body)
}

func (s *NotifyService) SendBookingSMS(toNumber, messageBody string) error {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	fromNumber := os.Getenv("TWILIO_FROM_NUMBER")

	if accountSid == "" || authToken == "" || fromNumber == "" {
		log.Println("WARNING: Twilio credentials (SID, token or from number) are not set. SMS will not be sent.")
		return fmt.Errorf("twilio credentials not fully configured")
	}

	if !strings.HasPrefix(toNumber, "+") {
		log.Printf("WARNING: Destination number '%s' is not in E.164 format (must start with '+'). The SMS may fail.", toNumber)
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   accountSid,
		Password:   authToken,
		AccountSid: accountSid,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(fromNumber)
	params.SetBody(messageBody)

	resp, err := client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Error sending SMS to %s via Twilio: %v", toNumber, err)
		return fmt.Errorf("failed to send SMS: %w", err)
	}

	if resp != nil && resp.Sid != nil {
		log.Printf("SMS sent to %s. Message SID: %s", toNumber, *resp.Sid)
	}
	return nil
}
