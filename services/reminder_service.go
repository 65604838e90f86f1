// services/reminder_service.go
package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"petcare-backend/models"
	"petcare-backend/repository"
	"petcare-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// ReminderService sends next-day booking reminders to pet owners over SMS or
// WhatsApp. It only reads bookings and writes reminder logs; it never touches
// booking or payment state.
type ReminderService struct {
	store  repository.Store
	client *twilio.RestClient
}

func NewReminderService(store repository.Store) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		store: store,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.SendDailyReminders)

	c.Start()
	log.Println("Booking reminder scheduler started")
}

// SendDailyReminders notifies owners of every active booking starting
// tomorrow.
func (s *ReminderService) SendDailyReminders() {
	log.Println("Starting daily reminder processing...")

	ctx := context.Background()
	from := utils.BeginningOfDay(time.Now().AddDate(0, 0, 1))
	to := from.AddDate(0, 0, 1)

	bookings, err := s.store.BookingsStartingBetween(ctx, from, to)
	if err != nil {
		log.Printf("Failed to fetch tomorrow's bookings: %v", err)
		return
	}

	for i := range bookings {
		s.sendReminder(ctx, &bookings[i])
	}

	log.Printf("Daily reminder processing completed: %d booking(s)", len(bookings))
}

func (s *ReminderService) sendReminder(ctx context.Context, booking *models.Booking) {
	user, err := s.store.UserByID(ctx, booking.UserID)
	if err != nil {
		log.Printf("Booking %s: failed to load owner: %v", booking.ID, err)
		return
	}
	if user.Phone == "" {
		return
	}

	pet, err := s.store.PetByID(ctx, booking.PetID)
	if err != nil {
		log.Printf("Booking %s: failed to load pet: %v", booking.ID, err)
		return
	}

	message := fmt.Sprintf("Hi %s, reminder: %s has a booking tomorrow at %s. See you soon!",
		user.Name, pet.Name, booking.StartAt.Format("15:04"))

	// WhatsApp when the phone is in E.164 format, SMS otherwise
	channel := "sms"
	to := user.Phone
	if strings.HasPrefix(user.Phone, "+") {
		to = "whatsapp:" + user.Phone
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)
	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	status := "sent"
	errorMessage := ""
	if _, err := s.client.Api.CreateMessage(params); err != nil {
		status = "failed"
		errorMessage = err.Error()
		log.Printf("Booking %s: failed to send reminder: %v", booking.ID, err)
	}

	logEntry := &models.ReminderLog{
		BookingID:    booking.ID,
		UserID:       user.ID,
		Channel:      channel,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMessage,
		SentAt:       time.Now(),
	}
	if err := s.store.CreateReminderLog(ctx, logEntry); err != nil {
		log.Printf("Booking %s: failed to log reminder: %v", booking.ID, err)
	}
}
