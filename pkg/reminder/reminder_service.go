package reminder

import (
	"context"
	"fmt"
	"log"
	"time"

	"warranty-hub-backend/entities"
	"warranty-hub-backend/internal/utils/mailing"

	"github.com/robfig/cron/v3"
)

// ExpiryScanner is the slice of the warranty repository the reminder run
// needs.
type ExpiryScanner interface {
	GetItemsEnteringNotifyWindow(ctx context.Context, day time.Time) ([]*entities.WarrantyItem, error)
}

// ReminderService emails customers whose items enter the nearing-expiration
// window. Status transitions are implicit consequences of wall-clock time, so
// nothing fires on its own; this daily poll is the server-side observer.
type ReminderService struct {
	scanner ExpiryScanner
}

func NewReminderService(scanner ExpiryScanner) *ReminderService {
	return &ReminderService{scanner: scanner}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	if _, err := c.AddFunc("0 9 * * *", s.SendDailyReminders); err != nil {
		log.Printf("Failed to schedule expiry reminders: %v", err)
		return
	}

	c.Start()
	log.Println("Expiry reminder scheduler started")
}

func (s *ReminderService) SendDailyReminders() {
	log.Println("Starting daily expiry reminder processing...")

	now := time.Now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	items, err := s.scanner.GetItemsEnteringNotifyWindow(context.Background(), day)
	if err != nil {
		log.Printf("Failed to fetch items entering notify window: %v", err)
		return
	}

	sent := 0
	for _, item := range items {
		if s.sendItemReminder(item) {
			sent++
		}
	}

	log.Printf("Daily expiry reminder processing completed, %d reminders sent", sent)
}

func (s *ReminderService) sendItemReminder(item *entities.WarrantyItem) bool {
	if item.Warranty == nil || item.Warranty.CustomerEmail == "" || item.ExpiryDate == nil {
		return false
	}

	storeName := ""
	if item.Warranty.Store != nil && item.Warranty.Store.StoreProfile != nil {
		storeName = item.Warranty.Store.StoreProfile.StoreName
	}

	subject := fmt.Sprintf("Warranty for %s is nearing expiration", item.ProductName)
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>The warranty for <b>%s</b> (serial %s) under certificate <b>%s</b> expires on %s.</p>",
		item.Warranty.CustomerName,
		item.ProductName,
		item.Serial,
		item.Warranty.Code,
		item.ExpiryDate.UTC().Format("2006-01-02"),
	)
	if storeName != "" {
		body += fmt.Sprintf("<p>Contact %s for renewal options.</p>", storeName)
	}

	mailing.SendMailAsync(item.Warranty.CustomerEmail, subject, body)
	return true
}
