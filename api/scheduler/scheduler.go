package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/ecovigia/wildlife-case-api/cases"
	"github.com/ecovigia/wildlife-case-api/databases"
	"github.com/ecovigia/wildlife-case-api/models"
	templates "github.com/ecovigia/wildlife-case-api/templates/html"
)

// pickupAlertThreshold is how long a case may sit in pending_pickup
// before its creator gets a reminder
const pickupAlertThreshold = 72 * time.Hour

// Scheduler handles periodic background jobs for case follow-up
type Scheduler struct {
	cron   *cron.Cron
	CaseDB databases.CaseDatabase
	UserDB databases.UserDatabase
}

// NewScheduler creates a new scheduler instance
func NewScheduler(caseDB databases.CaseDatabase, userDB databases.UserDatabase) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		CaseDB: caseDB,
		UserDB: userDB,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Remind creators about stale pickups daily at 6 AM UTC
	_, err := s.cron.AddFunc("0 6 * * *", s.remindStalePickups)
	if err != nil {
		zap.S().Errorw("failed to register pickup reminder job", "error", err)
	}

	// Log a daily stats snapshot at 5 AM UTC
	_, err = s.cron.AddFunc("0 5 * * *", s.logDailyStats)
	if err != nil {
		zap.S().Errorw("failed to register stats snapshot job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("case follow-up scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("case follow-up scheduler stopped")
}

// remindStalePickups emails the creator of every case that has been
// waiting on specimen pickup past the alert threshold
func (s *Scheduler) remindStalePickups() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cutoff := time.Now().UTC().Add(-pickupAlertThreshold)
	staleFilter := bson.M{
		"status":    models.StatusPendingPickup,
		"updatedAt": bson.M{"$lt": primitive.NewDateTimeFromTime(cutoff)},
	}

	staleCases, err := s.CaseDB.Find(ctx, staleFilter)
	if err != nil {
		zap.S().Errorw("failed to find stale pickup cases", "error", err)
		return
	}

	zap.S().Infow("running pickup reminder job", "staleCases", len(staleCases))

	for _, c := range staleCases {
		s.remindCase(ctx, c)
	}
}

func (s *Scheduler) remindCase(ctx context.Context, c models.Process) {
	hoursWaiting := int(time.Since(c.UpdatedAt).Hours())

	if c.CreatedBy == "" {
		zap.S().Warnw("stale pickup case has no creator", "caseId", c.ID)
		return
	}

	user, err := s.UserDB.FindOne(ctx, bson.M{"_id": c.CreatedBy})
	if err != nil {
		zap.S().Errorw("failed to look up case creator",
			"caseId", c.ID,
			"createdBy", c.CreatedBy,
			"error", err)
		return
	}

	htmlContent := templates.RenderPickupReminder(c.ID, c.Location.Department, hoursWaiting)
	plainText := fmt.Sprintf("El caso %s lleva %d horas en espera de recolección.", c.ID, hoursWaiting)

	if err := s.sendEmail(user.Email, user.Name, "Recordatorio de recolección pendiente", htmlContent, plainText); err != nil {
		zap.S().Errorw("failed to send pickup reminder",
			"caseId", c.ID,
			"error", err)
		return
	}

	zap.S().Infow("sent pickup reminder",
		"caseId", c.ID,
		"hoursWaiting", hoursWaiting,
	)
}

// logDailyStats writes an aggregated snapshot of the whole case
// collection to the log
func (s *Scheduler) logDailyStats() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	allCases, err := s.CaseDB.Find(ctx, bson.M{})
	if err != nil {
		zap.S().Errorw("failed to load cases for stats snapshot", "error", err)
		return
	}

	stats := cases.ComputeStats(allCases)
	zap.S().Infow("daily case stats snapshot",
		"total", stats.Total,
		"byType", stats.ByType,
		"byStatus", stats.ByStatus,
		"byActivity", stats.ByActivity,
	)
}

func (s *Scheduler) sendEmail(toEmail, toName, subject, htmlContent, plainText string) error {
	from := mail.NewEmail("EcoVigía", "no-reply@ecovigia.gov.co")
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
	}
	return nil
}
