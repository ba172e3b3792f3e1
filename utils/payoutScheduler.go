package utils

import (
	"log"

	"lms/config"
	"lms/models"
	"lms/services/payments"
	"lms/services/paypal"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// InitializePayoutScheduler sets up the daily instructor payout run.
func InitializePayoutScheduler(db *gorm.DB, pp *paypal.Client) {
	log.Println("[PAYOUT-SCHEDULER] Initializing payout scheduler...")

	c := cron.New()

	// Run daily at 2 AM
	c.AddFunc("0 2 * * *", func() {
		log.Println("[PAYOUT-SCHEDULER] Running daily payout run...")
		ProcessInstructorPayouts(db, pp)
	})

	c.Start()
	log.Println("[PAYOUT-SCHEDULER] Payout scheduler started - runs daily at 2 AM")
}

// ProcessInstructorPayouts pays each instructor their commission-adjusted
// share of revenue accrued since the last run.
func ProcessInstructorPayouts(db *gorm.DB, pp *paypal.Client) {
	var profiles []models.InstructorProfile
	if err := db.
		Where("revenue_generated > revenue_paid_out AND payout_email <> ''").
		Find(&profiles).Error; err != nil {
		log.Printf("[PAYOUT-SCHEDULER] Error fetching instructor profiles: %v", err)
		return
	}

	log.Printf("[PAYOUT-SCHEDULER] Found %d instructors with outstanding revenue", len(profiles))

	for _, profile := range profiles {
		outstanding := profile.RevenueGenerated - profile.RevenuePaidOut
		share := payments.CalculateInstructorAmount(outstanding, config.AppConfig.CommissionPercent)

		batchID, err := pp.SendPayout(profile.PayoutEmail, share, "Course revenue payout")
		if err != nil {
			log.Printf("[PAYOUT-SCHEDULER] Payout failed for instructor %d: %v", profile.UserID, err)
			continue
		}

		// Advance the paid-out mark by the gross amount the share was
		// computed from, so the next run only sees new revenue.
		if err := db.Model(&models.InstructorProfile{}).
			Where("id = ? AND revenue_paid_out = ?", profile.ID, profile.RevenuePaidOut).
			UpdateColumn("revenue_paid_out", gorm.Expr("revenue_paid_out + ?", outstanding)).Error; err != nil {
			log.Printf("[PAYOUT-SCHEDULER] Failed to record payout for instructor %d: %v", profile.UserID, err)
			continue
		}

		var user models.User
		if err := db.First(&user, profile.UserID).Error; err == nil {
			go SendPayoutEmail(user.Email, user.Name, share)
		}

		log.Printf("[PAYOUT-SCHEDULER] Sent payout batch %s (%.2f) to instructor %d", batchID, share, profile.UserID)
	}
}
