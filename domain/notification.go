package domain

import "fmt"

var (
	MessageSuccessSweep = "notification sweep completed"
	MessageFailedSweep  = "failed to run notification sweep"
)

const ExpiryReminderTitle = "🛒 Expiry Reminder"

func ExpiryReminderBody(itemName string) string {
	return fmt.Sprintf("%s expires tomorrow!", itemName)
}

// SweepReport tallies one sweep run.
type SweepReport struct {
	Selected int `json:"selected"`
	Sent     int `json:"sent"`
	Failed   int `json:"failed"`
	Skipped  int `json:"skipped"`
}

type SweepResponse struct {
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}
