package notify

import (
	"fmt"
	"log"
)

// Notifier is an interface so the channel can be swapped (console/Slack/SMS).
type Notifier interface {
	Notify(subject, message string) error
}

type Console struct{}

func NewConsole() *Console {
	return &Console{}
}

func (c *Console) Notify(subject, message string) error {
	log.Printf("[notify] %s :: %s\n", subject, message)
	return nil
}

func money(amount int, currency string) string {
	return fmt.Sprintf("%d %s", amount, currency)
}
