package notifier

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// EmailSender delivers a reservation summary to a passenger address.
// The real transport (SMTP, provider API) lives behind this interface;
// LogSender is the in-tree implementation.
type EmailSender interface {
	SendConfirmation(email, summary string) error
}

// LogSender writes confirmations to the standard logger.
type LogSender struct{}

func (LogSender) SendConfirmation(email, summary string) error {
	log.Printf("[Email] to=%s %s", email, summary)
	return nil
}

type Notifier struct {
	sender EmailSender
}

func New(sender EmailSender) *Notifier {
	return &Notifier{sender: sender}
}

// Start drains the confirmation queue in a goroutine until the channel
// closes. Delivery runs after the reservation commit, so a failure here
// requeues the message, never the reservation.
func (n *Notifier) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			n.handleMessage(msg)
		}
		log.Println("[Notifier] channel closed, stopping consumer")
	}()
}

func (n *Notifier) handleMessage(msg amqp.Delivery) {
	var c Confirmation
	if err := json.Unmarshal(msg.Body, &c); err != nil {
		log.Printf("[Notifier] failed to unmarshal: %v", err)
		msg.Nack(false, false)
		return
	}

	if err := n.sender.SendConfirmation(c.Email, c.Summary()); err != nil {
		log.Printf("[Notifier] failed to send for %s: %v", c.Ref, err)
		msg.Nack(false, true) // requeue
		return
	}

	msg.Ack(false)
}
