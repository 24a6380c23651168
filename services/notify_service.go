package services

import (
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/shanmdahanayaka/vehicle-rental-backend/entity"
)

// Notifier dispatches customer notifications after invoice actions.
// Fire-and-forget: failures are logged, never surfaced to the workflow.
type Notifier struct {
	Currency string
}

func NewNotifier(currency string) *Notifier {
	return &Notifier{Currency: currency}
}

// WhatsAppLink builds a wa.me link with a prefilled message.
func (n *Notifier) WhatsAppLink(phone, text string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(text)
}

func (n *Notifier) money(v int64) string {
	return fmt.Sprintf("%s %d", n.Currency, v)
}

func (n *Notifier) InvoiceIssued(user *entity.User, inv *entity.Invoice) {
	msg := fmt.Sprintf("Invoice %s issued: total %s, due %s",
		inv.Number, n.money(inv.Total), inv.DueDate.Format("2006-01-02"))
	log.Printf("notify email to=%s: %s", user.Email, msg)
	if link := n.WhatsAppLink(user.PhoneNumber, msg); link != "" {
		log.Printf("notify whatsapp: %s", link)
	}
}

func (n *Notifier) PaymentReceived(user *entity.User, inv *entity.Invoice, amount int64) {
	msg := fmt.Sprintf("Payment of %s received against invoice %s, remaining balance %s",
		n.money(amount), inv.Number, n.money(inv.Balance))
	log.Printf("notify email to=%s: %s", user.Email, msg)
	if link := n.WhatsAppLink(user.PhoneNumber, msg); link != "" {
		log.Printf("notify whatsapp: %s", link)
	}
}
