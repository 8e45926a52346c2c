package services

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/example/ayuhealth/internal/models"
)

// Order event labels used by the notification dispatch.
const (
	EventPlaced    = "Placed"
	EventConfirmed = "Confirmed"
	EventCancelled = "Cancelled"
	EventCompleted = "Completed"
	// Pending events carry a reason: "Pending: <reason>".
	eventPendingPrefix = "Pending:"
)

// MailSender sends a rendered HTML email.
type MailSender interface {
	SendHTML(to, subject, body string) error
}

// MessageSender pushes a plain-text alert to the operator channel.
type MessageSender interface {
	Send(text string) error
}

// Notifier renders and dispatches order event notifications. It never lets a
// transport failure escape: the outcome is reported as a flag plus a
// diagnostic message and callers treat failure as non-fatal.
type Notifier struct {
	db          *gorm.DB
	mail        MailSender
	messenger   MessageSender
	shopName    string
	shopWebsite string
}

// NewNotifier creates a Notifier.
func NewNotifier(db *gorm.DB, mail MailSender, messenger MessageSender, shopName, shopWebsite string) *Notifier {
	return &Notifier{
		db:          db,
		mail:        mail,
		messenger:   messenger,
		shopName:    shopName,
		shopWebsite: shopWebsite,
	}
}

// Notify sends the status email for the given event to the order's customer
// and records an admin notification. On the Placed event it also pushes an
// operator alert. Returns whether the customer email went out and a
// human-readable outcome message.
func (n *Notifier) Notify(order *models.Order, event string) (bool, string) {
	n.recordAdminNotification(order, event)

	if event == EventPlaced && n.messenger != nil {
		if err := n.messenger.Send(buildOperatorAlert(order)); err != nil {
			log.Printf("[Notify] WhatsApp alert failed for order %s: %v", order.ID, err)
		}
	}

	if order.CustomerEmail == "" {
		return false, "No customer email found"
	}

	body := buildOrderEmail(order.CustomerName, buildItemRows(order.Items), event, n.shopName, n.shopWebsite)
	subject := fmt.Sprintf("Order Update from %s", n.shopName)

	if err := n.mail.SendHTML(order.CustomerEmail, subject, body); err != nil {
		log.Printf("[Notify] Email failed for order %s: %v", order.ID, err)
		return false, fmt.Sprintf("Failed to send email to %s", order.CustomerEmail)
	}

	return true, fmt.Sprintf("Email sent to %s", order.CustomerEmail)
}

func (n *Notifier) recordAdminNotification(order *models.Order, event string) {
	notification := models.AdminNotification{
		Type:    notificationType(event),
		Message: fmt.Sprintf("Order %s: %s (%s, %s)", shortID(order), event, order.CustomerName, order.CustomerEmail),
		OrderID: order.ID,
	}

	if err := n.db.Create(&notification).Error; err != nil {
		log.Printf("[Notify] Failed to record admin notification for order %s: %v", order.ID, err)
	}
}

func notificationType(event string) string {
	switch {
	case event == EventPlaced:
		return "order_placed"
	case event == EventConfirmed:
		return "order_confirmed"
	case event == EventCancelled:
		return "order_cancelled"
	case event == EventCompleted:
		return "order_completed"
	case strings.HasPrefix(event, eventPendingPrefix):
		return "order_pending"
	default:
		return "order_update"
	}
}

func shortID(order *models.Order) string {
	id := order.ID.String()
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// buildItemRows renders line items as table rows. An empty list renders a
// single placeholder row.
func buildItemRows(items []models.OrderItem) string {
	if len(items) == 0 {
		return "<tr><td>No products found</td></tr>"
	}

	var rows strings.Builder
	for _, item := range items {
		lineTotal := float64(item.Quantity) * item.Price
		rows.WriteString(fmt.Sprintf("<tr><td>%s (x%d) - ₹%g</td></tr>", item.Name, item.Quantity, lineTotal))
	}
	return rows.String()
}

// buildOrderEmail selects the title/color/message for the event and wraps the
// rendered cart rows in the shop's HTML template.
func buildOrderEmail(customerName, cartHTML, event, shopName, shopWebsite string) string {
	var title, message, color string

	switch {
	case event == EventPlaced:
		title = "🛒 Your Order has been Placed"
		message = fmt.Sprintf(
			"Hi %s, we have received your order! "+
				"We will confirm it shortly and keep you posted every step of the way.",
			customerName,
		)
		color = "#2196f3"

	case event == EventConfirmed:
		title = "✅ Your Order has been Confirmed"
		message = fmt.Sprintf(
			"Hi %s, your order has been confirmed! "+
				"Just like every small step leads to big progress, confirming your order "+
				"is the first step towards a delightful experience. Patience and care go a long way!",
			customerName,
		)
		color = "#2196f3"

	case strings.HasPrefix(event, eventPendingPrefix):
		reason := strings.TrimSpace(strings.TrimPrefix(event, eventPendingPrefix))
		title = "⚠️ Your Order is Pending"
		message = fmt.Sprintf(
			"Your order is currently pending due to: %s. "+
				"Sometimes things don't go as planned, but challenges are opportunities in disguise. "+
				"We'll notify you as soon as your order is ready!",
			reason,
		)
		color = "#ff9800"

	case event == EventCancelled:
		title = "❌ Your Order has been Cancelled"
		message = "We're sorry, but your order was cancelled. " +
			"Remember, every setback is a setup for a comeback. " +
			"Feel free to reach out, and we'll help you place a new order quickly!"
		color = "#f44336"

	case event == EventCompleted:
		title = "🎉 Your Order has been Delivered"
		message = "Your order has been successfully delivered! " +
			"Just like seeds grow into beautiful plants with care, your support allows us to grow. " +
			"We hope your purchase brings joy and value!"
		color = "#4caf50"

	default:
		title = "ℹ️ Order Status Update"
		message = fmt.Sprintf(
			"Hello %s, your order status is now: %s. "+
				"Remember, consistency and mindfulness turn ordinary moments into extraordinary ones!",
			customerName, event,
		)
		color = "#2196f3"
	}

	return fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; background:#f5f5f5; padding:20px;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="max-width:600px;margin:auto;background:#fff;border-radius:8px;overflow:hidden;box-shadow:0 2px 8px rgba(0,0,0,0.1);">
    <tr>
      <td style="background:%s;padding:20px;text-align:center;color:white;font-size:20px;">
        %s
      </td>
    </tr>
    <tr>
      <td style="padding:20px;">
        <p>%s</p>

        <h3 style="margin-top:20px;">🛒 Your Order Details</h3>
        <table width="100%%" border="1" cellspacing="0" cellpadding="8" style="border-collapse:collapse;">
          <tr style="background:#f0f0f0;">
            <th>Product &amp; Quantity</th>
          </tr>
          %s
        </table>

        <p style="margin-top:20px;">Thank you for trusting <b>%s</b>!<br>
        Visit us anytime: <a href="%s">%s</a></p>
      </td>
    </tr>
    <tr>
      <td style="background:#333;color:white;text-align:center;padding:10px;font-size:12px;">
        %s | <a href="%s" style="color:white;">%s</a>
      </td>
    </tr>
  </table>
</body>
</html>`, color, title, message, cartHTML, shopName, shopWebsite, shopWebsite, shopName, shopWebsite, shopWebsite)
}

// buildOperatorAlert formats the new-order WhatsApp message.
func buildOperatorAlert(order *models.Order) string {
	var products strings.Builder
	for _, item := range order.Items {
		products.WriteString(fmt.Sprintf("%s | Qty: %d | Price: ₹%g | Total: ₹%g\n",
			item.Name, item.Quantity, item.Price, float64(item.Quantity)*item.Price))
	}

	return strings.TrimSpace(fmt.Sprintf(`📦 *New Order Alert!*
👤 Name: %s
📧 Email: %s
📞 Phone: %s
🏙️ City: %s
📮 Pincode: %s
🏠 Address: %s

🛍️ Products:
%s`,
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
		order.City,
		order.Pincode,
		order.Address,
		products.String(),
	))
}
