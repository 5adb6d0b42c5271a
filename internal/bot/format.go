// File: internal/bot/format.go
package bot

import (
	"fmt"
	"strings"
	"time"

	"barbershop-bot/internal/config"
	"barbershop-bot/internal/domain/model"
)

const (
	dateKeyFormat  = "2006-01-02"
	timeKeyFormat  = "15:04"
	dateShowFormat = "Mon 02 Jan"
	timeShowFormat = "3:04 PM"
)

func mainMenuText() string {
	return "👋 *Welcome to Fade Factory Barbershop!*\n\n" +
		"What would you like to do?\n\n" +
		"1️⃣ View Services & Prices\n" +
		"2️⃣ Book an Appointment\n" +
		"3️⃣ View My Bookings\n" +
		"4️⃣ Cancel a Booking\n" +
		"5️⃣ FAQ / Help\n\n" +
		"Reply with a number (1-5) or type MENU anytime"
}

func serviceMenuText(services []*model.Service) string {
	var sb strings.Builder
	sb.WriteString("🪒 *Select Your Service*\n\n")
	for i, svc := range services {
		sb.WriteString(fmt.Sprintf("%d️⃣ %s - €%.0f (%d min)\n",
			i+1, svc.Name, svc.Price, svc.DurationMinutes))
	}
	sb.WriteString("\nReply with a number to continue")
	sb.WriteString("\n0️⃣ Main Menu")
	return sb.String()
}

func barberMenuText(barbers []*model.Barber) string {
	var sb strings.Builder
	sb.WriteString("👨‍🦲 *Select Your Barber*\n\n")
	for i, b := range barbers {
		sb.WriteString(fmt.Sprintf("%d️⃣ %s", i+1, b.Name))
		if b.Rating > 0 {
			sb.WriteString(fmt.Sprintf(" ⭐ %.1f", b.Rating))
		}
		sb.WriteString("\n")
		if b.Bio != "" {
			sb.WriteString("   " + b.Bio + "\n")
		}
		if i < len(barbers)-1 {
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\nReply with a number to continue")
	sb.WriteString("\n0️⃣ Main Menu")
	return sb.String()
}

func slotsText(svc *model.Service, barber *model.Barber, slots []time.Time, date time.Time, today bool) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🪒 *%s* with *%s*\n\n", svc.Name, barber.Name))

	dayLabel := "TOMORROW"
	if today {
		dayLabel = "TODAY"
	}
	sb.WriteString(fmt.Sprintf("📅 *%s (%s)*:\n", dayLabel, date.Format(dateShowFormat)))
	for i, s := range slots {
		sb.WriteString(fmt.Sprintf("%d️⃣ %s\n", i+1, s.Format(timeShowFormat)))
	}
	sb.WriteString("\nType number to book")
	if today {
		sb.WriteString(" or MORE for tomorrow")
	}
	sb.WriteString("\n0️⃣ Main Menu")
	return sb.String()
}

func confirmPromptText(svc *model.Service, barber *model.Barber, date, start time.Time, address string, today, tomorrow bool) string {
	return fmt.Sprintf(
		"✅ *Confirm Your Booking*\n\n"+
			"🪒 %s\n👨‍🦲 With %s\n📅 %s (%s) at %s\n⏱️ %d minutes\n💰 €%.0f\n📍 %s\n\n"+
			"Reply *YES* to confirm or *CANCEL* to restart",
		svc.Name, barber.Name,
		dayLabel(date, today, tomorrow), date.Format(dateShowFormat), start.Format(timeShowFormat),
		svc.DurationMinutes, svc.Price, address)
}

func bookingConfirmedText(code string, svc *model.Service, barber *model.Barber, date, start time.Time, address string, today, tomorrow bool) string {
	return fmt.Sprintf(
		"✅ *BOOKING CONFIRMED!*\n\n"+
			"Booking Code: *#%s*\n\n"+
			"🪒 %s\n👨‍🦲 With %s\n📅 %s (%s) at %s\n📍 %s\n\n"+
			"See you soon! 👍\n\n"+
			"To cancel: Reply *4* from main menu\n\n"+
			"0️⃣ Main Menu",
		code, svc.Name, barber.Name,
		dayLabel(date, today, tomorrow), date.Format(dateShowFormat), start.Format(timeShowFormat),
		address)
}

// loyaltyText builds the points note appended to a booking confirmation.
// Empty when the program is disabled or the customer record is missing.
func loyaltyText(cfg *config.LoyaltyConfig, c *model.Customer) string {
	if cfg == nil || !cfg.Enabled || c == nil {
		return ""
	}
	earned := cfg.PointsPerBooking
	line := ""
	if c.TotalBookings == 1 && cfg.FirstBookingBonus > 0 {
		earned += cfg.FirstBookingBonus
		line = fmt.Sprintf("🎁 You earned %d loyalty points (including a %d point welcome bonus)! Balance: %d points",
			earned, cfg.FirstBookingBonus, c.LoyaltyPoints)
	} else {
		line = fmt.Sprintf("🎁 You earned %d loyalty points! Balance: %d points",
			earned, c.LoyaltyPoints)
	}
	if cfg.IsMilestone(c.TotalBookings) {
		line += fmt.Sprintf("\n🎉 That's booking #%d with us - thank you for your loyalty!",
			c.TotalBookings)
	}
	return line
}

func dayLabel(date time.Time, today, tomorrow bool) string {
	switch {
	case today:
		return "TODAY"
	case tomorrow:
		return "TOMORROW"
	default:
		return strings.ToUpper(date.Format("Monday"))
	}
}

func faqMenuText() string {
	return "❓ *Frequently Asked Questions*\n\n" +
		"1️⃣ What are your opening hours?\n" +
		"2️⃣ Where are you located?\n" +
		"3️⃣ Do I need to book in advance?\n" +
		"4️⃣ What payment methods do you accept?\n" +
		"5️⃣ Can I cancel or reschedule?\n\n" +
		"Reply with a number for more info\n" +
		"0️⃣ Main Menu"
}
