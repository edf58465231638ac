package bot

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"flowrelay/pkg/access"
	"flowrelay/pkg/models"
)

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("2006-01-02")
}

func formatDate(raw string) string {
	if raw == "" {
		return "—"
	}
	if len(raw) >= 10 {
		return raw[:10]
	}
	return raw
}

// truncate shortens s to max runes. Cutting by runes, not bytes, keeps
// the result valid UTF-8; Telegram rejects messages that are not.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}

func orDash(p *string) string {
	if p == nil || *p == "" {
		return "—"
	}
	return *p
}

func statusBadge(status models.AccountStatus) string {
	switch status {
	case models.StatusApproved:
		return "🟢 Approved"
	case models.StatusPending:
		return "🟡 Pending"
	case models.StatusRejected:
		return "🔴 Rejected"
	case models.StatusSuspended:
		return "⛔️ Suspended"
	default:
		return "⚪️ " + string(status)
	}
}

func offerBadge(status models.OfferStatus) string {
	switch status {
	case models.OfferPending:
		return "🟡 Pending"
	case models.OfferMatched:
		return "🔵 Matched"
	case models.OfferInProgress:
		return "🚚 In progress"
	case models.OfferCompleted:
		return "✅ Completed"
	case models.OfferCancelled:
		return "❌ Cancelled"
	default:
		return "⚪️ " + string(status)
	}
}

func availabilityBadge(a models.Availability) string {
	switch a {
	case models.AvailabilityAvailable:
		return "🟢 Available"
	case models.AvailabilityBusy:
		return "🔵 Busy"
	case models.AvailabilityOffline:
		return "⚫️ Offline"
	default:
		return "⚪️ " + string(a)
	}
}

func roleBadge(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return "🛠 Admin"
	case models.RoleDriver:
		return "🚖 Driver"
	default:
		return "👤 Client"
	}
}

// approvalBanner renders the account-status warning shown atop a
// dashboard, or "" when the account is in good standing.
func approvalBanner(state models.AccountStatus, notes *string) string {
	switch state {
	case models.StatusApproved:
		return ""
	case models.StatusPending:
		return "⏳ <b>Account pending approval.</b>\nAn administrator will review your account shortly. Some actions are disabled until then."
	case models.StatusRejected:
		msg := "❌ <b>Account rejected.</b>"
		if notes != nil && *notes != "" {
			msg += "\nReason: " + *notes
		}
		return msg + "\nPlease contact support."
	case models.StatusSuspended:
		msg := "⛔️ <b>Account suspended.</b>"
		if notes != nil && *notes != "" {
			msg += "\nReason: " + *notes
		}
		return msg + "\nPlease contact support."
	default:
		return "⚠️ <b>Account status unknown (" + string(state) + ").</b>\nYour account is in a state this bot does not recognize; actions are disabled. Please contact support."
	}
}

func accountCard(user *models.User) string {
	var sb strings.Builder
	sb.WriteString("👤 <b>My Account</b>\n\n")
	sb.WriteString("📧 Email: " + user.Email + "\n")
	sb.WriteString("🪪 Role: " + roleBadge(user.Role) + "\n")
	sb.WriteString("📶 Status: " + statusBadge(access.ApprovalState(user)) + "\n")
	if user.CompanyName != nil && *user.CompanyName != "" {
		sb.WriteString("🏢 Company: " + *user.CompanyName + "\n")
	}
	if user.CompanyRepresentative != nil && *user.CompanyRepresentative != "" {
		sb.WriteString("🧑‍💼 Representative: " + *user.CompanyRepresentative + "\n")
	}
	sb.WriteString("📞 Phone: " + orDash(user.PhoneNumber) + "\n")
	sb.WriteString("📍 Address: " + orDash(user.Address) + "\n")
	sb.WriteString("🗓 Member since: " + formatTime(user.CreatedAt) + "\n")
	if user.IsVerified == "true" {
		sb.WriteString("✉️ Email verified: yes\n")
	} else {
		sb.WriteString("✉️ Email verified: no\n")
	}
	return sb.String()
}

func offerCard(o *models.Offer) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📦 <b>Offer #%d</b>  %s\n", o.ID, offerBadge(o.Status))
	if o.Description != "" {
		sb.WriteString("📝 " + truncate(o.Description, 120) + "\n")
	}
	sb.WriteString("📍 From: " + o.PickupAddress + "\n")
	sb.WriteString("🎯 To: " + o.DropoffAddress + "\n")
	fmt.Fprintf(&sb, "🗓 %s %s\n", formatDate(o.PickupDate), o.PickupTime)
	if o.TotalMileage != nil {
		fmt.Fprintf(&sb, "🛣 Mileage: %.1f\n", *o.TotalMileage)
	}
	if o.DriverFirstName != nil {
		sb.WriteString("🚖 Driver: " + *o.DriverFirstName)
		if o.DriverPhone != nil {
			sb.WriteString(" (" + *o.DriverPhone + ")")
		}
		sb.WriteString("\n")
	}
	if o.VehicleMake != nil && o.VehiclePlate != nil {
		fmt.Fprintf(&sb, "🚗 Vehicle: %s %s, plate %s\n",
			*o.VehicleMake, orDash(o.VehicleModel), *o.VehiclePlate)
	}
	return sb.String()
}

func offerDraftSummary(d *models.OfferDraft) string {
	var sb strings.Builder
	sb.WriteString("🔎 <b>Please confirm your offer</b>\n\n")
	sb.WriteString("📝 " + d.Description + "\n")
	sb.WriteString("📍 From: " + d.PickupAddress + "\n")
	sb.WriteString("🎯 To: " + d.DropoffAddress + "\n")
	fmt.Fprintf(&sb, "🗓 %s %s\n", d.PickupDate, d.PickupTime)
	if d.CompanyRepresentative != "" {
		sb.WriteString("🧑‍💼 Representative: " + d.CompanyRepresentative + "\n")
	}
	if d.EmergencyPhone != "" {
		sb.WriteString("🚨 Emergency phone: " + d.EmergencyPhone + "\n")
	}
	if d.AdditionalService != nil && *d.AdditionalService != "" {
		sb.WriteString("➕ Additional service: " + *d.AdditionalService + "\n")
	}
	return sb.String()
}

func driverProfileCard(p *models.DriverProfile) string {
	var sb strings.Builder
	sb.WriteString("🚖 <b>Driver Profile</b>\n\n")
	fmt.Fprintf(&sb, "🧑 %s %s\n", p.FirstName, p.LastName)
	sb.WriteString("📞 " + p.PhoneNumber + "\n")
	sb.WriteString("📶 Approval: " + statusBadge(p.DriverStatus) + "\n")
	sb.WriteString("🔌 Availability: " + availabilityBadge(p.Status) + "\n")
	fmt.Fprintf(&sb, "🪪 License: %s (exp. %s)\n", p.LicenseNumber, formatDate(p.LicenseExpiry))
	fmt.Fprintf(&sb, "🛡 Insurance: %s (exp. %s)\n", p.InsuranceNumber, formatDate(p.InsuranceExpiry))
	fmt.Fprintf(&sb, "🚗 Vehicle: %s %s %s, %s, plate %s\n",
		p.VehicleMake, p.VehicleModel, p.VehicleYear, p.VehicleColor, p.VehiclePlate)
	fmt.Fprintf(&sb, "⭐️ Rating: %s   📦 Deliveries: %d\n", p.Rating, p.TotalDeliveries)
	return sb.String()
}

func userCard(u *models.User) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s <b>#%d</b> %s\n", roleBadge(u.Role), u.ID, u.Email)
	sb.WriteString("📶 " + statusBadge(access.ApprovalState(u)) + "\n")
	if u.CompanyName != nil && *u.CompanyName != "" {
		sb.WriteString("🏢 " + *u.CompanyName + "\n")
	}
	sb.WriteString("🗓 Registered: " + formatTime(u.CreatedAt) + "\n")
	return sb.String()
}
