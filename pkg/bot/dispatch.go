package bot

import (
	"strconv"
	"strings"

	"flowrelay/pkg/models"

	tele "gopkg.in/telebot.v3"
)

// handleText routes a free-form message to whichever form step the
// chat is in the middle of.
func (b *Bot) handleText(c tele.Context) error {
	conv := b.convo(c)

	switch conv.State {
	case StateLoginEmail:
		return b.stepLoginEmail(c, conv)
	case StateLoginPassword:
		return b.stepLoginPassword(c, conv)

	case StateSignupEmail, StateSignupPassword, StateSignupCompany,
		StateSignupRep, StateSignupPhone, StateSignupAddress, StateSignupEmergency:
		return b.stepSignup(c, conv)

	case StateVerifyToken:
		return b.stepVerifyToken(c, conv)

	case StateOfferDescription, StateOfferPickupAddr, StateOfferDropoffAddr,
		StateOfferDate, StateOfferTime, StateOfferRep, StateOfferEmergency, StateOfferExtra:
		return b.stepOffer(c, conv)

	case StateProfileFirstName, StateProfileLastName, StateProfilePhone,
		StateProfileLicense, StateProfileLicenseExpiry, StateProfileInsurance,
		StateProfileInsuranceExpiry, StateProfileVehicleMake, StateProfileVehicleModel,
		StateProfileVehicleYear, StateProfileVehicleColor, StateProfileVehiclePlate:
		return b.stepProfile(c, conv)

	case StateApprovalNotes:
		return b.stepApprovalNotes(c, conv)

	case StateReportStart:
		return b.stepReportStart(c, conv)
	case StateReportEnd:
		return b.stepReportEnd(c, conv)
	}

	return c.Send("🤔 I did not get that. Use the menu buttons, or /start.")
}

func (b *Bot) handleCallback(c tele.Context) error {
	data := strings.TrimPrefix(c.Callback().Data, "\f")
	if i := strings.Index(data, "|"); i >= 0 {
		data = data[:i]
	}
	data = strings.TrimSpace(data)

	switch data {
	case "noop":
		return c.Respond(&tele.CallbackResponse{})
	case "create_profile":
		return b.startProfileForm(c, false)
	case "edit_profile":
		return b.startProfileForm(c, true)
	case "offer_ok":
		return b.submitOffer(c)
	case "offer_cancel":
		return b.discardOffer(c)
	case "rep_quick":
		return b.reportQuickRange(c)
	case "rep_custom":
		return b.reportCustomRange(c)
	}

	switch {
	case strings.HasPrefix(data, "toggle_"):
		return b.handleToggle(c, models.Availability(strings.TrimPrefix(data, "toggle_")))
	case strings.HasPrefix(data, "edit_"):
		if id, ok := parseID(data, "edit_"); ok {
			return b.startOfferEdit(c, id)
		}
	case strings.HasPrefix(data, "take_"):
		if id, ok := parseID(data, "take_"); ok {
			return b.handleAcceptOffer(c, id)
		}
	case strings.HasPrefix(data, "start_"):
		if id, ok := parseID(data, "start_"); ok {
			return b.handleDeliveryStatus(c, id, models.OfferInProgress)
		}
	case strings.HasPrefix(data, "finish_"):
		if id, ok := parseID(data, "finish_"); ok {
			return b.handleDeliveryStatus(c, id, models.OfferCompleted)
		}
	case strings.HasPrefix(data, "drop_"):
		if id, ok := parseID(data, "drop_"); ok {
			return b.handleDeliveryStatus(c, id, models.OfferCancelled)
		}
	case strings.HasPrefix(data, "apu_"):
		if id, status, ok := parseApproval(data, "apu_"); ok {
			return b.startApproval(c, "user", id, status)
		}
	case strings.HasPrefix(data, "apd_"):
		if id, status, ok := parseApproval(data, "apd_"); ok {
			return b.startApproval(c, "driver", id, status)
		}
	case strings.HasPrefix(data, "urole_"):
		parts := strings.SplitN(strings.TrimPrefix(data, "urole_"), "_", 2)
		if len(parts) == 2 {
			if id, err := strconv.ParseInt(parts[0], 10, 64); err == nil {
				if role := models.Role(parts[1]); role.Known() && role != models.RoleAdmin {
					return b.changeUserRole(c, id, role)
				}
			}
		}
	case strings.HasPrefix(data, "udelok_"):
		if id, ok := parseID(data, "udelok_"); ok {
			return b.deleteUser(c, id)
		}
	case strings.HasPrefix(data, "udel_"):
		if id, ok := parseID(data, "udel_"); ok {
			return b.confirmDeleteUser(c, id)
		}
	case strings.HasPrefix(data, "asgd_"):
		parts := strings.Split(strings.TrimPrefix(data, "asgd_"), "_")
		if len(parts) == 2 {
			offerID, err1 := strconv.ParseInt(parts[0], 10, 64)
			driverID, err2 := strconv.ParseInt(parts[1], 10, 64)
			if err1 == nil && err2 == nil {
				return b.assignDriver(c, offerID, driverID)
			}
		}
	case strings.HasPrefix(data, "asg_"):
		if id, ok := parseID(data, "asg_"); ok {
			return b.pickDriver(c, id)
		}
	case strings.HasPrefix(data, "reps_"):
		return b.generateReport(c, strings.TrimPrefix(data, "reps_"))
	case strings.HasPrefix(data, "repx_"):
		return b.exportReport(c, strings.TrimPrefix(data, "repx_"))
	}

	return c.Respond(&tele.CallbackResponse{})
}

func parseID(data, prefix string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimPrefix(data, prefix), 10, 64)
	return id, err == nil
}

// parseApproval splits "<prefix><id>_<status>" callbacks.
func parseApproval(data, prefix string) (int64, models.AccountStatus, bool) {
	parts := strings.SplitN(strings.TrimPrefix(data, prefix), "_", 2)
	if len(parts) != 2 {
		return 0, "", false
	}
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, "", false
	}
	status := models.AccountStatus(parts[1])
	if !status.Known() {
		return 0, "", false
	}
	return id, status, true
}
