package bot

import (
	"context"
	"fmt"
	"strings"

	"flowrelay/pkg/api"
	"flowrelay/pkg/logger"
	"flowrelay/pkg/models"

	tele "gopkg.in/telebot.v3"
)

// profileView is the driver dashboard's derived state: which of the
// mutually exclusive screens to render.
type profileView int

const (
	profileMissing profileView = iota
	profilePending
	profileRejected
	profileSuspended
	profileApproved
	profileUnknown
)

// profileViewOf folds the profile fetch outcome into one view. A 404 is
// not an error here: it means the driver has not created a profile yet.
func profileViewOf(p *models.DriverProfile, err error) (profileView, error) {
	if err != nil {
		if api.IsNotFound(err) {
			return profileMissing, nil
		}
		return 0, err
	}
	switch p.DriverStatus {
	case models.StatusApproved:
		return profileApproved, nil
	case models.StatusPending, "":
		return profilePending, nil
	case models.StatusRejected:
		return profileRejected, nil
	case models.StatusSuspended:
		return profileSuspended, nil
	default:
		return profileUnknown, nil
	}
}

// toggleTarget is the availability the toggle switches to. Busy is set
// by the delivery lifecycle and is not toggleable by hand.
func toggleTarget(current models.Availability) (models.Availability, bool) {
	switch current {
	case models.AvailabilityAvailable:
		return models.AvailabilityOffline, true
	case models.AvailabilityOffline, "":
		return models.AvailabilityAvailable, true
	default:
		return current, false
	}
}

// applyToggle performs the single status-update call and returns the
// availability the UI should now show: the target on success, the
// unchanged current value on failure.
func applyToggle(ctx context.Context, cli api.IDriverAPI, current, target models.Availability) (models.Availability, error) {
	if err := cli.UpdateStatus(ctx, target); err != nil {
		return current, err
	}
	return target, nil
}

func (b *Bot) handleDriverDashboard(c tele.Context) error {
	ctx := context.Background()
	sess := b.openSession(c)
	if !b.requireRole(c, sess, models.RoleDriver) {
		return nil
	}
	cli := b.API.Bind(sess)

	profile, err := cli.Driver().Profile(ctx)
	view, err := profileViewOf(profile, err)
	if err != nil {
		b.Log.Error("failed to load driver profile", logger.Error(err))
		return c.Send(messages["en"]["failed_generic"])
	}

	switch view {
	case profileMissing:
		menu := &tele.ReplyMarkup{}
		menu.Inline(menu.Row(menu.Data("➕ Create Profile", "create_profile")))
		return c.Send("🚖 <b>Welcome, driver!</b>\n\n"+
			"You have no driver profile yet. Create one to get reviewed and start taking offers.",
			menu, tele.ModeHTML)
	case profilePending, profileRejected, profileSuspended, profileUnknown:
		status := profile.DriverStatus
		text := approvalBanner(accountStatusOf(view, status), profile.ApprovalNotes) +
			"\n\n" + driverProfileCard(profile)
		return c.Send(text, tele.ModeHTML)
	}

	stats, err := cli.Driver().Statistics(ctx)
	if err != nil {
		b.Log.Error("failed to load driver statistics", logger.Error(err))
		return c.Send(messages["en"]["failed_generic"])
	}

	var sb strings.Builder
	sb.WriteString("📊 <b>Driver Dashboard</b>\n\n")
	fmt.Fprintf(&sb, "🧑 %s   ⭐️ %s\n", stats.DriverInfo.Name, stats.DriverInfo.Rating)
	fmt.Fprintf(&sb, "📦 Assigned: %d   ✅ Completed: %d\n", stats.Statistics.TotalAssigned, stats.Statistics.Completed)
	fmt.Fprintf(&sb, "🚚 In progress: %d   🔵 Matched: %d   ❌ Cancelled: %d\n",
		stats.Statistics.InProgress, stats.Statistics.Matched, stats.Statistics.Cancelled)

	if active, err := cli.Driver().ActiveOffers(ctx); err == nil && len(active) > 0 {
		sb.WriteString("\n📦 <b>Active deliveries</b>\n")
		for _, o := range active {
			fmt.Fprintf(&sb, "%s  #%d  %s → %s\n", offerBadge(o.Status), o.ID,
				truncate(o.PickupAddress, 20), truncate(o.DropoffAddress, 20))
		}
	}
	sb.WriteString("\n🔌 Availability: " + availabilityBadge(profile.Status))

	return c.Send(sb.String(), availabilityMarkup(profile.Status), tele.ModeHTML)
}

func accountStatusOf(view profileView, raw models.AccountStatus) models.AccountStatus {
	switch view {
	case profilePending:
		return models.StatusPending
	case profileRejected:
		return models.StatusRejected
	case profileSuspended:
		return models.StatusSuspended
	default:
		return raw
	}
}

// availabilityMarkup renders the toggle button for the given shown
// status; busy gets no button at all.
func availabilityMarkup(current models.Availability) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	target, ok := toggleTarget(current)
	if !ok {
		menu.Inline(menu.Row(menu.Data("🔒 Busy on a delivery", "noop")))
		return menu
	}
	label := "🟢 Go available"
	if target == models.AvailabilityOffline {
		label = "⚫️ Go offline"
	}
	menu.Inline(menu.Row(menu.Data(label, "toggle_"+string(current))))
	return menu
}

// handleToggle flips availability. The callback data carries the status
// the message currently shows, so the handler makes exactly one
// status-update call and never re-reads the profile.
func (b *Bot) handleToggle(c tele.Context, shown models.Availability) error {
	ctx := context.Background()
	sess := b.openSession(c)
	if !b.requireRole(c, sess, models.RoleDriver) {
		return nil
	}

	target, ok := toggleTarget(shown)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Finish your delivery first."})
	}

	now, err := applyToggle(ctx, b.API.Bind(sess).Driver(), shown, target)
	if err != nil {
		b.Log.Error("availability toggle failed", logger.Error(err), logger.String("target", string(target)))
		// Shown state stays as it was; one failure notice.
		return c.Respond(&tele.CallbackResponse{Text: "❌ Failed to update status.", ShowAlert: true})
	}

	c.Respond(&tele.CallbackResponse{Text: "Status updated."})
	text := c.Message().Text
	if i := strings.LastIndex(text, "🔌"); i >= 0 {
		text = text[:i]
	}
	text += "🔌 Availability: " + availabilityBadge(now)
	return c.Edit(text, availabilityMarkup(now), tele.ModeHTML)
}

func (b *Bot) handleAvailableOffers(c tele.Context) error {
	ctx := context.Background()
	sess := b.openSession(c)
	if !b.requireRole(c, sess, models.RoleDriver) {
		return nil
	}

	offers, err := b.API.Bind(sess).Driver().AvailableOffers(ctx)
	if err != nil {
		b.Log.Error("failed to list available offers", logger.Error(err))
		return c.Send(b.driverListFailure(err))
	}
	if len(offers) == 0 {
		return c.Send("📭 No open offers right now. Check back soon!")
	}

	for _, o := range offers {
		menu := &tele.ReplyMarkup{}
		menu.Inline(menu.Row(menu.Data("🤝 Accept", fmt.Sprintf("take_%d", o.ID))))
		if err := c.Send(offerCard(o), menu, tele.ModeHTML); err != nil {
			return err
		}
	}
	return nil
}

// driverListFailure surfaces pending/suspended approval answers from
// the driver endpoints instead of a generic failure.
func (b *Bot) driverListFailure(err error) string {
	switch api.Denial(err) {
	case api.ReasonPendingApproval:
		return "⏳ Your driver profile is pending approval. Offers unlock once an admin approves you."
	case api.ReasonAccountRejected:
		return messages["en"]["denial_rejected"]
	case api.ReasonAccountSuspended:
		return messages["en"]["denial_suspended"]
	}
	return messages["en"]["failed_generic"]
}

func (b *Bot) handleAcceptOffer(c tele.Context, offerID int64) error {
	ctx := context.Background()
	sess := b.openSession(c)
	if !b.requireRole(c, sess, models.RoleDriver) {
		return nil
	}

	if err := b.API.Bind(sess).Driver().Accept(ctx, offerID); err != nil {
		b.Log.Error("failed to accept offer", logger.Error(err), logger.Int64("offer_id", offerID))
		return c.Respond(&tele.CallbackResponse{Text: "❌ " + truncate(err.Error(), 180), ShowAlert: true})
	}
	c.Respond(&tele.CallbackResponse{Text: "Offer accepted!"})
	return c.Edit(fmt.Sprintf("🤝 Offer #%d is yours. See %s to run it.", offerID, btnDeliveries))
}

func (b *Bot) handleMyDeliveries(c tele.Context) error {
	ctx := context.Background()
	sess := b.openSession(c)
	if !b.requireRole(c, sess, models.RoleDriver) {
		return nil
	}

	offers, err := b.API.Bind(sess).Driver().MyAssignments(ctx)
	if err != nil {
		b.Log.Error("failed to list assignments", logger.Error(err))
		return c.Send(b.driverListFailure(err))
	}

	var active []*models.Offer
	for _, o := range offers {
		if o.Status == models.OfferMatched || o.Status == models.OfferInProgress {
			active = append(active, o)
		}
	}
	if len(active) == 0 {
		return c.Send("📭 No active deliveries. Accept an offer from " + btnAvailable + ".")
	}

	for _, o := range active {
		menu := &tele.ReplyMarkup{}
		switch o.Status {
		case models.OfferMatched:
			menu.Inline(menu.Row(
				menu.Data("▶️ Start", fmt.Sprintf("start_%d", o.ID)),
				menu.Data("❌ Cancel", fmt.Sprintf("drop_%d", o.ID)),
			))
		case models.OfferInProgress:
			menu.Inline(menu.Row(
				menu.Data("🏁 Complete", fmt.Sprintf("finish_%d", o.ID)),
				menu.Data("❌ Cancel", fmt.Sprintf("drop_%d", o.ID)),
			))
		}
		if err := c.Send(offerCard(o), menu, tele.ModeHTML); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bot) handleDeliveryStatus(c tele.Context, offerID int64, status models.OfferStatus) error {
	ctx := context.Background()
	sess := b.openSession(c)
	if !b.requireRole(c, sess, models.RoleDriver) {
		return nil
	}

	if err := b.API.Bind(sess).Driver().UpdateOfferStatus(ctx, offerID, status); err != nil {
		b.Log.Error("failed to update delivery", logger.Error(err),
			logger.Int64("offer_id", offerID), logger.String("status", string(status)))
		return c.Respond(&tele.CallbackResponse{Text: "❌ " + truncate(err.Error(), 180), ShowAlert: true})
	}
	c.Respond(&tele.CallbackResponse{})

	switch status {
	case models.OfferInProgress:
		return c.Edit(fmt.Sprintf("🚚 Delivery #%d started. Drive safe!", offerID))
	case models.OfferCompleted:
		return c.Edit(fmt.Sprintf("🏁 Delivery #%d completed. Great job!", offerID))
	default:
		return c.Edit(fmt.Sprintf("❌ Delivery #%d cancelled.", offerID))
	}
}

func (b *Bot) handleHistory(c tele.Context) error {
	ctx := context.Background()
	sess := b.openSession(c)
	if !b.requireRole(c, sess, models.RoleDriver) {
		return nil
	}

	offers, err := b.API.Bind(sess).Driver().History(ctx, 20)
	if err != nil {
		b.Log.Error("failed to load history", logger.Error(err))
		return c.Send(b.driverListFailure(err))
	}
	if len(offers) == 0 {
		return c.Send("📭 No finished deliveries yet.")
	}

	var sb strings.Builder
	sb.WriteString("🕓 <b>Delivery history</b>\n\n")
	for _, o := range offers {
		fmt.Fprintf(&sb, "%s  #%d  %s → %s  (%s)\n",
			offerBadge(o.Status), o.ID,
			truncate(o.PickupAddress, 25), truncate(o.DropoffAddress, 25),
			formatDate(o.PickupDate))
	}
	return c.Send(sb.String(), tele.ModeHTML)
}
