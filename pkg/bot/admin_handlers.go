package bot

import (
	"context"
	"fmt"
	"strings"

	"flowrelay/pkg/logger"
	"flowrelay/pkg/models"

	tele "gopkg.in/telebot.v3"
)

func (b *Bot) handleApprovals(c tele.Context) error {
	ctx := context.Background()
	sess := b.openSession(c)
	if !b.requireRole(c, sess, models.RoleAdmin) {
		return nil
	}
	cli := b.API.Bind(sess).Admin()

	users, err := cli.PendingUsers(ctx)
	if err != nil {
		b.Log.Error("failed to list pending users", logger.Error(err))
		return c.Send(messages["en"]["failed_generic"])
	}
	drivers, err := cli.PendingDrivers(ctx)
	if err != nil {
		b.Log.Error("failed to list pending drivers", logger.Error(err))
		return c.Send(messages["en"]["failed_generic"])
	}

	c.Send(fmt.Sprintf("✅ <b>Approvals</b>\n\n👤 Pending users: %d\n🚖 Pending drivers: %d",
		len(users), len(drivers)), tele.ModeHTML)

	for _, u := range users {
		menu := &tele.ReplyMarkup{}
		menu.Inline(
			menu.Row(
				menu.Data("✅ Approve", fmt.Sprintf("apu_%d_approved", u.ID)),
				menu.Data("❌ Reject", fmt.Sprintf("apu_%d_rejected", u.ID)),
			),
			menu.Row(menu.Data("⛔️ Suspend", fmt.Sprintf("apu_%d_suspended", u.ID))),
		)
		if err := c.Send(userCard(u), menu, tele.ModeHTML); err != nil {
			return err
		}
	}
	for _, d := range drivers {
		menu := &tele.ReplyMarkup{}
		menu.Inline(menu.Row(
			menu.Data("✅ Approve", fmt.Sprintf("apd_%d_approved", d.ID)),
			menu.Data("❌ Reject", fmt.Sprintf("apd_%d_rejected", d.ID)),
		))
		if err := c.Send(driverProfileCard(d), menu, tele.ModeHTML); err != nil {
			return err
		}
	}
	if len(users) == 0 && len(drivers) == 0 {
		return c.Send("📭 Nothing waiting for review.")
	}
	return nil
}

// startApproval records the chosen action and collects the notes; the
// call itself happens in stepApprovalNotes.
func (b *Bot) startApproval(c tele.Context, kind string, id int64, status models.AccountStatus) error {
	ctx := context.Background()
	sess := b.openSession(c)
	if !b.requireRole(c, sess, models.RoleAdmin) {
		return nil
	}

	act := &approvalAction{Kind: kind, ID: id, Status: status}

	// Resolve who to notify before the pending lists change.
	cli := b.API.Bind(sess).Admin()
	if kind == "driver" {
		drivers, err := cli.Drivers(ctx)
		if err == nil {
			for _, d := range drivers {
				if d.ID == id {
					act.NotifyUserID = d.UserID
					act.NotifyRole = models.RoleDriver
					break
				}
			}
		}
	} else {
		users, err := cli.Users(ctx)
		if err == nil {
			for _, u := range users {
				if u.ID == id {
					act.NotifyUserID = u.ID
					act.NotifyRole = u.Role
					break
				}
			}
		}
	}

	conv := b.convo(c)
	conv.Approve = act
	conv.State = StateApprovalNotes
	c.Respond(&tele.CallbackResponse{})

	if status == models.StatusSuspended {
		return c.Send("📝 Suspension reason (required):")
	}
	return c.Send("📝 Notes for this decision, or /skip:")
}

func (b *Bot) stepApprovalNotes(c tele.Context, conv *Convo) error {
	ctx := context.Background()
	act := conv.Approve

	var notes *string
	if text := c.Text(); text != "/skip" {
		trimmed := strings.TrimSpace(text)
		if trimmed != "" {
			notes = &trimmed
		}
	}
	if act.Status == models.StatusSuspended && notes == nil {
		return c.Send("⚠️ A suspension reason is required. Please type one:")
	}

	conv.State = StateIdle
	conv.Approve = nil

	sess := b.openSession(c)
	cli := b.API.Bind(sess).Admin()
	update := models.ApprovalUpdate{Status: act.Status, Notes: notes}

	var err error
	if act.Kind == "driver" {
		err = cli.SetDriverApproval(ctx, act.ID, update)
	} else {
		err = cli.SetUserApproval(ctx, act.ID, update)
	}
	if err != nil {
		b.Log.Error("approval update failed", logger.Error(err),
			logger.String("kind", act.Kind), logger.Int64("id", act.ID))
		return c.Send("❌ Could not apply the decision: " + err.Error())
	}

	if act.NotifyUserID != 0 {
		go b.notifyUser(act.NotifyUserID, act.NotifyRole, approvalNotice(act.Kind, act.Status, notes))
	}
	return c.Send(fmt.Sprintf("✅ Done: %s #%d is now %s.", act.Kind, act.ID, act.Status))
}

func approvalNotice(kind string, status models.AccountStatus, notes *string) string {
	subject := "account"
	if kind == "driver" {
		subject = "driver profile"
	}
	var msg string
	switch status {
	case models.StatusApproved:
		msg = "🎉 Your " + subject + " has been approved! Welcome aboard."
	case models.StatusRejected:
		msg = "❌ Your " + subject + " was not approved."
	case models.StatusSuspended:
		msg = "⛔️ Your " + subject + " has been suspended."
	default:
		msg = "ℹ️ Your " + subject + " status changed to " + string(status) + "."
	}
	if notes != nil && *notes != "" {
		msg += "\n📝 " + *notes
	}
	return msg
}

func (b *Bot) handleAdminUsers(c tele.Context) error {
	ctx := context.Background()
	sess := b.openSession(c)
	if !b.requireRole(c, sess, models.RoleAdmin) {
		return nil
	}

	users, err := b.API.Bind(sess).Admin().Users(ctx)
	if err != nil {
		b.Log.Error("failed to list users", logger.Error(err))
		return c.Send(messages["en"]["failed_generic"])
	}
	if len(users) == 0 {
		return c.Send("📭 No users registered.")
	}

	for _, u := range users {
		if u.Role == models.RoleAdmin {
			if err := c.Send(userCard(u), tele.ModeHTML); err != nil {
				return err
			}
			continue
		}
		menu := &tele.ReplyMarkup{}
		var actions []tele.Btn
		switch u.AccountStatus {
		case models.StatusSuspended:
			actions = append(actions, menu.Data("♻️ Reinstate", fmt.Sprintf("apu_%d_approved", u.ID)))
		case models.StatusApproved:
			actions = append(actions, menu.Data("⛔️ Suspend", fmt.Sprintf("apu_%d_suspended", u.ID)))
		}
		actions = append(actions, menu.Data("🗑 Delete", fmt.Sprintf("udel_%d", u.ID)))

		roleBtn := menu.Data("🚖 Make driver", fmt.Sprintf("urole_%d_driver", u.ID))
		if u.Role == models.RoleDriver {
			roleBtn = menu.Data("👤 Make client", fmt.Sprintf("urole_%d_client", u.ID))
		}
		menu.Inline(menu.Row(actions...), menu.Row(roleBtn))
		if err := c.Send(userCard(u), menu, tele.ModeHTML); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bot) changeUserRole(c tele.Context, id int64, role models.Role) error {
	ctx := context.Background()
	sess := b.openSession(c)
	if !b.requireRole(c, sess, models.RoleAdmin) {
		return nil
	}

	update := models.UserUpdate{Role: &role}
	if _, err := b.API.Bind(sess).Admin().UpdateUser(ctx, id, update); err != nil {
		b.Log.Error("failed to change role", logger.Error(err), logger.Int64("user_id", id))
		return c.Respond(&tele.CallbackResponse{Text: "❌ Role change failed.", ShowAlert: true})
	}
	c.Respond(&tele.CallbackResponse{Text: "Role updated."})
	return c.Edit(fmt.Sprintf("✅ User #%d is now a %s.", id, role))
}

func (b *Bot) confirmDeleteUser(c tele.Context, id int64) error {
	sess := b.openSession(c)
	if !b.requireRole(c, sess, models.RoleAdmin) {
		return nil
	}
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(
		menu.Data("⚠️ Yes, delete", fmt.Sprintf("udelok_%d", id)),
		menu.Data("Cancel", "noop"),
	))
	c.Respond(&tele.CallbackResponse{})
	return c.Edit(fmt.Sprintf("🗑 Delete user #%d permanently?", id), menu)
}

func (b *Bot) deleteUser(c tele.Context, id int64) error {
	ctx := context.Background()
	sess := b.openSession(c)
	if !b.requireRole(c, sess, models.RoleAdmin) {
		return nil
	}

	if err := b.API.Bind(sess).Admin().DeleteUser(ctx, id); err != nil {
		b.Log.Error("failed to delete user", logger.Error(err), logger.Int64("user_id", id))
		return c.Respond(&tele.CallbackResponse{Text: "❌ Delete failed.", ShowAlert: true})
	}
	c.Respond(&tele.CallbackResponse{})
	return c.Edit(fmt.Sprintf("🗑 User #%d deleted.", id))
}

func (b *Bot) handleAdminOffers(c tele.Context) error {
	ctx := context.Background()
	sess := b.openSession(c)
	if !b.requireRole(c, sess, models.RoleAdmin) {
		return nil
	}

	offers, err := b.API.Bind(sess).Admin().AllOffers(ctx)
	if err != nil {
		b.Log.Error("failed to list offers", logger.Error(err))
		return c.Send(messages["en"]["failed_generic"])
	}
	if len(offers) == 0 {
		return c.Send("📭 No offers in the system.")
	}

	for _, o := range offers {
		if o.Status != models.OfferPending {
			if err := c.Send(offerCard(o), tele.ModeHTML); err != nil {
				return err
			}
			continue
		}
		menu := &tele.ReplyMarkup{}
		menu.Inline(menu.Row(menu.Data("🚖 Assign driver", fmt.Sprintf("asg_%d", o.ID))))
		if err := c.Send(offerCard(o), menu, tele.ModeHTML); err != nil {
			return err
		}
	}
	return nil
}

// pickDriver lists approved drivers as inline choices for an offer.
func (b *Bot) pickDriver(c tele.Context, offerID int64) error {
	ctx := context.Background()
	sess := b.openSession(c)
	if !b.requireRole(c, sess, models.RoleAdmin) {
		return nil
	}

	drivers, err := b.API.Bind(sess).Admin().Drivers(ctx)
	if err != nil {
		b.Log.Error("failed to list drivers", logger.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "❌ Could not load drivers.", ShowAlert: true})
	}

	menu := &tele.ReplyMarkup{}
	var rows []tele.Row
	for _, d := range drivers {
		if d.DriverStatus != models.StatusApproved || d.Status == models.AvailabilityBusy {
			continue
		}
		label := fmt.Sprintf("%s %s (%s)", d.FirstName, d.LastName, d.VehiclePlate)
		rows = append(rows, menu.Row(menu.Data(truncate(label, 60), fmt.Sprintf("asgd_%d_%d", offerID, d.ID))))
	}
	if len(rows) == 0 {
		return c.Respond(&tele.CallbackResponse{Text: "No approved drivers free right now.", ShowAlert: true})
	}
	menu.Inline(rows...)
	c.Respond(&tele.CallbackResponse{})
	return c.Edit(fmt.Sprintf("🚖 Pick a driver for offer #%d:", offerID), menu)
}

func (b *Bot) assignDriver(c tele.Context, offerID, driverID int64) error {
	ctx := context.Background()
	sess := b.openSession(c)
	if !b.requireRole(c, sess, models.RoleAdmin) {
		return nil
	}
	cli := b.API.Bind(sess).Admin()

	drivers, err := cli.Drivers(ctx)
	if err != nil {
		b.Log.Error("failed to list drivers", logger.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "❌ Could not load drivers.", ShowAlert: true})
	}
	var driver *models.DriverProfile
	for _, d := range drivers {
		if d.ID == driverID {
			driver = d
			break
		}
	}
	if driver == nil {
		return c.Respond(&tele.CallbackResponse{Text: "Driver is gone.", ShowAlert: true})
	}

	assignment := models.DriverAssignment{
		DriverFirstName: driver.FirstName,
		DriverPhone:     driver.PhoneNumber,
		VehicleMake:     driver.VehicleMake,
		VehicleModel:    driver.VehicleModel,
		VehicleColor:    driver.VehicleColor,
		VehiclePlate:    driver.VehiclePlate,
		Status:          models.OfferMatched,
	}
	if _, err := cli.AssignDriver(ctx, offerID, assignment); err != nil {
		b.Log.Error("failed to assign driver", logger.Error(err),
			logger.Int64("offer_id", offerID), logger.Int64("driver_id", driverID))
		return c.Respond(&tele.CallbackResponse{Text: "❌ Assignment failed.", ShowAlert: true})
	}

	go b.notifyUser(driver.UserID, models.RoleDriver,
		fmt.Sprintf("🚖 You have been assigned to offer #%d. Check %s.", offerID, btnDeliveries))

	c.Respond(&tele.CallbackResponse{Text: "Driver assigned."})
	return c.Edit(fmt.Sprintf("✅ Offer #%d assigned to %s %s.", offerID, driver.FirstName, driver.LastName))
}
