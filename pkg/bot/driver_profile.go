package bot

import (
	"context"

	"flowrelay/pkg/logger"
	"flowrelay/pkg/models"

	tele "gopkg.in/telebot.v3"
)

func (b *Bot) handleDriverProfile(c tele.Context) error {
	ctx := context.Background()
	sess := b.openSession(c)
	if !b.requireRole(c, sess, models.RoleDriver) {
		return nil
	}

	profile, err := b.API.Bind(sess).Driver().Profile(ctx)
	view, err := profileViewOf(profile, err)
	if err != nil {
		b.Log.Error("failed to load driver profile", logger.Error(err))
		return c.Send(messages["en"]["failed_generic"])
	}

	if view == profileMissing {
		menu := &tele.ReplyMarkup{}
		menu.Inline(menu.Row(menu.Data("➕ Create Profile", "create_profile")))
		return c.Send("You have no driver profile yet.", menu)
	}

	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(menu.Data("✏️ Edit Profile", "edit_profile")))
	return c.Send(driverProfileCard(profile), menu, tele.ModeHTML)
}

func (b *Bot) startProfileForm(c tele.Context, update bool) error {
	ctx := context.Background()
	sess := b.openSession(c)
	if !b.requireRole(c, sess, models.RoleDriver) {
		return nil
	}

	conv := b.convo(c)
	conv.ProfileUpdate = update
	conv.Profile = &models.DriverProfile{}
	if update {
		existing, err := b.API.Bind(sess).Driver().Profile(ctx)
		if err != nil {
			b.Log.Error("failed to load profile for edit", logger.Error(err))
			return c.Send(messages["en"]["failed_generic"])
		}
		conv.Profile = existing
		c.Send("✏️ Updating your profile. Send /skip at any step to keep the current value.")
	}
	conv.State = StateProfileFirstName
	c.Respond(&tele.CallbackResponse{})
	return c.Send("🧑 First name:" + currentHint(conv.Profile.FirstName))
}

// stepProfile walks the driver through the full profile form, one
// field per message.
func (b *Bot) stepProfile(c tele.Context, conv *Convo) error {
	text := c.Text()
	skip := text == "/skip"
	p := conv.Profile
	set := func(dst *string) {
		if !skip {
			*dst = text
		}
	}

	switch conv.State {
	case StateProfileFirstName:
		set(&p.FirstName)
		conv.State = StateProfileLastName
		return c.Send("🧑 Last name:" + currentHint(p.LastName))
	case StateProfileLastName:
		set(&p.LastName)
		conv.State = StateProfilePhone
		return c.Send("📞 Phone number:" + currentHint(p.PhoneNumber))
	case StateProfilePhone:
		set(&p.PhoneNumber)
		conv.State = StateProfileLicense
		return c.Send("🪪 Driver's license number:" + currentHint(p.LicenseNumber))
	case StateProfileLicense:
		set(&p.LicenseNumber)
		conv.State = StateProfileLicenseExpiry
		return c.Send("🪪 License expiry (YYYY-MM-DD):" + currentHint(p.LicenseExpiry))
	case StateProfileLicenseExpiry:
		set(&p.LicenseExpiry)
		conv.State = StateProfileInsurance
		return c.Send("🛡 Insurance number:" + currentHint(p.InsuranceNumber))
	case StateProfileInsurance:
		set(&p.InsuranceNumber)
		conv.State = StateProfileInsuranceExpiry
		return c.Send("🛡 Insurance expiry (YYYY-MM-DD):" + currentHint(p.InsuranceExpiry))
	case StateProfileInsuranceExpiry:
		set(&p.InsuranceExpiry)
		conv.State = StateProfileVehicleMake
		return c.Send("🚗 Vehicle make:" + currentHint(p.VehicleMake))
	case StateProfileVehicleMake:
		set(&p.VehicleMake)
		conv.State = StateProfileVehicleModel
		return c.Send("🚗 Vehicle model:" + currentHint(p.VehicleModel))
	case StateProfileVehicleModel:
		set(&p.VehicleModel)
		conv.State = StateProfileVehicleYear
		return c.Send("🚗 Vehicle year:" + currentHint(p.VehicleYear))
	case StateProfileVehicleYear:
		set(&p.VehicleYear)
		conv.State = StateProfileVehicleColor
		return c.Send("🎨 Vehicle color:" + currentHint(p.VehicleColor))
	case StateProfileVehicleColor:
		set(&p.VehicleColor)
		conv.State = StateProfileVehiclePlate
		return c.Send("🔢 License plate:" + currentHint(p.VehiclePlate))
	case StateProfileVehiclePlate:
		set(&p.VehiclePlate)
		return b.finishProfileForm(c, conv)
	}
	return nil
}

func (b *Bot) finishProfileForm(c tele.Context, conv *Convo) error {
	ctx := context.Background()
	sess := b.openSession(c)
	profile := conv.Profile
	update := conv.ProfileUpdate
	conv.State = StateIdle
	conv.Profile = nil
	conv.ProfileUpdate = false

	cli := b.API.Bind(sess).Driver()
	var err error
	if update {
		_, err = cli.UpdateProfile(ctx, profile)
	} else {
		_, err = cli.CreateProfile(ctx, profile)
	}
	if err != nil {
		b.Log.Error("failed to save driver profile", logger.Error(err))
		return c.Send("❌ Could not save the profile: " + err.Error())
	}

	if update {
		return c.Send("✅ Profile updated.")
	}
	return c.Send("✅ Profile submitted!\n⏳ An administrator will review it. You can take offers once approved.")
}
