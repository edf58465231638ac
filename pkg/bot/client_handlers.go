package bot

import (
	"context"
	"fmt"

	"flowrelay/pkg/access"
	"flowrelay/pkg/logger"
	"flowrelay/pkg/models"

	tele "gopkg.in/telebot.v3"
)

func (b *Bot) handleAccount(c tele.Context) error {
	sess := b.openSession(c)
	if !b.requireRole(c, sess, models.RoleClient) {
		return nil
	}
	user := sess.User()

	text := accountCard(user)
	if banner := approvalBanner(access.ApprovalState(user), user.ApprovalNotes); banner != "" {
		text = banner + "\n\n" + text
	}
	return c.Send(text, tele.ModeHTML)
}

func (b *Bot) handleMyOffers(c tele.Context) error {
	ctx := context.Background()
	sess := b.openSession(c)
	if !b.requireRole(c, sess, models.RoleClient) {
		return nil
	}

	offers, err := b.API.Bind(sess).Offers().Mine(ctx)
	if err != nil {
		b.Log.Error("failed to list offers", logger.Error(err))
		return c.Send(messages["en"]["failed_generic"])
	}
	if len(offers) == 0 {
		return c.Send("📭 You have no offers yet. Use " + btnNewOffer + " to post one.")
	}

	editable := access.ApprovalState(sess.User()) == models.StatusApproved
	for _, o := range offers {
		menu := &tele.ReplyMarkup{}
		// Only a pending offer is still the client's to change.
		if o.Status == models.OfferPending && editable {
			menu.Inline(menu.Row(menu.Data("✏️ Edit", fmt.Sprintf("edit_%d", o.ID))))
			if err := c.Send(offerCard(o), menu, tele.ModeHTML); err != nil {
				return err
			}
			continue
		}
		if err := c.Send(offerCard(o), tele.ModeHTML); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bot) handleNewOffer(c tele.Context) error {
	sess := b.openSession(c)
	if !b.requireRole(c, sess, models.RoleClient) {
		return nil
	}

	user := sess.User()
	if state := access.ApprovalState(user); state != models.StatusApproved {
		banner := approvalBanner(state, user.ApprovalNotes)
		return c.Send(banner+"\n\n📪 Posting offers is available once your account is approved.", tele.ModeHTML)
	}

	conv := b.convo(c)
	conv.OfferDraft = &models.OfferDraft{}
	conv.EditOfferID = 0
	if user.CompanyRepresentative != nil {
		conv.OfferDraft.CompanyRepresentative = *user.CompanyRepresentative
	}
	if user.EmergencyPhone != nil {
		conv.OfferDraft.EmergencyPhone = *user.EmergencyPhone
	}
	conv.State = StateOfferDescription
	return c.Send("📝 Describe the cargo and the delivery:")
}

func (b *Bot) startOfferEdit(c tele.Context, offerID int64) error {
	ctx := context.Background()
	sess := b.openSession(c)
	if !b.requireRole(c, sess, models.RoleClient) {
		return nil
	}

	offer, err := b.API.Bind(sess).Offers().Get(ctx, offerID)
	if err != nil {
		b.Log.Error("failed to load offer for edit", logger.Error(err), logger.Int64("offer_id", offerID))
		return c.Send(messages["en"]["failed_generic"])
	}
	if offer.Status != models.OfferPending {
		return c.Send("🔒 Only pending offers can be edited.")
	}

	conv := b.convo(c)
	conv.EditOfferID = offerID
	conv.OfferDraft = &models.OfferDraft{
		CompanyRepresentative: offer.CompanyRepresentative,
		EmergencyPhone:        offer.EmergencyPhone,
		Description:           offer.Description,
		PickupDate:            offer.PickupDate,
		PickupTime:            offer.PickupTime,
		PickupAddress:         offer.PickupAddress,
		DropoffAddress:        offer.DropoffAddress,
		AdditionalService:     offer.AdditionalService,
	}
	conv.State = StateOfferDescription
	return c.Send(fmt.Sprintf("✏️ Editing offer #%d.\nSend /skip at any step to keep the current value.\n\n📝 Description (current: %s):",
		offerID, truncate(offer.Description, 80)))
}

// stepOffer advances the offer form one field per message. "/skip"
// keeps whatever the draft already holds, which makes edits cheap.
func (b *Bot) stepOffer(c tele.Context, conv *Convo) error {
	text := c.Text()
	skip := text == "/skip"
	d := conv.OfferDraft

	switch conv.State {
	case StateOfferDescription:
		if !skip {
			d.Description = text
		}
		conv.State = StateOfferPickupAddr
		return c.Send("📍 Pickup address:" + currentHint(d.PickupAddress))
	case StateOfferPickupAddr:
		if !skip {
			d.PickupAddress = text
		}
		conv.State = StateOfferDropoffAddr
		return c.Send("🎯 Dropoff address:" + currentHint(d.DropoffAddress))
	case StateOfferDropoffAddr:
		if !skip {
			d.DropoffAddress = text
		}
		conv.State = StateOfferDate
		return c.Send("🗓 Pickup date (YYYY-MM-DD):" + currentHint(d.PickupDate))
	case StateOfferDate:
		if !skip {
			d.PickupDate = text
		}
		conv.State = StateOfferTime
		return c.Send("⏰ Pickup time (HH:MM):" + currentHint(d.PickupTime))
	case StateOfferTime:
		if !skip {
			d.PickupTime = text
		}
		conv.State = StateOfferRep
		return c.Send("🧑‍💼 Company representative:" + currentHint(d.CompanyRepresentative))
	case StateOfferRep:
		if !skip {
			d.CompanyRepresentative = text
		}
		conv.State = StateOfferEmergency
		return c.Send("🚨 Emergency phone:" + currentHint(d.EmergencyPhone))
	case StateOfferEmergency:
		if !skip {
			d.EmergencyPhone = text
		}
		conv.State = StateOfferExtra
		return c.Send("➕ Additional service, or /skip:")
	case StateOfferExtra:
		if !skip {
			d.AdditionalService = &text
		}
		conv.State = StateIdle

		menu := &tele.ReplyMarkup{}
		menu.Inline(menu.Row(
			menu.Data("✅ Submit", "offer_ok"),
			menu.Data("❌ Discard", "offer_cancel"),
		))
		return c.Send(offerDraftSummary(d), menu, tele.ModeHTML)
	}
	return nil
}

func currentHint(v string) string {
	if v == "" {
		return ""
	}
	return " (/skip keeps: " + truncate(v, 60) + ")"
}

func (b *Bot) submitOffer(c tele.Context) error {
	ctx := context.Background()
	sess := b.openSession(c)
	if !b.requireRole(c, sess, models.RoleClient) {
		return nil
	}
	conv := b.convo(c)
	if conv.OfferDraft == nil {
		return c.Respond(&tele.CallbackResponse{Text: "Nothing to submit."})
	}
	draft := *conv.OfferDraft
	editID := conv.EditOfferID
	conv.OfferDraft = nil
	conv.EditOfferID = 0

	var err error
	if editID != 0 {
		_, err = b.API.Bind(sess).Offers().Update(ctx, editID, draft)
	} else {
		_, err = b.API.Bind(sess).Offers().Create(ctx, draft)
	}
	if err != nil {
		b.Log.Error("failed to submit offer", logger.Error(err))
		c.Respond(&tele.CallbackResponse{Text: "Submission failed."})
		return c.Send("❌ Could not submit the offer: " + err.Error())
	}

	c.Respond(&tele.CallbackResponse{})
	if editID != 0 {
		return c.Edit(fmt.Sprintf("✅ Offer #%d updated.", editID))
	}
	return c.Edit("✅ Offer posted! Drivers can see it now.")
}

func (b *Bot) discardOffer(c tele.Context) error {
	conv := b.convo(c)
	conv.OfferDraft = nil
	conv.EditOfferID = 0
	conv.State = StateIdle
	c.Respond(&tele.CallbackResponse{})
	return c.Edit("🗑 Offer discarded.")
}
