package bot

import (
	"context"
	"fmt"

	"flowrelay/pkg/api"
	"flowrelay/pkg/logger"
	"flowrelay/pkg/models"

	tele "gopkg.in/telebot.v3"
)

func (b *Bot) handleLoginStart(c tele.Context) error {
	conv := b.convo(c)
	conv.State = StateLoginEmail
	conv.LoginEmail = ""
	return c.Send(messages["en"]["login_email"])
}

func (b *Bot) stepLoginEmail(c tele.Context, conv *Convo) error {
	conv.LoginEmail = c.Text()
	conv.State = StateLoginPassword
	return c.Send(messages["en"]["login_password"])
}

func (b *Bot) stepLoginPassword(c tele.Context, conv *Convo) error {
	ctx := context.Background()
	conv.State = StateIdle

	sess := b.openSession(c)
	user, err := sess.Login(ctx, conv.LoginEmail, c.Text())
	if err != nil {
		return c.Send(b.loginFailureMessage(err))
	}

	if b.Type == BotTypeDriverAdmin && user.Role == models.RoleClient {
		sess.Clear(ctx)
		return c.Send(messages["en"]["no_entry"])
	}
	if b.Type == BotTypeClient && user.Role != models.RoleClient {
		sess.Clear(ctx)
		return c.Send(messages["en"]["no_entry_client"])
	}

	c.Send(fmt.Sprintf(messages["en"]["login_ok"], user.Email))
	return b.showMenu(c, user)
}

// loginFailureMessage picks a distinct, actionable message for each
// denial reason; unclassified failures surface the backend's own text.
func (b *Bot) loginFailureMessage(err error) string {
	switch api.Denial(err) {
	case api.ReasonPendingApproval:
		return messages["en"]["denial_pending"]
	case api.ReasonAccountRejected:
		return messages["en"]["denial_rejected"]
	case api.ReasonAccountSuspended:
		return messages["en"]["denial_suspended"]
	case api.ReasonEmailNotVerified:
		return messages["en"]["denial_verify"]
	}
	return fmt.Sprintf(messages["en"]["login_failed"], err.Error())
}

func (b *Bot) handleSignupStart(c tele.Context) error {
	conv := b.convo(c)
	role := models.RoleClient
	if b.Type == BotTypeDriverAdmin {
		role = models.RoleDriver
	}
	conv.Signup = &models.SignupRequest{Role: role}
	conv.State = StateSignupEmail
	return c.Send(messages["en"]["signup_email"])
}

func (b *Bot) stepSignup(c tele.Context, conv *Convo) error {
	text := c.Text()
	switch conv.State {
	case StateSignupEmail:
		conv.Signup.Email = text
		conv.State = StateSignupPassword
		return c.Send(messages["en"]["signup_password"])
	case StateSignupPassword:
		conv.Signup.Password = text
		if conv.Signup.Role == models.RoleDriver {
			// Drivers fill company details into their profile later.
			conv.State = StateSignupPhone
			return c.Send(messages["en"]["signup_phone"])
		}
		conv.State = StateSignupCompany
		return c.Send(messages["en"]["signup_company"])
	case StateSignupCompany:
		conv.Signup.CompanyName = text
		conv.State = StateSignupRep
		return c.Send(messages["en"]["signup_rep"])
	case StateSignupRep:
		conv.Signup.CompanyRepresentative = text
		conv.State = StateSignupPhone
		return c.Send(messages["en"]["signup_phone"])
	case StateSignupPhone:
		conv.Signup.PhoneNumber = text
		conv.State = StateSignupAddress
		return c.Send(messages["en"]["signup_address"])
	case StateSignupAddress:
		conv.Signup.Address = text
		conv.State = StateSignupEmergency
		return c.Send(messages["en"]["signup_emergency"])
	case StateSignupEmergency:
		conv.Signup.EmergencyPhone = text
		return b.finishSignup(c, conv)
	}
	return nil
}

func (b *Bot) finishSignup(c tele.Context, conv *Convo) error {
	ctx := context.Background()
	req := conv.Signup
	conv.State = StateIdle
	conv.Signup = nil

	if _, err := b.API.Bind(nil).Auth().Signup(ctx, *req); err != nil {
		b.Log.Error("signup failed", logger.Error(err))
		return c.Send("❌ Sign up failed: " + err.Error())
	}
	return c.Send("✅ Account created!\n\n" +
		"✉️ Check your email for a verification token, then use " + btnVerify + ".\n" +
		"⏳ An administrator will review your account before you can work with offers.")
}

func (b *Bot) handleVerifyStart(c tele.Context) error {
	conv := b.convo(c)
	conv.State = StateVerifyToken
	return c.Send(messages["en"]["verify_token"])
}

func (b *Bot) stepVerifyToken(c tele.Context, conv *Convo) error {
	ctx := context.Background()
	conv.State = StateIdle

	if _, err := b.API.Bind(nil).Auth().VerifyEmail(ctx, c.Text()); err != nil {
		return c.Send("❌ Verification failed: " + err.Error())
	}
	return c.Send("✅ Email verified! You can log in now with " + btnLogin + ".")
}
