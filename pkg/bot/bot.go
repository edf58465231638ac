package bot

import (
	"context"
	"time"

	"flowrelay/config"
	"flowrelay/pkg/access"
	"flowrelay/pkg/api"
	"flowrelay/pkg/logger"
	"flowrelay/pkg/models"
	"flowrelay/pkg/session"

	tele "gopkg.in/telebot.v3"
)

type BotType string

const (
	BotTypeClient      BotType = "client"
	BotTypeDriverAdmin BotType = "driver_admin"
)

// Convo is the per-chat conversational state between updates: which
// input the bot is waiting for and the half-filled forms.
type Convo struct {
	State string

	LoginEmail string
	Signup     *models.SignupRequest

	OfferDraft  *models.OfferDraft
	EditOfferID int64

	Profile       *models.DriverProfile
	ProfileUpdate bool

	Approve *approvalAction

	ReportFilters models.ReportFilters
	ReportData    *models.TripsReport
}

type approvalAction struct {
	Kind         string // "user" or "driver"
	ID           int64
	Status       models.AccountStatus
	NotifyUserID int64
	NotifyRole   models.Role
}

const (
	StateIdle = "idle"

	StateLoginEmail    = "awaiting_login_email"
	StateLoginPassword = "awaiting_login_password"

	StateSignupEmail     = "awaiting_signup_email"
	StateSignupPassword  = "awaiting_signup_password"
	StateSignupCompany   = "awaiting_signup_company"
	StateSignupRep       = "awaiting_signup_representative"
	StateSignupPhone     = "awaiting_signup_phone"
	StateSignupAddress   = "awaiting_signup_address"
	StateSignupEmergency = "awaiting_signup_emergency"

	StateVerifyToken = "awaiting_verify_token"

	StateOfferDescription = "awaiting_offer_description"
	StateOfferPickupAddr  = "awaiting_offer_pickup_address"
	StateOfferDropoffAddr = "awaiting_offer_dropoff_address"
	StateOfferDate        = "awaiting_offer_date"
	StateOfferTime        = "awaiting_offer_time"
	StateOfferRep         = "awaiting_offer_representative"
	StateOfferEmergency   = "awaiting_offer_emergency"
	StateOfferExtra       = "awaiting_offer_extra"

	StateProfileFirstName       = "awaiting_profile_first_name"
	StateProfileLastName        = "awaiting_profile_last_name"
	StateProfilePhone           = "awaiting_profile_phone"
	StateProfileLicense         = "awaiting_profile_license"
	StateProfileLicenseExpiry   = "awaiting_profile_license_expiry"
	StateProfileInsurance       = "awaiting_profile_insurance"
	StateProfileInsuranceExpiry = "awaiting_profile_insurance_expiry"
	StateProfileVehicleMake     = "awaiting_profile_vehicle_make"
	StateProfileVehicleModel    = "awaiting_profile_vehicle_model"
	StateProfileVehicleYear     = "awaiting_profile_vehicle_year"
	StateProfileVehicleColor    = "awaiting_profile_vehicle_color"
	StateProfileVehiclePlate    = "awaiting_profile_vehicle_plate"

	StateApprovalNotes = "awaiting_approval_notes"

	StateReportStart = "awaiting_report_start"
	StateReportEnd   = "awaiting_report_end"
)

const (
	btnLogin    = "🔐 Login"
	btnSignup   = "📝 Sign Up"
	btnVerify   = "✉️ Verify Email"
	btnMainMenu = "🏠 Main Menu"
	btnLogout   = "🚪 Logout"

	btnNewOffer = "➕ New Offer"
	btnMyOffers = "📋 My Offers"
	btnAccount  = "👤 My Account"

	btnDriverDash = "📊 Dashboard"
	btnAvailable  = "🚚 Available Offers"
	btnDeliveries = "📦 My Deliveries"
	btnHistory    = "🕓 History"
	btnProfile    = "👤 My Profile"

	btnApprovals = "✅ Approvals"
	btnUsers     = "👥 Users"
	btnAllOffers = "📦 All Offers"
	btnReports   = "📈 Reports"
)

type Bot struct {
	Type     BotType
	Bot      *tele.Bot
	Log      logger.ILogger
	Cfg      *config.Config
	API      *api.Client
	Sessions *session.Manager
	Convos   map[int64]*Convo
	Peer     *Bot // link for cross-bot approval notifications
}

var messages = map[string]map[string]string{
	"en": {
		"welcome":         "👋 Welcome to Flow Relay!\nPost delivery offers, drive them, or manage the marketplace.",
		"welcome_staff":   "👋 Welcome to Flow Relay Staff!\nThis bot is for drivers and administrators.",
		"session_expired": "🔑 Your session has expired. Please log in again.",
		"no_entry":        "🚫 This bot is for drivers and administrators only.",
		"no_entry_client": "🚫 Client accounts live on the staff bot's sibling. Please use the client bot.",
		"logged_out":      "👋 You have been logged out.",
		"login_email":     "📧 Enter your email address:",
		"login_password":  "🔑 Enter your password:",
		"login_ok":        "✅ Logged in as %s",
		"login_failed":    "❌ Login failed: %s",
		"denial_pending":   "⏳ Your account is pending admin approval. You will be able to log in once approved.",
		"denial_rejected":  "❌ Your account was not approved. Please contact support for more information.",
		"denial_suspended": "🚷 Your account has been suspended. Please contact support for assistance.",
		"denial_verify":    "✉️ Please verify your email first, then log in again.",
		"signup_email":     "📧 Enter an email address for your account:",
		"signup_password":  "🔑 Choose a password:",
		"signup_company":   "🏢 Company name:",
		"signup_rep":       "🧑‍💼 Company representative:",
		"signup_phone":     "📞 Phone number:",
		"signup_address":   "📍 Address:",
		"signup_emergency": "🚨 Emergency phone:",
		"verify_token":     "✉️ Paste the verification token from your email:",
		"menu_client":      "👤 Client menu:",
		"menu_driver":      "🚖 Driver menu:",
		"menu_admin":       "🛠 Admin panel:",
		"failed_generic":   "❌ Something went wrong. Please try again.",
	},
}

func New(botType BotType, cfg *config.Config, sessions *session.Manager, apiClient *api.Client, log logger.ILogger) (*Bot, error) {
	token := cfg.ClientBotToken
	if botType == BotTypeDriverAdmin {
		token = cfg.StaffBotToken
	}

	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}
	bot := &Bot{
		Type:     botType,
		Bot:      b,
		Log:      log,
		Cfg:      cfg,
		API:      apiClient,
		Sessions: sessions,
		Convos:   make(map[int64]*Convo),
	}
	bot.registerHandlers()
	return bot, nil
}

func (b *Bot) Start() {
	b.Log.Info("🤖 bot started", logger.String("type", string(b.Type)))
	b.Bot.Start()
}

func (b *Bot) registerHandlers() {
	b.Bot.Handle("/start", b.handleStart)
	b.Bot.Handle(btnMainMenu, b.handleStart)
	b.Bot.Handle(btnLogin, b.handleLoginStart)
	b.Bot.Handle(btnSignup, b.handleSignupStart)
	b.Bot.Handle(btnVerify, b.handleVerifyStart)
	b.Bot.Handle(btnLogout, b.handleLogout)

	if b.Type == BotTypeClient {
		b.Bot.Handle(btnNewOffer, b.handleNewOffer)
		b.Bot.Handle(btnMyOffers, b.handleMyOffers)
		b.Bot.Handle(btnAccount, b.handleAccount)
	} else {
		b.Bot.Handle(btnDriverDash, b.handleDriverDashboard)
		b.Bot.Handle(btnAvailable, b.handleAvailableOffers)
		b.Bot.Handle(btnDeliveries, b.handleMyDeliveries)
		b.Bot.Handle(btnHistory, b.handleHistory)
		b.Bot.Handle(btnProfile, b.handleDriverProfile)
		b.Bot.Handle(btnApprovals, b.handleApprovals)
		b.Bot.Handle(btnUsers, b.handleAdminUsers)
		b.Bot.Handle(btnAllOffers, b.handleAdminOffers)
		b.Bot.Handle(btnReports, b.handleReports)
	}

	b.Bot.Handle(tele.OnCallback, b.handleCallback)
	b.Bot.Handle(tele.OnText, b.handleText)
}

// convo returns the chat's conversational state, creating it idle.
func (b *Bot) convo(c tele.Context) *Convo {
	id := c.Sender().ID
	conv, ok := b.Convos[id]
	if !ok {
		conv = &Convo{State: StateIdle}
		b.Convos[id] = conv
	}
	return conv
}

func (b *Bot) openSession(c tele.Context) *session.Session {
	return b.Sessions.Open(context.Background(), c.Sender().ID)
}

func (b *Bot) handleStart(c tele.Context) error {
	ctx := context.Background()
	sess := b.openSession(c)
	b.Convos[c.Sender().ID] = &Convo{State: StateIdle}

	gate := access.New(sess)
	if !gate.IsAuthenticated() {
		return b.showEntry(c)
	}

	// Reconstruct the identity from the backend on every entry; a dead
	// token destroys the session.
	user, err := b.API.Bind(sess).Auth().CurrentUser(ctx)
	if err != nil {
		if api.IsUnauthorized(err) {
			sess.Clear(ctx)
			c.Send(messages["en"]["session_expired"])
			return b.showEntry(c)
		}
		b.Log.Error("current-user refresh failed", logger.Error(err))
		user = sess.User()
		if user == nil {
			return b.showEntry(c)
		}
	} else {
		if err := sess.SetUser(ctx, user); err != nil {
			b.Log.Error("failed to cache user snapshot", logger.Error(err))
		}
	}

	if b.Type == BotTypeDriverAdmin && user.Role == models.RoleClient {
		return c.Send(messages["en"]["no_entry"])
	}
	if b.Type == BotTypeClient && user.Role != models.RoleClient {
		return c.Send(messages["en"]["no_entry_client"])
	}

	return b.showMenu(c, user)
}

func (b *Bot) showEntry(c tele.Context) error {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(
		menu.Row(menu.Text(btnLogin), menu.Text(btnSignup)),
		menu.Row(menu.Text(btnVerify)),
	)
	welcome := messages["en"]["welcome"]
	if b.Type == BotTypeDriverAdmin {
		welcome = messages["en"]["welcome_staff"]
	}
	return c.Send(welcome, menu)
}

func (b *Bot) showMenu(c tele.Context, user *models.User) error {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	if b.Type == BotTypeClient {
		menu.Reply(
			menu.Row(menu.Text(btnNewOffer), menu.Text(btnMyOffers)),
			menu.Row(menu.Text(btnAccount)),
			menu.Row(menu.Text(btnLogout)),
		)
		return c.Send(messages["en"]["menu_client"], menu)
	}

	if user.Role == models.RoleAdmin {
		menu.Reply(
			menu.Row(menu.Text(btnApprovals), menu.Text(btnUsers)),
			menu.Row(menu.Text(btnAllOffers), menu.Text(btnReports)),
			menu.Row(menu.Text(btnLogout)),
		)
		return c.Send(messages["en"]["menu_admin"], menu)
	}

	menu.Reply(
		menu.Row(menu.Text(btnDriverDash), menu.Text(btnAvailable)),
		menu.Row(menu.Text(btnDeliveries), menu.Text(btnHistory)),
		menu.Row(menu.Text(btnProfile), menu.Text(btnLogout)),
	)
	return c.Send(messages["en"]["menu_driver"], menu)
}

// navigate performs the move a gate Decision asked for.
func (b *Bot) navigate(c tele.Context, route access.Route) error {
	switch route {
	case access.RouteClientDashboard, access.RouteDriverDashboard, access.RouteAdminDashboard:
		user := b.openSession(c).User()
		if user != nil {
			return b.showMenu(c, user)
		}
		return b.showEntry(c)
	default:
		return b.showEntry(c)
	}
}

// requireRole runs the gate for a protected screen and, on denial,
// sends the single notice and performs the redirect.
func (b *Bot) requireRole(c tele.Context, sess *session.Session, role models.Role) bool {
	d := access.New(sess).RequireRole(role)
	if d.Allowed {
		return true
	}
	if d.Notice != "" {
		c.Send(d.Notice)
	}
	b.navigate(c, d.Redirect)
	return false
}

func (b *Bot) handleLogout(c tele.Context) error {
	ctx := context.Background()
	sess := b.openSession(c)
	if err := sess.Logout(ctx); err != nil {
		b.Log.Error("logout failed", logger.Error(err))
		return c.Send(messages["en"]["failed_generic"])
	}
	b.Convos[c.Sender().ID] = &Convo{State: StateIdle}
	c.Send(messages["en"]["logged_out"])
	return b.showEntry(c)
}

// notifyUser delivers an approval notice to every chat that holds a
// session for the account, through whichever bot serves its role.
func (b *Bot) notifyUser(userID int64, role models.Role, text string) {
	target := b
	wantClient := role == models.RoleClient
	if wantClient != (b.Type == BotTypeClient) && b.Peer != nil {
		target = b.Peer
	}

	chats, err := b.Sessions.FindChats(context.Background(), userID)
	if err != nil {
		b.Log.Error("failed to resolve chats for notification", logger.Error(err), logger.Int64("user_id", userID))
		return
	}
	for _, chat := range chats {
		if _, err := target.Bot.Send(&tele.User{ID: chat}, text); err != nil {
			b.Log.Error("failed to notify user", logger.Error(err), logger.Int64("chat_id", chat))
		}
	}
}
