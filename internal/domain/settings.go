package domain

// Inline messages shown after a settings save.
const (
	SettingsSavedMessage  = "Settings saved successfully!"
	SettingsFailedMessage = "Failed to save settings"
)

// PushSettings configures push notifications.
type PushSettings struct {
	FCMServerKey string `json:"fcm_server_key"`
	Enabled      bool   `json:"enabled"`
}

// Settings are the platform integrations managed from the console.
type Settings struct {
	PaymentGateway    PaymentGatewaySettings `json:"payment_gateway"`
	CourierAPI        CourierSettings        `json:"courier_api"`
	PushNotifications PushSettings           `json:"push_notifications"`
}

// PaymentGatewaySettings restricts the provider to supported gateways.
type PaymentGatewaySettings struct {
	Provider  string `json:"provider" validate:"required,oneof=razorpay stripe paypal"`
	APIKey    string `json:"api_key"`
	APISecret string `json:"api_secret"`
	Enabled   bool   `json:"enabled"`
}

// CourierSettings restricts the provider to supported couriers.
type CourierSettings struct {
	Provider  string `json:"provider" validate:"required,oneof=shiprocket delhivery fedex"`
	APIKey    string `json:"api_key"`
	APISecret string `json:"api_secret"`
	Enabled   bool   `json:"enabled"`
}

// DefaultSettings is what the editor shows before anything was saved.
func DefaultSettings() Settings {
	return Settings{
		PaymentGateway:    PaymentGatewaySettings{Provider: "razorpay", Enabled: true},
		CourierAPI:        CourierSettings{Provider: "shiprocket", Enabled: true},
		PushNotifications: PushSettings{Enabled: true},
	}
}

// Redacted returns a copy with secrets masked, for logs and read-back.
func (s Settings) Redacted() Settings {
	s.PaymentGateway.APISecret = mask(s.PaymentGateway.APISecret)
	s.CourierAPI.APISecret = mask(s.CourierAPI.APISecret)
	s.PushNotifications.FCMServerKey = mask(s.PushNotifications.FCMServerKey)
	return s
}

// KeepSecrets replaces masked secrets in s with the values from prev, so an
// editor that read back redacted settings does not overwrite real secrets.
func (s Settings) KeepSecrets(prev Settings) Settings {
	if s.PaymentGateway.APISecret == secretMask {
		s.PaymentGateway.APISecret = prev.PaymentGateway.APISecret
	}
	if s.CourierAPI.APISecret == secretMask {
		s.CourierAPI.APISecret = prev.CourierAPI.APISecret
	}
	if s.PushNotifications.FCMServerKey == secretMask {
		s.PushNotifications.FCMServerKey = prev.PushNotifications.FCMServerKey
	}
	return s
}

const secretMask = "********"

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return secretMask
}

// SettingsView is the settings page model.
type SettingsView struct {
	Settings Settings `json:"settings"`
	Message  string   `json:"message,omitempty"`
}
