package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RahulGalipelli/AdminApp/pkg/validator"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, "razorpay", s.PaymentGateway.Provider)
	assert.Equal(t, "shiprocket", s.CourierAPI.Provider)
	assert.True(t, s.PaymentGateway.Enabled)
	assert.True(t, s.CourierAPI.Enabled)
	assert.True(t, s.PushNotifications.Enabled)
	assert.NoError(t, validator.Validate(s))
}

func TestSettings_ProviderValidation(t *testing.T) {
	s := DefaultSettings()
	s.CourierAPI.Provider = "pigeon"

	err := validator.Validate(s)
	require.Error(t, err)

	var valErr *validator.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields(), "courier_api.provider")
}

func TestSettings_RedactAndKeepSecrets(t *testing.T) {
	s := DefaultSettings()
	s.PaymentGateway.APIKey = "key"
	s.PaymentGateway.APISecret = "pay-secret"
	s.PushNotifications.FCMServerKey = "fcm"

	r := s.Redacted()
	assert.Equal(t, "key", r.PaymentGateway.APIKey)
	assert.Equal(t, "********", r.PaymentGateway.APISecret)
	assert.Equal(t, "", r.CourierAPI.APISecret)
	assert.Equal(t, "********", r.PushNotifications.FCMServerKey)

	r.CourierAPI.APISecret = "new-courier"
	merged := r.KeepSecrets(s)
	assert.Equal(t, "pay-secret", merged.PaymentGateway.APISecret)
	assert.Equal(t, "new-courier", merged.CourierAPI.APISecret)
	assert.Equal(t, "fcm", merged.PushNotifications.FCMServerKey)
}

func TestNewDashboardView(t *testing.T) {
	v := NewDashboardView(DashboardStats{TotalUploads: 4, TopDiseases: []DiseaseCount{{"Rust", 3}, {"Wilt", 1}}})
	assert.Equal(t, 2, v.DiseaseTypes)
	assert.Equal(t, 4, v.TotalUploads)

	empty := NewDashboardView(DashboardStats{})
	assert.Zero(t, empty.DiseaseTypes)
	assert.NotNil(t, empty.TopDiseases)
}

func TestSnapshot_AdminID(t *testing.T) {
	assert.Equal(t, "", Snapshot{}.AdminID())
	assert.Equal(t, "1", Snapshot{User: &Identity{ID: "1"}, Authenticated: true}.AdminID())
}

func TestUpload_HasResult(t *testing.T) {
	assert.False(t, Upload{}.HasResult())
	assert.False(t, Upload{Result: []byte("null")}.HasResult())
	assert.True(t, Upload{Result: []byte(`{"disease":"Rust"}`)}.HasResult())
}
