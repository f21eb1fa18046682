package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// MockMailer stands in for real SMTP delivery.
type MockMailer struct {
	WasCalled bool
	LastTo    string
	LastTitle string
}

func (m *MockMailer) SendAdFeaturedEmail(toEmail, adTitle string, featuredUntil time.Time) error {
	m.WasCalled = true
	m.LastTo = toEmail
	m.LastTitle = adTitle
	return nil
}

func TestSendAdFeaturedEmail_Mock(t *testing.T) {
	mock := &MockMailer{}
	err := mock.SendAdFeaturedEmail("seller@example.com", "Vintage bicycle", time.Now().Add(7*24*time.Hour))

	assert.NoError(t, err)
	assert.True(t, mock.WasCalled)
	assert.Equal(t, "seller@example.com", mock.LastTo)
	assert.Equal(t, "Vintage bicycle", mock.LastTitle)
}
