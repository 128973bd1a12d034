package sender

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/studio-portfolio/internal/lib/smtp"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) GetSMTPUser() string {
	return m.Called().String(0)
}

func (m *MockTransport) GetNotifyTo() string {
	return m.Called().String(0)
}

type MockSMTPClient struct {
	mock.Mock
}

func (m *MockSMTPClient) Mail(from string) error {
	return m.Called(from).Error(0)
}

func (m *MockSMTPClient) Rcpt(to string) error {
	return m.Called(to).Error(0)
}

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *MockSMTPClient) Close() error {
	return m.Called().Error(0)
}

func (m *MockSMTPClient) Quit() error {
	return m.Called().Error(0)
}

// bufferWriter запоминает текст письма.
type bufferWriter struct {
	bytes.Buffer
	closed bool
}

func (w *bufferWriter) Close() error {
	w.closed = true
	return nil
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

const validBody = `{"message_id":"7f0c","contact_id":3,"name":"Anna","email":"anna@example.com","message":"Need a website","created_at":"2024-03-15T09:30:00Z"}`

func TestService_SendContactNotification(t *testing.T) {
	transport := new(MockTransport)
	client := new(MockSMTPClient)
	writer := &bufferWriter{}

	transport.On("GetSMTPUser").Return("studio@example.com")
	transport.On("GetNotifyTo").Return("owner@example.com")
	transport.On("Connect").Return(client, nil).Once()
	client.On("Mail", "studio@example.com").Return(nil).Once()
	client.On("Rcpt", "owner@example.com").Return(nil).Once()
	client.On("Data").Return(writer, nil).Once()
	client.On("Quit").Return(nil).Once()
	client.On("Close").Return(nil).Once()

	err := New(newNoopLogger(), transport).SendContactNotification([]byte(validBody))
	require.NoError(t, err)

	msg := writer.String()
	assert.True(t, writer.closed)
	assert.Contains(t, msg, "From: studio@example.com\r\n")
	assert.Contains(t, msg, "To: owner@example.com\r\n")
	assert.Contains(t, msg, "Reply-To: anna@example.com\r\n")
	assert.Contains(t, msg, "Subject: Новая заявка с сайта: Anna\r\n")
	assert.Contains(t, msg, "Заявка #3 от 2024-03-15T09:30:00Z")
	assert.Contains(t, msg, "Need a website")

	transport.AssertExpectations(t)
	client.AssertExpectations(t)
}

func TestService_SendContactNotification_StripsHeaderInjection(t *testing.T) {
	transport := new(MockTransport)
	client := new(MockSMTPClient)
	writer := &bufferWriter{}

	transport.On("GetSMTPUser").Return("studio@example.com")
	transport.On("GetNotifyTo").Return("owner@example.com")
	transport.On("Connect").Return(client, nil).Once()
	client.On("Mail", mock.Anything).Return(nil)
	client.On("Rcpt", mock.Anything).Return(nil)
	client.On("Data").Return(writer, nil)
	client.On("Quit").Return(nil)
	client.On("Close").Return(nil)

	body := `{"contact_id":4,"name":"Eve\r\nBcc: victim@example.com","email":"eve@example.com","message":"hi"}`
	require.NoError(t, New(newNoopLogger(), transport).SendContactNotification([]byte(body)))

	headers, _, ok := strings.Cut(writer.String(), "\r\n\r\n")
	require.True(t, ok)
	assert.NotContains(t, headers, "\r\nBcc:")
	assert.Contains(t, headers, "Subject: Новая заявка с сайта: Eve  Bcc: victim@example.com")
}

func TestService_SendContactNotification_Errors(t *testing.T) {
	tests := []struct {
		name         string
		body         []byte
		setupMocks   func(*MockTransport)
		errorMessage string
		malformed    bool
	}{
		{
			name:         "invalid JSON",
			body:         []byte(`{`),
			setupMocks:   func(_ *MockTransport) {},
			errorMessage: "malformed contact notification",
			malformed:    true,
		},
		{
			name:         "missing email",
			body:         []byte(`{"contact_id":3,"name":"Anna"}`),
			setupMocks:   func(_ *MockTransport) {},
			errorMessage: "missing contact id or email",
			malformed:    true,
		},
		{
			name: "SMTP connection error",
			body: []byte(validBody),
			setupMocks: func(tr *MockTransport) {
				tr.On("GetSMTPUser").Return("studio@example.com")
				tr.On("GetNotifyTo").Return("owner@example.com")
				tr.On("Connect").Return(nil, errors.New("connection error")).Once()
			},
			errorMessage: "connection error",
		},
		{
			name: "recipient rejected",
			body: []byte(validBody),
			setupMocks: func(tr *MockTransport) {
				client := new(MockSMTPClient)
				tr.On("GetSMTPUser").Return("studio@example.com")
				tr.On("GetNotifyTo").Return("owner@example.com")
				tr.On("Connect").Return(client, nil).Once()
				client.On("Mail", "studio@example.com").Return(nil).Once()
				client.On("Rcpt", "owner@example.com").Return(errors.New("550 mailbox unavailable")).Once()
				client.On("Close").Return(nil).Once()
			},
			errorMessage: "550 mailbox unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := new(MockTransport)
			tt.setupMocks(transport)

			err := New(newNoopLogger(), transport).SendContactNotification(tt.body)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMessage)
			assert.Contains(t, err.Error(), "sender.SendContactNotification")
			assert.Equal(t, tt.malformed, errors.Is(err, ErrMalformedMessage))
			transport.AssertExpectations(t)
		})
	}
}
