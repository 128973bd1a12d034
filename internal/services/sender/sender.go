// Package sender отправляет владельцу студии письма о новых заявках.
package sender

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/studio-portfolio/internal/lib/sl"
	"github.com/magabrotheeeer/studio-portfolio/internal/lib/smtp"
	"github.com/magabrotheeeer/studio-portfolio/internal/models"
)

// ErrMalformedMessage - тело сообщения не разбирается, повторная попытка не поможет.
var ErrMalformedMessage = errors.New("malformed contact notification")

type Service struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(log *slog.Logger, transport smtp.TransportInterface) *Service {
	return &Service{
		transport: transport,
		log:       log,
	}
}

// SendContactNotification разбирает уведомление из очереди и пересылает заявку на почту студии.
func (s *Service) SendContactNotification(body []byte) error {
	const op = "sender.SendContactNotification"

	var message models.ContactNotification
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("%s: %w: %w", op, ErrMalformedMessage, err)
	}
	if message.Email == "" || message.ContactID == 0 {
		s.log.Error("notification without contact data", slog.String("message_id", message.MessageID))
		return fmt.Errorf("%s: %w: missing contact id or email", op, ErrMalformedMessage)
	}

	subject := "Новая заявка с сайта: " + headerValue(message.Name)
	bodyText := fmt.Sprintf("Заявка #%d от %s\n\nИмя: %s\nEmail: %s\n\n%s\n",
		message.ContactID, message.CreatedAt, message.Name, message.Email, message.Message)

	if err := s.sendEmail([]string{s.transport.GetNotifyTo()}, headerValue(message.Email), subject, bodyText); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("contact notification sent",
		slog.String("message_id", message.MessageID),
		slog.Int("contact_id", message.ContactID))
	return nil
}

// headerValue убирает переводы строк, чтобы данные формы не добавили лишних заголовков.
func headerValue(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

func (s *Service) sendEmail(to []string, replyTo, subject, bodyText string) error {
	from := s.transport.GetSMTPUser()
	headers := []string{
		"From: " + from,
		"To: " + strings.Join(to, ", "),
		"Subject: " + subject,
	}
	if replyTo != "" {
		headers = append(headers, "Reply-To: "+replyTo)
	}
	msg := strings.Join(append(headers,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	), "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			s.log.Debug("failed to close SMTP client", sl.Err(err))
		}
	}()

	if err := client.Mail(from); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", from), sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", slog.Any("to", to))
	return nil
}
