// Package outreach delivers generated messages server-side: email through
// SES, SMS through SNS. It replaces the client-side mailto/tel launchers for
// deployments that want delivery tracked centrally.
package outreach

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"

	apperrors "leadflow/internal/common/errors"
	"leadflow/internal/common/logger"
)

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// Request is one delivery of a generated outreach message.
type Request struct {
	Channel string `json:"channel"`
	To      string `json:"to"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body"`
}

// Result reports the provider-assigned message id.
type Result struct {
	Channel   string `json:"channel"`
	MessageID string `json:"messageId"`
}

// EmailSender is the slice of the SES client the service needs.
type EmailSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

// SMSSender is the slice of the SNS client the service needs.
type SMSSender interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

type Service struct {
	email     EmailSender
	sms       SMSSender
	fromEmail string
	senderID  string
	logger    logger.Logger
}

// NewService wires whichever senders are configured; a nil sender disables
// that channel.
func NewService(email EmailSender, sms SMSSender, fromEmail, senderID string, log logger.Logger) *Service {
	return &Service{
		email:     email,
		sms:       sms,
		fromEmail: fromEmail,
		senderID:  senderID,
		logger: log.With(map[string]interface{}{
			"component": "outreach",
		}),
	}
}

// Enabled reports whether any delivery channel is configured.
func (s *Service) Enabled() bool {
	return s != nil && (s.email != nil || s.sms != nil)
}

func (s *Service) Send(ctx context.Context, req *Request) (*Result, error) {
	if strings.TrimSpace(req.To) == "" {
		return nil, apperrors.NewBadRequestError("to is required")
	}
	if strings.TrimSpace(req.Body) == "" {
		return nil, apperrors.NewBadRequestError("body is required")
	}

	switch req.Channel {
	case ChannelEmail:
		return s.sendEmail(ctx, req)
	case ChannelSMS:
		return s.sendSMS(ctx, req)
	default:
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("channel must be %q or %q", ChannelEmail, ChannelSMS))
	}
}

func (s *Service) sendEmail(ctx context.Context, req *Request) (*Result, error) {
	if s.email == nil {
		return nil, apperrors.NewConfigError("email delivery is not configured")
	}
	if strings.TrimSpace(req.Subject) == "" {
		return nil, apperrors.NewBadRequestError("subject is required for email")
	}

	out, err := s.email.SendEmail(ctx, &ses.SendEmailInput{
		Source: &s.fromEmail,
		Destination: &sestypes.Destination{
			ToAddresses: []string{req.To},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: &req.Subject},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: &req.Body},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("send email: %w", err)
	}

	s.logger.Info("outreach email sent", map[string]interface{}{
		"to": req.To,
	})

	result := &Result{Channel: ChannelEmail}
	if out.MessageId != nil {
		result.MessageID = *out.MessageId
	}
	return result, nil
}

func (s *Service) sendSMS(ctx context.Context, req *Request) (*Result, error) {
	if s.sms == nil {
		return nil, apperrors.NewConfigError("sms delivery is not configured")
	}

	input := &sns.PublishInput{
		PhoneNumber: &req.To,
		Message:     &req.Body,
	}
	if s.senderID != "" {
		input.MessageAttributes = map[string]snstypes.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {
				DataType:    strPtr("String"),
				StringValue: &s.senderID,
			},
		}
	}

	out, err := s.sms.Publish(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("send sms: %w", err)
	}

	s.logger.Info("outreach sms sent", map[string]interface{}{
		"to": req.To,
	})

	result := &Result{Channel: ChannelSMS}
	if out.MessageId != nil {
		result.MessageID = *out.MessageId
	}
	return result, nil
}

func strPtr(s string) *string { return &s }
