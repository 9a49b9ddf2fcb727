package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"github.com/Ananth-NQI/govjobs-backend/internal/config"
	"github.com/Ananth-NQI/govjobs-backend/internal/utils"
)

// OTPSender delivers a one-time code to a phone.
type OTPSender interface {
	SendOTP(ctx context.Context, phone, code string) error
}

// Notifier sends a free-form text message to a phone.
type Notifier interface {
	SendSMS(ctx context.Context, phone, body string) error
}

type TwilioSender struct {
	client *twilio.RestClient
	from   string
	logger *zap.Logger
}

// NewTwilioSender creates a new Twilio SMS sender
func NewTwilioSender(cfg config.TwilioConfig, logger *zap.Logger) (*TwilioSender, error) {
	if !cfg.Configured() {
		return nil, fmt.Errorf("missing Twilio credentials in environment variables")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return &TwilioSender{client: client, from: cfg.From, logger: logger}, nil
}

// SendSMS sends a plain SMS to an Indian mobile number.
func (t *TwilioSender) SendSMS(ctx context.Context, phone, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(t.from)
	params.SetTo(utils.E164India(phone))
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		t.logger.Warn("sms send failed", zap.String("phone", phone), zap.Error(err))
		return err
	}
	if resp.ErrorCode != nil && *resp.ErrorCode != 0 {
		msg := ""
		if resp.ErrorMessage != nil {
			msg = *resp.ErrorMessage
		}
		return fmt.Errorf("twilio error %d: %s", *resp.ErrorCode, msg)
	}

	sid := ""
	if resp.Sid != nil {
		sid = *resp.Sid
	}
	t.logger.Info("sms sent", zap.String("phone", phone), zap.String("sid", sid))
	return nil
}

func (t *TwilioSender) SendOTP(ctx context.Context, phone, code string) error {
	return t.SendSMS(ctx, phone, otpMessage(code))
}

func otpMessage(code string) string {
	return fmt.Sprintf("Your verification code is %s. Do not share it with anyone.", code)
}

// FanoutSender hands a code to every sender and succeeds when at least one did.
type FanoutSender []OTPSender

func (f FanoutSender) SendOTP(ctx context.Context, phone, code string) error {
	if len(f) == 0 {
		return errors.New("no otp senders configured")
	}
	var errs []error
	for _, s := range f {
		if err := s.SendOTP(ctx, phone, code); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == len(f) {
		return errors.Join(errs...)
	}
	return nil
}
