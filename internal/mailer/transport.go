package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	settingsmodels "email_marketing/internal/api/settings/models"
	"email_marketing/internal/common"
)

// Message một email cần gửi, nội dung đã render xong
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Channel một kết nối SMTP đang mở, dùng tuần tự trong một batch
type Channel interface {
	Send(msg Message) error
	From() string
	Close() error
}

// ChannelProvider mở kênh gửi mail. Mỗi campaign trong một pass mở kênh
// riêng để pacing của campaign này không giữ kết nối của campaign khác.
type ChannelProvider interface {
	Acquire(ctx context.Context) (Channel, error)
}

// SettingSource cung cấp cấu hình SMTP hiện hành
type SettingSource interface {
	GetCurrent(ctx context.Context) (settingsmodels.SmtpSetting, error)
}

// SmtpChannelProvider mở kênh SMTP thật qua gomail với credentials lấy từ DB
type SmtpChannelProvider struct {
	settings SettingSource
}

// NewSmtpChannelProvider tạo mới SmtpChannelProvider
func NewSmtpChannelProvider(settings SettingSource) *SmtpChannelProvider {
	return &SmtpChannelProvider{settings: settings}
}

// Acquire lấy cấu hình rồi dial SMTP server. Thiếu cấu hình trả về
// ErrSmtpNotConfigured; dial thất bại trả về ErrSmtpConnect.
func (p *SmtpChannelProvider) Acquire(ctx context.Context) (Channel, error) {
	setting, err := p.settings.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}
	host := setting.Host
	if host == "" {
		host = settingsmodels.DefaultGmailHost
	}
	port := setting.Port
	if port == 0 {
		port = settingsmodels.DefaultGmailPort
	}
	dialer := gomail.NewDialer(host, port, setting.SenderEmail, setting.Password)
	sendCloser, err := dialer.Dial()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSmtpConnect, err)
	}
	return &smtpChannel{sender: sendCloser, from: setting.SenderEmail}, nil
}

type smtpChannel struct {
	sender gomail.SendCloser
	from   string
}

func (c *smtpChannel) Send(msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", c.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)
	if err := gomail.Send(c.sender, m); err != nil {
		return fmt.Errorf("%w: %v", common.ErrSmtpDelivery, err)
	}
	return nil
}

func (c *smtpChannel) From() string {
	return c.from
}

func (c *smtpChannel) Close() error {
	return c.sender.Close()
}
