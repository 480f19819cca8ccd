package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/sirupsen/logrus"

	"org-calendar-api/internal/model"
)

// Publisher is the part of the SNS client SNSSender needs.
type Publisher interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSSender publishes each message as JSON to one topic. Mobile push
// fan-out is configured on the topic's subscriptions.
type SNSSender struct {
	client   Publisher
	topicARN string
}

func NewSNSSender(client Publisher, topicARN string) *SNSSender {
	return &SNSSender{client: client, topicARN: topicARN}
}

func (s *SNSSender) Send(ctx context.Context, m Message) error {
	body, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("error marshalling notification %w", err)
	}
	subject := m.Title
	if len(subject) > 100 {
		subject = subject[:100]
	}
	_, err = s.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(s.topicARN),
		Message:  aws.String(string(body)),
		Subject:  aws.String(subject),
	})
	if err != nil {
		return fmt.Errorf("error publishing to sns %w", err)
	}
	return nil
}

// Recorder stores per-recipient notification rows.
type Recorder interface {
	InsertNotifications(ctx context.Context, recipients []string, n model.Notification) (int64, error)
}

// RecordSender keeps an in-app copy of every message.
type RecordSender struct {
	rec Recorder
}

func NewRecordSender(rec Recorder) *RecordSender {
	return &RecordSender{rec: rec}
}

func (s *RecordSender) Send(ctx context.Context, m Message) error {
	_, err := s.rec.InsertNotifications(ctx, m.Recipients, model.Notification{
		Title:     m.Title,
		Message:   m.Message,
		Type:      m.Type,
		RelatedID: m.RelatedID,
	})
	if err != nil {
		return fmt.Errorf("error recording notification %w", err)
	}
	return nil
}

// LogSender only logs. It stands in for push delivery when no topic is set.
type LogSender struct {
	Log *logrus.Entry
}

func (s LogSender) Send(_ context.Context, m Message) error {
	s.Log.WithFields(logrus.Fields{"title": m.Title, "type": m.Type, "recipients": m.Recipients}).
		Info("notification")
	return nil
}

// Chain sends through every sender in order, even after a failure.
type Chain []Sender

func (c Chain) Send(ctx context.Context, m Message) error {
	var errs []error
	for _, s := range c {
		if err := s.Send(ctx, m); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
