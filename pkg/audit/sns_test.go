package audit

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

type fakeSNSClient struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNSClient) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-123")}, nil
}

func TestSNSSinkSendSuccess(t *testing.T) {
	client := &fakeSNSClient{}
	sink := &snsSink{
		id:       "topic",
		typ:      TypeSNS,
		topicARN: "arn:aws:sns:::audit",
		client:   client,
		log:      noopLogger{},
	}

	err := sink.Send(context.Background(), NewEntry("GET", "http://cp/v2.0/networks", 0, OutcomeConnectionFailed, "req-abc", 0))
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if client.input == nil {
		t.Fatalf("client was not called")
	}
	if got := aws.ToString(client.input.TopicArn); got != "arn:aws:sns:::audit" {
		t.Fatalf("TopicArn = %s", got)
	}
	attr, ok := client.input.MessageAttributes["outcome"]
	if !ok || attr.StringValue == nil || aws.ToString(attr.StringValue) != OutcomeConnectionFailed {
		t.Fatalf("outcome attribute missing or wrong: %#v", attr)
	}
	if client.input.Message == nil || !strings.Contains(aws.ToString(client.input.Message), `"outcome":"connection_failed"`) {
		t.Fatalf("Message missing outcome: %s", aws.ToString(client.input.Message))
	}
}

func TestSNSSinkSendError(t *testing.T) {
	client := &fakeSNSClient{err: errors.New("boom")}
	sink := &snsSink{
		id:       "topic",
		typ:      TypeSNS,
		topicARN: "arn:aws:sns:::audit",
		client:   client,
		log:      noopLogger{},
	}

	err := sink.Send(context.Background(), Entry{Outcome: OutcomeOK})
	if err == nil {
		t.Fatalf("expected error from Send")
	}
}
