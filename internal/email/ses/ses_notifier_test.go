package ses_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volunteerhub/internal/config"
	"volunteerhub/internal/email/ses"
	"volunteerhub/internal/port"
)

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, in *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = in
	return &sesv2.SendEmailOutput{}, f.err
}

var emailCfg = &config.EmailConfig{
	FromAddress: "noreply@volunteerhub.local",
	FromName:    "VolunteerHub",
	SummaryTo:   "ops@example.org, lead@example.org",
}

func TestNotifyBatchSummary(t *testing.T) {
	fake := &fakeSES{}
	n := ses.NewSESNotifierWithClient(fake, emailCfg)

	err := n.NotifyBatchSummary(context.Background(), port.BatchSummary{
		EventName: "Beach <Cleanup>",
		Total:     3,
		Succeeded: 2,
		Failed:    1,
		Failures:  []string{"Row 2 (Sara): webhook returned 500 Internal Server Error"},
	})

	require.NoError(t, err)
	require.NotNil(t, fake.input)
	assert.Equal(t, "VolunteerHub <noreply@volunteerhub.local>", *fake.input.FromEmailAddress)
	assert.Equal(t, []string{"ops@example.org", "lead@example.org"}, fake.input.Destination.ToAddresses)
	msg := fake.input.Content.Simple
	assert.Equal(t, "Beach <Cleanup>: 2 of 3 rows sent", *msg.Subject.Data)
	assert.Contains(t, *msg.Body.Text.Data, "- Row 2 (Sara): webhook returned 500 Internal Server Error")
	assert.Contains(t, *msg.Body.Html.Data, "Beach &lt;Cleanup&gt;")
}

func TestNotifyBatchSummary_SendError(t *testing.T) {
	n := ses.NewSESNotifierWithClient(&fakeSES{err: errors.New("throttled")}, emailCfg)

	err := n.NotifyBatchSummary(context.Background(), port.BatchSummary{EventName: "x", Total: 2})

	assert.ErrorContains(t, err, "SES SendEmail: throttled")
}

func TestNewSESNotifier_RequiresRecipient(t *testing.T) {
	_, err := ses.NewSESNotifier(&config.EmailConfig{Region: "ap-southeast-1"})
	assert.Error(t, err)
}
