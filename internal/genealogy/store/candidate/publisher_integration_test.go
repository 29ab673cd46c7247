//go:build integration

package candidate_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"kinlead/internal/genealogy/models"
	"kinlead/internal/genealogy/store/candidate"
	"kinlead/internal/platform/kafka"
	id "kinlead/pkg/domain"
	"kinlead/pkg/testutil"
	"kinlead/pkg/testutil/containers"
)

func TestKafkaPublisherAgainstRedpanda(t *testing.T) {
	broker := containers.GetManager().GetRedpanda(t).Broker
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	const topic = "kinlead.match-candidates.it"
	client, err := kafka.NewClient(kafka.Config{Brokers: []string{broker}, ReviewTopic: topic})
	require.NoError(t, err)
	defer client.Close()

	testutil.Given(t, "a review topic", func(t *testing.T) {
		require.NoError(t, kafka.EnsureTopic(ctx, client, topic, 1, 1))
		require.NoError(t, kafka.EnsureTopic(ctx, client, topic, 1, 1), "existing topic is tolerated")
		require.NoError(t, kafka.Health(ctx, client))
	})

	c := models.NewMatchCandidate(id.NewPersonID(), id.NewRawRecordID(), 0.78, models.ScoreBreakdown{}, time.Now().UTC())

	testutil.When(t, "a candidate is published", func(t *testing.T) {
		require.NoError(t, candidate.NewKafkaPublisher(client, topic).Append(ctx, c))
	})

	testutil.Then(t, "a consumer reads it back keyed by person", func(t *testing.T) {
		consumer, err := kgo.NewClient(
			kgo.SeedBrokers(broker),
			kgo.ConsumeTopics(topic),
			kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
		)
		require.NoError(t, err)
		defer consumer.Close()

		fetches := consumer.PollFetches(ctx)
		require.NoError(t, fetches.Err())
		records := fetches.Records()
		require.NotEmpty(t, records)

		rec := records[0]
		assert.Equal(t, c.PersonA.String(), string(rec.Key))
		require.Len(t, rec.Headers, 1)
		assert.Equal(t, candidate.EventCandidateFlagged, string(rec.Headers[0].Value))

		var got models.MatchCandidate
		require.NoError(t, json.Unmarshal(rec.Value, &got))
		assert.Equal(t, c.ID, got.ID)
		assert.Equal(t, models.CandidatePending, got.Status)
	})
}
