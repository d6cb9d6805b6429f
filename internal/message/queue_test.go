package message

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueDrainIsFIFO(t *testing.T) {
	q := NewQueue()
	q.Send(Notification{Text: "one"})
	q.Send(LogMessage{Text: "two"})
	q.Send(FeedsReloaded{})

	got := q.Drain()
	assert.Equal(t, []Message{
		Notification{Text: "one"},
		LogMessage{Text: "two"},
		FeedsReloaded{},
	}, got)

	assert.Nil(t, q.Drain(), "drain empties the queue")
}

func TestQueueSendAfterClose(t *testing.T) {
	q := NewQueue()
	q.Send(Notification{Text: "pending"})
	q.Close()

	assert.NotPanics(t, func() {
		q.Send(Notification{Text: "late"})
	})
	assert.Nil(t, q.Drain())
}

func TestQueueIgnoresNil(t *testing.T) {
	q := NewQueue()
	q.Send(nil)
	assert.Nil(t, q.Drain())
}

func TestQueuePerProducerOrder(t *testing.T) {
	q := NewQueue()
	const producers, perProducer = 4, 200

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			url := fmt.Sprintf("u%d", p)
			for i := 0; i < perProducer; i++ {
				q.Send(DownloadProgress{URL: url, Bytes: int64(i)})
			}
		}(p)
	}
	wg.Wait()

	msgs := q.Drain()
	require.Len(t, msgs, producers*perProducer)

	last := map[string]int64{}
	for _, m := range msgs {
		p, ok := m.(DownloadProgress)
		require.True(t, ok)
		if prev, seen := last[p.URL]; seen {
			assert.Greater(t, p.Bytes, prev)
		}
		last[p.URL] = p.Bytes
	}
}

func TestHeaderString(t *testing.T) {
	assert.Equal(t, "content-type: audio/mpeg", Header{Name: "content-type", Value: "audio/mpeg"}.String())
}
