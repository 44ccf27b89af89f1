package results

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	sets  map[string][]byte
	order []string
	fail  string
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	if key == f.fail {
		cmd.SetErr(errors.New("READONLY"))
		return cmd
	}
	if f.sets == nil {
		f.sets = make(map[string][]byte)
	}
	f.sets[key] = value.([]byte)
	f.order = append(f.order, key)
	cmd.SetVal("OK")
	return cmd
}

func TestRedisWriter_Write(t *testing.T) {
	fr := &fakeRedis{}
	w := NewRedisWriter(fr, "simscore")
	assert.Equal(t, "simscore:results", w.Location())
	require.NoError(t, w.Write(context.Background(), sampleResults()))

	want, _ := Marshal(sampleResults())
	assert.Equal(t, want, fr.sets["simscore:results"])
	assert.Equal(t, []string{
		"simscore:results",
		"simscore:item:Genesis 1:1",
		"simscore:item:John 1:1",
		"simscore:items",
	}, fr.order)
	assert.JSONEq(t, `["Genesis 1:1","John 1:1"]`, string(fr.sets["simscore:items"]))
}

func TestRedisWriter_WriteError(t *testing.T) {
	fr := &fakeRedis{fail: "results"}
	err := NewRedisWriter(fr, "").Write(context.Background(), sampleResults())
	assert.ErrorContains(t, err, "READONLY")
}
