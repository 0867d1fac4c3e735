package actor

import (
	"fmt"
	"testing"
	"time"

	adactor "github.com/badnest/badnest2mqtt/internal/adapter/actor"
	"github.com/badnest/badnest2mqtt/internal/core/domain"
	"github.com/badnest/badnest2mqtt/internal/util"
	"github.com/badnest/badnest2mqtt/pkg/nest"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMasterActor(t *testing.T) {

	as := actor.NewActorSystem()
	context := as.Root

	cfg := util.LoadTestConfig()
	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger := zap.Must(logCfg.Build())

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewMasterOfPuppetsActor(cfg, func() *adactor.NestActor {
			return adactor.NewNestActor(nest.CreateTestClient(), logger)
		}, func(es *eventstream.EventStream) *adactor.MQTTActor {
			return adactor.NewTestMQTTActor(&cfg, es, logger)
		}, logger)
	})
	pid, err := context.SpawnNamed(props, "master")
	if err != nil {
		t.Error(err)
		return
	}

	time.Sleep(2 * time.Second)

	res, err := context.RequestFuture(pid, domain.ActorHealthRequest{}, 10*time.Second).Result()
	if err != nil {
		t.Error(err)
	}
	healthResp, ok := res.(domain.ActorHealthResponse)
	assert.True(t, ok)
	fmt.Printf("Health response: %+v\n", healthResp)
	assert.NotNil(t, healthResp)

	assert.True(t, healthResp.Healthy, "healthy is true")

	context.Stop(pid)

	as.Shutdown()
}

func TestMasterActorBoostCommand(t *testing.T) {

	as := actor.NewActorSystem()
	context := as.Root

	cfg := util.LoadTestConfig()
	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger := zap.Must(logCfg.Build())

	client := nest.CreateTestClient()

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewMasterOfPuppetsActor(cfg, func() *adactor.NestActor {
			return adactor.NewNestActor(client, logger)
		}, func(es *eventstream.EventStream) *adactor.MQTTActor {
			return adactor.NewTestMQTTActor(&cfg, es, logger)
		}, logger)
	})
	pid, err := context.SpawnNamed(props, "master")
	if err != nil {
		t.Error(err)
		return
	}

	time.Sleep(2 * time.Second)

	end := time.Now().Add(30 * time.Minute).Unix()
	res, err := context.RequestFuture(pid, domain.BoostHotWaterRequest{
		DeviceID: "02AA01AC000000001",
		EndUnix:  end,
	}, 10*time.Second).Result()
	if err != nil {
		t.Error(err)
	}
	_, ok := res.(domain.BoostHotWaterResponse)
	assert.True(t, ok)

	assert.Len(t, client.BoostCalls, 1)
	assert.Equal(t, "02AA01AC000000001", client.BoostCalls[0].DeviceID)
	assert.Equal(t, end, client.BoostCalls[0].EndUnix)

	context.Stop(pid)

	as.Shutdown()
}
