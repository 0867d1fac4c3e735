package actor

import (
	"testing"
	"time"

	"github.com/badnest/badnest2mqtt/internal/core/domain"
	"github.com/badnest/badnest2mqtt/internal/util/actorutil"
	"github.com/badnest/badnest2mqtt/pkg/nest"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestGetDevicesNestActor(t *testing.T) {

	assert := assert.New(t)

	client := nest.CreateTestClient()

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)

	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor { return NewNestActor(client, logger) })
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	msg := domain.GetDevicesRequest{}
	result, err := context.RequestFuture(pid, msg, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.GetDevicesResponse)

	assert.Len(resp.Devices, 3, "device count")
	var thermostat *nest.Device
	for i := range resp.Devices {
		if resp.Devices[i].Kind == nest.DEVICE_KIND_THERMOSTAT {
			thermostat = &resp.Devices[i]
		}
	}
	if assert.NotNil(thermostat, "thermostat present") {
		assert.Equal("02AA01AC000000001", thermostat.ID, "thermostat serial")
		assert.True(thermostat.HasHotWaterControl, "hot water control")
	}

	context.Stop(pid)

	as.Shutdown()
}

func TestGetDeviceStatesNestActor(t *testing.T) {

	assert := assert.New(t)

	client := nest.CreateTestClient()

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)
	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor { return NewNestActor(client, logger) })
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	_, err := context.RequestFuture(pid, domain.GetDevicesRequest{}, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}

	result, err := context.RequestFuture(pid, domain.GetDeviceStatesRequest{}, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.GetDeviceStatesResponse)

	assert.True(len(resp.States) > 0, "states present")

	context.Stop(pid)

	as.Shutdown()
}

func TestBoostHotWaterNestActor(t *testing.T) {

	assert := assert.New(t)

	client := nest.CreateTestClient()

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)
	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor { return NewNestActor(client, logger) })
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	end := time.Now().Add(45 * time.Minute).Unix()
	result, err := context.RequestFuture(pid, domain.BoostHotWaterRequest{
		DeviceID: "02AA01AC000000001",
		EndUnix:  end,
	}, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp, ok := result.(domain.BoostHotWaterResponse)
	assert.True(ok)
	assert.False(resp.HasResponseError(), "no response error")

	if assert.Len(client.BoostCalls, 1, "one boost call") {
		assert.Equal("02AA01AC000000001", client.BoostCalls[0].DeviceID, "boost device")
		assert.Equal(end, client.BoostCalls[0].EndUnix, "boost end")
	}

	// boost off maps to a zero deadline
	result, err = context.RequestFuture(pid, domain.BoostHotWaterRequest{
		DeviceID: "02AA01AC000000001",
		EndUnix:  0,
	}, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	_, ok = result.(domain.BoostHotWaterResponse)
	assert.True(ok)

	if assert.Len(client.BoostCalls, 2, "two boost calls") {
		assert.Equal(int64(0), client.BoostCalls[1].EndUnix, "cancel end")
	}

	context.Stop(pid)

	as.Shutdown()
}
