package container

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joy/common/config"
	"joy/runtime/game"
)

func memoryGateConf() config.GateConfiguration {
	var conf config.GateConfiguration
	conf.ID = "gate-test"
	conf.Game = game.DefaultGameConf()
	conf.Dice = config.DiceConf{Backend: BackendMemory, HistoryCap: 10}
	conf.Room = config.RoomConf{Backend: BackendMemory, TTLSeconds: 60}
	conf.Advisor = config.AdvisorConf{Mode: AdvisorNone}
	return conf
}

func TestGateContainerMemoryBackends(t *testing.T) {
	ctx := context.Background()
	c, err := NewGateContainer(ctx, memoryGateConf())
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.GetMongo())
	assert.Nil(t, c.GetRedis())

	roll, err := c.Dice.Roll(ctx, "s", 2)
	require.NoError(t, err)
	assert.Len(t, roll.Faces, 2)

	ticket, err := c.Rooms.CreateRoom(ctx, "host")
	require.NoError(t, err)
	joined, err := c.Rooms.JoinRoom(ctx, ticket.Code)
	require.NoError(t, err)
	assert.Equal(t, "host", joined.HostID)

	eg, err := c.Sessions.CreateMahjong()
	require.NoError(t, err)
	assert.NotEmpty(t, eg.Snapshot(0).Seats[0].Hand)
}

func TestGateContainerRejectsUnknownBackend(t *testing.T) {
	conf := memoryGateConf()
	conf.Dice.Backend = "sqlite"
	_, err := NewGateContainer(context.Background(), conf)
	assert.Error(t, err)

	conf = memoryGateConf()
	conf.Advisor.Mode = "oracle"
	_, err = NewGateContainer(context.Background(), conf)
	assert.Error(t, err)
}
