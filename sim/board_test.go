package sim

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"magreader/core"
	"magreader/mag3110"
)

const welcome = "\n\rWelcome to the magnetometer reader!\n\r"

func startBoard(c *qt.C, cfg core.Config) (*Board, *core.Registry, *bytes.Buffer) {
	var out bytes.Buffer
	b := NewBoard(&out)
	reg := &core.Registry{}
	c.Assert(reg.Initialize(b.Platform(), cfg), qt.IsNil)
	return b, reg, &out
}

func TestBoardEndToEnd(t *testing.T) {
	c := qt.New(t)
	b, reg, out := startBoard(c, core.DefaultConfig())

	c.Assert(b.Sensor.Reg(mag3110.CTRL_REG1), qt.Equals, byte(0x01))
	c.Assert(b.Sensor.Reg(mag3110.CTRL_REG2), qt.Equals, byte(0x7F))
	c.Assert(b.Clock.Polls() > 2, qt.IsTrue)
	c.Assert(b.Console.Baud(), qt.Equals, uint32(115200))

	mode, ok := b.GPIO.Mode(30)
	c.Assert(ok, qt.IsTrue)
	c.Assert(mode, qt.Equals, core.PinOpenDrain)

	b.Sensor.Set(1, 2, 3)
	c.Assert(b.RTC.Fire(reg.Tick), qt.IsTrue)

	c.Assert(out.String(), qt.Equals, welcome+"x: 1, y: 2, z: 3\n\r")
	c.Assert(b.RTC.Stats(), qt.Equals, RTCStats{ISRCalls: 1, Acks: 1})
}

func TestBoardTickBeforeHandoff(t *testing.T) {
	c := qt.New(t)

	var out bytes.Buffer
	b := NewBoard(&out)
	reg := &core.Registry{}

	// Timer running and unmasked, registry still empty
	b.RTC.SetPrescaler(0)
	b.RTC.EnableTick()
	b.RTC.Start()
	b.RTC.Line().Enable()

	c.Assert(b.RTC.Fire(reg.Tick), qt.IsTrue)
	c.Assert(out.Len(), qt.Equals, 0)
	c.Assert(b.RTC.Stats(), qt.Equals, RTCStats{ISRCalls: 1, Refires: 1})
	c.Assert(reg.Stats().NotReady, qt.Equals, uint32(1))
}

func TestBoardBusFaults(t *testing.T) {
	c := qt.New(t)
	b, reg, out := startBoard(c, core.DefaultConfig())
	out.Reset()

	b.Sensor.FailEvery = 2
	b.Sensor.Field = func(n int) (x, y, z int16) { return int16(n), int16(-n), 0 }

	for i := 0; i < 4; i++ {
		c.Assert(b.RTC.Fire(reg.Tick), qt.IsTrue)
	}

	c.Assert(out.String(), qt.Equals, "x: 1, y: -1, z: 0\n\rx: 3, y: -3, z: 0\n\r")
	c.Assert(b.RTC.Stats().Acks, qt.Equals, 4)
	c.Assert(b.RTC.Stats().Refires, qt.Equals, 0)

	s := reg.Stats()
	c.Assert(s.BusErrors, qt.Equals, uint32(2))
	c.Assert(s.Samples, qt.Equals, uint32(2))
}

func TestBoardConsoleBackpressure(t *testing.T) {
	c := qt.New(t)

	var out bytes.Buffer
	b := NewBoard(&out)
	b.Console.BlockEvery = 3
	reg := &core.Registry{}
	c.Assert(reg.Initialize(b.Platform(), core.DefaultConfig()), qt.IsNil)

	b.Sensor.Set(-32768, 32767, -1)
	b.RTC.Fire(reg.Tick)

	c.Assert(out.String(), qt.Equals, welcome+"x: -32768, y: 32767, z: -1\n\r")
	c.Assert(reg.Stats().DroppedBytes, qt.Equals, uint32(0))
}

func TestBoardStandbySensor(t *testing.T) {
	c := qt.New(t)

	cfg := core.DefaultConfig()
	cfg.SensorInit = []core.RegWrite{}
	b, reg, out := startBoard(c, cfg)
	out.Reset()

	// Never switched to active mode, so the field source is not sampled
	b.Sensor.Field = func(int) (x, y, z int16) { return 9, 9, 9 }
	b.RTC.Fire(reg.Tick)

	c.Assert(b.Sensor.Active(), qt.IsFalse)
	c.Assert(out.String(), qt.Equals, "x: 0, y: 0, z: 0\n\r")
}

func TestBoardRun(t *testing.T) {
	c := qt.New(t)

	cfg := core.DefaultConfig()
	cfg.Prescaler = 32 // about 1ms
	b, reg, out := startBoard(c, cfg)
	b.Sensor.Set(4, 5, 6)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c.Assert(b.Run(ctx, 3, reg.Tick), qt.IsNil)

	c.Assert(strings.Count(out.String(), "x: 4, y: 5, z: 6\n\r"), qt.Equals, 3)
	c.Assert(reg.Stats().Ticks, qt.Equals, uint32(3))
}

func TestBoardRunNotStarted(t *testing.T) {
	c := qt.New(t)

	b := NewBoard(nil)
	err := b.Run(context.Background(), 1, func() {})
	c.Assert(err, qt.ErrorMatches, "sim: RTC not started")
}

func TestMAG3110WrongAddress(t *testing.T) {
	c := qt.New(t)

	m := NewMAG3110()
	var buf [1]byte
	c.Assert(m.Tx(0x1E, []byte{mag3110.WHO_AM_I}, buf[:]), qt.Equals, ErrNack)
	c.Assert(m.Tx(mag3110.Address, []byte{mag3110.WHO_AM_I}, buf[:]), qt.IsNil)
	c.Assert(buf[0], qt.Equals, byte(mag3110.WhoAmI))
}
