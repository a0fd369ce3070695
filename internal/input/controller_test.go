package input

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeSource uint8

func (f fakeSource) Poll() uint8 { return uint8(f) }

func TestControllerShiftOrder(t *testing.T) {
	c := NewController()
	// A, Start, Left pressed.
	c.SetSource(fakeSource(uint8(ButtonA | ButtonStart | ButtonLeft)))

	c.Write(1)
	c.Write(0)

	want := []uint8{1, 0, 0, 1, 0, 0, 1, 0} // A B Select Start Up Down Left Right
	for i, w := range want {
		got := c.Read()
		require.Equalf(t, w, got, "bit %d", i)
	}
}

func TestControllerReadPastEighthBitIsOne(t *testing.T) {
	c := NewController()
	c.SetSource(fakeSource(0))
	c.Write(1)
	c.Write(0)
	for i := 0; i < 8; i++ {
		c.Read()
	}
	require.Equal(t, uint8(1), c.Read())
}

func TestControllerStrobeHighAlwaysReturnsA(t *testing.T) {
	c := NewController()
	c.SetSource(fakeSource(uint8(ButtonA)))
	c.Write(1)
	require.Equal(t, uint8(1), c.Read())
	require.Equal(t, uint8(1), c.Read())

	c.SetSource(fakeSource(0))
	require.Equal(t, uint8(0), c.Read())
}

func TestStateOpenBusBitSet(t *testing.T) {
	s := NewState()
	s.Register(Port1, fakeSource(0))
	s.Write(0x4016, 1)
	s.Write(0x4016, 0)
	got := s.Read(0x4016)
	require.Equal(t, uint8(0x40), got&0x40, "open bus bit always set")
}

func TestStateTwoPortsIndependent(t *testing.T) {
	s := NewState()
	s.Register(Port1, fakeSource(uint8(ButtonA)))
	s.Register(Port2, fakeSource(uint8(ButtonB)))
	s.Write(0x4016, 1)
	s.Write(0x4016, 0)

	require.Equal(t, uint8(1), s.Read(0x4016)&1)
	require.Equal(t, uint8(0), s.Read(0x4017)&1)
}
